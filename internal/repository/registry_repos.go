package repository

import (
	"inspectdesk/internal/domain"

	"gorm.io/gorm"
)

// The catalog-style entities need nothing beyond the shared store; each gets
// a named repository so wiring in cmd/api stays explicit.

type ClientRepository struct {
	*Store[domain.Client]
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{Store: NewStore[domain.Client](db)}
}

type AnalystRepository struct {
	*Store[domain.Analyst]
}

func NewAnalystRepository(db *gorm.DB) *AnalystRepository {
	return &AnalystRepository{Store: NewStore[domain.Analyst](db)}
}

type ServiceTypeRepository struct {
	*Store[domain.ServiceType]
}

func NewServiceTypeRepository(db *gorm.DB) *ServiceTypeRepository {
	return &ServiceTypeRepository{Store: NewStore[domain.ServiceType](db)}
}

type ReportTemplateRepository struct {
	*Store[domain.ReportTemplate]
}

func NewReportTemplateRepository(db *gorm.DB) *ReportTemplateRepository {
	return &ReportTemplateRepository{Store: NewStore[domain.ReportTemplate](db)}
}
