package registry

import (
	"inspectdesk/internal/domain"
	"inspectdesk/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Descriptors for the four catalog entities. Search columns mirror what the
// list screens let users search by.

func ClientDescriptor() Descriptor[domain.Client] {
	return Descriptor[domain.Client]{
		Resource:      "clients",
		SearchColumns: []string{"name", "tax_id", "email", "contact_name"},
		OrderBy:       "name",
		ID:            func(c *domain.Client) int64 { return c.ID },
		SetID:         func(c *domain.Client, id int64) { c.ID = id },
		SetActive:     func(c *domain.Client, active bool) { c.Active = active },
	}
}

func AnalystDescriptor() Descriptor[domain.Analyst] {
	return Descriptor[domain.Analyst]{
		Resource:      "analysts",
		SearchColumns: []string{"name", "email", "specialty"},
		OrderBy:       "name",
		ID:            func(a *domain.Analyst) int64 { return a.ID },
		SetID:         func(a *domain.Analyst, id int64) { a.ID = id },
		SetActive:     func(a *domain.Analyst, active bool) { a.Active = active },
	}
}

func ServiceTypeDescriptor() Descriptor[domain.ServiceType] {
	return Descriptor[domain.ServiceType]{
		Resource:      "service-types",
		SearchColumns: []string{"name", "category"},
		OrderBy:       "name",
		ID:            func(s *domain.ServiceType) int64 { return s.ID },
		SetID:         func(s *domain.ServiceType, id int64) { s.ID = id },
		SetActive:     func(s *domain.ServiceType, active bool) { s.Active = active },
	}
}

func ReportTemplateDescriptor() Descriptor[domain.ReportTemplate] {
	return Descriptor[domain.ReportTemplate]{
		Resource:      "report-templates",
		SearchColumns: []string{"name", "category"},
		OrderBy:       "name",
		ID:            func(r *domain.ReportTemplate) int64 { return r.ID },
		SetID:         func(r *domain.ReportTemplate, id int64) { r.ID = id },
		SetActive:     func(r *domain.ReportTemplate, active bool) { r.Active = active },
	}
}

// Mount wires every catalog resource onto the protected route group.
func Mount(protected *gin.RouterGroup, db *gorm.DB, events Publisher) {
	mountResource(protected, repository.NewClientRepository(db).Store, ClientDescriptor(), events)
	mountResource(protected, repository.NewAnalystRepository(db).Store, AnalystDescriptor(), events)
	mountResource(protected, repository.NewServiceTypeRepository(db).Store, ServiceTypeDescriptor(), events)
	mountResource(protected, repository.NewReportTemplateRepository(db).Store, ReportTemplateDescriptor(), events)
}

func mountResource[T any](protected *gin.RouterGroup, store Store[T], desc Descriptor[T], events Publisher) {
	handler := NewHandler(NewService(store, desc, events))
	handler.RegisterRoutes(protected, desc.Resource)
}
