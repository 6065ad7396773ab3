package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"inspectdesk/internal/config"
	"inspectdesk/internal/database"
	"inspectdesk/internal/domain"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Client{},
		&domain.Analyst{},
		&domain.ServiceType{},
		&domain.ReportTemplate{},
		&domain.ServiceOrder{},
		&domain.Damage{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM damages")
	db.Exec("DELETE FROM service_orders")
	db.Exec("DELETE FROM report_templates")
	db.Exec("DELETE FROM service_types")
	db.Exec("DELETE FROM analysts")
	db.Exec("DELETE FROM clients")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	users := []struct {
		email    string
		password string
		name     string
		role     domain.UserRole
		dept     string
	}{
		{"admin@inspectdesk.local", "admin123", "Administrator", domain.RoleAdmin, "Operations"},
		{"marina@inspectdesk.local", "manager123", "Marina Costa", domain.RoleManager, "Back Office"},
		{"paulo@inspectdesk.local", "user123", "Paulo Lima", domain.RoleUser, "Back Office"},
	}
	for _, u := range users {
		hash, _ := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		db.Create(&domain.User{
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
			Role:         u.role,
			Department:   u.dept,
			Active:       true,
		})
		log.Printf("User created: %s / %s", u.email, u.password)
	}

	// ================== CLIENTS ==================
	log.Println("Creating clients...")

	clientNames := []string{"Acme Fleet", "Borealis Logistics", "Ceres Transportes", "Delta Rental"}
	clients := make([]domain.Client, 0, len(clientNames))
	for i, name := range clientNames {
		client := domain.Client{
			Name:        name,
			TaxID:       fmt.Sprintf("12.345.%03d/0001-9%d", i+100, i),
			Email:       fmt.Sprintf("contact@%s.example", strings.ToLower(strings.Fields(name)[0])),
			ContactName: fmt.Sprintf("Contact %d", i+1),
			Active:      true,
		}
		db.Create(&client)
		clients = append(clients, client)
	}

	// ================== ANALYSTS ==================
	log.Println("Creating analysts...")

	analystSeed := []struct {
		name  string
		level domain.AnalystLevel
	}{
		{"Ana Souza", domain.LevelSenior},
		{"Bruno Alves", domain.LevelMid},
		{"Carla Mendes", domain.LevelMid},
		{"Diego Rocha", domain.LevelJunior},
	}
	analysts := make([]domain.Analyst, 0, len(analystSeed))
	for i, a := range analystSeed {
		analyst := domain.Analyst{
			Name:      a.name,
			Email:     fmt.Sprintf("analyst%d@inspectdesk.local", i+1),
			Specialty: "Vehicle inspection",
			Level:     a.level,
			Active:    true,
		}
		db.Create(&analyst)
		analysts = append(analysts, analyst)
	}

	// ================== CATALOGS ==================
	log.Println("Creating service types and report templates...")

	serviceTypes := []string{
		"Demobilization Inspection",
		"Claim Inspection",
		"Buyback Inspection",
		"Maintenance Inspection",
		"Special Survey",
	}
	for _, name := range serviceTypes {
		db.Create(&domain.ServiceType{Name: name, Category: "inspection", Active: true})
	}

	templates := []struct {
		name     string
		sections int
	}{
		{"Standard Vehicle Report", 6},
		{"Damage Annex", 3},
		{"Buyback Checklist", 8},
	}
	for _, tpl := range templates {
		db.Create(&domain.ReportTemplate{Name: tpl.name, Category: "inspection", Sections: tpl.sections, Active: true})
	}

	// ================== ORDERS ==================
	// Orders spread over the last twelve weeks with completion times crossing
	// every delay severity tier so the reports have something to show.
	log.Println("Creating service orders...")

	now := time.Now()
	durations := []float64{6, 12, 20, 30, 50, 80, 200, 18, 40, 100}
	count := 0
	for week := 0; week < 12; week++ {
		for i := 0; i < 3; i++ {
			opened := now.AddDate(0, 0, -7*week-i*2).Add(-3 * time.Hour)
			client := clients[(week+i)%len(clients)]
			analyst := analysts[(week+2*i)%len(analysts)]

			order := domain.ServiceOrder{
				Number:      fmt.Sprintf("OS-%s", strings.ToUpper(uuid.NewString()[:8])),
				ServiceType: serviceTypes[(week+i)%len(serviceTypes)],
				Status:      domain.OrderOpen,
				Priority:    domain.PriorityMedium,
				OpenedAt:    opened,
				ClientID:    &client.ID,
				AnalystID:   &analyst.ID,
				Value:       350 + float64(week*25+i*10),
			}

			// Complete roughly two thirds of them.
			if (week+i)%3 != 0 {
				hours := durations[count%len(durations)]
				completed := opened.Add(time.Duration(hours * float64(time.Hour)))
				order.Status = domain.OrderCompleted
				order.CompletedAt = &completed
			}

			db.Create(&order)
			count++
		}
	}
	log.Printf("Created %d orders", count)

	// ================== DAMAGES ==================
	log.Println("Creating damages...")

	damageSeed := []struct {
		dtype    string
		severity domain.DamageSeverity
		status   domain.DamageStatus
	}{
		{"Dent", domain.SeverityLow, domain.DamageClosed},
		{"Scratch", domain.SeverityLow, domain.DamageOpen},
		{"Broken glass", domain.SeverityMedium, domain.DamageClosed},
		{"Missing part", domain.SeverityHigh, domain.DamageUnderReview},
		{"Engine failure", domain.SeverityCritical, domain.DamageClosed},
		{"Tire wear", domain.SeverityLow, domain.DamageOpen},
	}
	for i, d := range damageSeed {
		occurred := now.AddDate(0, 0, -4*i)
		client := clients[i%len(clients)]
		db.Create(&domain.Damage{
			Type:        d.dtype,
			Description: fmt.Sprintf("%s found during inspection", d.dtype),
			Severity:    d.severity,
			Status:      d.status,
			OccurredAt:  &occurred,
			ClientID:    &client.ID,
		})
	}

	log.Println("Seed finished.")
}
