package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"inspectdesk/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.Client{},
		&domain.Analyst{},
		&domain.ServiceOrder{},
		&domain.Damage{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func TestOrderRepository_RowsCarryJoinedNames(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	client := domain.Client{Name: "Acme Fleet", Active: true}
	require.NoError(t, db.Create(&client).Error)
	analyst := domain.Analyst{Name: "Ana Souza", Email: "ana@example.com", Active: true}
	require.NoError(t, db.Create(&analyst).Error)

	opened := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	linked := domain.ServiceOrder{
		Number: "OS-1", ServiceType: "Claim Inspection",
		Status: domain.OrderOpen, OpenedAt: opened,
		ClientID: &client.ID, AnalystID: &analyst.ID,
	}
	require.NoError(t, db.Create(&linked).Error)
	orphan := domain.ServiceOrder{
		Number: "OS-2", ServiceType: "Special Survey",
		Status: domain.OrderOpen, OpenedAt: opened.Add(time.Hour),
	}
	require.NoError(t, db.Create(&orphan).Error)

	repo := NewOrderRepository(db)

	rows, err := repo.ListRows(ctx, OrderListQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// newest first
	assert.Equal(t, "OS-2", rows[0].Number)
	assert.Equal(t, domain.UnknownClient, rows[0].ClientName)
	assert.Equal(t, domain.UnknownAnalyst, rows[0].AnalystName)
	assert.Equal(t, "Acme Fleet", rows[1].ClientName)
	assert.Equal(t, "Ana Souza", rows[1].AnalystName)
}

func TestOrderRepository_RowsOpenedBetween(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(db)

	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	completed := base.Add(30 * time.Hour)
	seed := []domain.ServiceOrder{
		{Number: "OS-10", ServiceType: "x", OpenedAt: base.AddDate(0, 0, -1)}, // before window
		{Number: "OS-11", ServiceType: "x", OpenedAt: base},
		{Number: "OS-12", ServiceType: "x", OpenedAt: base.AddDate(0, 0, 10), CompletedAt: &completed},
		{Number: "OS-13", ServiceType: "x", OpenedAt: base.AddDate(0, 1, 0)}, // at upper bound, excluded
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	from := base
	to := base.AddDate(0, 1, 0)

	rows, err := repo.RowsOpenedBetween(ctx, from, to, false)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "OS-11", rows[0].Number)
	assert.Equal(t, "OS-12", rows[1].Number)

	done, err := repo.RowsOpenedBetween(ctx, from, to, true)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "OS-12", done[0].Number)
}

func TestOrderRepository_ExistsByNumber(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(db)

	require.NoError(t, db.Create(&domain.ServiceOrder{
		Number: "OS-77", ServiceType: "x", OpenedAt: time.Now(),
	}).Error)

	exists, err := repo.ExistsByNumber(ctx, "OS-77")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByNumber(ctx, " OS-77 ")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByNumber(ctx, "OS-78")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDamageRepository_RowsCarryJoinedKeys(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	client := domain.Client{Name: "Borealis Logistics", Active: true}
	require.NoError(t, db.Create(&client).Error)
	order := domain.ServiceOrder{Number: "OS-42", ServiceType: "x", OpenedAt: time.Now()}
	require.NoError(t, db.Create(&order).Error)

	occurred := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	linked := domain.Damage{
		Type: "Dent", Description: "door dent", Status: domain.DamageOpen,
		OccurredAt: &occurred, ClientID: &client.ID, OrderID: &order.ID,
	}
	require.NoError(t, db.Create(&linked).Error)
	orphan := domain.Damage{
		Type: "Scratch", Description: "hood scratch", Status: domain.DamageOpen,
		OccurredAt: &occurred,
	}
	require.NoError(t, db.Create(&orphan).Error)

	repo := NewDamageRepository(db)

	rows, err := repo.RowsOccurredBetween(ctx, occurred.AddDate(0, 0, -1), occurred.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byType := map[string]domain.DamageRow{}
	for _, r := range rows {
		byType[r.Type] = r
	}
	assert.Equal(t, "Borealis Logistics", byType["Dent"].ClientName)
	assert.Equal(t, "OS-42", byType["Dent"].OrderNumber)
	assert.Equal(t, domain.UnknownClient, byType["Scratch"].ClientName)
	assert.Empty(t, byType["Scratch"].OrderNumber)
}
