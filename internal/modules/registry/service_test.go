package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"inspectdesk/internal/domain"
	"inspectdesk/internal/repository"
)

type recordedEvent struct {
	Resource string
	Action   string
	ID       int64
}

type recordingPublisher struct {
	events []recordedEvent
}

func (p *recordingPublisher) Publish(resource, action string, id int64) {
	p.events = append(p.events, recordedEvent{Resource: resource, Action: action, ID: id})
}

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	if err := db.AutoMigrate(&domain.Client{}, &domain.Analyst{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func clientService(t *testing.T) (*Service[domain.Client], *recordingPublisher) {
	db := testDB(t)
	events := &recordingPublisher{}
	store := repository.NewClientRepository(db).Store
	return NewService[domain.Client](store, ClientDescriptor(), events), events
}

func TestService_CreateAndGet(t *testing.T) {
	svc, events := clientService(t)
	ctx := context.Background()

	client := &domain.Client{Name: "Acme Fleet", TaxID: "12.345.678/0001-90"}
	require.NoError(t, svc.Create(ctx, client))
	require.NotZero(t, client.ID)
	assert.True(t, client.Active)

	got, err := svc.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Fleet", got.Name)

	require.Len(t, events.events, 1)
	assert.Equal(t, recordedEvent{Resource: "clients", Action: "created", ID: client.ID}, events.events[0])
}

func TestService_Get_NotFound(t *testing.T) {
	svc, _ := clientService(t)

	_, err := svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_List_SearchAndActiveFilter(t *testing.T) {
	svc, _ := clientService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &domain.Client{Name: "Acme Fleet"}))
	require.NoError(t, svc.Create(ctx, &domain.Client{Name: "Borealis Logistics"}))
	inactive := &domain.Client{Name: "Acme Salvage"}
	require.NoError(t, svc.Create(ctx, inactive))
	_, err := svc.SetActive(ctx, inactive.ID, false)
	require.NoError(t, err)

	all, err := svc.List(ctx, "", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matched, err := svc.List(ctx, "acme", nil)
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	active := true
	matchedActive, err := svc.List(ctx, "acme", &active)
	require.NoError(t, err)
	require.Len(t, matchedActive, 1)
	assert.Equal(t, "Acme Fleet", matchedActive[0].Name)
}

func TestService_List_OrdersByName(t *testing.T) {
	svc, _ := clientService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &domain.Client{Name: "Zenith Cargo"}))
	require.NoError(t, svc.Create(ctx, &domain.Client{Name: "Atlas Haulage"}))

	all, err := svc.List(ctx, "", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Atlas Haulage", all[0].Name)
	assert.Equal(t, "Zenith Cargo", all[1].Name)
}

func TestService_Update(t *testing.T) {
	svc, events := clientService(t)
	ctx := context.Background()

	client := &domain.Client{Name: "Old Name"}
	require.NoError(t, svc.Create(ctx, client))

	updated, err := svc.Update(ctx, client.ID, &domain.Client{Name: "New Name", Active: true})
	require.NoError(t, err)
	assert.Equal(t, client.ID, updated.ID)
	assert.Equal(t, "New Name", updated.Name)

	got, err := svc.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)

	require.Len(t, events.events, 2)
	assert.Equal(t, "updated", events.events[1].Action)
}

func TestService_Delete(t *testing.T) {
	svc, events := clientService(t)
	ctx := context.Background()

	client := &domain.Client{Name: "Doomed"}
	require.NoError(t, svc.Create(ctx, client))
	require.NoError(t, svc.Delete(ctx, client.ID))

	_, err := svc.Get(ctx, client.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, client.ID), ErrNotFound)

	require.Len(t, events.events, 2)
	assert.Equal(t, "deleted", events.events[1].Action)
}

func TestService_AnalystDescriptor(t *testing.T) {
	db := testDB(t)
	events := &recordingPublisher{}
	store := repository.NewAnalystRepository(db).Store
	svc := NewService[domain.Analyst](store, AnalystDescriptor(), events)
	ctx := context.Background()

	analyst := &domain.Analyst{Name: "Dana Reis", Email: "dana@example.com", Level: domain.LevelSenior}
	require.NoError(t, svc.Create(ctx, analyst))

	matched, err := svc.List(ctx, "dana@", nil)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, domain.LevelSenior, matched[0].Level)
}
