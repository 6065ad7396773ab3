package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsDuplicateKey(&pgconn.PgError{Code: "23505", ConstraintName: "idx_service_orders_number"}))
	assert.True(t, IsDuplicateKey(errors.New("constraint failed: UNIQUE constraint failed: service_orders.number (2067)")))

	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsDuplicateKey(errors.New("connection refused")))
}
