package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupForm struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin manager user"`
}

func TestValidate_Valid(t *testing.T) {
	details := Validate(&signupForm{Email: "a@b.com", Password: "longenough"})
	assert.Nil(t, details)
}

func TestValidate_ReportsWireNames(t *testing.T) {
	details := Validate(&signupForm{Email: "not-an-email", Password: "short", Role: "root"})

	assert.Equal(t, map[string]string{
		"email":    "must be a valid email address",
		"password": "must be at least 8 characters",
		"role":     "must be one of: admin manager user",
	}, details)
}

func TestValidate_MissingRequired(t *testing.T) {
	details := Validate(&signupForm{})

	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "is required", details["password"])
}
