package api

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmployeeCode(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("employee_code", validEmployeeCode))

	type req struct {
		Code string `validate:"employee_code"`
	}
	valid := []string{"EMP001", "HR/2024/007", "IT-9.a"}
	invalid := []string{"", "EMP 001", "EMP?1", "EMP#1", "EMP\t1"}

	for _, c := range valid {
		assert.NoError(t, v.Struct(req{Code: c}), c)
	}
	for _, c := range invalid {
		assert.Error(t, v.Struct(req{Code: c}), c)
	}
}

func TestRegisterValidators(t *testing.T) {
	assert.NoError(t, RegisterValidators())
}
