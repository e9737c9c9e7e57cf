package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCurrency(t *testing.T) {
	assert.NoError(t, ValidateCurrency(""))
	assert.NoError(t, ValidateCurrency("usd"))
	assert.Error(t, ValidateCurrency("US"))
	assert.Error(t, ValidateCurrency("U5D"))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount("150"))
	assert.NoError(t, ValidateAmount("150.5"))
	assert.NoError(t, ValidateAmount("150.50"))
	assert.Error(t, ValidateAmount(""))
	assert.Error(t, ValidateAmount("abc"))
	assert.Error(t, ValidateAmount("0"))
	assert.Error(t, ValidateAmount("-3"))
	assert.Error(t, ValidateAmount("1.005"))

	assert.NoError(t, ValidateOptionalAmount(""))
	assert.NoError(t, ValidateOptionalAmount("0"))
	assert.Error(t, ValidateOptionalAmount("-1"))
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate(""))
	assert.NoError(t, ValidateDate("2025-02-28"))
	assert.Error(t, ValidateDate("28/02/2025"))
}

func TestValidateAccountType(t *testing.T) {
	assert.NoError(t, ValidateAccountType("credit_card"))
	assert.Error(t, ValidateAccountType("savings"))
}

func TestValidateAccountName(t *testing.T) {
	assert.NoError(t, ValidateAccountName("Main checking"))
	assert.Error(t, ValidateAccountName("   "))
}
