package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	f, err := Load("testdata/valid.json")
	require.NoError(t, err)

	assert.Equal(t, "standard_user", f.Users.Standard.Username)
	assert.Equal(t, "secret_sauce", f.Users.Standard.Password)
	assert.Equal(t, "invalid_user", f.Users.Invalid.Username)
	assert.Equal(t, "Ada", f.Customer.FirstName)
	assert.Equal(t, "10115", f.Customer.PostalCode)
	assert.Equal(t, "Epic sadface: Username and password do not match any user in this service", f.ErrorMessages.InvalidLogin)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.json")
	assert.Error(t, err)
}

func TestLoad_EmptyIdentityField(t *testing.T) {
	_, err := Load("testdata/missing_customer.json")
	require.ErrorIs(t, err, ErrInvalidFixture)
	assert.Contains(t, err.Error(), "LastName")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Not JSON", `{`},
		{"Unknown field", `{"users":{},"customer":{},"errorMessages":{},"extra":1}`},
		{"Empty document", `{}`},
		{"Missing password", `{
			"users":{"standard":{"username":"u"},"invalid":{"username":"x","password":"y"}},
			"customer":{"firstName":"a","lastName":"b","postalCode":"c"},
			"errorMessages":{"invalidLogin":"e"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidFixture)
		})
	}
}
