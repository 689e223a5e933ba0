package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailWellFormed(t *testing.T) {
	assert.True(t, IsEmailWellFormed("ana@clinic.io"))
	assert.True(t, IsEmailWellFormed("ana.souza+test@mail.clinic.io"))

	assert.False(t, IsEmailWellFormed(""))
	assert.False(t, IsEmailWellFormed("ana"))
	assert.False(t, IsEmailWellFormed("ana@localhost"))
	assert.False(t, IsEmailWellFormed("Ana <ana@clinic.io>"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@clinic.io", NormalizeEmail("  Ana@Clinic.IO "))
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("1990-02-28"))
	assert.False(t, IsDate("1990-02-30"))
	assert.False(t, IsDate("28/02/1990"))
}
