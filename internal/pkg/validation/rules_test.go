package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("student@coursehub.app"))
	assert.True(t, ValidEmail("first.last+tag@sub.example.co"))

	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@tld"))
	assert.False(t, ValidEmail("@example.com"))
}

func TestValidUsername(t *testing.T) {
	assert.True(t, ValidUsername("selin"))
	assert.True(t, ValidUsername("user_42"))

	assert.False(t, ValidUsername("ab"))
	assert.False(t, ValidUsername("has space"))
	assert.False(t, ValidUsername("has-dash"))
	assert.False(t, ValidUsername(strings.Repeat("a", 101)))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("12345678"))
	assert.False(t, ValidPassword("1234567"))
	assert.False(t, ValidPassword(""))
}

func TestValidTitle(t *testing.T) {
	assert.True(t, ValidTitle("L"))
	assert.True(t, ValidTitle(strings.Repeat("a", 255)))

	assert.False(t, ValidTitle(""))
	assert.False(t, ValidTitle(strings.Repeat("a", 256)))
}
