package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneDisplay(t *testing.T) {
	assert.Equal(t, "+55 11999990000", Profile{PhonePrefix: "+55", PhoneNumber: "11999990000"}.PhoneDisplay())
	assert.Equal(t, "11999990000", Profile{PhoneNumber: "11999990000"}.PhoneDisplay())
	assert.Equal(t, "+55", Profile{PhonePrefix: "+55"}.PhoneDisplay())
	assert.Empty(t, Profile{}.PhoneDisplay())
}

func TestLocationDisplay(t *testing.T) {
	assert.Equal(t, "Lisbon, PT", Profile{City: "Lisbon", Country: "PT"}.LocationDisplay())
	assert.Equal(t, "PT", Profile{Country: "PT"}.LocationDisplay())
	assert.Equal(t, "Lisbon", Profile{City: " Lisbon "}.LocationDisplay())
	assert.Empty(t, Profile{}.LocationDisplay())
}

func TestProfileUpdateApply(t *testing.T) {
	name := "  Ana Souza "
	city := ""
	p := Profile{FullName: "Ana", City: "Recife", Country: "BR", Role: RoleProvider}

	got := ProfileUpdate{FullName: &name, City: &city}.Apply(p)

	assert.Equal(t, "Ana Souza", got.FullName)
	assert.Empty(t, got.City)
	assert.Equal(t, "BR", got.Country)
	assert.Equal(t, RoleProvider, got.Role)
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("Provider")
	assert.True(t, ok)
	assert.Equal(t, RoleProvider, r)

	_, ok = ParseRole("admin")
	assert.False(t, ok)
}
