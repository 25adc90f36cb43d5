package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOrgans_AliasesAndOrder(t *testing.T) {
	got := NormalizeOrgans([]string{"Kidneys", "Lung", "sinus", "unknown_organ"})
	assert.Equal(t, []OrganKey{OrganKidney, OrganLungs, OrganSinuses}, got)
}

func TestNormalizeOrgans_DropsDuplicates(t *testing.T) {
	got := NormalizeOrgans([]string{"lungs", "lung", " LUNGS ", "heart"})
	assert.Equal(t, []OrganKey{OrganLungs, OrganHeart}, got)
}

func TestNormalizeOrgans_Empty(t *testing.T) {
	assert.Empty(t, NormalizeOrgans(nil))
	assert.Empty(t, NormalizeOrgans([]string{"spleen", "appendix"}))
}

func TestNormalizeOrgans_OnlyCanonicalKeys(t *testing.T) {
	inputs := []string{"brain", "sinus", "throat", "lung", "bronchus", "heart",
		"liver", "stomach", "kidneys", "intestines", "pancreas", "bladder"}
	for _, key := range NormalizeOrgans(inputs) {
		_, ok := CanonicalOrgan(string(key))
		assert.True(t, ok, "normalized key %q must be canonical", key)
	}
}

func TestCanonicalOrgan(t *testing.T) {
	key, ok := CanonicalOrgan("  Bronchus ")
	assert.True(t, ok)
	assert.Equal(t, OrganBronchi, key)

	_, ok = CanonicalOrgan("femur")
	assert.False(t, ok)
}
