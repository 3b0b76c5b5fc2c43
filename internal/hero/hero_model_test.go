package hero

import (
	"strings"
	"testing"

	"github.com/DhavalSuthar-24/superheroes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantErr     bool
	}{
		{"empty is allowed", "", false},
		{"one character", "x", true},
		{"nineteen characters", strings.Repeat("a", 19), true},
		{"twenty characters", strings.Repeat("a", 20), false},
		{"long", "Ability to fly at supersonic speed", false},
		{"multibyte counted as characters", strings.Repeat("é", 20), false},
		{"multibyte below minimum", strings.Repeat("é", 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDescription(tt.description)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "description", ve.Field)
			assert.Equal(t, "Description must be at least 20 characters long", ve.Message)
		})
	}
}

func TestPowerSetDescriptionKeepsValueOnError(t *testing.T) {
	p, err := NewPower("flight", "Ability to fly at supersonic speed")
	require.NoError(t, err)

	err = p.SetDescription("too short")
	assert.True(t, models.IsValidationError(err))
	assert.Equal(t, "Ability to fly at supersonic speed", p.Description)

	require.NoError(t, p.SetDescription(""))
	assert.Empty(t, p.Description)
}

func TestNewPowerRejectsShortDescription(t *testing.T) {
	p, err := NewPower("flight", "short")
	assert.Nil(t, p)
	assert.True(t, models.IsValidationError(err))
}

func TestValidateStrength(t *testing.T) {
	for _, s := range Strengths {
		assert.NoError(t, ValidateStrength(s), s)
	}

	for _, s := range []string{"", "strong", "STRONG", " Strong", "Strong ", "Invincible", "Medium"} {
		err := ValidateStrength(s)
		var ve *models.ValidationError
		require.ErrorAs(t, err, &ve, "%q", s)
		assert.Equal(t, "strength", ve.Field)
		assert.Equal(t, "Strength must be one of: 'Strong', 'Weak', 'Average'", ve.Message)
	}
}

func TestHeroPowerSetStrengthKeepsValueOnError(t *testing.T) {
	hp, err := NewHeroPower(1, 2, StrengthWeak)
	require.NoError(t, err)
	assert.Equal(t, uint(1), hp.HeroID)
	assert.Equal(t, uint(2), hp.PowerID)

	assert.Error(t, hp.SetStrength("Invincible"))
	assert.Equal(t, StrengthWeak, hp.Strength)

	require.NoError(t, hp.SetStrength(StrengthAverage))
	assert.Equal(t, StrengthAverage, hp.Strength)
}

func TestNewHeroPowerRejectsInvalidStrength(t *testing.T) {
	hp, err := NewHeroPower(1, 1, "Invincible")
	assert.Nil(t, hp)
	assert.True(t, models.IsValidationError(err))
}

func sampleGraph() (*Hero, *Power, *HeroPower) {
	h := &Hero{Name: "Bruce Wayne", SuperName: "Batman"}
	h.ID = 1
	p := &Power{Name: "flight", Description: "Ability to fly at supersonic speed"}
	p.ID = 2
	hp := &HeroPower{Strength: StrengthStrong, HeroID: h.ID, PowerID: p.ID, Hero: h, Power: p}
	hp.ID = 3
	h.HeroPowers = []HeroPower{*hp}
	p.HeroPowers = []HeroPower{*hp}
	return h, p, hp
}

func TestHeroToDictDropsBackReference(t *testing.T) {
	h, _, _ := sampleGraph()

	out := h.ToDict()
	assert.Equal(t, uint(1), out["id"])
	assert.Equal(t, "Bruce Wayne", out["name"])
	assert.Equal(t, "Batman", out["super_name"])

	heroPowers, ok := out["hero_powers"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, heroPowers, 1)
	assert.NotContains(t, heroPowers[0], "hero")
	assert.Equal(t, "Strong", heroPowers[0]["strength"])

	power, ok := heroPowers[0]["power"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, uint(2), power["id"])
	assert.NotContains(t, power, "hero_powers")
}

func TestHeroToDictSummaryRule(t *testing.T) {
	h, _, _ := sampleGraph()

	out := h.ToDict("-hero_powers")
	assert.Equal(t, map[string]any{"id": uint(1), "name": "Bruce Wayne", "super_name": "Batman"}, out)
}

func TestPowerToDictExcludesHeroPowers(t *testing.T) {
	_, p, _ := sampleGraph()

	out := p.ToDict()
	assert.Equal(t, map[string]any{
		"id":          uint(2),
		"name":        "flight",
		"description": "Ability to fly at supersonic speed",
	}, out)
}

func TestHeroPowerToDictIncludesBothSides(t *testing.T) {
	_, _, hp := sampleGraph()

	out := hp.ToDict()
	assert.Equal(t, "Strong", out["strength"])
	assert.Equal(t, uint(1), out["hero_id"])
	assert.Equal(t, uint(2), out["power_id"])

	hero, ok := out["hero"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, uint(1), hero["id"])
	assert.NotContains(t, hero, "hero_powers")

	power, ok := out["power"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, uint(2), power["id"])
	assert.NotContains(t, power, "hero_powers")
}

func TestHeroPowerToDictWithoutAssociations(t *testing.T) {
	hp, err := NewHeroPower(4, 5, StrengthAverage)
	require.NoError(t, err)

	out := hp.ToDict()
	assert.Contains(t, out, "hero")
	assert.Nil(t, out["hero"])
	assert.Nil(t, out["power"])
}

func TestStringers(t *testing.T) {
	h, p, hp := sampleGraph()
	assert.Equal(t, "<Hero 1>", h.String())
	assert.Equal(t, "<Power 2>", p.String())
	assert.Equal(t, "<HeroPower 3>", hp.String())
}
