// hero/hero_power_model.go
package hero

import (
	"fmt"
	"strings"

	"github.com/DhavalSuthar-24/superheroes/internal/models"
	"github.com/DhavalSuthar-24/superheroes/pkg/serializer"
	"gorm.io/gorm"
)

const (
	StrengthStrong  = "Strong"
	StrengthWeak    = "Weak"
	StrengthAverage = "Average"
)

// Strengths lists the accepted HeroPower strengths. Matching is exact.
var Strengths = []string{StrengthStrong, StrengthWeak, StrengthAverage}

// HeroPower attributes a strength to a (Hero, Power) pair.
type HeroPower struct {
	models.BaseModel
	Strength string `json:"strength" gorm:"not null"`
	HeroID   uint   `json:"hero_id" gorm:"not null;index"`
	PowerID  uint   `json:"power_id" gorm:"not null;index"`
	Hero     *Hero  `json:"hero,omitempty" gorm:"foreignKey:HeroID"`
	Power    *Power `json:"power,omitempty" gorm:"foreignKey:PowerID"`
}

func (HeroPower) TableName() string {
	return "hero_powers"
}

// ValidateStrength accepts only the values in Strengths.
func ValidateStrength(strength string) error {
	for _, s := range Strengths {
		if strength == s {
			return nil
		}
	}
	return models.NewValidationError("strength",
		"Strength must be one of: '"+strings.Join(Strengths, "', '")+"'")
}

// NewHeroPower returns an unsaved hero power linking heroID and powerID.
// The references are checked by the repository when the row is written.
func NewHeroPower(heroID, powerID uint, strength string) (*HeroPower, error) {
	hp := &HeroPower{HeroID: heroID, PowerID: powerID}
	if err := hp.SetStrength(strength); err != nil {
		return nil, err
	}
	return hp, nil
}

// SetStrength assigns strength after validating it. On error the current
// value is kept.
func (hp *HeroPower) SetStrength(strength string) error {
	if err := ValidateStrength(strength); err != nil {
		return err
	}
	hp.Strength = strength
	return nil
}

func (hp *HeroPower) BeforeSave(tx *gorm.DB) error {
	return ValidateStrength(hp.Strength)
}

// SerializeRules embeds hero and power without their hero_powers collections.
func (hp *HeroPower) SerializeRules() []string {
	return []string{"-hero.hero_powers", "-power.hero_powers"}
}

func (hp *HeroPower) SerializeFields() []serializer.Field {
	return []serializer.Field{
		{Name: "id", Value: hp.ID},
		{Name: "strength", Value: hp.Strength},
		{Name: "hero_id", Value: hp.HeroID},
		{Name: "power_id", Value: hp.PowerID},
		{Name: "hero", Value: hp.Hero},
		{Name: "power", Value: hp.Power},
	}
}

func (hp *HeroPower) ToDict(rules ...string) map[string]any {
	return serializer.ToDict(hp, rules...)
}

func (hp *HeroPower) String() string {
	return fmt.Sprintf("<HeroPower %d>", hp.ID)
}

// Models lists the catalog tables in dependency order, for migrations.
func Models() []any {
	return []any{&Hero{}, &Power{}, &HeroPower{}}
}
