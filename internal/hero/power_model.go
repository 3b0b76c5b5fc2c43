// hero/power_model.go
package hero

import (
	"fmt"
	"unicode/utf8"

	"github.com/DhavalSuthar-24/superheroes/internal/models"
	"github.com/DhavalSuthar-24/superheroes/pkg/serializer"
	"gorm.io/gorm"
)

// MinDescriptionLength is the shortest non-empty power description accepted.
const MinDescriptionLength = 20

// Power is a named ability. Powers are referenced by HeroPower rows but do
// not own them, so deleting a referenced power is refused by the database.
type Power struct {
	models.BaseModel
	Name        string      `json:"name"`
	Description string      `json:"description"`
	HeroPowers  []HeroPower `json:"-" gorm:"foreignKey:PowerID"`
}

func (Power) TableName() string {
	return "powers"
}

// ValidateDescription accepts an empty description or one of at least
// MinDescriptionLength characters.
func ValidateDescription(description string) error {
	if description != "" && utf8.RuneCountInString(description) < MinDescriptionLength {
		return models.NewValidationError("description",
			fmt.Sprintf("Description must be at least %d characters long", MinDescriptionLength))
	}
	return nil
}

// NewPower returns an unsaved power, or a ValidationError for a short description.
func NewPower(name, description string) (*Power, error) {
	p := &Power{Name: name}
	if err := p.SetDescription(description); err != nil {
		return nil, err
	}
	return p, nil
}

// SetDescription assigns description after validating it. On error the
// current value is kept.
func (p *Power) SetDescription(description string) error {
	if err := ValidateDescription(description); err != nil {
		return err
	}
	p.Description = description
	return nil
}

// BeforeSave rejects rows whose description was assigned directly.
func (p *Power) BeforeSave(tx *gorm.DB) error {
	return ValidateDescription(p.Description)
}

// SerializeRules drops hero_powers entirely.
func (p *Power) SerializeRules() []string {
	return []string{"-hero_powers"}
}

func (p *Power) SerializeFields() []serializer.Field {
	heroPowers := make([]serializer.Serializable, 0, len(p.HeroPowers))
	for i := range p.HeroPowers {
		heroPowers = append(heroPowers, &p.HeroPowers[i])
	}
	return []serializer.Field{
		{Name: "id", Value: p.ID},
		{Name: "name", Value: p.Name},
		{Name: "description", Value: p.Description},
		{Name: "hero_powers", Value: heroPowers},
	}
}

func (p *Power) ToDict(rules ...string) map[string]any {
	return serializer.ToDict(p, rules...)
}

func (p *Power) String() string {
	return fmt.Sprintf("<Power %d>", p.ID)
}
