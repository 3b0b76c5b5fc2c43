// hero/hero_model.go
package hero

import (
	"fmt"

	"github.com/DhavalSuthar-24/superheroes/internal/models"
	"github.com/DhavalSuthar-24/superheroes/pkg/serializer"
)

// Hero represents a superhero identity. A hero owns its HeroPower rows:
// deleting the hero deletes them.
type Hero struct {
	models.BaseModel
	Name       string      `json:"name"`
	SuperName  string      `json:"super_name"`
	HeroPowers []HeroPower `json:"hero_powers" gorm:"foreignKey:HeroID;constraint:OnDelete:CASCADE"`
}

func (Hero) TableName() string {
	return "heroes"
}

// NewHero returns an unsaved hero.
func NewHero(name, superName string) *Hero {
	return &Hero{Name: name, SuperName: superName}
}

// SerializeRules keeps the embedded hero powers from pointing back at the hero.
func (h *Hero) SerializeRules() []string {
	return []string{"-hero_powers.hero"}
}

func (h *Hero) SerializeFields() []serializer.Field {
	heroPowers := make([]serializer.Serializable, 0, len(h.HeroPowers))
	for i := range h.HeroPowers {
		heroPowers = append(heroPowers, &h.HeroPowers[i])
	}
	return []serializer.Field{
		{Name: "id", Value: h.ID},
		{Name: "name", Value: h.Name},
		{Name: "super_name", Value: h.SuperName},
		{Name: "hero_powers", Value: heroPowers},
	}
}

// ToDict serializes the hero with its powers; extra rules narrow the output.
func (h *Hero) ToDict(rules ...string) map[string]any {
	return serializer.ToDict(h, rules...)
}

func (h *Hero) String() string {
	return fmt.Sprintf("<Hero %d>", h.ID)
}
