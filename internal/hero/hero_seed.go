package hero

import (
	"context"
	"fmt"
	"math/rand"

	"gorm.io/gorm"
)

var seedHeroes = []Hero{
	{Name: "Kamala Khan", SuperName: "Ms. Marvel"},
	{Name: "Doreen Green", SuperName: "Squirrel Girl"},
	{Name: "Gwen Stacy", SuperName: "Spider-Gwen"},
	{Name: "Janet Van Dyne", SuperName: "The Wasp"},
	{Name: "Wanda Maximoff", SuperName: "Scarlet Witch"},
	{Name: "Carol Danvers", SuperName: "Captain Marvel"},
	{Name: "Jean Grey", SuperName: "Dark Phoenix"},
	{Name: "Ororo Munroe", SuperName: "Storm"},
	{Name: "Kitty Pryde", SuperName: "Shadowcat"},
	{Name: "Elektra Natchios", SuperName: "Elektra"},
}

var seedPowers = []Power{
	{Name: "super strength", Description: "gives the wielder super-human strengths"},
	{Name: "flight", Description: "gives the wielder the ability to fly through the skies at supersonic speed"},
	{Name: "super human senses", Description: "allows the wielder to use her senses at a super-human level"},
	{Name: "elasticity", Description: "can stretch the human body to extreme lengths"},
}

// SeedSummary reports how many rows Seed wrote.
type SeedSummary struct {
	Heroes     int
	Powers     int
	HeroPowers int
}

// Seed replaces the catalog contents with the demo heroes and powers and
// gives every hero one power of random strength.
func Seed(ctx context.Context, db *gorm.DB, rnd *rand.Rand) (SeedSummary, error) {
	var summary SeedSummary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&HeroPower{}, &Hero{}, &Power{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}

		heroes := append([]Hero(nil), seedHeroes...)
		if err := tx.Create(&heroes).Error; err != nil {
			return fmt.Errorf("seed heroes: %w", err)
		}
		powers := append([]Power(nil), seedPowers...)
		if err := tx.Create(&powers).Error; err != nil {
			return fmt.Errorf("seed powers: %w", err)
		}

		heroPowers := make([]HeroPower, 0, len(heroes))
		for _, h := range heroes {
			p := powers[rnd.Intn(len(powers))]
			hp, err := NewHeroPower(h.ID, p.ID, Strengths[rnd.Intn(len(Strengths))])
			if err != nil {
				return err
			}
			heroPowers = append(heroPowers, *hp)
		}
		if err := tx.Create(&heroPowers).Error; err != nil {
			return fmt.Errorf("seed hero powers: %w", err)
		}

		summary = SeedSummary{Heroes: len(heroes), Powers: len(powers), HeroPowers: len(heroPowers)}
		return nil
	})
	return summary, err
}
