package hero

import (
	"context"
	"errors"
	"strings"

	"github.com/DhavalSuthar-24/superheroes/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type HeroRepository interface {
	// Hero methods
	CreateHero(ctx context.Context, hero *Hero) error
	GetHeroByID(ctx context.Context, id uint) (*Hero, error)
	GetAllHeroes(ctx context.Context, page, pageSize int, searchTerm string) ([]Hero, int64, error)
	UpdateHero(ctx context.Context, hero *Hero) error
	DeleteHero(ctx context.Context, id uint) error

	// Power methods
	CreatePower(ctx context.Context, power *Power) error
	GetPowerByID(ctx context.Context, id uint) (*Power, error)
	GetAllPowers(ctx context.Context, page, pageSize int, searchTerm string) ([]Power, int64, error)
	UpdatePower(ctx context.Context, power *Power) error
	DeletePower(ctx context.Context, id uint) error

	// HeroPower methods
	CreateHeroPower(ctx context.Context, heroPower *HeroPower) error
	GetHeroPowerByID(ctx context.Context, id uint) (*HeroPower, error)
	GetAllHeroPowers(ctx context.Context, page, pageSize int, heroID, powerID uint) ([]HeroPower, int64, error)
	UpdateHeroPower(ctx context.Context, heroPower *HeroPower) error
	DeleteHeroPower(ctx context.Context, id uint) error
}

type heroRepository struct {
	db *gorm.DB
}

// NewHeroRepository creates a new instance of HeroRepository.
func NewHeroRepository(db *gorm.DB) HeroRepository {
	return &heroRepository{db: db}
}

// --- Hero Methods ---

func (r *heroRepository) CreateHero(ctx context.Context, hero *Hero) error {
	return models.WrapIntegrity("create hero", r.db.WithContext(ctx).Create(hero).Error)
}

// GetHeroByID loads the hero with its hero powers and their powers.
func (r *heroRepository) GetHeroByID(ctx context.Context, id uint) (*Hero, error) {
	var hero Hero
	err := r.db.WithContext(ctx).
		Preload("HeroPowers", func(db *gorm.DB) *gorm.DB { return db.Order("hero_powers.id ASC") }).
		Preload("HeroPowers.Power").
		First(&hero, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &hero, nil
}

func (r *heroRepository) GetAllHeroes(ctx context.Context, page, pageSize int, searchTerm string) ([]Hero, int64, error) {
	var heroes []Hero
	var total int64

	query := r.db.WithContext(ctx).Model(&Hero{})
	if searchTerm != "" {
		like := "%" + strings.ToLower(searchTerm) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(super_name) LIKE ?", like, like)
	}

	query = query.Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Scopes(paginate(page, pageSize)).Order("id ASC").Find(&heroes).Error; err != nil {
		return nil, 0, err
	}
	return heroes, total, nil
}

func (r *heroRepository) UpdateHero(ctx context.Context, hero *Hero) error {
	res := r.db.WithContext(ctx).Model(hero).Select("Name", "SuperName").Updates(hero)
	if res.Error != nil {
		return models.WrapIntegrity("update hero", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteHero removes the hero together with its hero powers.
func (r *heroRepository) DeleteHero(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var hero Hero
		if err := tx.Select("id").First(&hero, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Select(clause.Associations).Delete(&hero).Error; err != nil {
			return models.WrapIntegrity("delete hero", err)
		}
		return nil
	})
}

// --- Power Methods ---

func (r *heroRepository) CreatePower(ctx context.Context, power *Power) error {
	return models.WrapIntegrity("create power", r.db.WithContext(ctx).Create(power).Error)
}

func (r *heroRepository) GetPowerByID(ctx context.Context, id uint) (*Power, error) {
	var power Power
	if err := r.db.WithContext(ctx).First(&power, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &power, nil
}

func (r *heroRepository) GetAllPowers(ctx context.Context, page, pageSize int, searchTerm string) ([]Power, int64, error) {
	var powers []Power
	var total int64

	query := r.db.WithContext(ctx).Model(&Power{})
	if searchTerm != "" {
		like := "%" + strings.ToLower(searchTerm) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	query = query.Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Scopes(paginate(page, pageSize)).Order("id ASC").Find(&powers).Error; err != nil {
		return nil, 0, err
	}
	return powers, total, nil
}

func (r *heroRepository) UpdatePower(ctx context.Context, power *Power) error {
	res := r.db.WithContext(ctx).Model(power).Select("Name", "Description").Updates(power)
	if res.Error != nil {
		return models.WrapIntegrity("update power", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeletePower does not cascade: while hero powers still reference the power
// the foreign key refuses the delete and an IntegrityError is returned.
func (r *heroRepository) DeletePower(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Power{}, id)
	if res.Error != nil {
		return models.WrapIntegrity("delete power", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// --- HeroPower Methods ---

// CreateHeroPower inserts the row once both references are known to exist,
// then reloads it with Hero and Power attached.
func (r *heroRepository) CreateHeroPower(ctx context.Context, heroPower *HeroPower) error {
	if err := ValidateStrength(heroPower.Strength); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireReferences(tx, "create hero power", heroPower); err != nil {
			return err
		}
		heroPower.Hero, heroPower.Power = nil, nil
		if err := tx.Omit(clause.Associations).Create(heroPower).Error; err != nil {
			return models.WrapIntegrity("create hero power", err)
		}
		return loadHeroPower(tx, heroPower, heroPower.ID)
	})
}

func (r *heroRepository) GetHeroPowerByID(ctx context.Context, id uint) (*HeroPower, error) {
	var heroPower HeroPower
	if err := loadHeroPower(r.db.WithContext(ctx), &heroPower, id); err != nil {
		return nil, err
	}
	return &heroPower, nil
}

func (r *heroRepository) GetAllHeroPowers(ctx context.Context, page, pageSize int, heroID, powerID uint) ([]HeroPower, int64, error) {
	var heroPowers []HeroPower
	var total int64

	query := r.db.WithContext(ctx).Model(&HeroPower{})
	if heroID != 0 {
		query = query.Where("hero_id = ?", heroID)
	}
	if powerID != 0 {
		query = query.Where("power_id = ?", powerID)
	}

	query = query.Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Hero").Preload("Power").
		Scopes(paginate(page, pageSize)).Order("id ASC").Find(&heroPowers).Error
	if err != nil {
		return nil, 0, err
	}
	return heroPowers, total, nil
}

func (r *heroRepository) UpdateHeroPower(ctx context.Context, heroPower *HeroPower) error {
	if err := ValidateStrength(heroPower.Strength); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireReferences(tx, "update hero power", heroPower); err != nil {
			return err
		}
		heroPower.Hero, heroPower.Power = nil, nil
		res := tx.Model(heroPower).Select("Strength", "HeroID", "PowerID").Updates(heroPower)
		if res.Error != nil {
			return models.WrapIntegrity("update hero power", res.Error)
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return loadHeroPower(tx, heroPower, heroPower.ID)
	})
}

func (r *heroRepository) DeleteHeroPower(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&HeroPower{}, id)
	if res.Error != nil {
		return models.WrapIntegrity("delete hero power", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// --- helpers ---

func loadHeroPower(db *gorm.DB, dest *HeroPower, id uint) error {
	*dest = HeroPower{}
	if err := db.Preload("Hero").Preload("Power").First(dest, id).Error; err != nil {
		return notFound(err)
	}
	return nil
}

// requireReferences fails with an IntegrityError when the hero or power the
// row points at is absent.
func requireReferences(tx *gorm.DB, op string, heroPower *HeroPower) error {
	if heroPower.HeroID == 0 {
		return models.MissingReference(op, "hero", 0)
	}
	if heroPower.PowerID == 0 {
		return models.MissingReference(op, "power", 0)
	}

	var count int64
	if err := tx.Model(&Hero{}).Where("id = ?", heroPower.HeroID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return models.MissingReference(op, "hero", heroPower.HeroID)
	}
	if err := tx.Model(&Power{}).Where("id = ?", heroPower.PowerID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return models.MissingReference(op, "power", heroPower.PowerID)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}

func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	page, pageSize = normalizePage(page, pageSize)
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
