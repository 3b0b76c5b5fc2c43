package hero

import (
	"github.com/DhavalSuthar-24/superheroes/config"
	mw "github.com/DhavalSuthar-24/superheroes/internal/middleware"
	"github.com/DhavalSuthar-24/superheroes/pkg/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func RegisterHeroRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, logger *zap.Logger) error {
	if err := validator.RegisterStringRule("strength", ValidateStrength); err != nil {
		return err
	}

	heroRepo := NewHeroRepository(db)
	heroController := NewHeroController(heroRepo, logger)

	// Public read routes
	router.GET("/heroes", heroController.GetAllHeroes)
	router.GET("/heroes/:id", heroController.GetHeroByID)
	router.GET("/powers", heroController.GetAllPowers)
	router.GET("/powers/:id", heroController.GetPowerByID)
	router.GET("/hero_powers", heroController.GetAllHeroPowers)
	router.GET("/hero_powers/:id", heroController.GetHeroPowerByID)

	// Write routes, token-protected when auth is enabled
	writes := router.Group("")
	if appConfig.Auth.Enabled {
		writes.Use(mw.AuthMiddleware(appConfig.JWT.Secret))
	}
	{
		writes.POST("/heroes", heroController.CreateHero)
		writes.PATCH("/heroes/:id", heroController.UpdateHero)
		writes.DELETE("/heroes/:id", heroController.DeleteHero)

		writes.POST("/powers", heroController.CreatePower)
		writes.PATCH("/powers/:id", heroController.UpdatePower)
		writes.DELETE("/powers/:id", heroController.DeletePower)

		writes.POST("/hero_powers", heroController.CreateHeroPower)
		writes.PATCH("/hero_powers/:id", heroController.UpdateHeroPower)
		writes.DELETE("/hero_powers/:id", heroController.DeleteHeroPower)
	}
	return nil
}
