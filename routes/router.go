package routes

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/superheroes/config"
	_ "github.com/DhavalSuthar-24/superheroes/docs"
	"github.com/DhavalSuthar-24/superheroes/internal/database"
	"github.com/DhavalSuthar-24/superheroes/internal/hero"
	mw "github.com/DhavalSuthar-24/superheroes/internal/middleware"
	"github.com/DhavalSuthar-24/superheroes/pkg/responses"
)

func SetupRoutes(db *gorm.DB, cfg *config.Config, logger *zap.Logger) (*gin.Engine, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(mw.RequestLogger(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.App.FrontendURL)))

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		if err := database.Ping(db); err != nil {
			logger.Error("health check failed", zap.Error(err))
			responses.SendError(c, http.StatusServiceUnavailable, "Database unavailable", err.Error())
			return
		}
		responses.SendSuccess(c, http.StatusOK, "OK", gin.H{"database": "up"})
	})

	if err := hero.RegisterHeroRoutes(api, db, cfg, logger); err != nil {
		return nil, err
	}
	return r, nil
}

func corsConfig(frontendURL string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	if frontendURL == "" || frontendURL == "*" {
		c.AllowAllOrigins = true
		return c
	}
	for _, origin := range strings.Split(frontendURL, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			c.AllowOrigins = append(c.AllowOrigins, origin)
		}
	}
	return c
}
