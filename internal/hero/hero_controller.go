package hero

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/DhavalSuthar-24/superheroes/internal/models"
	"github.com/DhavalSuthar-24/superheroes/pkg/responses"
	"github.com/DhavalSuthar-24/superheroes/pkg/serializer"
	"github.com/DhavalSuthar-24/superheroes/pkg/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HeroController handles API requests for heroes, powers and hero powers.
type HeroController struct {
	repo   HeroRepository
	logger *zap.Logger
}

// NewHeroController creates a new HeroController.
func NewHeroController(repo HeroRepository, logger *zap.Logger) *HeroController {
	return &HeroController{
		repo:   repo,
		logger: logger,
	}
}

// --- DTOs (Data Transfer Objects) for requests ---

type CreateHeroRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	SuperName string `json:"super_name" binding:"required,max=100"`
}

type UpdateHeroRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	SuperName *string `json:"super_name" binding:"omitempty,min=1,max=100"`
}

// --- Hero Handlers ---

// GetAllHeroes godoc
// @Summary List heroes
// @Description Paginated hero summaries (id, name, super_name)
// @Tags Heroes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Param search query string false "Search term for name or super name"
// @Success 200 {object} responses.PaginatedResponse
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /heroes [get]
func (hc *HeroController) GetAllHeroes(c *gin.Context) {
	page, pageSize := pageParams(c)

	heroes, total, err := hc.repo.GetAllHeroes(c.Request.Context(), page, pageSize, c.Query("search"))
	if err != nil {
		hc.handleError(c, err, "Hero", "retrieve heroes")
		return
	}

	responses.SendPaginated(c, http.StatusOK, "Heroes retrieved successfully", serializer.ToDicts(heroes, "-hero_powers"), total, page, pageSize)
}

// GetHeroByID godoc
// @Summary Get a hero by ID
// @Description Hero with its hero powers, each carrying its power
// @Tags Heroes
// @Produce json
// @Param id path int true "Hero ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Invalid hero ID"
// @Failure 404 {object} responses.ErrorResponse "Hero not found"
// @Router /heroes/{id} [get]
func (hc *HeroController) GetHeroByID(c *gin.Context) {
	id, ok := parseID(c, "hero")
	if !ok {
		return
	}

	hero, err := hc.repo.GetHeroByID(c.Request.Context(), id)
	if err != nil {
		hc.handleError(c, err, "Hero", "retrieve hero")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Hero retrieved successfully", hero.ToDict())
}

// CreateHero godoc
// @Summary Create a hero
// @Tags Heroes
// @Accept json
// @Produce json
// @Param hero body CreateHeroRequest true "Hero creation request"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 401 {object} responses.ErrorResponse "Missing or invalid token"
// @Router /heroes [post]
// @Security BearerAuth
func (hc *HeroController) CreateHero(c *gin.Context) {
	var req CreateHeroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	hero := NewHero(req.Name, req.SuperName)
	if err := hc.repo.CreateHero(c.Request.Context(), hero); err != nil {
		hc.handleError(c, err, "Hero", "create hero")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Hero created successfully", hero.ToDict())
}

// UpdateHero godoc
// @Summary Update a hero
// @Tags Heroes
// @Accept json
// @Produce json
// @Param id path int true "Hero ID"
// @Param hero body UpdateHeroRequest true "Fields to change"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 404 {object} responses.ErrorResponse "Hero not found"
// @Router /heroes/{id} [patch]
// @Security BearerAuth
func (hc *HeroController) UpdateHero(c *gin.Context) {
	id, ok := parseID(c, "hero")
	if !ok {
		return
	}

	var req UpdateHeroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	ctx := c.Request.Context()
	hero, err := hc.repo.GetHeroByID(ctx, id)
	if err != nil {
		hc.handleError(c, err, "Hero", "retrieve hero")
		return
	}
	if req.Name != nil {
		hero.Name = *req.Name
	}
	if req.SuperName != nil {
		hero.SuperName = *req.SuperName
	}

	if err := hc.repo.UpdateHero(ctx, hero); err != nil {
		hc.handleError(c, err, "Hero", "update hero")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Hero updated successfully", hero.ToDict())
}

// DeleteHero godoc
// @Summary Delete a hero
// @Description Deletes the hero and all of its hero powers
// @Tags Heroes
// @Param id path int true "Hero ID"
// @Success 204
// @Failure 404 {object} responses.ErrorResponse "Hero not found"
// @Router /heroes/{id} [delete]
// @Security BearerAuth
func (hc *HeroController) DeleteHero(c *gin.Context) {
	id, ok := parseID(c, "hero")
	if !ok {
		return
	}

	if err := hc.repo.DeleteHero(c.Request.Context(), id); err != nil {
		hc.handleError(c, err, "Hero", "delete hero")
		return
	}
	responses.SendNoContent(c)
}

// --- helpers ---

// handleError maps repository and model errors onto the response envelope.
func (hc *HeroController) handleError(c *gin.Context, err error, resource, action string) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		responses.SendError(c, http.StatusBadRequest, "Validation failed", map[string]string{ve.Field: ve.Message})
	case errors.Is(err, models.ErrNotFound):
		responses.NotFound(c, resource)
	case errors.Is(err, models.ErrMissingReference):
		responses.SendError(c, http.StatusNotFound, "Referenced record not found", map[string]string{"error": err.Error()})
	case models.IsIntegrityError(err):
		hc.logger.Warn("constraint violation", zap.String("action", action), zap.Error(err))
		responses.SendError(c, http.StatusConflict, "Failed to "+action+": conflicting records",
			map[string]string{"error": resource + " conflicts with related records"})
	default:
		_ = c.Error(err)
		hc.logger.Error("request failed", zap.String("action", action), zap.Error(err))
		responses.InternalServerError(c, "Failed to "+action)
	}
}

// parseID reads the :id path parameter, answering 400 when it is malformed.
func parseID(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+resource+" ID format")
		return 0, false
	}
	return uint(id), true
}

// pageParams reads page and pageSize, normalized the way the repository
// applies them.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	return normalizePage(page, pageSize)
}

func queryUint(c *gin.Context, key string) (uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+key)
		return 0, false
	}
	return uint(v), true
}
