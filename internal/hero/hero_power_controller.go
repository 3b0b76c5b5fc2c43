package hero

import (
	"net/http"

	"github.com/DhavalSuthar-24/superheroes/pkg/responses"
	"github.com/DhavalSuthar-24/superheroes/pkg/serializer"
	"github.com/DhavalSuthar-24/superheroes/pkg/validator"
	"github.com/gin-gonic/gin"
)

type CreateHeroPowerRequest struct {
	Strength string `json:"strength" binding:"required,strength"`
	HeroID   uint   `json:"hero_id" binding:"required"`
	PowerID  uint   `json:"power_id" binding:"required"`
}

type UpdateHeroPowerRequest struct {
	Strength *string `json:"strength"`
	HeroID   *uint   `json:"hero_id" binding:"omitempty,min=1"`
	PowerID  *uint   `json:"power_id" binding:"omitempty,min=1"`
}

// GetAllHeroPowers godoc
// @Summary List hero powers
// @Tags HeroPowers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Param hero_id query int false "Only hero powers of this hero"
// @Param power_id query int false "Only hero powers of this power"
// @Success 200 {object} responses.PaginatedResponse
// @Router /hero_powers [get]
func (hc *HeroController) GetAllHeroPowers(c *gin.Context) {
	page, pageSize := pageParams(c)
	heroID, ok := queryUint(c, "hero_id")
	if !ok {
		return
	}
	powerID, ok := queryUint(c, "power_id")
	if !ok {
		return
	}

	heroPowers, total, err := hc.repo.GetAllHeroPowers(c.Request.Context(), page, pageSize, heroID, powerID)
	if err != nil {
		hc.handleError(c, err, "Hero power", "retrieve hero powers")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Hero powers retrieved successfully", serializer.ToDicts(heroPowers), total, page, pageSize)
}

// GetHeroPowerByID godoc
// @Summary Get a hero power by ID
// @Description Hero power with its hero and power
// @Tags HeroPowers
// @Produce json
// @Param id path int true "HeroPower ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Hero power not found"
// @Router /hero_powers/{id} [get]
func (hc *HeroController) GetHeroPowerByID(c *gin.Context) {
	id, ok := parseID(c, "hero power")
	if !ok {
		return
	}

	heroPower, err := hc.repo.GetHeroPowerByID(c.Request.Context(), id)
	if err != nil {
		hc.handleError(c, err, "Hero power", "retrieve hero power")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Hero power retrieved successfully", heroPower.ToDict())
}

// CreateHeroPower godoc
// @Summary Give a hero a power
// @Description Strength must be one of Strong, Weak, Average
// @Tags HeroPowers
// @Accept json
// @Produce json
// @Param heroPower body CreateHeroPowerRequest true "Hero power creation request"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 404 {object} responses.ErrorResponse "Hero or power not found"
// @Router /hero_powers [post]
// @Security BearerAuth
func (hc *HeroController) CreateHeroPower(c *gin.Context) {
	var req CreateHeroPowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	heroPower, err := NewHeroPower(req.HeroID, req.PowerID, req.Strength)
	if err != nil {
		hc.handleError(c, err, "Hero power", "create hero power")
		return
	}
	if err := hc.repo.CreateHeroPower(c.Request.Context(), heroPower); err != nil {
		hc.handleError(c, err, "Hero power", "create hero power")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Hero power created successfully", heroPower.ToDict())
}

// UpdateHeroPower godoc
// @Summary Update a hero power
// @Tags HeroPowers
// @Accept json
// @Produce json
// @Param id path int true "HeroPower ID"
// @Param heroPower body UpdateHeroPowerRequest true "Fields to change"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 404 {object} responses.ErrorResponse "Hero power, hero or power not found"
// @Router /hero_powers/{id} [patch]
// @Security BearerAuth
func (hc *HeroController) UpdateHeroPower(c *gin.Context) {
	id, ok := parseID(c, "hero power")
	if !ok {
		return
	}

	var req UpdateHeroPowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	ctx := c.Request.Context()
	heroPower, err := hc.repo.GetHeroPowerByID(ctx, id)
	if err != nil {
		hc.handleError(c, err, "Hero power", "retrieve hero power")
		return
	}
	if req.Strength != nil {
		if err := heroPower.SetStrength(*req.Strength); err != nil {
			hc.handleError(c, err, "Hero power", "update hero power")
			return
		}
	}
	if req.HeroID != nil {
		heroPower.HeroID = *req.HeroID
	}
	if req.PowerID != nil {
		heroPower.PowerID = *req.PowerID
	}

	if err := hc.repo.UpdateHeroPower(ctx, heroPower); err != nil {
		hc.handleError(c, err, "Hero power", "update hero power")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Hero power updated successfully", heroPower.ToDict())
}

// DeleteHeroPower godoc
// @Summary Delete a hero power
// @Tags HeroPowers
// @Param id path int true "HeroPower ID"
// @Success 204
// @Failure 404 {object} responses.ErrorResponse "Hero power not found"
// @Router /hero_powers/{id} [delete]
// @Security BearerAuth
func (hc *HeroController) DeleteHeroPower(c *gin.Context) {
	id, ok := parseID(c, "hero power")
	if !ok {
		return
	}

	if err := hc.repo.DeleteHeroPower(c.Request.Context(), id); err != nil {
		hc.handleError(c, err, "Hero power", "delete hero power")
		return
	}
	responses.SendNoContent(c)
}
