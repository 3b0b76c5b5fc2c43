package hero

import (
	"net/http"

	"github.com/DhavalSuthar-24/superheroes/pkg/responses"
	"github.com/DhavalSuthar-24/superheroes/pkg/serializer"
	"github.com/DhavalSuthar-24/superheroes/pkg/validator"
	"github.com/gin-gonic/gin"
)

type CreatePowerRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=5000"`
}

type UpdatePowerRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

// GetAllPowers godoc
// @Summary List powers
// @Tags Powers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Param search query string false "Search term for name or description"
// @Success 200 {object} responses.PaginatedResponse
// @Router /powers [get]
func (hc *HeroController) GetAllPowers(c *gin.Context) {
	page, pageSize := pageParams(c)

	powers, total, err := hc.repo.GetAllPowers(c.Request.Context(), page, pageSize, c.Query("search"))
	if err != nil {
		hc.handleError(c, err, "Power", "retrieve powers")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Powers retrieved successfully", serializer.ToDicts(powers), total, page, pageSize)
}

// GetPowerByID godoc
// @Summary Get a power by ID
// @Tags Powers
// @Produce json
// @Param id path int true "Power ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Power not found"
// @Router /powers/{id} [get]
func (hc *HeroController) GetPowerByID(c *gin.Context) {
	id, ok := parseID(c, "power")
	if !ok {
		return
	}

	power, err := hc.repo.GetPowerByID(c.Request.Context(), id)
	if err != nil {
		hc.handleError(c, err, "Power", "retrieve power")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Power retrieved successfully", power.ToDict())
}

// CreatePower godoc
// @Summary Create a power
// @Description A non-empty description must be at least 20 characters long
// @Tags Powers
// @Accept json
// @Produce json
// @Param power body CreatePowerRequest true "Power creation request"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Router /powers [post]
// @Security BearerAuth
func (hc *HeroController) CreatePower(c *gin.Context) {
	var req CreatePowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	power, err := NewPower(req.Name, req.Description)
	if err != nil {
		hc.handleError(c, err, "Power", "create power")
		return
	}
	if err := hc.repo.CreatePower(c.Request.Context(), power); err != nil {
		hc.handleError(c, err, "Power", "create power")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Power created successfully", power.ToDict())
}

// UpdatePower godoc
// @Summary Update a power
// @Tags Powers
// @Accept json
// @Produce json
// @Param id path int true "Power ID"
// @Param power body UpdatePowerRequest true "Fields to change"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 404 {object} responses.ErrorResponse "Power not found"
// @Router /powers/{id} [patch]
// @Security BearerAuth
func (hc *HeroController) UpdatePower(c *gin.Context) {
	id, ok := parseID(c, "power")
	if !ok {
		return
	}

	var req UpdatePowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	ctx := c.Request.Context()
	power, err := hc.repo.GetPowerByID(ctx, id)
	if err != nil {
		hc.handleError(c, err, "Power", "retrieve power")
		return
	}
	if req.Description != nil {
		if err := power.SetDescription(*req.Description); err != nil {
			hc.handleError(c, err, "Power", "update power")
			return
		}
	}
	if req.Name != nil {
		power.Name = *req.Name
	}

	if err := hc.repo.UpdatePower(ctx, power); err != nil {
		hc.handleError(c, err, "Power", "update power")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Power updated successfully", power.ToDict())
}

// DeletePower godoc
// @Summary Delete a power
// @Description Refused with 409 while hero powers still reference the power
// @Tags Powers
// @Param id path int true "Power ID"
// @Success 204
// @Failure 404 {object} responses.ErrorResponse "Power not found"
// @Failure 409 {object} responses.ErrorResponse "Power is still referenced"
// @Router /powers/{id} [delete]
// @Security BearerAuth
func (hc *HeroController) DeletePower(c *gin.Context) {
	id, ok := parseID(c, "power")
	if !ok {
		return
	}

	if err := hc.repo.DeletePower(c.Request.Context(), id); err != nil {
		hc.handleError(c, err, "Power", "delete power")
		return
	}
	responses.SendNoContent(c)
}
