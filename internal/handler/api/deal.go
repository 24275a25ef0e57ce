package api

import (
	"errors"
	"net/http"

	reqdto "groupbuy-api/internal/handler/dto/request"
	"groupbuy-api/internal/handler/middleware"
	"groupbuy-api/internal/usecase/commands"
	"groupbuy-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DealHandler struct {
	dealCommands commands.DealCommands
	dealQueries  queries.DealQueries
}

func NewDealHandler(dealCommands commands.DealCommands, dealQueries queries.DealQueries) *DealHandler {
	return &DealHandler{
		dealCommands: dealCommands,
		dealQueries:  dealQueries,
	}
}

// @Summary Create deal
// @Description Create a new group-buying deal with sizes and discount tiers
// @Tags deals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateDealRequest true "Deal definition"
// @Success 201 {object} queries.DealView
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /deals [post]
func (h *DealHandler) CreateDeal(c *gin.Context) {
	actor, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.dealCommands.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only distributors can create deals",
			})
		case errors.Is(err, commands.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid deal definition",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary Get deal
// @Description Get a deal with its sizes and discount tiers
// @Tags deals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 200 {object} queries.DealView
// @Failure 404 {object} map[string]string
// @Router /deals/{id} [get]
func (h *DealHandler) GetDeal(c *gin.Context) {
	dealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid deal ID",
		})
		return
	}

	view, err := h.dealQueries.GetByID(c.Request.Context(), dealID)
	if err != nil {
		if errors.Is(err, queries.ErrDealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Deal not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}
