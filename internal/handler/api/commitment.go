package api

import (
	"errors"
	"net/http"

	reqdto "groupbuy-api/internal/handler/dto/request"
	resdto "groupbuy-api/internal/handler/dto/response"
	"groupbuy-api/internal/handler/middleware"
	"groupbuy-api/internal/usecase/commands"
	"groupbuy-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommitmentHandler struct {
	commitmentCommands commands.CommitmentCommands
	commitmentQueries  queries.CommitmentQueries
}

func NewCommitmentHandler(commitmentCommands commands.CommitmentCommands, commitmentQueries queries.CommitmentQueries) *CommitmentHandler {
	return &CommitmentHandler{
		commitmentCommands: commitmentCommands,
		commitmentQueries:  commitmentQueries,
	}
}

// @Summary Place commitment
// @Description Commit to a deal; a repeat buy by the same member overwrites the open commitment
// @Tags commitments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Param request body reqdto.PlaceCommitmentRequest true "Size commitments"
// @Success 200 {object} resdto.PlaceCommitmentResponse
// @Success 201 {object} resdto.PlaceCommitmentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /deals/{id}/commitments [post]
func (h *CommitmentHandler) PlaceCommitment(c *gin.Context) {
	actor, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	dealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid deal ID",
		})
		return
	}

	var req reqdto.PlaceCommitmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.commitmentCommands.Place(c.Request.Context(), actor, dealID, req.ToLines())
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	status := http.StatusOK
	message := "Commitment updated"
	if result.Created {
		status = http.StatusCreated
		message = "Commitment placed"
	}
	c.JSON(status, resdto.PlaceCommitmentResponse{
		Message:     message,
		Commitment:  result.Commitment,
		UpdatedDeal: result.Deal,
	})
}

// @Summary Update commitment status
// @Description Approve, decline, or cancel a pending commitment, optionally modifying its sizes
// @Tags commitments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateStatusRequest true "Status update"
// @Success 200 {object} queries.CommitmentView
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /commitments/status [put]
func (h *CommitmentHandler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.commitmentCommands.UpdateStatus(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Modify commitment sizes
// @Description Replace the size lines of the member's own pending commitment
// @Tags commitments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Commitment ID"
// @Param request body reqdto.ModifySizesRequest true "New size commitments"
// @Success 200 {object} resdto.PlaceCommitmentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /commitments/{id}/sizes [put]
func (h *CommitmentHandler) ModifySizes(c *gin.Context) {
	actor, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	commitmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid commitment ID",
		})
		return
	}

	var req reqdto.ModifySizesRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.commitmentCommands.ModifySizes(c.Request.Context(), actor, commitmentID, req.ToLines())
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.PlaceCommitmentResponse{
		Message:     "Commitment updated",
		Commitment:  result.Commitment,
		UpdatedDeal: result.Deal,
	})
}

// @Summary Cancel commitment
// @Description Cancel the member's own pending commitment
// @Tags commitments
// @Security BearerAuth
// @Param id path string true "Commitment ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /commitments/{id} [delete]
func (h *CommitmentHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	commitmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid commitment ID",
		})
		return
	}

	if err := h.commitmentCommands.Cancel(c.Request.Context(), actor, commitmentID); err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get commitment
// @Description Get one commitment; members see their own, distributors their deals'
// @Tags commitments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Commitment ID"
// @Success 200 {object} queries.CommitmentView
// @Failure 404 {object} map[string]string
// @Router /commitments/{id} [get]
func (h *CommitmentHandler) GetCommitment(c *gin.Context) {
	actor, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	commitmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid commitment ID",
		})
		return
	}

	view, err := h.commitmentQueries.GetByID(c.Request.Context(), actor, commitmentID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrCommitmentNotFound), errors.Is(err, queries.ErrNotOwner):
			// Not-owned commitments are hidden, not forbidden.
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Commitment not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List commitments
// @Description List the authenticated member's commitments
// @Tags commitments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CommitmentListResponse
// @Router /commitments [get]
func (h *CommitmentHandler) ListCommitments(c *gin.Context) {
	actor, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.commitmentQueries.ListByUser(c.Request.Context(), actor.EffectiveUserID())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.CommitmentListResponse{Commitments: items})
}

func (h *CommitmentHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrDealNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Deal not found",
		})
	case errors.Is(err, commands.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "User not found",
		})
	case errors.Is(err, commands.ErrDistributorNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Distributor not found",
		})
	case errors.Is(err, commands.ErrCommitmentNotFound), errors.Is(err, commands.ErrNotOwner):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Commitment not found",
		})
	case errors.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Operation not permitted",
		})
	case errors.Is(err, commands.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Validation failed",
		})
	case errors.Is(err, commands.ErrNotPending):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Commitment is no longer pending",
		})
	case errors.Is(err, commands.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Status transition not allowed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
