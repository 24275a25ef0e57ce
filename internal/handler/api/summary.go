package api

import (
	"net/http"
	"time"

	resdto "groupbuy-api/internal/handler/dto/response"
	"groupbuy-api/internal/handler/middleware"
	"groupbuy-api/internal/pkg/clock"
	"groupbuy-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	summaryQueries queries.SummaryQueries
	clock          clock.Clock
}

func NewSummaryHandler(summaryQueries queries.SummaryQueries, clk clock.Clock) *SummaryHandler {
	return &SummaryHandler{summaryQueries: summaryQueries, clock: clk}
}

// @Summary Get daily summaries
// @Description Get the member's commitment summaries for one day, one per distributor
// @Tags summaries
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD), defaults to today UTC"
// @Success 200 {object} resdto.DailySummariesResponse
// @Failure 400 {object} map[string]string
// @Router /summaries/daily [get]
func (h *SummaryHandler) GetDaily(c *gin.Context) {
	actor, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	day := h.clock.Now().UTC().Truncate(24 * time.Hour)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date, expected YYYY-MM-DD",
			})
			return
		}
		day = parsed
	}

	summaries, err := h.summaryQueries.GetDaily(c.Request.Context(), actor.EffectiveUserID(), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.DailySummariesResponse{Summaries: summaries})
}
