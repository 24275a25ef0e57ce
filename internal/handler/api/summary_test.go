//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"groupbuy-api/internal/domain/user"
	"groupbuy-api/internal/handler/api"
	resdto "groupbuy-api/internal/handler/dto/response"
	"groupbuy-api/internal/pkg/clock"
	"groupbuy-api/internal/usecase/queries"
	"groupbuy-api/tests/common/httptest"
	queriesmock "groupbuy-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SummaryHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockSummaryQueries
	clock       *clock.MockClock
	handler     *api.SummaryHandler
	userID      uuid.UUID
}

func (s *SummaryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockSummaryQueries(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC))
	s.handler = api.NewSummaryHandler(s.mockQueries, s.clock)
	s.userID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleMember)
		c.Next()
	}

	s.router.GET("/summaries/daily", authMiddleware, s.handler.GetDaily)
}

func (s *SummaryHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSummaryHandlerSuite(t *testing.T) {
	suite.Run(t, new(SummaryHandlerTestSuite))
}

func (s *SummaryHandlerTestSuite) TestGetDaily() {
	s.Run("success: defaults to the injected clock's day in UTC", func() {
		today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		view := &queries.DailySummaryView{ID: uuid.New(), SummaryDate: today, UserID: s.userID}
		s.mockQueries.EXPECT().GetDaily(gomock.Any(), s.userID, today).
			Return([]*queries.DailySummaryView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/summaries/daily", nil, "bearer-token")

		var body resdto.DailySummariesResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Summaries, 1)
		s.Equal(view.ID, body.Summaries[0].ID)
	})

	s.Run("success: an explicit date overrides the clock", func() {
		day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		s.mockQueries.EXPECT().GetDaily(gomock.Any(), s.userID, day).
			Return([]*queries.DailySummaryView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/summaries/daily?date=2026-03-01", nil, "bearer-token")

		var body resdto.DailySummariesResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Summaries)
	})

	s.Run("validation error: malformed date returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/summaries/daily?date=March-1st", nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date")
	})

	s.Run("unauthenticated: returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/summaries/daily", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
