//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"groupbuy-api/internal/domain/user"
	"groupbuy-api/internal/handler/api"
	resdto "groupbuy-api/internal/handler/dto/response"
	"groupbuy-api/internal/usecase/commands"
	"groupbuy-api/internal/usecase/queries"
	"groupbuy-api/tests/common/builder"
	"groupbuy-api/tests/common/httptest"
	"groupbuy-api/tests/common/testutil"
	commandsmock "groupbuy-api/tests/mock/commands"
	queriesmock "groupbuy-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CommitmentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCommitmentCommands
	mockQueries  *queriesmock.MockCommitmentQueries
	handler      *api.CommitmentHandler
	userID       uuid.UUID
}

func (s *CommitmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCommitmentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCommitmentQueries(s.mockCtrl)
	s.handler = api.NewCommitmentHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleMember)
		c.Next()
	}
	distributorMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleDistributor)
		c.Next()
	}

	// Setup routes
	s.router.POST("/deals/:id/commitments", authMiddleware, s.handler.PlaceCommitment)
	s.router.GET("/commitments", authMiddleware, s.handler.ListCommitments)
	s.router.PUT("/commitments/status", distributorMiddleware, s.handler.UpdateStatus)
	s.router.GET("/commitments/:id", authMiddleware, s.handler.GetCommitment)
	s.router.PUT("/commitments/:id/sizes", authMiddleware, s.handler.ModifySizes)
	s.router.DELETE("/commitments/:id", authMiddleware, s.handler.Cancel)
}

func (s *CommitmentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCommitmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(CommitmentHandlerTestSuite))
}

func placeRequestBody() map[string]any {
	return map[string]any{
		"size_commitments": []map[string]any{
			{"size": "1kg", "quantity": 5},
		},
	}
}

// ================================================================================
// TestPlaceCommitment
// ================================================================================

func (s *CommitmentHandlerTestSuite) TestPlaceCommitment() {
	dealID := uuid.New()
	url := "/deals/" + dealID.String() + "/commitments"

	view := builder.NewCommitmentBuilder().WithDeal(dealID).WithUser(s.userID).BuildView()
	dealView := &queries.DealView{ID: dealID, Name: "Bulk Coffee Beans", Status: "active"}

	s.Run("success: returns 201 Created for a first commitment", func() {
		s.mockCommands.EXPECT().Place(gomock.Any(), gomock.Any(), dealID, gomock.Any()).
			Return(&commands.PlaceResult{Commitment: view, Deal: dealView, Created: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeRequestBody(), "bearer-token")

		var body resdto.PlaceCommitmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("Commitment placed", body.Message)
		s.Equal(view.ID, body.Commitment.ID)
		s.Equal(dealID, body.UpdatedDeal.ID)
	})

	s.Run("success: returns 200 OK when a repeat buy overwrites", func() {
		s.mockCommands.EXPECT().Place(gomock.Any(), gomock.Any(), dealID, gomock.Any()).
			Return(&commands.PlaceResult{Commitment: view, Deal: dealView, Created: false}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeRequestBody(), "bearer-token")

		var body resdto.PlaceCommitmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Commitment updated", body.Message)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: size_commitments", mutate: testutil.Field("size_commitments", nil)},
			{name: "empty size_commitments", mutate: testutil.Field("size_commitments", []map[string]any{})},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), placeRequestBody(), tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 400 Bad Request on malformed deal id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/deals/not-a-uuid/commitments", placeRequestBody(), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid deal ID")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeRequestBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "deal not found",
				commandsError:  commands.ErrDealNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Deal not found",
			},
			{
				name:           "window closed",
				commandsError:  commands.ErrValidation,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Validation failed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Place(gomock.Any(), gomock.Any(), dealID, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeRequestBody(), "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *CommitmentHandlerTestSuite) TestUpdateStatus() {
	url := "/commitments/status"
	commitmentID := uuid.New()

	reqBody := map[string]any{
		"commitment_id": commitmentID.String(),
		"status":        "approved",
	}

	s.Run("success: returns 200 OK with the updated view", func() {
		view := builder.NewCommitmentBuilder().BuildView()
		view.Status = "approved"

		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var body queries.CommitmentView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("approved", body.Status)
	})

	s.Run("error: 400 Bad Request on missing status", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("status", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "commitment not found",
				commandsError:  commands.ErrCommitmentNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Commitment not found",
			},
			{
				name:           "not the deal's distributor",
				commandsError:  commands.ErrForbidden,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Operation not permitted",
			},
			{
				name:           "already settled",
				commandsError:  commands.ErrInvalidTransition,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Status transition not allowed",
			},
			{
				name:           "modified quantities below minimum",
				commandsError:  commands.ErrValidation,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Validation failed",
			},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestModifySizes
// ================================================================================

func (s *CommitmentHandlerTestSuite) TestModifySizes() {
	commitmentID := uuid.New()
	url := "/commitments/" + commitmentID.String() + "/sizes"

	s.Run("success: returns 200 OK", func() {
		view := builder.NewCommitmentBuilder().WithUser(s.userID).BuildView()
		s.mockCommands.EXPECT().ModifySizes(gomock.Any(), gomock.Any(), commitmentID, gomock.Any()).
			Return(&commands.PlaceResult{Commitment: view, Deal: &queries.DealView{ID: view.DealID}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, placeRequestBody(), "bearer-token")

		var body resdto.PlaceCommitmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Commitment updated", body.Message)
	})

	s.Run("error: 404 Not Found for someone else's commitment", func() {
		s.mockCommands.EXPECT().ModifySizes(gomock.Any(), gomock.Any(), commitmentID, gomock.Any()).
			Return(nil, commands.ErrNotOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, placeRequestBody(), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Commitment not found")
	})

	s.Run("error: 409 Conflict for a settled commitment", func() {
		s.mockCommands.EXPECT().ModifySizes(gomock.Any(), gomock.Any(), commitmentID, gomock.Any()).
			Return(nil, commands.ErrNotPending).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, placeRequestBody(), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "no longer pending")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *CommitmentHandlerTestSuite) TestCancel() {
	commitmentID := uuid.New()
	url := "/commitments/" + commitmentID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), commitmentID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict when already settled", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), commitmentID).
			Return(commands.ErrNotPending).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "no longer pending")
	})

	s.Run("error: 404 Not Found for unknown commitment", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), commitmentID).
			Return(commands.ErrCommitmentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Commitment not found")
	})
}

// ================================================================================
// TestGetCommitment
// ================================================================================

func (s *CommitmentHandlerTestSuite) TestGetCommitment() {
	commitmentID := uuid.New()
	url := "/commitments/" + commitmentID.String()

	s.Run("success: returns 200 OK with the view", func() {
		view := builder.NewCommitmentBuilder().WithUser(s.userID).BuildView()
		view.ID = commitmentID

		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), commitmentID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body queries.CommitmentView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(commitmentID, body.ID)
	})

	s.Run("error: hides other members' commitments as 404", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), commitmentID).
			Return(nil, queries.ErrNotOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Commitment not found")
	})

	s.Run("error: 400 Bad Request on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/commitments/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid commitment ID")
	})
}

// ================================================================================
// TestListCommitments
// ================================================================================

func (s *CommitmentHandlerTestSuite) TestListCommitments() {
	url := "/commitments"

	s.Run("success: returns the member's commitments", func() {
		items := []*queries.CommitmentListItem{
			{ID: uuid.New(), DealName: "Bulk Coffee Beans", Status: "pending", TotalCents: 5000},
		}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.CommitmentListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Commitments, 1)
		s.Equal("Bulk Coffee Beans", body.Commitments[0].DealName)
	})

	s.Run("error: 500 on read store failure", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return(nil, errors.New("connection reset")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
