package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"groupbuy-api/internal/domain/user"
	"groupbuy-api/internal/handler/api"
	"groupbuy-api/internal/handler/middleware"
	"groupbuy-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	dealHandler *api.DealHandler,
	commitmentHandler *api.CommitmentHandler,
	summaryHandler *api.SummaryHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, dealHandler, commitmentHandler, summaryHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	dealHandler *api.DealHandler,
	commitmentHandler *api.CommitmentHandler,
	summaryHandler *api.SummaryHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		deals := apiGroup.Group("/deals")
		deals.Use(authMiddleware.RequireAuth())
		{
			addRoutes(deals, []route{
				{Method: http.MethodPost, Path: "", Handler: dealHandler.CreateDeal,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleDistributor, user.RoleAdmin)}},
				{Method: http.MethodGet, Path: "/:id", Handler: dealHandler.GetDeal},
				{Method: http.MethodPost, Path: "/:id/commitments", Handler: commitmentHandler.PlaceCommitment},
			})
		}

		commitments := apiGroup.Group("/commitments")
		commitments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(commitments, []route{
				{Method: http.MethodGet, Path: "", Handler: commitmentHandler.ListCommitments},
				{Method: http.MethodPut, Path: "/status", Handler: commitmentHandler.UpdateStatus,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleDistributor, user.RoleAdmin)}},
				{Method: http.MethodGet, Path: "/:id", Handler: commitmentHandler.GetCommitment},
				{Method: http.MethodPut, Path: "/:id/sizes", Handler: commitmentHandler.ModifySizes},
				{Method: http.MethodDelete, Path: "/:id", Handler: commitmentHandler.Cancel},
			})
		}

		summaries := apiGroup.Group("/summaries")
		summaries.Use(authMiddleware.RequireAuth())
		{
			addRoutes(summaries, []route{
				{Method: http.MethodGet, Path: "/daily", Handler: summaryHandler.GetDaily},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
