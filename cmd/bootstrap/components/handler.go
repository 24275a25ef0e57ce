package components

import (
	"groupbuy-api/internal/handler"
	"groupbuy-api/internal/handler/api"
	"groupbuy-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewDealHandler,
		api.NewCommitmentHandler,
		api.NewSummaryHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
