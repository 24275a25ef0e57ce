package components

import (
	"context"

	"groupbuy-api/internal/infra/db"
	"groupbuy-api/internal/infra/readstore"
	"groupbuy-api/internal/pkg/clock"
	"groupbuy-api/internal/pkg/config"
	"groupbuy-api/internal/usecase/shared"
	"groupbuy-api/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewOutboxStore,
		worker.NewSMSSender,
		NewNotifier,
		NewMailer,
		NewDispatcher,
	),
	fx.Invoke(StartDispatcher),
)

func NewNotifier(cfg config.Config, dbtx db.DBTX) worker.Notifier {
	if !cfg.Notify.Enabled {
		return worker.NewDisabledNotifier()
	}
	return worker.NewNotifier(dbtx)
}

func NewMailer(cfg config.Config) worker.Mailer {
	return worker.NewMailer(cfg.Mail)
}

func NewDispatcher(
	store *worker.OutboxStore,
	notifier worker.Notifier,
	mailer worker.Mailer,
	sms worker.SMSSender,
	users shared.UserRepository,
	dbtx db.DBTX,
	summaries *readstore.SummaryReadStore,
	userViews *readstore.UserReadStore,
	clk clock.Clock,
	cfg config.Config,
) *worker.Dispatcher {
	return worker.NewDispatcher(store, notifier, mailer, sms, users, dbtx, summaries, userViews, clk, cfg.Outbox)
}

func StartDispatcher(lc fx.Lifecycle, d *worker.Dispatcher) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return d.Start(context.WithoutCancel(ctx))
		},
		OnStop: func(_ context.Context) error {
			return d.Stop()
		},
	})
}
