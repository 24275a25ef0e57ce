package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"groupbuy-api/internal/domain/user"
	"groupbuy-api/internal/infra/db"
	"groupbuy-api/internal/infra/readstore"
	"groupbuy-api/internal/pkg/clock"
	"groupbuy-api/internal/pkg/config"
	"groupbuy-api/internal/usecase/commands"
	"groupbuy-api/internal/usecase/shared"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// Dispatcher drains the outbox on a schedule and fans jobs out to the
// notification, email, and SMS sinks. Delivery failures mark the job failed
// and are never propagated to the request path.
type Dispatcher struct {
	store     *OutboxStore
	notifier  Notifier
	mailer    Mailer
	sms       SMSSender
	users     shared.UserRepository
	dbtx      db.DBTX
	summaries *readstore.SummaryReadStore
	userViews *readstore.UserReadStore
	clock     clock.Clock
	cfg       config.OutboxConfig

	scheduler gocron.Scheduler
}

func NewDispatcher(
	store *OutboxStore,
	notifier Notifier,
	mailer Mailer,
	sms SMSSender,
	users shared.UserRepository,
	dbtx db.DBTX,
	summaries *readstore.SummaryReadStore,
	userViews *readstore.UserReadStore,
	clk clock.Clock,
	cfg config.OutboxConfig,
) *Dispatcher {
	return &Dispatcher{
		store:     store,
		notifier:  notifier,
		mailer:    mailer,
		sms:       sms,
		users:     users,
		dbtx:      dbtx,
		summaries: summaries,
		userViews: userViews,
		clock:     clk,
		cfg:       cfg,
	}
}

func (d *Dispatcher) Start(ctx context.Context) error {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return err
	}
	d.scheduler = s

	if _, err := s.NewJob(
		gocron.DurationJob(d.cfg.PollInterval),
		gocron.NewTask(func() { d.DrainOnce(ctx) }),
	); err != nil {
		return err
	}

	if _, err := s.NewJob(
		gocron.CronJob(d.cfg.SummaryMailCron, false),
		gocron.NewTask(func() { d.SendDailySummaryMail(ctx) }),
	); err != nil {
		return err
	}

	s.Start()
	slog.Info("outbox dispatcher started",
		"poll_interval", d.cfg.PollInterval.String(),
		"summary_mail_cron", d.cfg.SummaryMailCron)
	return nil
}

func (d *Dispatcher) Stop() error {
	if d.scheduler == nil {
		return nil
	}
	return d.scheduler.Shutdown()
}

// DrainOnce claims one batch of due jobs and delivers them.
func (d *Dispatcher) DrainOnce(ctx context.Context) {
	jobs, err := d.store.ClaimPending(ctx, d.clock.Now(), d.cfg.BatchSize)
	if err != nil {
		slog.Error("failed to claim outbox jobs", "error", err.Error())
		return
	}

	for _, job := range jobs {
		if err := d.deliver(ctx, job); err != nil {
			slog.Error("outbox job delivery failed",
				"job_id", job.ID, "kind", job.Kind, "topic", job.Topic, "error", err.Error())
			if markErr := d.store.MarkFailed(ctx, job.ID); markErr != nil {
				slog.Error("failed to mark job failed", "job_id", job.ID, "error", markErr.Error())
			}
			continue
		}
		if err := d.store.MarkSent(ctx, job.ID); err != nil {
			slog.Error("failed to mark job sent", "job_id", job.ID, "error", err.Error())
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, job Job) error {
	switch job.Kind {
	case shared.JobKindNotification:
		return d.deliverNotification(ctx, job)
	case shared.JobKindEmail:
		var p commands.EmailPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return fmt.Errorf("malformed email payload: %w", err)
		}
		return d.mailer.Send(ctx, p.To, p.Subject, p.Body)
	case shared.JobKindSMS:
		var p commands.SMSPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return fmt.Errorf("malformed sms payload: %w", err)
		}
		return d.sms.Send(ctx, p.Phone, p.Message)
	default:
		return fmt.Errorf("unknown job kind %q", job.Kind)
	}
}

func (d *Dispatcher) deliverNotification(ctx context.Context, job Job) error {
	var p commands.NotificationPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return fmt.Errorf("malformed notification payload: %w", err)
	}

	recipients, err := d.resolveRecipients(ctx, job.RecipientID, p.Role)
	if err != nil {
		return err
	}

	for _, recipientID := range recipients {
		if _, err := d.notifier.Notify(ctx, recipientID, p); err != nil {
			return err
		}
	}
	return nil
}

// resolveRecipients expands a role-addressed job to every active user holding
// the role; direct jobs resolve to their single recipient.
func (d *Dispatcher) resolveRecipients(ctx context.Context, recipientID *uuid.UUID, role string) ([]uuid.UUID, error) {
	if recipientID != nil {
		return []uuid.UUID{*recipientID}, nil
	}
	if role == "" {
		return nil, fmt.Errorf("notification job has neither recipient nor role")
	}
	if _, err := user.NewRole(role); err != nil {
		return nil, fmt.Errorf("notification job has invalid role %q", role)
	}

	snapshots, err := d.users.FindSnapshotsByRole(ctx, d.dbtx, role)
	if err != nil {
		return nil, err
	}
	out := make([]uuid.UUID, len(snapshots))
	for i, s := range snapshots {
		out[i] = s.ID
	}
	return out, nil
}

// SendDailySummaryMail mails every unsent summary of the previous UTC day and
// flips email_sent.
func (d *Dispatcher) SendDailySummaryMail(ctx context.Context) {
	now := d.clock.Now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	rows, err := d.summaries.ListUnsent(ctx, day)
	if err != nil {
		slog.Error("failed to list unsent summaries", "day", day.Format("2006-01-02"), "error", err.Error())
		return
	}

	for _, row := range rows {
		view, err := d.userViews.FindByID(ctx, row.UserID)
		if err != nil {
			slog.Error("failed to resolve summary recipient", "summary_id", row.ID, "error", err.Error())
			continue
		}

		subject := fmt.Sprintf("Your commitment summary for %s", day.Format("2006-01-02"))
		body := fmt.Sprintf(
			"Hi %s,\n\nYesterday you held %d commitments totalling %d units (%d cents).\n",
			view.Name, row.TotalCommitments, row.TotalQuantity, row.TotalAmountCents,
		)
		if err := d.mailer.Send(ctx, view.Email, subject, body); err != nil {
			slog.Error("failed to send summary mail", "summary_id", row.ID, "error", err.Error())
			continue
		}
		if err := d.summaries.MarkEmailSent(ctx, row.ID); err != nil {
			slog.Error("failed to mark summary mailed", "summary_id", row.ID, "error", err.Error())
		}
	}
}
