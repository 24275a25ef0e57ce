package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"groupbuy-api/internal/domain/auth"
	"groupbuy-api/internal/domain/commitment"
	"groupbuy-api/internal/domain/deal"
	"groupbuy-api/internal/domain/user"
	"groupbuy-api/internal/infra"
	"groupbuy-api/internal/pkg/clock"
	"groupbuy-api/internal/pkg/errs"
	"groupbuy-api/internal/usecase/queries"
	"groupbuy-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDealNotFound            = errs.New("deal not found")
	ErrUserNotFound            = errs.New("user not found")
	ErrDistributorNotFound     = errs.New("distributor not found")
	ErrCommitmentNotFound      = errs.New("commitment not found")
	ErrValidation              = errs.New("commitment validation failed")
	ErrNotOwner                = errs.New("commitment not owned by user")
	ErrNotPending              = errs.New("commitment is not pending")
	ErrInvalidTransition       = errs.New("status transition not allowed")
	ErrForbidden               = errs.New("operation not permitted for role")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type LineRequest struct {
	SizeLabel string
	Quantity  int32
}

type PlaceResult struct {
	Commitment *queries.CommitmentView
	Deal       *queries.DealView
	// Created is false when the member's open commitment was overwritten in
	// place instead of a new one being created.
	Created bool
}

type UpdateStatusInput struct {
	CommitmentID        uuid.UUID
	Status              string
	DistributorResponse *string
	ModifiedLines       []LineRequest
}

type CommitmentCommands interface {
	Place(ctx context.Context, actor auth.Context, dealID uuid.UUID, lines []LineRequest) (*PlaceResult, error)
	ModifySizes(ctx context.Context, actor auth.Context, commitmentID uuid.UUID, lines []LineRequest) (*PlaceResult, error)
	Cancel(ctx context.Context, actor auth.Context, commitmentID uuid.UUID) error
	UpdateStatus(ctx context.Context, actor auth.Context, input UpdateStatusInput) (*queries.CommitmentView, error)
}

type commitmentCommandsImpl struct {
	uow               shared.UnitOfWork
	clock             clock.Clock
	commitmentQueries queries.CommitmentQueries
	dealQueries       queries.DealQueries
	users             queries.UserReadStore
}

func NewCommitmentCommands(
	uow shared.UnitOfWork,
	clk clock.Clock,
	commitmentQueries queries.CommitmentQueries,
	dealQueries queries.DealQueries,
	users queries.UserReadStore,
) CommitmentCommands {
	return &commitmentCommandsImpl{
		uow:               uow,
		clock:             clk,
		commitmentQueries: commitmentQueries,
		dealQueries:       dealQueries,
		users:             users,
	}
}

func (uc *commitmentCommandsImpl) Place(ctx context.Context, actor auth.Context, dealID uuid.UUID, reqs []LineRequest) (*PlaceResult, error) {
	now := uc.clock.Now()
	memberID := actor.EffectiveUserID()

	var (
		commitmentID uuid.UUID
		created      bool
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, member, err := uc.loadDealAndMember(ctx, tx, dealID, memberID)
		if err != nil {
			return err
		}

		if err := d.ValidateLines(toLineInputs(reqs)); err != nil {
			return errs.Mark(err, ErrValidation)
		}
		if err := d.ValidateOpen(now); err != nil {
			return errs.Mark(err, ErrValidation)
		}

		active, err := tx.Commitments().FindActiveByDeal(ctx, tx.DB(), d.ID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		var target *commitment.Commitment
		for _, c := range active {
			if c.UserID() == memberID {
				target = c
				break
			}
		}

		// The updating member's previous quantities are excluded from the
		// baseline pool so their contribution is not counted twice during
		// threshold evaluation.
		exclude := uuid.Nil
		if target != nil {
			exclude = target.ID()
		}
		lines := priceLines(d, active, exclude, reqs)

		if target != nil {
			if err := target.Overwrite(lines); err != nil {
				return errs.Mark(err, ErrValidation)
			}
			if err := tx.Commitments().Update(ctx, tx.DB(), target); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		} else {
			target, err = commitment.NewCommitment(d.ID(), memberID, lines)
			if err != nil {
				return errs.Mark(err, ErrValidation)
			}
			if _, err := tx.Commitments().Create(ctx, tx.DB(), target); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			active = append(active, target)
			created = true
		}
		commitmentID = target.ID()

		if err := uc.finishCommitmentWrite(ctx, tx, d, active, target, member, now); err != nil {
			return err
		}

		msg := fmt.Sprintf("commitment %s placed on deal %q by %s", target.ID(), d.Name(), member.Email)
		if err := tx.Audit().Append(ctx, tx.DB(), &memberID, "info", msg); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		uc.auditOperationFailure(ctx, dealID, memberID, err)
		return nil, err
	}

	return uc.buildPlaceResult(ctx, commitmentID, dealID, created)
}

func (uc *commitmentCommandsImpl) ModifySizes(ctx context.Context, actor auth.Context, commitmentID uuid.UUID, reqs []LineRequest) (*PlaceResult, error) {
	now := uc.clock.Now()
	memberID := actor.EffectiveUserID()

	var dealID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		target, d, member, err := uc.loadOwnedCommitment(ctx, tx, commitmentID, memberID)
		if err != nil {
			return err
		}
		dealID = d.ID()

		if target.Status() != commitment.StatusPending {
			return ErrNotPending
		}
		if err := d.ValidateLines(toLineInputs(reqs)); err != nil {
			return errs.Mark(err, ErrValidation)
		}
		if err := d.ValidateOpen(now); err != nil {
			return errs.Mark(err, ErrValidation)
		}

		active, err := tx.Commitments().FindActiveByDeal(ctx, tx.DB(), d.ID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		for i, c := range active {
			if c.ID() == target.ID() {
				target = c
				active[i] = c
				break
			}
		}

		lines := priceLines(d, active, target.ID(), reqs)
		if err := target.Overwrite(lines); err != nil {
			return errs.Mark(err, ErrValidation)
		}
		if err := tx.Commitments().Update(ctx, tx.DB(), target); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := uc.finishCommitmentWrite(ctx, tx, d, active, target, member, now); err != nil {
			return err
		}

		msg := fmt.Sprintf("commitment %s sizes modified on deal %q by %s", target.ID(), d.Name(), member.Email)
		if err := tx.Audit().Append(ctx, tx.DB(), &memberID, "info", msg); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		uc.auditOperationFailure(ctx, dealID, memberID, err)
		return nil, err
	}

	return uc.buildPlaceResult(ctx, commitmentID, dealID, false)
}

func (uc *commitmentCommandsImpl) Cancel(ctx context.Context, actor auth.Context, commitmentID uuid.UUID) error {
	now := uc.clock.Now()
	memberID := actor.EffectiveUserID()

	var dealID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		target, d, member, err := uc.loadOwnedCommitment(ctx, tx, commitmentID, memberID)
		if err != nil {
			return err
		}
		dealID = d.ID()

		if err := target.TransitionTo(commitment.StatusCancelled, nil); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		if err := tx.Commitments().Update(ctx, tx.DB(), target); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// Cancellation removes the member's quantities from the pool, so the
		// remaining commitments are repaired immediately rather than waiting
		// for the next buy on the deal.
		active, err := tx.Commitments().FindActiveByDeal(ctx, tx.DB(), d.ID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := uc.reconcileAndNotify(ctx, tx, d, active, uuid.Nil, now); err != nil {
			return err
		}

		msg := fmt.Sprintf("commitment %s cancelled on deal %q by %s", target.ID(), d.Name(), member.Email)
		if err := tx.Audit().Append(ctx, tx.DB(), &memberID, "info", msg); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		uc.auditOperationFailure(ctx, dealID, memberID, err)
		return err
	}
	return nil
}

func (uc *commitmentCommandsImpl) UpdateStatus(ctx context.Context, actor auth.Context, input UpdateStatusInput) (*queries.CommitmentView, error) {
	now := uc.clock.Now()

	target, err := commitment.NewStatus(input.Status)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var dealID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Commitments().FindByID(ctx, tx.DB(), input.CommitmentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCommitmentNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		d, err := tx.Deals().FindForUpdate(ctx, tx.DB(), c.DealID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrDealNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		dealID = d.ID()

		if !actor.IsAdmin() && d.DistributorID() != actor.EffectiveUserID() {
			return ErrForbidden
		}

		// Re-read under the deal lock; the unlocked read above only resolved
		// the deal id.
		c, err = tx.Commitments().FindByID(ctx, tx.DB(), input.CommitmentID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		member, err := tx.Users().FindSnapshotByID(ctx, tx.DB(), c.UserID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		oldStatus := c.Status()

		if len(input.ModifiedLines) > 0 {
			modLines, merr := uc.priceModifiedLines(ctx, tx, d, c, input.ModifiedLines)
			if merr != nil {
				return merr
			}
			if aerr := c.ApplyDistributorModification(modLines, d.MinQtyForDiscount()); aerr != nil {
				return errs.Mark(aerr, ErrValidation)
			}
		}

		if terr := c.TransitionTo(target, input.DistributorResponse); terr != nil {
			return errs.Mark(terr, ErrInvalidTransition)
		}
		if uerr := tx.Commitments().Update(ctx, tx.DB(), c); uerr != nil {
			return errs.Mark(uerr, ErrDatabaseOperationFailed)
		}

		if target == commitment.StatusApproved {
			qty, revenue := c.EffectiveTotals()
			d.AddSettledTotals(qty, revenue)
			if serr := tx.Deals().SaveAggregates(ctx, tx.DB(), d); serr != nil {
				return errs.Mark(serr, ErrDatabaseOperationFailed)
			}
			history := fmt.Sprintf("commitment approved: %d units, %d cents", qty, revenue)
			if herr := tx.Deals().AppendApprovalHistory(ctx, tx.DB(), d.ID(), c.UserID(), c.ID(), history); herr != nil {
				return errs.Mark(herr, ErrDatabaseOperationFailed)
			}
		}

		if target == commitment.StatusCancelled {
			active, aerr := tx.Commitments().FindActiveByDeal(ctx, tx.DB(), d.ID())
			if aerr != nil {
				return errs.Mark(aerr, ErrDatabaseOperationFailed)
			}
			if rerr := uc.reconcileAndNotify(ctx, tx, d, active, uuid.Nil, now); rerr != nil {
				return rerr
			}
		}

		if serr := uc.enqueueStatusSideEffects(ctx, tx, d, c, member, oldStatus, target, now); serr != nil {
			return serr
		}

		detail := fmt.Sprintf("commitment %s: %s -> %s (total %d cents)", c.ID(), oldStatus, target, c.TotalCents())
		actorID := actor.ActingUserID()
		if aerr := tx.Audit().Append(ctx, tx.DB(), &actorID, "info", detail); aerr != nil {
			return errs.Mark(aerr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		uc.auditOperationFailure(ctx, dealID, actor.ActingUserID(), err)
		return nil, err
	}

	return uc.commitmentQueries.GetByIDSystem(ctx, input.CommitmentID)
}

// --- helpers ---

func toLineInputs(reqs []LineRequest) []deal.LineInput {
	out := make([]deal.LineInput, len(reqs))
	for i, r := range reqs {
		out[i] = deal.LineInput{SizeLabel: r.SizeLabel, Quantity: r.Quantity}
	}
	return out
}

// priceLines prices a request against the pooled quantities, excluding the
// updating commitment's own previous lines from the baseline.
func priceLines(d *deal.Deal, active []*commitment.Commitment, exclude uuid.UUID, reqs []LineRequest) []commitment.Line {
	lines := make([]commitment.Line, len(reqs))
	for i, r := range reqs {
		size, _ := d.SizeByLabel(r.SizeLabel)
		pool := poolQuantity(active, r.SizeLabel, exclude) + r.Quantity
		unit, tier := deal.UnitPriceCents(size, pool)

		var appliedQty *int32
		if tier != nil {
			q := tier.Quantity
			appliedQty = &q
		}
		lines[i] = commitment.Line{
			SizeLabel:              r.SizeLabel,
			Quantity:               r.Quantity,
			UnitPriceCents:         unit,
			OriginalUnitPriceCents: size.DiscountPriceCents,
			TotalCents:             unit * int64(r.Quantity),
			AppliedTierQuantity:    appliedQty,
		}
	}
	return lines
}

func (uc *commitmentCommandsImpl) loadDealAndMember(ctx context.Context, tx shared.Tx, dealID, memberID uuid.UUID) (*deal.Deal, *shared.UserSnapshot, error) {
	d, err := tx.Deals().FindForUpdate(ctx, tx.DB(), dealID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrDealNotFound
		}
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	member, err := tx.Users().FindSnapshotByID(ctx, tx.DB(), memberID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if _, err := tx.Users().FindSnapshotByID(ctx, tx.DB(), d.DistributorID()); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrDistributorNotFound
		}
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return d, member, nil
}

// loadOwnedCommitment resolves the commitment, locks its deal, and re-reads
// the commitment under the lock.
func (uc *commitmentCommandsImpl) loadOwnedCommitment(ctx context.Context, tx shared.Tx, commitmentID, memberID uuid.UUID) (*commitment.Commitment, *deal.Deal, *shared.UserSnapshot, error) {
	c, err := tx.Commitments().FindByID(ctx, tx.DB(), commitmentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, nil, ErrCommitmentNotFound
		}
		return nil, nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if c.UserID() != memberID {
		return nil, nil, nil, ErrNotOwner
	}

	d, err := tx.Deals().FindForUpdate(ctx, tx.DB(), c.DealID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, nil, ErrDealNotFound
		}
		return nil, nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	c, err = tx.Commitments().FindByID(ctx, tx.DB(), commitmentID)
	if err != nil {
		return nil, nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	member, err := tx.Users().FindSnapshotByID(ctx, tx.DB(), memberID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, nil, ErrUserNotFound
		}
		return nil, nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c, d, member, nil
}

// finishCommitmentWrite runs the shared tail of a buy/modify: reconciliation,
// daily summary upkeep, and the member-facing confirmation side effects.
func (uc *commitmentCommandsImpl) finishCommitmentWrite(
	ctx context.Context,
	tx shared.Tx,
	d *deal.Deal,
	active []*commitment.Commitment,
	target *commitment.Commitment,
	member *shared.UserSnapshot,
	now time.Time,
) error {
	if err := uc.reconcileAndNotify(ctx, tx, d, active, target.ID(), now); err != nil {
		return err
	}

	item := buildSummaryItem(target, d.Name())
	day := midnightUTC(now)
	if err := tx.Summaries().ReplaceItem(ctx, tx.DB(), day, target.UserID(), d.DistributorID(), item); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	confirm := NotificationPayload{
		Type:        "commitment",
		SubType:     "confirmed",
		Title:       "Commitment received",
		Message:     fmt.Sprintf("Your commitment on %q totals %d cents.", d.Name(), target.TotalCents()),
		RelatedID:   ptrUUID(target.ID()),
		RelatedKind: "commitment",
		Priority:    PriorityNormal,
	}
	if err := tx.Outbox().Enqueue(ctx, tx.DB(), notificationJob("commitment_confirmed", ptrUUID(member.ID), confirm, now)); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	mail := EmailPayload{
		To:      member.Email,
		Subject: fmt.Sprintf("Commitment confirmed: %s", d.Name()),
		Body:    fmt.Sprintf("Hi %s,\n\nYour commitment on %q was recorded (total %d cents).\n", member.Name, d.Name(), target.TotalCents()),
	}
	if err := tx.Outbox().Enqueue(ctx, tx.DB(), emailJob("commitment_confirmed", member.ID, mail, now)); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return nil
}

// reconcileAndNotify repairs stale prices deal-wide and queues the tier-change
// fan-out: one notification per affected owner, plus a digest to the
// distributor and to admins when a size gained or lost a tier.
func (uc *commitmentCommandsImpl) reconcileAndNotify(
	ctx context.Context,
	tx shared.Tx,
	d *deal.Deal,
	active []*commitment.Commitment,
	triggeringID uuid.UUID,
	now time.Time,
) error {
	out, err := reconcileDeal(d, active, triggeringID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	for _, c := range out.Changed {
		if err := tx.Commitments().Update(ctx, tx.DB(), c); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	for _, owner := range out.NotifyOwners {
		p := NotificationPayload{
			Type:        "commitment",
			SubType:     "tier_changed",
			Title:       "Volume discount updated",
			Message:     fmt.Sprintf("Collective volume on %q changed your unit pricing.", d.Name()),
			RelatedID:   ptrUUID(d.ID()),
			RelatedKind: "deal",
			Priority:    PriorityNormal,
		}
		ownerID := owner
		if err := tx.Outbox().Enqueue(ctx, tx.DB(), notificationJob("tier_changed", &ownerID, p, now)); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	if len(out.Shifts) == 0 {
		return nil
	}

	digest := tierShiftDigest(d.Name(), out.Shifts)
	distributorID := d.DistributorID()
	dp := NotificationPayload{
		Type:        "deal",
		SubType:     "tier_digest",
		Title:       "Volume tiers changed",
		Message:     digest,
		RelatedID:   ptrUUID(d.ID()),
		RelatedKind: "deal",
		Priority:    PriorityHigh,
	}
	if err := tx.Outbox().Enqueue(ctx, tx.DB(), notificationJob("tier_digest", &distributorID, dp, now)); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	ap := dp
	ap.Role = user.RoleAdmin.String()
	if err := tx.Outbox().Enqueue(ctx, tx.DB(), notificationJob("tier_digest", nil, ap, now)); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func tierShiftDigest(dealName string, shifts []tierShift) string {
	msg := fmt.Sprintf("Deal %q tier changes:", dealName)
	for _, s := range shifts {
		verb := "deactivated"
		if s.Activated {
			verb = "activated"
		}
		msg += fmt.Sprintf(" %s tier@%d %s (pool %d, unit %d cents);", s.SizeLabel, s.TierQuantity, verb, s.Pool, s.UnitPriceCents)
	}
	return msg
}

// priceModifiedLines prices a distributor override. Sizes already on the
// commitment keep their current unit price; new sizes are priced at the
// current pool.
func (uc *commitmentCommandsImpl) priceModifiedLines(ctx context.Context, tx shared.Tx, d *deal.Deal, c *commitment.Commitment, reqs []LineRequest) ([]commitment.Line, error) {
	var active []*commitment.Commitment
	seen := make(map[string]struct{}, len(reqs))
	lines := make([]commitment.Line, len(reqs))
	for i, r := range reqs {
		size, ok := d.SizeByLabel(r.SizeLabel)
		if !ok {
			return nil, errs.Mark(commitment.ErrLineUnknownSize, ErrValidation)
		}
		if r.Quantity <= 0 {
			return nil, errs.Mark(deal.ErrInvalidQuantity, ErrValidation)
		}
		if _, dup := seen[r.SizeLabel]; dup {
			return nil, errs.Mark(deal.ErrDuplicateLine, ErrValidation)
		}
		seen[r.SizeLabel] = struct{}{}

		unit := int64(0)
		var appliedQty *int32
		if existingQty := c.QuantityFor(r.SizeLabel); existingQty > 0 {
			for _, l := range c.Lines() {
				if l.SizeLabel == r.SizeLabel {
					unit = l.UnitPriceCents
					appliedQty = l.AppliedTierQuantity
					break
				}
			}
		} else {
			if active == nil {
				var err error
				active, err = tx.Commitments().FindActiveByDeal(ctx, tx.DB(), d.ID())
				if err != nil {
					return nil, errs.Mark(err, ErrDatabaseOperationFailed)
				}
			}
			pool := poolQuantity(active, r.SizeLabel, uuid.Nil)
			var tier *deal.Tier
			unit, tier = deal.UnitPriceCents(size, pool)
			if tier != nil {
				q := tier.Quantity
				appliedQty = &q
			}
		}

		lines[i] = commitment.Line{
			SizeLabel:              r.SizeLabel,
			Quantity:               r.Quantity,
			UnitPriceCents:         unit,
			OriginalUnitPriceCents: size.DiscountPriceCents,
			TotalCents:             unit * int64(r.Quantity),
			AppliedTierQuantity:    appliedQty,
		}
	}
	return lines, nil
}

func (uc *commitmentCommandsImpl) enqueueStatusSideEffects(
	ctx context.Context,
	tx shared.Tx,
	d *deal.Deal,
	c *commitment.Commitment,
	member *shared.UserSnapshot,
	oldStatus, newStatus commitment.Status,
	now time.Time,
) error {
	memberNote := NotificationPayload{
		Type:        "commitment",
		SubType:     "status_" + newStatus.String(),
		Title:       fmt.Sprintf("Commitment %s", newStatus),
		Message:     fmt.Sprintf("Your commitment on %q is now %s.", d.Name(), newStatus),
		RelatedID:   ptrUUID(c.ID()),
		RelatedKind: "commitment",
		Priority:    PriorityHigh,
	}
	if err := tx.Outbox().Enqueue(ctx, tx.DB(), notificationJob("status_changed", ptrUUID(member.ID), memberNote, now)); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	adminNote := memberNote
	adminNote.Message = fmt.Sprintf("Commitment %s on %q moved %s -> %s.", c.ID(), d.Name(), oldStatus, newStatus)
	adminNote.Role = user.RoleAdmin.String()
	if err := tx.Outbox().Enqueue(ctx, tx.DB(), notificationJob("status_changed", nil, adminNote, now)); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	mail := EmailPayload{
		To:      member.Email,
		Subject: fmt.Sprintf("Commitment %s: %s", newStatus, d.Name()),
		Body:    fmt.Sprintf("Hi %s,\n\nYour commitment on %q is now %s.\n", member.Name, d.Name(), newStatus),
	}
	if err := tx.Outbox().Enqueue(ctx, tx.DB(), emailJob("status_changed", member.ID, mail, now)); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if member.Phone != nil {
		sms := SMSPayload{
			Phone:   *member.Phone,
			Message: fmt.Sprintf("Your commitment on %q is now %s.", d.Name(), newStatus),
		}
		if err := tx.Outbox().Enqueue(ctx, tx.DB(), smsJob("status_changed", member.ID, sms, now)); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return nil
}

func (uc *commitmentCommandsImpl) buildPlaceResult(ctx context.Context, commitmentID, dealID uuid.UUID, created bool) (*PlaceResult, error) {
	view, err := uc.commitmentQueries.GetByIDSystem(ctx, commitmentID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	dealView, err := uc.dealQueries.GetByID(ctx, dealID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &PlaceResult{Commitment: view, Deal: dealView, Created: created}, nil
}

var expectedCommandErrors = []error{
	ErrValidation, ErrDealNotFound, ErrUserNotFound, ErrDistributorNotFound,
	ErrCommitmentNotFound, ErrNotOwner, ErrNotPending, ErrInvalidTransition, ErrForbidden,
}

// auditOperationFailure writes a best-effort failure entry for unexpected
// errors. Name lookups degrade to placeholders and a failed write is only
// logged, so the original error response is never put at risk.
func (uc *commitmentCommandsImpl) auditOperationFailure(ctx context.Context, dealID, userID uuid.UUID, opErr error) {
	for _, expected := range expectedCommandErrors {
		if errors.Is(opErr, expected) {
			return
		}
	}

	dealName := "unknown deal"
	userName := "unknown user"
	if v, err := uc.dealQueries.GetByID(ctx, dealID); err == nil {
		dealName = v.Name
	}
	if v, err := uc.users.FindByID(ctx, userID); err == nil {
		userName = v.Name
	}

	msg := fmt.Sprintf("commitment operation failed on %q for %s: %v", dealName, userName, opErr)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Audit().Append(ctx, tx.DB(), &userID, "error", msg)
	})
	if err != nil {
		slog.ErrorContext(ctx, "audit write failed", "deal_id", dealID, "user_id", userID, "error", err)
	}
}

// buildSummaryItem snapshots a commitment for the member's daily summary.
// Distributor-modified lines take precedence once an override exists.
func buildSummaryItem(c *commitment.Commitment, dealName string) shared.SummaryItem {
	lines := c.Lines()
	total := c.TotalCents()
	if c.ModifiedByDistributor() {
		lines = c.ModifiedLines()
		if mt := c.ModifiedTotalCents(); mt != nil {
			total = *mt
		}
	}

	var quantity int32
	details := make([]shared.SummarySizeDetail, len(lines))
	for i, l := range lines {
		quantity += l.Quantity
		details[i] = shared.SummarySizeDetail{
			SizeLabel:      l.SizeLabel,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
			TotalCents:     l.TotalCents,
		}
	}

	return shared.SummaryItem{
		CommitmentID: c.ID(),
		DealID:       c.DealID(),
		DealName:     dealName,
		Quantity:     quantity,
		TotalCents:   total,
		SizeDetails:  details,
	}
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptrUUID(id uuid.UUID) *uuid.UUID {
	return &id
}
