package commands

import (
	"context"
	"fmt"
	"time"

	"groupbuy-api/internal/domain/auth"
	"groupbuy-api/internal/domain/deal"
	"groupbuy-api/internal/pkg/clock"
	"groupbuy-api/internal/pkg/errs"
	"groupbuy-api/internal/usecase/queries"
	"groupbuy-api/internal/usecase/shared"
)

type TierInput struct {
	Quantity   int32
	PriceCents int64
}

type SizeInput struct {
	Label              string
	OriginalCostCents  int64
	DiscountPriceCents int64
	Tiers              []TierInput
}

type CreateDealInput struct {
	Name              string
	MinQtyForDiscount int32
	StartAt           *time.Time
	EndsAt            *time.Time
	Sizes             []SizeInput
}

type DealCommands interface {
	Create(ctx context.Context, actor auth.Context, input CreateDealInput) (*queries.DealView, error)
}

type dealCommandsImpl struct {
	uow         shared.UnitOfWork
	clock       clock.Clock
	dealQueries queries.DealQueries
}

func NewDealCommands(uow shared.UnitOfWork, clk clock.Clock, dealQueries queries.DealQueries) DealCommands {
	return &dealCommandsImpl{uow: uow, clock: clk, dealQueries: dealQueries}
}

func (uc *dealCommandsImpl) Create(ctx context.Context, actor auth.Context, input CreateDealInput) (*queries.DealView, error) {
	if !actor.IsDistributor() && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	window, err := deal.NewWindow(input.StartAt, input.EndsAt)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	sizes := make([]deal.Size, len(input.Sizes))
	for i, s := range input.Sizes {
		tiers := make([]deal.Tier, len(s.Tiers))
		for j, t := range s.Tiers {
			tiers[j] = deal.Tier{Quantity: t.Quantity, PriceCents: t.PriceCents}
		}
		sizes[i] = deal.Size{
			Label:              s.Label,
			OriginalCostCents:  s.OriginalCostCents,
			DiscountPriceCents: s.DiscountPriceCents,
			Tiers:              tiers,
		}
	}

	d, err := deal.NewDeal(actor.EffectiveUserID(), input.Name, input.MinQtyForDiscount, window, sizes)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, cerr := tx.Deals().Create(ctx, tx.DB(), d); cerr != nil {
			return errs.Mark(cerr, ErrDatabaseOperationFailed)
		}
		actorID := actor.ActingUserID()
		msg := fmt.Sprintf("deal %q created with %d sizes", d.Name(), len(sizes))
		if aerr := tx.Audit().Append(ctx, tx.DB(), &actorID, "info", msg); aerr != nil {
			return errs.Mark(aerr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.dealQueries.GetByID(ctx, d.ID())
}
