package deal

import (
	"time"

	"groupbuy-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyName         = errs.New("deal name is required")
	ErrNoSizes           = errs.New("deal needs at least one size")
	ErrDuplicateSize     = errs.New("duplicate size label")
	ErrInvalidPrice      = errs.New("price must be positive")
	ErrTierQuantityOrder = errs.New("tier quantities must strictly increase")
	ErrTierPriceOrder    = errs.New("tier prices must strictly decrease")
	ErrInvalidStatus     = errs.New("invalid deal status")
	ErrInvalidWindow     = errs.New("commitment window end precedes start")
	ErrUnknownSize       = errs.New("size does not exist on deal")
	ErrInvalidQuantity   = errs.New("quantity must be positive")
	ErrNoLines           = errs.New("at least one size commitment is required")
	ErrDuplicateLine     = errs.New("duplicate size in commitment lines")
	ErrWindowNotOpen     = errs.New("commitment window has not opened")
	ErrWindowClosed      = errs.New("commitment window has closed")
	ErrDealInactive      = errs.New("deal is not active")
)

// Tier is one rung of a size's volume-discount ladder. PriceCents is the
// absolute per-unit price unlocked once the pooled quantity reaches Quantity.
type Tier struct {
	Quantity   int32
	PriceCents int64
}

type Size struct {
	Label              string
	OriginalCostCents  int64
	DiscountPriceCents int64
	Tiers              []Tier
}

// Window is the [startAt, endsAt] interval during which members may create or
// modify commitments. Either bound may be absent.
type Window struct {
	startAt *time.Time
	endsAt  *time.Time
}

func NewWindow(startAt, endsAt *time.Time) (Window, error) {
	if startAt != nil && endsAt != nil && endsAt.Before(*startAt) {
		return Window{}, ErrInvalidWindow
	}
	return Window{startAt: startAt, endsAt: endsAt}, nil
}

func (w Window) StartAt() *time.Time { return w.startAt }
func (w Window) EndsAt() *time.Time  { return w.endsAt }

func (w Window) Validate(now time.Time) error {
	if w.startAt != nil && now.Before(*w.startAt) {
		return ErrWindowNotOpen
	}
	if w.endsAt != nil && now.After(*w.endsAt) {
		return ErrWindowClosed
	}
	return nil
}

type Deal struct {
	id                uuid.UUID
	distributorID     uuid.UUID
	name              string
	status            Status
	minQtyForDiscount int32
	window            Window
	sizes             []Size
	totalSold         int64
	totalRevenueCents int64
	createdAt         time.Time
	updatedAt         time.Time
}

func NewDeal(distributorID uuid.UUID, name string, minQtyForDiscount int32, window Window, sizes []Size) (*Deal, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := validateSizes(sizes); err != nil {
		return nil, err
	}

	return &Deal{
		id:                uuid.New(),
		distributorID:     distributorID,
		name:              name,
		status:            StatusActive,
		minQtyForDiscount: minQtyForDiscount,
		window:            window,
		sizes:             sizes,
	}, nil
}

func ReconstructDeal(
	id, distributorID uuid.UUID,
	name string,
	status Status,
	minQtyForDiscount int32,
	window Window,
	sizes []Size,
	totalSold, totalRevenueCents int64,
	createdAt, updatedAt time.Time,
) *Deal {
	return &Deal{
		id:                id,
		distributorID:     distributorID,
		name:              name,
		status:            status,
		minQtyForDiscount: minQtyForDiscount,
		window:            window,
		sizes:             sizes,
		totalSold:         totalSold,
		totalRevenueCents: totalRevenueCents,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// The ladder invariant holds per size: quantities strictly increase and each
// tier undercuts both the base discount price and the previous tier. Enforced
// here at create/update time, never re-checked at read time.
func validateSizes(sizes []Size) error {
	if len(sizes) == 0 {
		return ErrNoSizes
	}
	seen := make(map[string]struct{}, len(sizes))
	for _, s := range sizes {
		if s.Label == "" {
			return ErrDuplicateSize
		}
		if _, dup := seen[s.Label]; dup {
			return ErrDuplicateSize
		}
		seen[s.Label] = struct{}{}

		if s.OriginalCostCents <= 0 || s.DiscountPriceCents <= 0 {
			return ErrInvalidPrice
		}

		prevQty := int32(0)
		prevPrice := s.DiscountPriceCents
		for _, t := range s.Tiers {
			if t.Quantity <= prevQty {
				return ErrTierQuantityOrder
			}
			if t.PriceCents <= 0 || t.PriceCents >= prevPrice {
				return ErrTierPriceOrder
			}
			prevQty = t.Quantity
			prevPrice = t.PriceCents
		}
	}
	return nil
}

func (d *Deal) SizeByLabel(label string) (Size, bool) {
	for _, s := range d.sizes {
		if s.Label == label {
			return s, true
		}
	}
	return Size{}, false
}

// LineInput is a caller-supplied (size, quantity) pair before pricing.
type LineInput struct {
	SizeLabel string
	Quantity  int32
}

// ValidateLines checks the structural preconditions for a buy/modify request.
// Pure predicate; temporal checks live in ValidateOpen.
func (d *Deal) ValidateLines(lines []LineInput) error {
	if len(lines) == 0 {
		return ErrNoLines
	}
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if _, ok := d.SizeByLabel(l.SizeLabel); !ok {
			return ErrUnknownSize
		}
		// One line per size; a duplicate label would split the quantity
		// across rows sharing a label and break per-size repricing.
		if _, dup := seen[l.SizeLabel]; dup {
			return ErrDuplicateLine
		}
		seen[l.SizeLabel] = struct{}{}
	}
	return nil
}

func (d *Deal) ValidateOpen(now time.Time) error {
	if d.status != StatusActive {
		return ErrDealInactive
	}
	return d.window.Validate(now)
}

// AddSettledTotals folds an approved commitment's effective totals into the
// deal's running aggregates.
func (d *Deal) AddSettledTotals(quantity int64, revenueCents int64) {
	d.totalSold += quantity
	d.totalRevenueCents += revenueCents
}

func (d *Deal) ID() uuid.UUID            { return d.id }
func (d *Deal) DistributorID() uuid.UUID { return d.distributorID }
func (d *Deal) Name() string             { return d.name }
func (d *Deal) Status() Status           { return d.status }
func (d *Deal) MinQtyForDiscount() int32 { return d.minQtyForDiscount }
func (d *Deal) Window() Window           { return d.window }
func (d *Deal) Sizes() []Size            { return d.sizes }
func (d *Deal) TotalSold() int64         { return d.totalSold }
func (d *Deal) TotalRevenueCents() int64 { return d.totalRevenueCents }
func (d *Deal) CreatedAt() time.Time     { return d.createdAt }
func (d *Deal) UpdatedAt() time.Time     { return d.updatedAt }
