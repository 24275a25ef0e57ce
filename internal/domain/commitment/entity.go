package commitment

import (
	"time"

	"groupbuy-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errs.New("invalid commitment status")
	ErrInvalidTransition = errs.New("commitment status transition not allowed")
	ErrNoLines           = errs.New("commitment needs at least one line")
	ErrUnknownLine       = errs.New("no line for size")
	ErrBelowMinimum      = errs.New("modified quantity below deal minimum")
	ErrLineUnknownSize   = errs.New("modified size does not exist on deal")
	ErrNotPending        = errs.New("commitment is not pending")
)

// Line is one priced per-size entry of a commitment.
type Line struct {
	SizeLabel              string
	Quantity               int32
	UnitPriceCents         int64
	OriginalUnitPriceCents int64
	TotalCents             int64
	AppliedTierQuantity    *int32
}

// Commitment is one member's pledge against a deal. At most one non-cancelled
// commitment exists per (user, deal); a repeat buy overwrites it in place.
type Commitment struct {
	id                    uuid.UUID
	dealID                uuid.UUID
	userID                uuid.UUID
	status                Status
	lines                 []Line
	totalCents            int64
	modifiedByDistributor bool
	modifiedLines         []Line
	modifiedTotalCents    *int64
	distributorResponse   *string
	createdAt             time.Time
	updatedAt             time.Time
}

func NewCommitment(dealID, userID uuid.UUID, lines []Line) (*Commitment, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	c := &Commitment{
		id:     uuid.New(),
		dealID: dealID,
		userID: userID,
		status: StatusPending,
		lines:  lines,
	}
	c.recalcTotal()
	return c, nil
}

func ReconstructCommitment(
	id, dealID, userID uuid.UUID,
	status Status,
	lines []Line,
	totalCents int64,
	modifiedByDistributor bool,
	modifiedLines []Line,
	modifiedTotalCents *int64,
	distributorResponse *string,
	createdAt, updatedAt time.Time,
) *Commitment {
	return &Commitment{
		id:                    id,
		dealID:                dealID,
		userID:                userID,
		status:                status,
		lines:                 lines,
		totalCents:            totalCents,
		modifiedByDistributor: modifiedByDistributor,
		modifiedLines:         modifiedLines,
		modifiedTotalCents:    modifiedTotalCents,
		distributorResponse:   distributorResponse,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
}

// Overwrite replaces the lines of a still-open commitment and resets it to
// pending, dropping any earlier distributor override. Same id on purpose: a
// repeat buy against the same deal re-creates the commitment in place.
func (c *Commitment) Overwrite(lines []Line) error {
	if len(lines) == 0 {
		return ErrNoLines
	}
	if c.status.IsTerminal() {
		return ErrNotPending
	}
	c.lines = lines
	c.status = StatusPending
	c.modifiedByDistributor = false
	c.modifiedLines = nil
	c.modifiedTotalCents = nil
	c.distributorResponse = nil
	c.recalcTotal()
	return nil
}

// Reprice rewrites the stored unit price for one size, returning whether
// anything changed. The aggregate total is recomputed over all lines.
func (c *Commitment) Reprice(sizeLabel string, unitPriceCents int64, appliedTierQuantity *int32) (bool, error) {
	for i := range c.lines {
		if c.lines[i].SizeLabel != sizeLabel {
			continue
		}
		if c.lines[i].UnitPriceCents == unitPriceCents {
			return false, nil
		}
		c.lines[i].UnitPriceCents = unitPriceCents
		c.lines[i].AppliedTierQuantity = appliedTierQuantity
		c.lines[i].TotalCents = unitPriceCents * int64(c.lines[i].Quantity)
		c.recalcTotal()
		return true, nil
	}
	return false, ErrUnknownLine
}

func (c *Commitment) recalcTotal() {
	var total int64
	for _, l := range c.lines {
		total += l.TotalCents
	}
	c.totalCents = total
}

// TransitionTo enforces the state machine: only pending commitments move, and
// only into a terminal state.
func (c *Commitment) TransitionTo(target Status, distributorResponse *string) error {
	if !c.status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	c.status = target
	if distributorResponse != nil {
		c.distributorResponse = distributorResponse
	}
	return nil
}

// ApplyDistributorModification records a distributor-provided override of the
// committed quantities. The caller supplies already-priced lines; the total
// modified quantity must still meet the deal minimum.
func (c *Commitment) ApplyDistributorModification(lines []Line, minQtyForDiscount int32) error {
	if len(lines) == 0 {
		return ErrNoLines
	}
	var qty int32
	var total int64
	for _, l := range lines {
		qty += l.Quantity
		total += l.TotalCents
	}
	if qty < minQtyForDiscount {
		return ErrBelowMinimum
	}
	c.modifiedByDistributor = true
	c.modifiedLines = lines
	c.modifiedTotalCents = &total
	return nil
}

// EffectiveTotals returns the quantity and revenue that settle into the deal
// on approval: the distributor-modified figures when present, the member's
// originals otherwise.
func (c *Commitment) EffectiveTotals() (quantity int64, revenueCents int64) {
	lines := c.lines
	if c.modifiedByDistributor {
		lines = c.modifiedLines
	}
	for _, l := range lines {
		quantity += int64(l.Quantity)
		revenueCents += l.TotalCents
	}
	return quantity, revenueCents
}

// QuantityFor returns the committed quantity for a size, zero when the
// commitment has no line for it.
func (c *Commitment) QuantityFor(sizeLabel string) int32 {
	for _, l := range c.lines {
		if l.SizeLabel == sizeLabel {
			return l.Quantity
		}
	}
	return 0
}

func (c *Commitment) ID() uuid.UUID                { return c.id }
func (c *Commitment) DealID() uuid.UUID            { return c.dealID }
func (c *Commitment) UserID() uuid.UUID            { return c.userID }
func (c *Commitment) Status() Status               { return c.status }
func (c *Commitment) Lines() []Line                { return c.lines }
func (c *Commitment) TotalCents() int64            { return c.totalCents }
func (c *Commitment) ModifiedByDistributor() bool  { return c.modifiedByDistributor }
func (c *Commitment) ModifiedLines() []Line        { return c.modifiedLines }
func (c *Commitment) ModifiedTotalCents() *int64   { return c.modifiedTotalCents }
func (c *Commitment) DistributorResponse() *string { return c.distributorResponse }
func (c *Commitment) CreatedAt() time.Time         { return c.createdAt }
func (c *Commitment) UpdatedAt() time.Time         { return c.updatedAt }
