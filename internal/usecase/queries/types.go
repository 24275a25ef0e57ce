package queries

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type DealSizeView struct {
	Label              string             `json:"label"`
	OriginalCostCents  int64              `json:"original_cost_cents"`
	DiscountPriceCents int64              `json:"discount_price_cents"`
	Tiers              []DiscountTierView `json:"tiers,omitempty"`
}

type DiscountTierView struct {
	Quantity   int32 `json:"quantity"`
	PriceCents int64 `json:"price_cents"`
}

type DealView struct {
	ID                uuid.UUID      `json:"id"`
	DistributorID     uuid.UUID      `json:"distributor_id"`
	Name              string         `json:"name"`
	Status            string         `json:"status"`
	MinQtyForDiscount int32          `json:"min_qty_for_discount"`
	CommitmentStartAt *time.Time     `json:"commitment_start_at,omitempty"`
	CommitmentEndsAt  *time.Time     `json:"commitment_ends_at,omitempty"`
	Sizes             []DealSizeView `json:"sizes"`
	TotalSold         int64          `json:"total_sold"`
	TotalRevenueCents int64          `json:"total_revenue_cents"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type CommitmentLineView struct {
	SizeLabel              string `json:"size"`
	Quantity               int32  `json:"quantity"`
	UnitPriceCents         int64  `json:"unit_price_cents"`
	OriginalUnitPriceCents int64  `json:"original_unit_price_cents"`
	TotalCents             int64  `json:"total_cents"`
	AppliedTierQuantity    *int32 `json:"applied_tier_quantity,omitempty"`
}

type CommitmentView struct {
	ID                    uuid.UUID            `json:"id"`
	DealID                uuid.UUID            `json:"deal_id"`
	DealName              string               `json:"deal_name"`
	UserID                uuid.UUID            `json:"user_id"`
	Status                string               `json:"status"`
	Lines                 []CommitmentLineView `json:"size_commitments"`
	TotalCents            int64                `json:"total_cents"`
	ModifiedByDistributor bool                 `json:"modified_by_distributor"`
	ModifiedLines         []CommitmentLineView `json:"modified_size_commitments,omitempty"`
	ModifiedTotalCents    *int64               `json:"modified_total_cents,omitempty"`
	DistributorResponse   *string              `json:"distributor_response,omitempty"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

type CommitmentListItem struct {
	ID         uuid.UUID `json:"id"`
	DealID     uuid.UUID `json:"deal_id"`
	DealName   string    `json:"deal_name"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

type SummaryItemView struct {
	CommitmentID uuid.UUID       `json:"commitment_id"`
	DealID       uuid.UUID       `json:"deal_id"`
	DealName     string          `json:"deal_name"`
	Quantity     int32           `json:"quantity"`
	TotalCents   int64           `json:"total_cents"`
	SizeDetails  json.RawMessage `json:"size_details"`
}

type DailySummaryView struct {
	ID               uuid.UUID         `json:"id"`
	SummaryDate      time.Time         `json:"summary_date"`
	UserID           uuid.UUID         `json:"user_id"`
	DistributorID    uuid.UUID         `json:"distributor_id"`
	TotalCommitments int32             `json:"total_commitments"`
	TotalQuantity    int32             `json:"total_quantity"`
	TotalAmountCents int64             `json:"total_amount_cents"`
	EmailSent        bool              `json:"email_sent"`
	Items            []SummaryItemView `json:"items"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
