package response

import "groupbuy-api/internal/usecase/queries"

type PlaceCommitmentResponse struct {
	Message     string                  `json:"message"`
	Commitment  *queries.CommitmentView `json:"commitment"`
	UpdatedDeal *queries.DealView       `json:"updated_deal"`
}

type CommitmentListResponse struct {
	Commitments []*queries.CommitmentListItem `json:"commitments"`
}

type DailySummariesResponse struct {
	Summaries []*queries.DailySummaryView `json:"summaries"`
}
