package request

import (
	"groupbuy-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type SizeCommitmentRequest struct {
	SizeLabel string `json:"size" binding:"required"`
	Quantity  int32  `json:"quantity" binding:"required"`
}

type PlaceCommitmentRequest struct {
	SizeCommitments []SizeCommitmentRequest `json:"size_commitments" binding:"required,min=1,dive"`
}

func (r PlaceCommitmentRequest) ToLines() []commands.LineRequest {
	return toLineRequests(r.SizeCommitments)
}

type ModifySizesRequest struct {
	SizeCommitments []SizeCommitmentRequest `json:"size_commitments" binding:"required,min=1,dive"`
}

func (r ModifySizesRequest) ToLines() []commands.LineRequest {
	return toLineRequests(r.SizeCommitments)
}

type UpdateStatusRequest struct {
	CommitmentID        uuid.UUID               `json:"commitment_id" binding:"required"`
	Status              string                  `json:"status" binding:"required"`
	DistributorResponse *string                 `json:"distributor_response,omitempty"`
	ModifiedSizes       []SizeCommitmentRequest `json:"modified_size_commitments,omitempty"`
}

func (r UpdateStatusRequest) ToInput() commands.UpdateStatusInput {
	return commands.UpdateStatusInput{
		CommitmentID:        r.CommitmentID,
		Status:              r.Status,
		DistributorResponse: r.DistributorResponse,
		ModifiedLines:       toLineRequests(r.ModifiedSizes),
	}
}

func toLineRequests(reqs []SizeCommitmentRequest) []commands.LineRequest {
	if len(reqs) == 0 {
		return nil
	}
	out := make([]commands.LineRequest, len(reqs))
	for i, s := range reqs {
		out[i] = commands.LineRequest{SizeLabel: s.SizeLabel, Quantity: s.Quantity}
	}
	return out
}
