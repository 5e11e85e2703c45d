package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tsaratour/service-booking/internal/domain/submission"
	"github.com/tsaratour/service-booking/internal/platform/domain"
	"go.uber.org/zap"
)

// SubmissionDTO is the admin view of a recorded submission.
type SubmissionDTO struct {
	ID            uuid.UUID                `json:"id"`
	Reference     string                   `json:"reference"`
	DraftID       uuid.UUID                `json:"draft_id"`
	OwnerID       string                   `json:"owner_id"`
	ReservationID *int64                   `json:"reservation_id,omitempty"`
	Status        string                   `json:"status"`
	TotalPrice    decimal.Decimal          `json:"total_price"`
	Currency      string                   `json:"currency"`
	Lines         []submission.LineOutcome `json:"lines"`
	ErrorMessage  string                   `json:"error_message,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	CompletedAt   *time.Time               `json:"completed_at,omitempty"`
}

// SubmissionStatsDTO holds submission counts for the admin dashboard.
type SubmissionStatsDTO struct {
	TotalSubmissions int64            `json:"total_submissions"`
	ByStatus         map[string]int64 `json:"by_status"`
}

// SubmissionService exposes the submission audit trail.
type SubmissionService struct {
	repo   submission.Repository
	logger *zap.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(repo submission.Repository, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{repo: repo, logger: logger}
}

// ListSubmissions returns a page of all submissions (admin).
func (s *SubmissionService) ListSubmissions(ctx context.Context, page, limit int) (*domain.PaginatedResult[SubmissionDTO], error) {
	subs, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	result := domain.NewPaginatedResult(toSubmissionDTOs(subs), total, page, limit)
	return &result, nil
}

// ListOwnerSubmissions returns a page of one user's submissions.
func (s *SubmissionService) ListOwnerSubmissions(ctx context.Context, ownerID string, page, limit int) (*domain.PaginatedResult[SubmissionDTO], error) {
	subs, total, err := s.repo.FindByOwnerID(ctx, ownerID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner submissions: %w", err)
	}
	result := domain.NewPaginatedResult(toSubmissionDTOs(subs), total, page, limit)
	return &result, nil
}

// GetSubmission returns a submission by reference.
func (s *SubmissionService) GetSubmission(ctx context.Context, reference string) (*SubmissionDTO, error) {
	sub, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	dto := toSubmissionDTO(sub)
	return &dto, nil
}

// GetSubmissionStats returns counts by status (admin).
func (s *SubmissionService) GetSubmissionStats(ctx context.Context) (*SubmissionStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission stats: %w", err)
	}
	var total int64
	for _, c := range counts {
		total += c
	}
	return &SubmissionStatsDTO{TotalSubmissions: total, ByStatus: counts}, nil
}

func toSubmissionDTOs(subs []*submission.Submission) []SubmissionDTO {
	dtos := make([]SubmissionDTO, len(subs))
	for i, sub := range subs {
		dtos[i] = toSubmissionDTO(sub)
	}
	return dtos
}

func toSubmissionDTO(sub *submission.Submission) SubmissionDTO {
	return SubmissionDTO{
		ID:            sub.ID(),
		Reference:     sub.Reference(),
		DraftID:       sub.DraftID(),
		OwnerID:       sub.OwnerID(),
		ReservationID: sub.ReservationID(),
		Status:        string(sub.Status()),
		TotalPrice:    sub.TotalPrice(),
		Currency:      sub.Currency(),
		Lines:         sub.Lines(),
		ErrorMessage:  sub.ErrorMessage(),
		CreatedAt:     sub.CreatedAt(),
		CompletedAt:   sub.CompletedAt(),
	}
}
