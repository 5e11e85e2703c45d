package submission

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for submission records.
type Repository interface {
	// FindByID retrieves a submission by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Submission, error)

	// FindByReference retrieves a submission by its human-readable reference.
	FindByReference(ctx context.Context, reference string) (*Submission, error)

	// FindByOwnerID retrieves submissions of one back-office user with pagination.
	FindByOwnerID(ctx context.Context, ownerID string, page, limit int) ([]*Submission, int64, error)

	// ListAll retrieves all submissions with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Submission, int64, error)

	// CountByStatus returns submission counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a submission.
	Save(ctx context.Context, s *Submission) error
}
