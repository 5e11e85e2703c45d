package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tsaratour/service-booking/internal/domain/submission"
	"github.com/tsaratour/service-booking/internal/platform/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmissionModel is the GORM model for the draft_submissions table.
type SubmissionModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Reference     string          `gorm:"uniqueIndex;not null;size:20"`
	DraftID       uuid.UUID       `gorm:"type:uuid;not null"`
	OwnerID       string          `gorm:"index;not null;size:64"`
	ReservationID *int64          `gorm:"index"`
	Status        string          `gorm:"not null;size:20;index"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	Currency      string          `gorm:"not null;size:3;default:'MGA'"`
	Lines         datatypes.JSON  `gorm:"type:jsonb;not null"`
	ErrorMessage  string          `gorm:"size:1000"`
	CreatedAt     time.Time       `gorm:"not null"`
	CompletedAt   *time.Time      `gorm:""`
}

// TableName returns the table name for the GORM model.
func (SubmissionModel) TableName() string {
	return "draft_submissions"
}

// GormSubmissionRepository is the GORM-based implementation of submission.Repository.
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewGormSubmissionRepository creates a new GormSubmissionRepository.
func NewGormSubmissionRepository(db *gorm.DB) *GormSubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// FindByID retrieves a submission by its unique identifier.
func (r *GormSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*submission.Submission, error) {
	var model SubmissionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Soumission", id.String())
		}
		return nil, fmt.Errorf("failed to find submission by ID: %w", err)
	}
	return toDomainSubmission(&model)
}

// FindByReference retrieves a submission by its reference.
func (r *GormSubmissionRepository) FindByReference(ctx context.Context, reference string) (*submission.Submission, error) {
	var model SubmissionModel
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Soumission", reference)
		}
		return nil, fmt.Errorf("failed to find submission by reference: %w", err)
	}
	return toDomainSubmission(&model)
}

// FindByOwnerID retrieves submissions of one user with pagination.
func (r *GormSubmissionRepository) FindByOwnerID(ctx context.Context, ownerID string, page, limit int) ([]*submission.Submission, int64, error) {
	return r.paginate(r.db.WithContext(ctx).Model(&SubmissionModel{}).Where("owner_id = ?", ownerID), page, limit)
}

// ListAll retrieves all submissions with pagination (admin).
func (r *GormSubmissionRepository) ListAll(ctx context.Context, page, limit int) ([]*submission.Submission, int64, error) {
	return r.paginate(r.db.WithContext(ctx).Model(&SubmissionModel{}), page, limit)
}

func (r *GormSubmissionRepository) paginate(q *gorm.DB, page, limit int) ([]*submission.Submission, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	var models []SubmissionModel
	offset := (page - 1) * limit
	if err := q.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}

	subs := make([]*submission.Submission, len(models))
	for i := range models {
		s, err := toDomainSubmission(&models[i])
		if err != nil {
			return nil, 0, err
		}
		subs[i] = s
	}
	return subs, total, nil
}

// CountByStatus returns submission counts grouped by status (admin).
func (r *GormSubmissionRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&SubmissionModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a submission.
func (r *GormSubmissionRepository) Save(ctx context.Context, s *submission.Submission) error {
	model, err := toSubmissionModel(s)
	if err != nil {
		return fmt.Errorf("failed to convert submission to model: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toSubmissionModel(s *submission.Submission) (*SubmissionModel, error) {
	linesJSON, err := json.Marshal(s.Lines())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lines: %w", err)
	}
	return &SubmissionModel{
		ID:            s.ID(),
		Reference:     s.Reference(),
		DraftID:       s.DraftID(),
		OwnerID:       s.OwnerID(),
		ReservationID: s.ReservationID(),
		Status:        string(s.Status()),
		TotalPrice:    s.TotalPrice(),
		Currency:      s.Currency(),
		Lines:         datatypes.JSON(linesJSON),
		ErrorMessage:  s.ErrorMessage(),
		CreatedAt:     s.CreatedAt(),
		CompletedAt:   s.CompletedAt(),
	}, nil
}

func toDomainSubmission(m *SubmissionModel) (*submission.Submission, error) {
	var lines []submission.LineOutcome
	if len(m.Lines) > 0 {
		if err := json.Unmarshal(m.Lines, &lines); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lines: %w", err)
		}
	}

	status, err := submission.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return submission.Reconstruct(
		m.ID,
		m.Reference,
		m.DraftID,
		m.OwnerID,
		m.ReservationID,
		status,
		m.TotalPrice,
		m.Currency,
		lines,
		m.ErrorMessage,
		m.CreatedAt,
		m.CompletedAt,
	), nil
}
