package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tsaratour/service-booking/internal/domain/draft"
	"github.com/tsaratour/service-booking/internal/domain/submission"
	"github.com/tsaratour/service-booking/internal/platform/domain"
	"go.uber.org/zap"
)

// Submit persists a draft on the backend through the SubmissionAdapter.
// Returned ids are attached to the draft so a retry only resends failed
// lines. The attempt is recorded and announced; the session is discarded when
// every line succeeded.
func (s *WizardService) Submit(ctx context.Context, owner string, id uuid.UUID) (*SubmissionResultDTO, error) {
	sess, err := s.sessions.Get(owner, id)
	if err != nil {
		return nil, err
	}
	release, err := sess.Begin(actionSubmit)
	if err != nil {
		return nil, err
	}
	defer release()

	var snap draft.Snapshot
	var total decimal.Decimal
	sess.View(func(d *draft.Draft) {
		snap = d.Snapshot()
		total = d.TotalPrice()
	})
	if snap.Client == nil {
		return nil, domain.NewRuleViolation(draft.ErrNoClient, "")
	}

	sub, err := submission.New(id, owner, snap.ReservationID, total, domain.CurrencyMGA)
	if err != nil {
		return nil, err
	}

	outcome, err := s.adapter.Submit(ctx, snap)
	if err != nil {
		_ = sub.Fail(domain.MessageOf(err))
		s.record(ctx, sub)
		s.logger.Warn("draft submission failed",
			zap.String("draft_id", id.String()),
			zap.String("reference", sub.Reference()),
			zap.Error(err),
		)
		return nil, err
	}

	sub.RecordReservation(outcome.ReservationID)
	_ = sess.Update(func(d *draft.Draft) error {
		d.SetReservationID(outcome.ReservationID)
		for _, l := range outcome.Lines {
			if l.Err == nil && !l.Existing {
				d.AttachReservationID(l.Item.Kind, l.Item.ID, l.ServiceBookingID)
			}
		}
		return nil
	})

	for _, l := range outcome.Lines {
		sub.RecordLine(lineOutcome(l))
	}
	if err := sub.Complete(); err != nil {
		return nil, err
	}
	s.record(ctx, sub)

	result := toSubmissionResultDTO(sub)
	if sub.Status() == submission.StatusSucceeded {
		result.DraftDiscarded = s.sessions.Discard(id)
	} else {
		result.Draft = s.view(sess)
	}

	s.logger.Info("draft submitted",
		zap.String("draft_id", id.String()),
		zap.String("reference", sub.Reference()),
		zap.Int64("reservation_id", outcome.ReservationID),
		zap.String("status", string(sub.Status())),
		zap.Int("failed_lines", len(outcome.Failed())),
	)
	return &result, nil
}

// record stores and announces a settled submission. Both are best-effort:
// the backend writes already happened and must be reported to the caller.
func (s *WizardService) record(ctx context.Context, sub *submission.Submission) {
	if err := s.repo.Save(ctx, sub); err != nil {
		s.logger.Error("failed to record submission",
			zap.String("reference", sub.Reference()),
			zap.Error(err),
		)
	}
	s.publishEvent(ctx, submission.TopicBookingEvents, submission.EventTypeFor(sub.Status()), submission.NewSubmittedEvent(sub))
}

func lineOutcome(l LineResult) submission.LineOutcome {
	o := submission.LineOutcome{
		LineItemID: l.Item.ID,
		Kind:       string(l.Item.Kind),
		CatalogID:  l.Item.CatalogID,
		Label:      l.Item.Label,
		Price:      l.Item.Price,
	}
	switch {
	case l.Err != nil:
		o.Status = submission.LineFailed
		o.Error = domain.MessageOf(l.Err)
	case l.Existing:
		o.Status = submission.LineExisting
		id := l.ServiceBookingID
		o.ServiceBookingID = &id
	default:
		o.Status = submission.LineCreated
		id := l.ServiceBookingID
		o.ServiceBookingID = &id
	}
	return o
}

func toSubmissionResultDTO(sub *submission.Submission) SubmissionResultDTO {
	lines := sub.Lines()
	dtos := make([]LineOutcomeDTO, len(lines))
	for i, l := range lines {
		dtos[i] = LineOutcomeDTO{
			LineItemID:       l.LineItemID,
			Kind:             l.Kind,
			Label:            l.Label,
			Status:           string(l.Status),
			ServiceBookingID: l.ServiceBookingID,
			Error:            l.Error,
		}
	}
	return SubmissionResultDTO{
		SubmissionID:  sub.ID(),
		Reference:     sub.Reference(),
		Status:        string(sub.Status()),
		ReservationID: sub.ReservationID(),
		Lines:         dtos,
		Error:         sub.ErrorMessage(),
	}
}
