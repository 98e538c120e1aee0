package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	rabbit "storefront/internal/infra/rabbitmq"
	"storefront/internal/repository"
	"storefront/internal/retry"
	"storefront/internal/validation"
)

// IntakeService accepts public submissions of one intake kind and lets an
// administrator list, move and delete them.
type IntakeService[T any, P interface {
	*T
	domain.Intake
}] struct {
	repo      repository.RecordRepository[T]
	publisher rabbit.PublisherInterface
	admin     AdminGuard
	log       logrus.FieldLogger
	retry     retry.Policy
	now       func() time.Time
}

func NewIntakeService[T any, P interface {
	*T
	domain.Intake
}](r repository.RecordRepository[T], pub rabbit.PublisherInterface, admin AdminGuard, log logrus.FieldLogger) *IntakeService[T, P] {
	s := &IntakeService[T, P]{
		repo:      r,
		publisher: pub,
		admin:     admin,
		retry:     retry.DefaultPolicy,
		now:       time.Now,
	}
	s.log = log.WithField("kind", P(new(T)).Kind())
	return s
}

func (s *IntakeService[T, P]) Submit(ctx context.Context, record *T) (*T, error) {
	p := P(record)
	p.Sanitize(validation.Clean, validation.CleanText)
	name, email, phone := p.Contact()
	if err := validation.Contact(name, email, phone, false); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Init()

	if err := s.repo.Save(ctx, record); err != nil {
		s.log.WithError(err).Error("failed to save submission")
		return nil, err
	}
	s.log.WithField("id", p.RecordID()).Info("submission received")

	evt := domain.IntakeSubmittedEvent{
		Kind:      p.Kind(),
		ID:        p.RecordID(),
		Name:      name,
		Email:     email,
		CreatedAt: p.Submitted(),
	}
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = s.now()
	}
	if err := s.publisher.Publish(ctx, domain.EventIntakeSubmitted, evt); err != nil {
		s.log.WithError(err).Warn("failed to publish submission event")
	}
	return record, nil
}

func (s *IntakeService[T, P]) Authorize(secret string) error {
	return s.admin.Check(secret)
}

func (s *IntakeService[T, P]) List(ctx context.Context, secret string) ([]T, error) {
	if err := s.admin.Check(secret); err != nil {
		return nil, err
	}
	var out []T
	err := s.retry.Do(ctx, func() (err error) {
		out, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *IntakeService[T, P]) UpdateStatus(ctx context.Context, secret string, id uint64, status string) error {
	if err := s.admin.Check(secret); err != nil {
		return err
	}
	if !P(new(T)).AllowsStatus(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	var found bool
	err := s.retry.Do(ctx, func() (err error) {
		found, err = s.repo.UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrRecordNotFound
	}
	s.log.WithFields(logrus.Fields{"id": id, "status": status}).Info("submission status updated")
	return nil
}

func (s *IntakeService[T, P]) Delete(ctx context.Context, secret string, id uint64) error {
	if err := s.admin.Check(secret); err != nil {
		return err
	}
	var found bool
	err := s.retry.Do(ctx, func() (err error) {
		found, err = s.repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrRecordNotFound
	}
	return nil
}
