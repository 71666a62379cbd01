package service

import (
	"context"
	"time"

	"github.com/danvoss/stride/internal/domain"
	"github.com/danvoss/stride/internal/repository"
	"github.com/google/uuid"
)

type contactService struct {
	contacts repository.ContactRepo
}

func NewContactService(contacts repository.ContactRepo) ContactService {
	return &contactService{contacts: contacts}
}

func (s *contactService) Create(ctx context.Context, c *domain.Contact) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Stage == "" {
		c.Stage = domain.StageLead
	}
	if !domain.ValidContactStages[c.Stage] {
		return domain.Validationf("unknown pipeline stage %q", c.Stage)
	}
	return s.contacts.Create(ctx, c)
}

func (s *contactService) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	return s.contacts.GetByID(ctx, id)
}

func (s *contactService) List(ctx context.Context) ([]*domain.Contact, error) {
	return s.contacts.List(ctx)
}

func (s *contactService) ListByStage(ctx context.Context, stage domain.ContactStage) ([]*domain.Contact, error) {
	if !domain.ValidContactStages[stage] {
		return nil, domain.Validationf("unknown pipeline stage %q", stage)
	}
	return s.contacts.ListByStage(ctx, stage)
}

func (s *contactService) Update(ctx context.Context, c *domain.Contact) error {
	if !domain.ValidContactStages[c.Stage] {
		return domain.Validationf("unknown pipeline stage %q", c.Stage)
	}
	c.UpdatedAt = time.Now().UTC()
	return s.contacts.Update(ctx, c)
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	if _, err := s.contacts.GetByID(ctx, id); err != nil {
		return err
	}
	return s.contacts.Delete(ctx, id)
}
