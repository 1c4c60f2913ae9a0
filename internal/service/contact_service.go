package service

import (
	"context"
	"errors"
	"fmt"

	"phonebook/internal/model"
	"phonebook/internal/repository"
)

var (
	// ErrContactNotFound means the id is absent from the caller's own
	// contact set. An id that exists under another owner reports the same
	// error; ownership is the scoping boundary, not mere existence.
	ErrContactNotFound = errors.New("contact not found")

	// ErrContactExists guards AddContact against a contact whose id is
	// already present in the owner's set.
	ErrContactExists = errors.New("contact already exists")
)

// ContactService provides ownership-scoped operations over a user's contact
// aggregate. Every operation takes the resolved owning user, never a bare id.
type ContactService interface {
	AddContact(ctx context.Context, user *model.User, contact *model.Contact) error
	UpdateContact(ctx context.Context, user *model.User, contact *model.Contact) error
	DeleteContact(ctx context.Context, user *model.User, id int) error
	ListContacts(ctx context.Context, user *model.User) (map[int]model.Contact, error)
}

type contactService struct {
	repo repository.ContactRepository
}

// NewContactService creates a new ContactService
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

// AddContact persists a new contact with all of its phone numbers. The
// defensive identity check is normally unreachable since new contacts carry
// no id before insert.
func (s *contactService) AddContact(ctx context.Context, user *model.User, contact *model.Contact) error {
	if contact.ID != 0 {
		existing, err := s.repo.FindByIDAndOwner(ctx, contact.ID, user.ID)
		if err != nil {
			return fmt.Errorf("failed to check existing contact: %w", err)
		}
		if existing != nil {
			return ErrContactExists
		}
	}

	contact.UserID = user.ID
	if err := s.repo.CreateWithNumbers(ctx, contact); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// UpdateContact replaces the stored contact wholesale. Phone numbers are
// entirely replaced, not merged, even if unchanged; callers cannot partially
// update a contact.
func (s *contactService) UpdateContact(ctx context.Context, user *model.User, contact *model.Contact) error {
	existing, err := s.repo.FindByIDAndOwner(ctx, contact.ID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to find contact for update: %w", err)
	}
	if existing == nil {
		return ErrContactNotFound
	}

	contact.UserID = user.ID
	if err := s.repo.ReplaceWithNumbers(ctx, contact); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to replace contact: %w", err)
	}
	return nil
}

// DeleteContact removes the contact from the owner's set only
func (s *contactService) DeleteContact(ctx context.Context, user *model.User, id int) error {
	if err := s.repo.DeleteByIDAndOwner(ctx, id, user.ID); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// ListContacts returns the owner's contacts as a mapping from contact id to
// contact
func (s *contactService) ListContacts(ctx context.Context, user *model.User) (map[int]model.Contact, error) {
	contacts, err := s.repo.FindByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	result := make(map[int]model.Contact, len(contacts))
	for _, c := range contacts {
		result[c.ID] = c
	}
	return result, nil
}
