package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"phonebook/internal/model"
)

// ContactRepository defines storage operations for the contact aggregate.
// A contact and its phone numbers are always written together in one
// transaction; every mutation is scoped to the owning user.
type ContactRepository interface {
	CreateWithNumbers(ctx context.Context, contact *model.Contact) error
	ReplaceWithNumbers(ctx context.Context, contact *model.Contact) error
	DeleteByIDAndOwner(ctx context.Context, id, userID int) error
	FindByIDAndOwner(ctx context.Context, id, userID int) (*model.Contact, error)
	FindByOwner(ctx context.Context, userID int) ([]model.Contact, error)
}

type contactRepository struct {
	db DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db DB) ContactRepository {
	return &contactRepository{db: db}
}

// CreateWithNumbers inserts the contact and all of its phone numbers in a
// single transaction. The contact and each number receive their
// store-assigned ids, and every number is back-linked to the contact.
func (r *contactRepository) CreateWithNumbers(ctx context.Context, contact *model.Contact) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql := `INSERT INTO contacts (user_id, name, image_name) VALUES ($1, $2, $3) RETURNING id`
	if err := tx.QueryRow(ctx, sql, contact.UserID, contact.Name, contact.ImageName).Scan(&contact.ID); err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}

	if err := insertNumbers(ctx, tx, contact); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit contact insert: %w", err)
	}
	return nil
}

// ReplaceWithNumbers overwrites the contact row and fully replaces its phone
// number list (remove-then-add, not a merge) in one transaction. Returns
// ErrContactNotFound when the id does not belong to the owner.
func (r *contactRepository) ReplaceWithNumbers(ctx context.Context, contact *model.Contact) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql := `UPDATE contacts SET name = $1, image_name = $2 WHERE id = $3 AND user_id = $4`
	cmdTag, err := tx.Exec(ctx, sql, contact.Name, contact.ImageName, contact.ID, contact.UserID)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrContactNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM phone_numbers WHERE contact_id = $1`, contact.ID); err != nil {
		return fmt.Errorf("failed to delete old phone numbers: %w", err)
	}

	if err := insertNumbers(ctx, tx, contact); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit contact replace: %w", err)
	}
	return nil
}

// DeleteByIDAndOwner removes the contact only if it belongs to the given
// owner. Phone numbers are removed by the cascading foreign key. Returns
// ErrContactNotFound when nothing was deleted, even if the id exists under a
// different owner.
func (r *contactRepository) DeleteByIDAndOwner(ctx context.Context, id, userID int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

// FindByIDAndOwner retrieves a single contact with its numbers, scoped to the
// owner. A missing contact is returned as (nil, nil).
func (r *contactRepository) FindByIDAndOwner(ctx context.Context, id, userID int) (*model.Contact, error) {
	contact := &model.Contact{}
	sql := `SELECT id, user_id, name, image_name FROM contacts WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(ctx, sql, id, userID).Scan(&contact.ID, &contact.UserID, &contact.Name, &contact.ImageName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}

	numbersSQL := `SELECT id, contact_id, number, number_type FROM phone_numbers WHERE contact_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, numbersSQL, contact.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query phone numbers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n model.PhoneNumber
		if err := rows.Scan(&n.ID, &n.ContactID, &n.Number, &n.NumberType); err != nil {
			return nil, fmt.Errorf("failed to scan phone number row: %w", err)
		}
		contact.Numbers = append(contact.Numbers, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating phone number rows: %w", err)
	}
	return contact, nil
}

// FindByOwner retrieves all of the owner's contacts with their numbers
func (r *contactRepository) FindByOwner(ctx context.Context, userID int) ([]model.Contact, error) {
	sql := `SELECT id, user_id, name, image_name FROM contacts WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts by owner: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	byID := make(map[int]int) // contact id -> index in contacts
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.ImageName); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		byID[c.ID] = len(contacts)
		contacts = append(contacts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact rows: %w", err)
	}

	if len(contacts) == 0 {
		return contacts, nil
	}

	numbersSQL := `SELECT n.id, n.contact_id, n.number, n.number_type
                   FROM phone_numbers n
                   JOIN contacts c ON n.contact_id = c.id
                   WHERE c.user_id = $1 ORDER BY n.id`
	numberRows, err := r.db.Query(ctx, numbersSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query phone numbers by owner: %w", err)
	}
	defer numberRows.Close()

	for numberRows.Next() {
		var n model.PhoneNumber
		if err := numberRows.Scan(&n.ID, &n.ContactID, &n.Number, &n.NumberType); err != nil {
			return nil, fmt.Errorf("failed to scan phone number row: %w", err)
		}
		if idx, ok := byID[n.ContactID]; ok {
			contacts[idx].Numbers = append(contacts[idx].Numbers, n)
		}
	}
	if err = numberRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating phone number rows: %w", err)
	}
	return contacts, nil
}

func insertNumbers(ctx context.Context, tx pgx.Tx, contact *model.Contact) error {
	sql := `INSERT INTO phone_numbers (contact_id, number, number_type) VALUES ($1, $2, $3) RETURNING id`
	for i := range contact.Numbers {
		contact.Numbers[i].ContactID = contact.ID
		if err := tx.QueryRow(ctx, sql, contact.ID, contact.Numbers[i].Number, contact.Numbers[i].NumberType).Scan(&contact.Numbers[i].ID); err != nil {
			return fmt.Errorf("failed to insert phone number: %w", err)
		}
	}
	return nil
}
