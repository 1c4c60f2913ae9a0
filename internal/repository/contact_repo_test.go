package repository

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonebook/internal/model"
)

func TestContactRepository_CreateWithNumbers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewContactRepository(mock)

	contact := &model.Contact{
		UserID: 1,
		Name:   "Vasya",
		Numbers: []model.PhoneNumber{
			{Number: "89999999999", NumberType: model.NumberTypeHome},
			{Number: "89999999998", NumberType: model.NumberTypeWorker},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO contacts").
		WithArgs(1, "Vasya", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery("INSERT INTO phone_numbers").
		WithArgs(5, "89999999999", model.NumberTypeHome).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery("INSERT INTO phone_numbers").
		WithArgs(5, "89999999998", model.NumberTypeWorker).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	err = repo.CreateWithNumbers(context.Background(), contact)

	assert.NoError(t, err)
	assert.Equal(t, 5, contact.ID)
	assert.Equal(t, 5, contact.Numbers[0].ContactID)
	assert.Equal(t, 5, contact.Numbers[1].ContactID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_ReplaceWithNumbers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewContactRepository(mock)

	contact := &model.Contact{
		ID:     5,
		UserID: 1,
		Name:   "Vasya",
		Numbers: []model.PhoneNumber{
			{Number: "89999999999", NumberType: model.NumberTypeHome},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE contacts SET").
		WithArgs("Vasya", (*string)(nil), 5, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("DELETE FROM phone_numbers").
		WithArgs(5).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectQuery("INSERT INTO phone_numbers").
		WithArgs(5, "89999999999", model.NumberTypeHome).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(20))
	mock.ExpectCommit()

	err = repo.ReplaceWithNumbers(context.Background(), contact)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_ReplaceWithNumbers_NotOwned(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewContactRepository(mock)

	contact := &model.Contact{ID: 5, UserID: 2, Name: "Vasya"}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE contacts SET").
		WithArgs("Vasya", (*string)(nil), 5, 2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err = repo.ReplaceWithNumbers(context.Background(), contact)

	assert.ErrorIs(t, err, ErrContactNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_DeleteByIDAndOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewContactRepository(mock)

	mock.ExpectExec("DELETE FROM contacts").
		WithArgs(5, 1).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err = repo.DeleteByIDAndOwner(context.Background(), 5, 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_DeleteByIDAndOwner_NotOwned(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewContactRepository(mock)

	// the id may exist under another owner; scoping still reports not-found
	mock.ExpectExec("DELETE FROM contacts").
		WithArgs(5, 2).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.DeleteByIDAndOwner(context.Background(), 5, 2)

	assert.ErrorIs(t, err, ErrContactNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_FindByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewContactRepository(mock)

	mock.ExpectQuery("SELECT id, user_id, name, image_name FROM contacts WHERE user_id").
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "image_name"}).
			AddRow(5, 1, "Vasya", (*string)(nil)).
			AddRow(6, 1, "Petya", (*string)(nil)))
	mock.ExpectQuery("SELECT n.id, n.contact_id, n.number, n.number_type").
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "contact_id", "number", "number_type"}).
			AddRow(10, 5, "89999999999", model.NumberTypeHome).
			AddRow(11, 6, "89999999998", model.NumberTypeCellular))

	contacts, err := repo.FindByOwner(context.Background(), 1)

	assert.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Vasya", contacts[0].Name)
	require.Len(t, contacts[0].Numbers, 1)
	assert.Equal(t, "89999999999", contacts[0].Numbers[0].Number)
	require.Len(t, contacts[1].Numbers, 1)
	assert.Equal(t, model.NumberTypeCellular, contacts[1].Numbers[0].NumberType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_FindByIDAndOwner_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewContactRepository(mock)

	mock.ExpectQuery("SELECT id, user_id, name, image_name FROM contacts WHERE id").
		WithArgs(5, 2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "image_name"}))

	contact, err := repo.FindByIDAndOwner(context.Background(), 5, 2)

	assert.NoError(t, err)
	assert.Nil(t, contact)
	assert.NoError(t, mock.ExpectationsWereMet())
}
