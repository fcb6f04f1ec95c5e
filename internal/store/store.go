// Package store implements the contact repository on top of a relational
// database. Every operation takes a context and runs its statements on an
// explicit connection or transaction; write operations bundle the
// uniqueness check and the write into one transaction so that the unique
// keys on the table remain the authoritative guard.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"gitlab.com/akravets/contact-book/internal/errs"
	"gitlab.com/akravets/contact-book/internal/model"
)

// ContactStore provides CRUD and lookup operations on the contacts table.
type ContactStore struct {
	db *sqlx.DB
}

// OpenDatabase initializes a database connection with the specified
// connection parameters.
func OpenDatabase(user, password, host, name string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", user, password, host, name)
	return sql.Open("mysql", dsn)
}

// New wraps the specified sql database. The database argument can be a real
// database for production use or a mock database within unit tests.
func New(sqlDB *sql.DB) *ContactStore {
	return &ContactStore{db: sqlx.NewDb(sqlDB, "mysql")}
}

// List returns a page of contacts ordered by id. An empty page is a valid,
// non-error result.
func (s *ContactStore) List(ctx context.Context, skip, limit int) ([]model.Contact, error) {
	contacts := []model.Contact{}
	err := s.db.SelectContext(ctx, &contacts, `
		SELECT * FROM contacts ORDER BY id LIMIT ? OFFSET ?
	`, limit, skip)
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// Get returns the contact with the given id.
func (s *ContactStore) Get(ctx context.Context, id int64) (model.Contact, error) {
	var contact model.Contact
	err := s.db.GetContext(ctx, &contact, `
		SELECT * FROM contacts WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, errs.Errorf(errs.ENOTFOUND, "contact not found")
	}
	if err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

// Create checks the candidate's email and phone for conflicts, inserts the
// record and returns it with its assigned id. Check and insert run in one
// transaction.
func (s *ContactStore) Create(ctx context.Context, c model.Contact) (model.Contact, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Contact{}, err
	}
	defer tx.Rollback()

	if err := findConflict(ctx, tx, c.Email, c.ContactNumber, 0); err != nil {
		return model.Contact{}, err
	}

	result, err := tx.NamedExecContext(ctx, `
		INSERT INTO contacts (first_name, last_name, email, contact_number, birth_date, additional_information)
		VALUES (:first_name, :last_name, :email, :contact_number, :birth_date, :additional_information)
	`, &c)
	if err != nil {
		return model.Contact{}, translateDuplicateKey(err, c)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Contact{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Contact{}, err
	}
	c.Id = id
	return c, nil
}

// Update replaces all mutable fields of the contact with the given id and
// returns the updated record. The record's own email and phone are not
// reported as conflicts.
func (s *ContactStore) Update(ctx context.Context, id int64, c model.Contact) (model.Contact, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Contact{}, err
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.GetContext(ctx, &existingID, `
		SELECT id FROM contacts WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, errs.Errorf(errs.ENOTFOUND, "contact not found")
	}
	if err != nil {
		return model.Contact{}, err
	}

	if err := findConflict(ctx, tx, c.Email, c.ContactNumber, id); err != nil {
		return model.Contact{}, err
	}

	c.Id = id
	_, err = tx.NamedExecContext(ctx, `
		UPDATE contacts
		SET first_name = :first_name,
			last_name = :last_name,
			email = :email,
			contact_number = :contact_number,
			birth_date = :birth_date,
			additional_information = :additional_information
		WHERE id = :id
	`, &c)
	if err != nil {
		return model.Contact{}, translateDuplicateKey(err, c)
	}
	if err := tx.Commit(); err != nil {
		return model.Contact{}, err
	}
	return c, nil
}

// Delete removes the contact with the given id permanently and returns the
// removed record.
func (s *ContactStore) Delete(ctx context.Context, id int64) (model.Contact, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Contact{}, err
	}
	defer tx.Rollback()

	var contact model.Contact
	err = tx.GetContext(ctx, &contact, `
		SELECT * FROM contacts WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, errs.Errorf(errs.ENOTFOUND, "contact not found")
	}
	if err != nil {
		return model.Contact{}, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id); err != nil {
		return model.Contact{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

// FindByFirstName returns all contacts with exactly the given first name.
// An empty result set is a not-found condition.
func (s *ContactStore) FindByFirstName(ctx context.Context, name string) ([]model.Contact, error) {
	return s.findBy(ctx, "first_name", name)
}

// FindByLastName returns all contacts with exactly the given last name.
func (s *ContactStore) FindByLastName(ctx context.Context, name string) ([]model.Contact, error) {
	return s.findBy(ctx, "last_name", name)
}

// FindByEmail returns all contacts with exactly the given email address.
func (s *ContactStore) FindByEmail(ctx context.Context, email string) ([]model.Contact, error) {
	return s.findBy(ctx, "email", email)
}

func (s *ContactStore) findBy(ctx context.Context, column, value string) ([]model.Contact, error) {
	var contacts []model.Contact
	query := fmt.Sprintf(`SELECT * FROM contacts WHERE %s = ? ORDER BY id`, column)
	if err := s.db.SelectContext(ctx, &contacts, query, value); err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, errs.Errorf(errs.ENOTFOUND, "contact not found")
	}
	return contacts, nil
}

// conflictRow is the subset of columns the uniqueness check inspects.
type conflictRow struct {
	Id            int64  `db:"id"`
	Email         string `db:"email"`
	ContactNumber string `db:"contact_number"`
}

// findConflict reports whether another stored contact already holds the
// candidate email or phone number. The row with excludeID is ignored so
// that an update does not conflict with itself; pass 0 on create. When both
// values collide, the email conflict is reported.
func findConflict(ctx context.Context, tx *sqlx.Tx, email, phone string, excludeID int64) error {
	var rows []conflictRow
	err := tx.SelectContext(ctx, &rows, `
		SELECT id, email, contact_number FROM contacts
		WHERE (email = ? OR contact_number = ?) AND id <> ?
	`, email, phone, excludeID)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Email == email {
			return errs.Errorf(errs.ECONFLICT, "email %s already in use", email)
		}
	}
	for _, row := range rows {
		if row.ContactNumber == phone {
			return errs.Errorf(errs.ECONFLICT, "contact number %s already in use", phone)
		}
	}
	return nil
}

// translateDuplicateKey converts a MySQL duplicate-key error on one of the
// unique indexes into the same conflict error the pre-check produces. This
// covers the race where two concurrent writes pass the pre-check before
// either commits.
func translateDuplicateKey(err error, c model.Contact) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != 1062 {
		return err
	}
	if strings.Contains(mysqlErr.Message, "email") {
		return errs.Errorf(errs.ECONFLICT, "email %s already in use", c.Email)
	}
	return errs.Errorf(errs.ECONFLICT, "contact number %s already in use", c.ContactNumber)
}
