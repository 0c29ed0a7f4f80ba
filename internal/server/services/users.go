// Package services contains server-side business logic. UserService owns
// the user-record rules: input normalisation, validation, the duplicate
// email check and the store calls behind every API action.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userbook/internal/common"
	"github.com/dmitrijs2005/userbook/internal/dbx"
	"github.com/dmitrijs2005/userbook/internal/server/models"
	"github.com/dmitrijs2005/userbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userbook/internal/validation"
)

// UserInput is the mutable part of a user record as received from a caller.
type UserInput struct {
	Name  string
	Email string
	Phone string
}

// normalize trims surrounding whitespace from every field.
func (in UserInput) normalize() UserInput {
	return UserInput{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Phone: strings.TrimSpace(in.Phone),
	}
}

func (in UserInput) toModel(id int64) *models.User {
	u := &models.User{ID: id, Name: in.Name, Email: in.Email}
	if in.Phone != "" {
		phone := in.Phone
		u.Phone = &phone
	}
	return u
}

// UserService implements the five user operations on top of a repository
// manager. Errors are classified with common.KindOf.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewUserService constructs a UserService over db.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrStore, op, err)
}

// List returns every user, newest first.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	return list, nil
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, validation.Invalid("id", validation.MsgInvalidID)
	}

	u, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, storeErr("get user", err)
	}
	return u, nil
}

// Create validates in and inserts a new user, returning its id. The email
// pre-check is only a fast path; a unique violation raised by the insert is
// reported as common.ErrConflict as well.
func (s *UserService) Create(ctx context.Context, in UserInput) (int64, error) {
	in = in.normalize()
	if err := validation.ValidateUser(in.Name, in.Email, in.Phone); err != nil {
		return 0, err
	}

	repo := s.repomanager.Users(s.db)

	if err := s.ensureEmailFree(ctx, in.Email, 0); err != nil {
		return 0, err
	}

	id, err := repo.Create(ctx, in.toModel(0))
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return 0, common.ErrConflict
		}
		return 0, storeErr("create user", err)
	}
	return id, nil
}

// Update replaces name, email and phone of an existing user.
func (s *UserService) Update(ctx context.Context, id int64, in UserInput) error {
	if id <= 0 {
		return validation.Invalid("id", validation.MsgInvalidID)
	}
	in = in.normalize()
	if err := validation.ValidateUser(in.Name, in.Email, in.Phone); err != nil {
		return err
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return storeErr("update user", err)
	}

	if err := s.ensureEmailFree(ctx, in.Email, id); err != nil {
		return err
	}

	if err := repo.Update(ctx, in.toModel(id)); err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			return common.ErrNotFound
		case errors.Is(err, common.ErrConflict):
			return common.ErrConflict
		}
		return storeErr("update user", err)
	}
	return nil
}

// Delete permanently removes the user with the given id.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return validation.Invalid("id", validation.MsgInvalidID)
	}

	if err := s.repomanager.Users(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return storeErr("delete user", err)
	}
	return nil
}

// ensureEmailFree fails with common.ErrConflict when a user other than
// excludeID already holds email.
func (s *UserService) ensureEmailFree(ctx context.Context, email string, excludeID int64) error {
	_, err := s.repomanager.Users(s.db).FindIDByEmail(ctx, email, excludeID)
	switch {
	case err == nil:
		return common.ErrConflict
	case errors.Is(err, common.ErrNotFound):
		return nil
	default:
		return storeErr("check email", err)
	}
}

// SampleUsers are inserted by Seed into an empty store.
var SampleUsers = []UserInput{
	{Name: "John Doe", Email: "john.doe@example.com", Phone: "+1234567890"},
	{Name: "Jane Smith", Email: "jane.smith@example.com", Phone: "+0987654321"},
	{Name: "Bob Johnson", Email: "bob.johnson@example.com", Phone: "+1122334455"},
	{Name: "Alice Brown", Email: "alice.brown@example.com", Phone: "+5566778899"},
	{Name: "Charlie Wilson", Email: "charlie.wilson@example.com", Phone: "+9988776655"},
}

// Seed inserts SampleUsers in one transaction when the table is empty and
// reports how many rows were added.
func (s *UserService) Seed(ctx context.Context) (int, error) {
	added := 0
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		for _, in := range SampleUsers {
			if _, err := repo.Create(ctx, in.toModel(0)); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, storeErr("seed users", err)
	}
	return added, nil
}
