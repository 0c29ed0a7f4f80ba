package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userbook/internal/common"
	"github.com/dmitrijs2005/userbook/internal/dbx"
	"github.com/dmitrijs2005/userbook/internal/server/models"
	"github.com/dmitrijs2005/userbook/internal/server/storage"
)

// SQLRepository works on both PostgreSQL and SQLite: placeholders are
// numbered in order of appearance, which both drivers bind positionally.
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

const selectColumns = `SELECT id, name, email, phone, created_at, updated_at FROM users`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	var (
		u     models.User
		phone sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &phone, dbx.Time(&u.CreatedAt), dbx.Time(&u.UpdatedAt)); err != nil {
		return nil, err
	}
	u.Phone = dbx.StringPtr(phone)
	return &u, nil
}

func wrap(err error) error {
	if storage.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", common.ErrConflict, err)
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *SQLRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY id DESC`)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	result := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrap(err)
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}

	return result, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, wrap(err)
	}
	return u, nil
}

func (r *SQLRepository) FindIDByEmail(ctx context.Context, email string, excludeID int64) (int64, error) {
	query :=
		`SELECT id FROM users
		 WHERE lower(email) = lower($1) AND id <> $2
		 LIMIT 1`

	var id int64
	err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, wrap(err)
	}
	return id, nil
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query :=
		`INSERT INTO users (name, email, phone)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	var phone string
	if user.Phone != nil {
		phone = *user.Phone
	}

	err := r.db.QueryRowContext(ctx, query, user.Name, user.Email, dbx.NullString(phone)).Scan(&user.ID)
	if err != nil {
		return 0, wrap(err)
	}
	return user.ID, nil
}

func (r *SQLRepository) Update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users
		 SET name = $1, email = $2, phone = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, user.Name, user.Email, dbx.NullString(user.PhoneOrEmpty()), user.ID)
	if err != nil {
		return wrap(err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrap(err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, wrap(err)
	}
	return n, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
