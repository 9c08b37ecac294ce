package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/tshimanga/elimu/core"
	"github.com/tshimanga/elimu/core/user"
)

const uniqueViolation = "23505"

type userRepository struct {
	db core.DBExecutor
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db core.DBExecutor) *userRepository {
	return &userRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...user.User) error {
	query := `SELECT EXISTS (SELECT 1 FROM "user" WHERE email = $1)`
	args := []interface{}{email}

	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, u := range excludedUsers {
			ids = append(ids, u.ID)
		}
		query = `SELECT EXISTS (SELECT 1 FROM "user" WHERE email = $1 AND id <> ALL($2))`
		args = append(args, pq.Array(ids))
	}

	var exists bool
	if err := repo.db.GetContext(ctx, &exists, query, args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	if usr.CreatedAt.IsZero() {
		now := time.Now().UTC()
		usr.CreatedAt, usr.UpdatedAt = now, now
	}
	query := `
		INSERT INTO "user" (id, email, name, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := repo.db.ExecContext(ctx, query,
		usr.ID, usr.Email, usr.Name, usr.Role, usr.PasswordHash, usr.CreatedAt.UTC(), usr.UpdatedAt.UTC())
	if err != nil {
		// two concurrent registers can race past the uniqueness pre-check;
		// the loser hits the unique index instead
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, user.ErrNotFound
	}

	var usr user.User
	query := `SELECT id, email, name, role, password_hash, created_at, updated_at, last_login FROM "user" WHERE id = $1`
	if err := repo.db.GetContext(ctx, &usr, query, id); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by ID")
	}
	return usr, nil
}

func (repo userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	query := `SELECT id, email, name, role, password_hash, created_at, updated_at, last_login FROM "user" WHERE email = $1`
	if err := repo.db.GetContext(ctx, &usr, query, email); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by email")
	}
	return usr, nil
}

func (repo userRepository) SetLastLogin(ctx context.Context, usr user.User) (user.User, error) {
	usr.LastLogin = null.TimeFrom(time.Now().UTC())
	query := `UPDATE "user" SET last_login = $2 WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, usr.ID, usr.LastLogin.Time); err != nil {
		return user.User{}, errors.Wrap(err, "updating lastLogin")
	}
	return usr, nil
}

func (repo userRepository) UpdateOrCreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.ID == "" {
		return repo.CreateUser(ctx, usr)
	}

	usr.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE "user" SET email = $2, name = $3, role = $4, password_hash = $5, updated_at = $6
		WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query,
		usr.ID, usr.Email, usr.Name, usr.Role, usr.PasswordHash, usr.UpdatedAt); err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return usr, nil
}
