package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dbcommon "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db/common"
	userdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/user"
)

// UserRepositorySQL implements user.Repository.
type UserRepositorySQL struct {
	DB      *sql.DB
	Dialect dbcommon.Dialect
}

func NewUserRepositorySQL(db *sql.DB, d dbcommon.Dialect) *UserRepositorySQL {
	return &UserRepositorySQL{DB: db, Dialect: d}
}

const userColumns = `id, name, email, password_hash, phone, birthday, created_at, updated_at`

func (r *UserRepositorySQL) GetByID(ctx context.Context, id int64) (userdom.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepositorySQL) GetByEmail(ctx context.Context, email string) (userdom.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, userdom.NormalizeEmail(email))
}

func (r *UserRepositorySQL) getOne(ctx context.Context, q string, arg any) (userdom.User, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	u, err := scanUser(run.QueryRowContext(ctx, r.Dialect.Rebind(q), arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return userdom.User{}, userdom.ErrNotFound
		}
		return userdom.User{}, err
	}
	return u, nil
}

func (r *UserRepositorySQL) Create(ctx context.Context, u userdom.User) (userdom.User, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := r.Dialect.Rebind(`
INSERT INTO users (name, email, password_hash, phone, birthday, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id`)
	err := run.QueryRowContext(ctx, q,
		u.Name, u.Email, u.PasswordHash, u.Phone, birthdayValue(u.Birthday), u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	).Scan(&u.ID)
	if err != nil {
		if dbcommon.IsUniqueViolation(err) {
			return userdom.User{}, userdom.ErrEmailTaken
		}
		return userdom.User{}, err
	}
	return u, nil
}

func (r *UserRepositorySQL) Save(ctx context.Context, u userdom.User) (userdom.User, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = time.Now().UTC()
	}
	q := r.Dialect.Rebind(`
UPDATE users SET name = ?, email = ?, password_hash = ?, phone = ?, birthday = ?, updated_at = ?
WHERE id = ?`)
	res, err := run.ExecContext(ctx, q,
		u.Name, u.Email, u.PasswordHash, u.Phone, birthdayValue(u.Birthday), u.UpdatedAt.UTC(), u.ID,
	)
	if err != nil {
		if dbcommon.IsUniqueViolation(err) {
			return userdom.User{}, userdom.ErrEmailTaken
		}
		return userdom.User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return userdom.User{}, userdom.ErrNotFound
	}
	return u, nil
}

func (r *UserRepositorySQL) Delete(ctx context.Context, id int64) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	res, err := run.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return userdom.ErrNotFound
	}
	return nil
}

func birthdayValue(b *time.Time) any {
	if b == nil {
		return nil
	}
	return b.Format(userdom.BirthdayLayout)
}

func scanUser(s dbcommon.RowScanner) (userdom.User, error) {
	var (
		u        userdom.User
		birthday sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &birthday, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return userdom.User{}, err
	}
	if birthday.Valid {
		if b, err := userdom.ParseBirthday(birthday.String); err == nil {
			u.Birthday = b
		}
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}
