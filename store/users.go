package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type (
	User struct {
		ID           string    `json:"id"`
		Email        string    `json:"email"`
		PasswordHash string    `json:"-"`
		CreatedAt    time.Time `json:"createdAt"`
	}
)

// CreateUser stores u with a new id, EmailTaken is returned when another
// user already uses the same email.
func (s *Store) CreateUser(ctx context.Context, u User) (User, error) {
	email, hash := normalizeEmail(u.Email)
	u.ID = s.newID()
	u.Email = email
	var ms int64
	u.CreatedAt, ms = s.timestamp()
	_, err := s.db.ExecContext(ctx, `insert into users(user_id, email, email_hash64, password_hash, created_at)
		values (?, ?, ?, ?, ?)`, u.ID, u.Email, hash, u.PasswordHash, ms)
	if isUniqueViolation(err) {
		return User{}, EmailTaken{Email: email}
	} else if err != nil {
		return User{}, fmt.Errorf("unable to create user, cause %w", err)
	}
	return u, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (User, error) {
	email, hash := normalizeEmail(email)
	return s.scanUser(s.db.QueryRowContext(ctx, `select user_id, email, password_hash, created_at
		from users where email_hash64 = ? and email = ?`, hash, email), email)
}

func (s *Store) FindUser(ctx context.Context, id string) (User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `select user_id, email, password_hash, created_at
		from users where user_id = ?`, id), id)
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `select count(*) from users`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("unable to count users, cause %w", err)
	}
	return n, nil
}

func (s *Store) scanUser(row *sql.Row, key string) (User, error) {
	var u User
	var ms int64
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, RecordNotFound{Table: "users", ID: key}
	} else if err != nil {
		return User{}, fmt.Errorf("unable to load user %v, cause %w", key, err)
	}
	u.CreatedAt = fromMillis(ms)
	return u, nil
}
