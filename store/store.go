// Package store keeps users, categories and items in a sqlite database.
//
// The store does not know about sessions, but every method that touches
// categories or items requires the owner id and uses it as part of the
// filter. Callers get "not found" for rows owned by someone else.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

type (
	Store struct {
		db  *sql.DB
		now func() time.Time
	}
)

var (
	errMissingOwner = errors.New("store: owner id is required")
)

func openDatabase(ctx context.Context, file string) (*sql.DB, error) {
	if dir := filepath.Dir(file); dir != "." {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return nil, fmt.Errorf("unable to create directory %v to store database, cause %w", dir, err)
		}
	}
	connstr := fmt.Sprintf("file:%v?_journal=wal&_fk=1&_busy_timeout=5000&mode=rwc", file)
	conn, err := sql.Open("sqlite3", connstr)
	if err != nil {
		return nil, fmt.Errorf("unable to open %v, cause %w", file, err)
	}
	err = conn.PingContext(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to ping database %v, cause %w", file, err)
	}
	return conn, nil
}

// Open opens (or creates) the database at file and makes sure all tables
// exist.
func Open(ctx context.Context, file string) (*Store, error) {
	conn, err := openDatabase(ctx, file)
	if err != nil {
		return nil, err
	}
	s := &Store{db: conn, now: time.Now}
	err = s.init(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to init database %v, cause %w", file, err)
	}
	return s, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init(ctx context.Context) error {
	for _, cmd := range []string{
		`create table if not exists users(
			user_id text not null primary key,
			email text not null unique,
			email_hash64 integer not null,
			password_hash text not null,
			created_at integer not null
		)`,
		`create index if not exists idx_users_email_hash64
			on users(email_hash64)`,
		`create table if not exists categories(
			category_id text not null primary key,
			user_id text not null,
			title text not null,
			created_at integer not null
		)`,
		`create index if not exists idx_categories_user_id
			on categories(user_id)`,
		`create table if not exists items(
			item_id text not null primary key,
			user_id text not null,
			category_id text not null,
			name text not null,
			description text,
			link text,
			image_url text,
			created_at integer not null,
			foreign key(category_id) references categories(category_id)
		)`,
		`create index if not exists idx_items_user_id
			on items(user_id, created_at)`,
	} {
		_, err := s.db.ExecContext(ctx, cmd)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) newID() string {
	return uuid.NewString()
}

func (s *Store) timestamp() (time.Time, int64) {
	now := s.now().UTC().Truncate(time.Millisecond)
	return now, now.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func normalizeEmail(email string) (string, int64) {
	email = strings.ToLower(strings.TrimSpace(email))
	return email, int64(xxhash.Sum64String(email))
}

func isUniqueViolation(err error) bool {
	var sqerr sqlite3.Error
	if !errors.As(err, &sqerr) {
		return false
	}
	return sqerr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqerr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func nullable(s string) interface{} {
	if len(s) == 0 {
		return nil
	}
	return s
}
