package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type (
	Category struct {
		ID        string    `json:"id"`
		OwnerID   string    `json:"userId"`
		Title     string    `json:"title"`
		CreatedAt time.Time `json:"createdAt"`
	}

	Item struct {
		ID            string    `json:"id"`
		OwnerID       string    `json:"userId"`
		CategoryID    string    `json:"categoryId"`
		CategoryTitle string    `json:"categoryTitle,omitempty"`
		Name          string    `json:"name"`
		Description   string    `json:"description,omitempty"`
		Link          string    `json:"link,omitempty"`
		ImageURL      string    `json:"imageUrl,omitempty"`
		CreatedAt     time.Time `json:"createdAt"`
	}

	// OwnedRow identifies a single row of a given owner
	OwnedRow struct {
		ID      string
		OwnerID string
	}

	ItemChanges struct {
		CategoryID  string
		Name        string
		Description string
		Link        string
		ImageURL    string
	}
)

func (o OwnedRow) valid() error {
	if len(o.OwnerID) == 0 {
		return errMissingOwner
	}
	return nil
}

func (s *Store) CreateCategory(ctx context.Context, c Category) (Category, error) {
	if len(c.OwnerID) == 0 {
		return Category{}, errMissingOwner
	}
	c.ID = s.newID()
	var ms int64
	c.CreatedAt, ms = s.timestamp()
	_, err := s.db.ExecContext(ctx, `insert into categories(category_id, user_id, title, created_at)
		values (?, ?, ?, ?)`, c.ID, c.OwnerID, c.Title, ms)
	if err != nil {
		return Category{}, fmt.Errorf("unable to create category, cause %w", err)
	}
	return c, nil
}

func (s *Store) FindCategory(ctx context.Context, filter OwnedRow) (Category, error) {
	if err := filter.valid(); err != nil {
		return Category{}, err
	}
	var c Category
	var ms int64
	err := s.db.QueryRowContext(ctx, `select category_id, user_id, title, created_at
		from categories where category_id = ? and user_id = ?`, filter.ID, filter.OwnerID).
		Scan(&c.ID, &c.OwnerID, &c.Title, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, RecordNotFound{Table: "categories", ID: filter.ID}
	} else if err != nil {
		return Category{}, fmt.Errorf("unable to load category %v, cause %w", filter.ID, err)
	}
	c.CreatedAt = fromMillis(ms)
	return c, nil
}

func (s *Store) ListCategories(ctx context.Context, ownerID string) ([]Category, error) {
	if len(ownerID) == 0 {
		return nil, errMissingOwner
	}
	rows, err := s.db.QueryContext(ctx, `select category_id, user_id, title, created_at
		from categories where user_id = ? order by title asc, created_at asc`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("unable to list categories, cause %w", err)
	}
	defer rows.Close()
	out := []Category{}
	for rows.Next() {
		var c Category
		var ms int64
		err = rows.Scan(&c.ID, &c.OwnerID, &c.Title, &ms)
		if err != nil {
			return nil, fmt.Errorf("unable to scan category, cause %w", err)
		}
		c.CreatedAt = fromMillis(ms)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateItem(ctx context.Context, i Item) (Item, error) {
	if len(i.OwnerID) == 0 {
		return Item{}, errMissingOwner
	}
	i.ID = s.newID()
	var ms int64
	i.CreatedAt, ms = s.timestamp()
	_, err := s.db.ExecContext(ctx, `insert into items(item_id, user_id, category_id, name, description, link, image_url, created_at)
		values (?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.OwnerID, i.CategoryID, i.Name, nullable(i.Description), nullable(i.Link), nullable(i.ImageURL), ms)
	if err != nil {
		return Item{}, fmt.Errorf("unable to create item, cause %w", err)
	}
	return i, nil
}

const selectItems = `select i.item_id, i.user_id, i.category_id, c.title, i.name,
	i.description, i.link, i.image_url, i.created_at
	from items i
	inner join categories c on c.category_id = i.category_id`

func (s *Store) FindItem(ctx context.Context, filter OwnedRow) (Item, error) {
	if err := filter.valid(); err != nil {
		return Item{}, err
	}
	rows, err := s.db.QueryContext(ctx, selectItems+` where i.item_id = ? and i.user_id = ?`, filter.ID, filter.OwnerID)
	if err != nil {
		return Item{}, fmt.Errorf("unable to load item %v, cause %w", filter.ID, err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Item{}, fmt.Errorf("unable to load item %v, cause %w", filter.ID, err)
		}
		return Item{}, RecordNotFound{Table: "items", ID: filter.ID}
	}
	return scanItem(rows)
}

// ListItems returns the items of ownerID, newest first
func (s *Store) ListItems(ctx context.Context, ownerID string) ([]Item, error) {
	if len(ownerID) == 0 {
		return nil, errMissingOwner
	}
	rows, err := s.db.QueryContext(ctx, selectItems+` where i.user_id = ? order by i.created_at desc, i.rowid desc`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("unable to list items, cause %w", err)
	}
	defer rows.Close()
	out := []Item{}
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// UpdateItems applies changes to the rows matching filter and returns how
// many of them were changed.
func (s *Store) UpdateItems(ctx context.Context, filter OwnedRow, changes ItemChanges) (int64, error) {
	if err := filter.valid(); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `update items set category_id = ?, name = ?, description = ?, link = ?, image_url = ?
		where item_id = ? and user_id = ?`,
		changes.CategoryID, changes.Name, nullable(changes.Description), nullable(changes.Link), nullable(changes.ImageURL),
		filter.ID, filter.OwnerID)
	if err != nil {
		return 0, fmt.Errorf("unable to update item %v, cause %w", filter.ID, err)
	}
	return res.RowsAffected()
}

// DeleteItems removes the rows matching filter and returns how many of
// them were removed.
func (s *Store) DeleteItems(ctx context.Context, filter OwnedRow) (int64, error) {
	if err := filter.valid(); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `delete from items where item_id = ? and user_id = ?`, filter.ID, filter.OwnerID)
	if err != nil {
		return 0, fmt.Errorf("unable to delete item %v, cause %w", filter.ID, err)
	}
	return res.RowsAffected()
}

func scanItem(rows *sql.Rows) (Item, error) {
	var i Item
	var description, link, image sql.NullString
	var ms int64
	err := rows.Scan(&i.ID, &i.OwnerID, &i.CategoryID, &i.CategoryTitle, &i.Name,
		&description, &link, &image, &ms)
	if err != nil {
		return Item{}, fmt.Errorf("unable to scan item, cause %w", err)
	}
	i.Description = description.String
	i.Link = link.String
	i.ImageURL = image.String
	i.CreatedAt = fromMillis(ms)
	return i, nil
}
