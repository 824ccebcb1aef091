// Package lista manages the categories and items of a shopping list.
//
// Every operation receives the identity resolved from the session and
// refuses to run without one. The identity is always part of the filter
// sent to the store, so a user cannot see, change or even detect rows
// owned by someone else: those rows are reported as "not found".
package lista

import (
	"context"
	"strings"

	"github.com/andrebq/bolulista/internal/validate"
	"github.com/andrebq/bolulista/session"
	"github.com/andrebq/bolulista/store"
)

type (
	Records interface {
		CreateCategory(ctx context.Context, c store.Category) (store.Category, error)
		ListCategories(ctx context.Context, ownerID string) ([]store.Category, error)
		FindCategory(ctx context.Context, filter store.OwnedRow) (store.Category, error)

		CreateItem(ctx context.Context, i store.Item) (store.Item, error)
		ListItems(ctx context.Context, ownerID string) ([]store.Item, error)
		FindItem(ctx context.Context, filter store.OwnedRow) (store.Item, error)
		UpdateItems(ctx context.Context, filter store.OwnedRow, changes store.ItemChanges) (int64, error)
		DeleteItems(ctx context.Context, filter store.OwnedRow) (int64, error)
	}

	CategoryInput struct {
		Title string
	}

	ItemInput struct {
		Name        string
		Description string
		Link        string
		ImageURL    string
		CategoryID  string
	}

	Service struct {
		records Records
	}
)

func NewService(records Records) *Service {
	return &Service{records: records}
}

func (in CategoryInput) normalize() CategoryInput {
	in.Title = strings.TrimSpace(in.Title)
	return in
}

func (in ItemInput) normalize() ItemInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Link = strings.TrimSpace(in.Link)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	return in
}

func (in ItemInput) validate() error {
	return validate.First(
		validate.Required("name", in.Name, msgNameRequired),
		validate.Required("categoryId", in.CategoryID, msgCategoryRequired),
		validate.OptionalHTTPURL("link", in.Link, msgInvalidLink),
		validate.OptionalHTTPURL("imageUrl", in.ImageURL, msgInvalidImage),
	)
}

func requireOwner(who session.Identity) error {
	if who.IsZero() {
		return session.ErrAuthenticationRequired
	}
	return nil
}

func (s *Service) CreateCategory(ctx context.Context, who session.Identity, in CategoryInput) (store.Category, error) {
	if err := requireOwner(who); err != nil {
		return store.Category{}, err
	}
	in = in.normalize()
	if err := validate.Required("title", in.Title, msgTitleRequired)(); err != nil {
		return store.Category{}, err
	}
	return s.records.CreateCategory(ctx, store.Category{OwnerID: who.UserID, Title: in.Title})
}

func (s *Service) ListCategories(ctx context.Context, who session.Identity) ([]store.Category, error) {
	if err := requireOwner(who); err != nil {
		return nil, err
	}
	return s.records.ListCategories(ctx, who.UserID)
}

// CreateItem adds an item to one of the categories owned by who.
func (s *Service) CreateItem(ctx context.Context, who session.Identity, in ItemInput) (store.Item, error) {
	if err := requireOwner(who); err != nil {
		return store.Item{}, err
	}
	in = in.normalize()
	if err := in.validate(); err != nil {
		return store.Item{}, err
	}
	category, err := s.ownedCategory(ctx, who, in.CategoryID)
	if err != nil {
		return store.Item{}, err
	}
	item, err := s.records.CreateItem(ctx, store.Item{
		OwnerID:     who.UserID,
		CategoryID:  category.ID,
		Name:        in.Name,
		Description: in.Description,
		Link:        in.Link,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return store.Item{}, err
	}
	item.CategoryTitle = category.Title
	return item, nil
}

func (s *Service) ListItems(ctx context.Context, who session.Identity) ([]store.Item, error) {
	if err := requireOwner(who); err != nil {
		return nil, err
	}
	return s.records.ListItems(ctx, who.UserID)
}

// UpdateItem replaces the fields of item id. Items owned by other users are
// reported as NotFound.
func (s *Service) UpdateItem(ctx context.Context, who session.Identity, id string, in ItemInput) (store.Item, error) {
	if err := requireOwner(who); err != nil {
		return store.Item{}, err
	}
	in = in.normalize()
	if err := in.validate(); err != nil {
		return store.Item{}, err
	}
	if _, err := s.ownedCategory(ctx, who, in.CategoryID); err != nil {
		return store.Item{}, err
	}
	row := store.OwnedRow{ID: id, OwnerID: who.UserID}
	n, err := s.records.UpdateItems(ctx, row, store.ItemChanges{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Link:        in.Link,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return store.Item{}, err
	}
	if n == 0 {
		return store.Item{}, NotFound{Kind: "item", ID: id}
	}
	item, err := s.records.FindItem(ctx, row)
	if store.IsNotFound(err) {
		// deleted right after the update
		return store.Item{}, NotFound{Kind: "item", ID: id}
	}
	return item, err
}

func (s *Service) DeleteItem(ctx context.Context, who session.Identity, id string) error {
	if err := requireOwner(who); err != nil {
		return err
	}
	n, err := s.records.DeleteItems(ctx, store.OwnedRow{ID: id, OwnerID: who.UserID})
	if err != nil {
		return err
	}
	if n == 0 {
		return NotFound{Kind: "item", ID: id}
	}
	return nil
}

func (s *Service) ownedCategory(ctx context.Context, who session.Identity, id string) (store.Category, error) {
	category, err := s.records.FindCategory(ctx, store.OwnedRow{ID: id, OwnerID: who.UserID})
	if store.IsNotFound(err) {
		return store.Category{}, InvalidCategory{ID: id}
	}
	return category, err
}
