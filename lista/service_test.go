package lista

import (
	"context"
	"errors"
	"testing"

	"github.com/andrebq/bolulista/internal/testutil"
	"github.com/andrebq/bolulista/internal/validate"
	"github.com/andrebq/bolulista/session"
	"github.com/andrebq/bolulista/store"
	"github.com/stretchr/testify/require"
)

var (
	alice = session.Identity{UserID: "alice"}
	bob   = session.Identity{UserID: "bob"}
)

// untouchable fails the test if any record is accessed
type untouchable struct {
	Records
	t *testing.T
}

func (u untouchable) CreateCategory(context.Context, store.Category) (store.Category, error) {
	u.t.Fatal("CreateCategory should not be called")
	return store.Category{}, nil
}
func (u untouchable) ListCategories(context.Context, string) ([]store.Category, error) {
	u.t.Fatal("ListCategories should not be called")
	return nil, nil
}
func (u untouchable) FindCategory(context.Context, store.OwnedRow) (store.Category, error) {
	u.t.Fatal("FindCategory should not be called")
	return store.Category{}, nil
}
func (u untouchable) CreateItem(context.Context, store.Item) (store.Item, error) {
	u.t.Fatal("CreateItem should not be called")
	return store.Item{}, nil
}
func (u untouchable) ListItems(context.Context, string) ([]store.Item, error) {
	u.t.Fatal("ListItems should not be called")
	return nil, nil
}
func (u untouchable) UpdateItems(context.Context, store.OwnedRow, store.ItemChanges) (int64, error) {
	u.t.Fatal("UpdateItems should not be called")
	return 0, nil
}
func (u untouchable) DeleteItems(context.Context, store.OwnedRow) (int64, error) {
	u.t.Fatal("DeleteItems should not be called")
	return 0, nil
}

func newService(ctx context.Context, t *testing.T) (*Service, *store.Store) {
	st, cleanup := testutil.AcquireStore(ctx, t)
	t.Cleanup(cleanup)
	return NewService(st), st
}

func TestWithoutIdentity(t *testing.T) {
	ctx := context.Background()
	svc := NewService(untouchable{t: t})
	nobody := session.Identity{}

	_, err := svc.CreateCategory(ctx, nobody, CategoryInput{Title: "Groceries"})
	require.ErrorIs(t, err, session.ErrAuthenticationRequired)
	_, err = svc.ListCategories(ctx, nobody)
	require.ErrorIs(t, err, session.ErrAuthenticationRequired)
	_, err = svc.CreateItem(ctx, nobody, ItemInput{Name: "Milk", CategoryID: "c1"})
	require.ErrorIs(t, err, session.ErrAuthenticationRequired)
	_, err = svc.ListItems(ctx, nobody)
	require.ErrorIs(t, err, session.ErrAuthenticationRequired)
	_, err = svc.UpdateItem(ctx, nobody, "i1", ItemInput{Name: "Milk", CategoryID: "c1"})
	require.ErrorIs(t, err, session.ErrAuthenticationRequired)
	err = svc.DeleteItem(ctx, nobody, "i1")
	require.ErrorIs(t, err, session.ErrAuthenticationRequired)
}

func TestCreateItemInOwnCategory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(ctx, t)

	groceries, err := svc.CreateCategory(ctx, alice, CategoryInput{Title: " Groceries "})
	require.NoError(t, err)
	require.Equal(t, "Groceries", groceries.Title)
	require.Equal(t, alice.UserID, groceries.OwnerID)

	milk, err := svc.CreateItem(ctx, alice, ItemInput{Name: "Milk", CategoryID: groceries.ID})
	require.NoError(t, err)
	require.Equal(t, "Groceries", milk.CategoryTitle)
	require.Equal(t, alice.UserID, milk.OwnerID)

	items, err := svc.ListItems(ctx, alice)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, milk.ID, items[0].ID)

	items, err = svc.ListItems(ctx, bob)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestCreateItemInForeignCategory(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(ctx, t)

	bobs, err := svc.CreateCategory(ctx, bob, CategoryInput{Title: "Tools"})
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, alice, ItemInput{Name: "Hammer", CategoryID: bobs.ID})
	var invalid InvalidCategory
	require.True(t, errors.As(err, &invalid), "unexpected error %v", err)
	require.Equal(t, "invalid category", invalid.UserMessage())

	_, err = svc.CreateItem(ctx, alice, ItemInput{Name: "Hammer", CategoryID: "missing"})
	require.True(t, errors.As(err, &invalid), "unexpected error %v", err)

	for _, owner := range []string{alice.UserID, bob.UserID} {
		items, err := st.ListItems(ctx, owner)
		require.NoError(t, err)
		require.Empty(t, items)
	}
}

func TestItemValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(ctx, t)
	cat, err := svc.CreateCategory(ctx, alice, CategoryInput{Title: "Groceries"})
	require.NoError(t, err)

	type testCase struct {
		input ItemInput
		field string
		msg   string
	}
	for _, tc := range []testCase{
		{ItemInput{Name: " ", CategoryID: ""}, "name", "name is required"},
		{ItemInput{Name: "Milk"}, "categoryId", "category is required"},
		{ItemInput{Name: "Milk", CategoryID: cat.ID, Link: "not a url"}, "link", "link must be an http(s) url"},
		{ItemInput{Name: "Milk", CategoryID: cat.ID, ImageURL: "javascript:alert(1)"}, "imageUrl", "image must be an http(s) url"},
	} {
		_, err := svc.CreateItem(ctx, alice, tc.input)
		var invalid validate.InvalidField
		require.True(t, errors.As(err, &invalid), "unexpected error %v", err)
		require.Equal(t, tc.field, invalid.Field)
		require.Equal(t, tc.msg, invalid.UserMessage())
	}

	_, err = svc.CreateCategory(ctx, alice, CategoryInput{Title: ""})
	var invalid validate.InvalidField
	require.True(t, errors.As(err, &invalid))
	require.Equal(t, "title is required", invalid.Message)
}

func TestCannotTouchOtherUsersItems(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(ctx, t)

	bobsCategory, err := svc.CreateCategory(ctx, bob, CategoryInput{Title: "Tools"})
	require.NoError(t, err)
	bobsItem, err := svc.CreateItem(ctx, bob, ItemInput{Name: "Hammer", CategoryID: bobsCategory.ID})
	require.NoError(t, err)
	alicesCategory, err := svc.CreateCategory(ctx, alice, CategoryInput{Title: "Groceries"})
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, alice, bobsItem.ID, ItemInput{Name: "Mine now", CategoryID: alicesCategory.ID})
	var notFound NotFound
	require.True(t, errors.As(err, &notFound), "unexpected error %v", err)
	require.Equal(t, "not found", notFound.UserMessage())

	err = svc.DeleteItem(ctx, alice, bobsItem.ID)
	require.True(t, errors.As(err, &notFound), "unexpected error %v", err)

	// same answer for rows that do not exist at all
	err = svc.DeleteItem(ctx, alice, "does-not-exist")
	var missing NotFound
	require.True(t, errors.As(err, &missing))
	require.Equal(t, notFound.UserMessage(), missing.UserMessage())

	items, err := svc.ListItems(ctx, bob)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Hammer", items[0].Name)
	require.Equal(t, bobsCategory.ID, items[0].CategoryID)
}

func TestUpdateAndDeleteOwnItem(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(ctx, t)

	groceries, err := svc.CreateCategory(ctx, alice, CategoryInput{Title: "Groceries"})
	require.NoError(t, err)
	dairy, err := svc.CreateCategory(ctx, alice, CategoryInput{Title: "Dairy"})
	require.NoError(t, err)
	milk, err := svc.CreateItem(ctx, alice, ItemInput{Name: "Milk", CategoryID: groceries.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, alice, milk.ID, ItemInput{
		Name:        "Oat milk",
		Description: "1L",
		Link:        "https://example.com/oat-milk",
		CategoryID:  dairy.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "Oat milk", updated.Name)
	require.Equal(t, "Dairy", updated.CategoryTitle)
	require.Equal(t, "https://example.com/oat-milk", updated.Link)

	bobsCategory, err := svc.CreateCategory(ctx, bob, CategoryInput{Title: "Tools"})
	require.NoError(t, err)
	_, err = svc.UpdateItem(ctx, alice, milk.ID, ItemInput{Name: "Oat milk", CategoryID: bobsCategory.ID})
	var invalid InvalidCategory
	require.True(t, errors.As(err, &invalid), "moving an item into a foreign category should fail, got %v", err)

	require.NoError(t, svc.DeleteItem(ctx, alice, milk.ID))
	err = svc.DeleteItem(ctx, alice, milk.ID)
	var notFound NotFound
	require.True(t, errors.As(err, &notFound))
}
