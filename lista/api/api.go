package api

import (
	"net/http"

	"github.com/andrebq/bolulista/internal/webresult"
	"github.com/andrebq/bolulista/lista"
	"github.com/andrebq/bolulista/session"
	"github.com/andrebq/bolulista/store"
	"github.com/julienschmidt/httprouter"
)

const (
	maxFormSize = 64 << 10
)

type (
	// Guard runs before every handler, usually SecurityRealm.Protect
	Guard func(http.Handler) http.Handler

	categoryResponse struct {
		webresult.Result
		Category *store.Category `json:"category,omitempty"`
	}

	categoriesResponse struct {
		webresult.Result
		Categories []store.Category `json:"categories"`
	}

	itemResponse struct {
		webresult.Result
		Item *store.Item `json:"item,omitempty"`
	}

	itemsResponse struct {
		webresult.Result
		Items []store.Item `json:"items"`
	}
)

func Mount(router *httprouter.Router, svc *lista.Service, guard Guard) {
	if guard == nil {
		guard = func(h http.Handler) http.Handler { return h }
	}
	router.Handler("GET", "/categories", guard(listCategories(svc)))
	router.Handler("POST", "/categories", guard(createCategory(svc)))
	router.Handler("GET", "/items", guard(listItems(svc)))
	router.Handler("POST", "/items", guard(createItem(svc)))
	router.Handler("PUT", "/items/:id", guard(updateItem(svc)))
	router.Handler("DELETE", "/items/:id", guard(deleteItem(svc)))
}

func itemInput(w http.ResponseWriter, r *http.Request) (lista.ItemInput, error) {
	if err := webresult.ParseForm(w, r, maxFormSize); err != nil {
		return lista.ItemInput{}, err
	}
	return lista.ItemInput{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Link:        r.PostFormValue("link"),
		ImageURL:    r.PostFormValue("imageUrl"),
		CategoryID:  r.PostFormValue("categoryId"),
	}, nil
}

func itemID(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}

func listCategories(svc *lista.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		categories, err := svc.ListCategories(ctx, session.FromContext(ctx))
		if err != nil {
			webresult.Fail(ctx, w, err, "unable to list categories")
			return
		}
		webresult.OK(w, categoriesResponse{Result: webresult.Success, Categories: categories})
	}
}

func createCategory(svc *lista.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := webresult.ParseForm(w, r, maxFormSize); err != nil {
			webresult.Fail(ctx, w, err, "unable to create category")
			return
		}
		category, err := svc.CreateCategory(ctx, session.FromContext(ctx), lista.CategoryInput{
			Title: r.PostFormValue("title"),
		})
		if err != nil {
			webresult.Fail(ctx, w, err, "unable to create category")
			return
		}
		webresult.OK(w, categoryResponse{Result: webresult.Success, Category: &category})
	}
}

func listItems(svc *lista.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		items, err := svc.ListItems(ctx, session.FromContext(ctx))
		if err != nil {
			webresult.Fail(ctx, w, err, "unable to list items")
			return
		}
		webresult.OK(w, itemsResponse{Result: webresult.Success, Items: items})
	}
}

func createItem(svc *lista.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		in, err := itemInput(w, r)
		if err != nil {
			webresult.Fail(ctx, w, err, "unable to create item")
			return
		}
		item, err := svc.CreateItem(ctx, session.FromContext(ctx), in)
		if err != nil {
			webresult.Fail(ctx, w, err, "unable to create item")
			return
		}
		webresult.OK(w, itemResponse{Result: webresult.Success, Item: &item})
	}
}

func updateItem(svc *lista.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		in, err := itemInput(w, r)
		if err != nil {
			webresult.Fail(ctx, w, err, "unable to update item")
			return
		}
		item, err := svc.UpdateItem(ctx, session.FromContext(ctx), itemID(r), in)
		if err != nil {
			webresult.Fail(ctx, w, err, "unable to update item")
			return
		}
		webresult.OK(w, itemResponse{Result: webresult.Success, Item: &item})
	}
}

func deleteItem(svc *lista.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		err := svc.DeleteItem(ctx, session.FromContext(ctx), itemID(r))
		if err != nil {
			webresult.Fail(ctx, w, err, "unable to delete item")
			return
		}
		webresult.OK(w, webresult.Success)
	}
}
