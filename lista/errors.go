package lista

import (
	"fmt"
	"net/http"
)

const (
	msgNameRequired     = "name is required"
	msgCategoryRequired = "category is required"
	msgTitleRequired    = "title is required"
	msgInvalidLink      = "link must be an http(s) url"
	msgInvalidImage     = "image must be an http(s) url"
	msgInvalidCategory  = "invalid category"
	msgNotFound         = "not found"
)

type (
	// InvalidCategory is returned when the category does not exist or
	// belongs to another user.
	InvalidCategory struct {
		ID string
	}

	// NotFound does not distinguish between missing rows and rows owned by
	// another user.
	NotFound struct {
		Kind string
		ID   string
	}
)

func (i InvalidCategory) Error() string {
	return fmt.Sprintf("lista: category %v is not available", i.ID)
}
func (InvalidCategory) UserMessage() string { return msgInvalidCategory }
func (InvalidCategory) HTTPStatus() int     { return http.StatusBadRequest }

func (n NotFound) Error() string {
	return fmt.Sprintf("lista: %v %v not found", n.Kind, n.ID)
}
func (NotFound) UserMessage() string { return msgNotFound }
func (NotFound) HTTPStatus() int     { return http.StatusNotFound }
