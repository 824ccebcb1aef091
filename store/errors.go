package store

import (
	"errors"
	"fmt"
)

type (
	RecordNotFound struct {
		Table string
		ID    string
	}

	EmailTaken struct {
		Email string
	}
)

func (r RecordNotFound) Error() string {
	return fmt.Sprintf("%v %v not found", r.Table, r.ID)
}

func (e EmailTaken) Error() string {
	return fmt.Sprintf("email %v is already in use", e.Email)
}

func IsNotFound(err error) bool {
	var nf RecordNotFound
	return errors.As(err, &nf)
}

func IsEmailTaken(err error) bool {
	var et EmailTaken
	return errors.As(err, &et)
}
