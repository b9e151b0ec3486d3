package database

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both "does not exist" and "exists but belongs to
	// someone else". Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")

	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateName is returned when an integration name is already used
	// inside the same session.
	ErrDuplicateName = errors.New("name already exists")
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
