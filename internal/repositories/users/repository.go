// Package users persists the credential store: one JSON array of every
// registered account under a single key.
package users

import (
	"context"
	"strings"

	"github.com/nero7007/Professional-To-Do-List/internal/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.User, error)
	// Update loads the whole collection, applies fn and writes it back.
	Update(ctx context.Context, fn func(users []models.User) ([]models.User, error)) error
}

// FindByEmail returns the index of the user with the given email, compared
// case-insensitively, or -1.
func FindByEmail(users []models.User, email string) int {
	for i, u := range users {
		if strings.EqualFold(u.Email, email) {
			return i
		}
	}
	return -1
}

func FindByID(users []models.User, id string) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
