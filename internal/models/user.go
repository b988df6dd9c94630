// Package models defines the records persisted in the local store and the
// view types built from them.
package models

import "time"

// User is a registered account. PasswordDigest is serialized as "password".
type User struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	PasswordDigest   string    `json:"password"`
	IsVerified       bool      `json:"isVerified"`
	VerificationCode string    `json:"verificationCode"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Profile is the part of a User that is safe to show.
type Profile struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	IsVerified bool   `json:"isVerified"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Phone:      u.Phone,
		IsVerified: u.IsVerified,
	}
}

func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
