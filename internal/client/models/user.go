// Package models holds the client's view of the records served by the API.
package models

import "time"

// User mirrors one record of the "data" payload.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// UserFields is the editable part of a record as typed into the form.
type UserFields struct {
	Name  string
	Email string
	Phone string
}

// PhoneOrEmpty returns the phone number, or "" when none is stored.
func (u User) PhoneOrEmpty() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}
