package models

import "time"

// User is a registered account. PasswordDigest is a one-way digest and is
// never exposed.
type User struct {
	ID             string
	Email          string
	PasswordDigest []byte
	CreatedAt      time.Time
}

// UserView is the external projection of a User.
type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email}
}
