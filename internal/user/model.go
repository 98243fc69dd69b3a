package user

import "time"

// User is a participant that expenses can be split with
type User struct {
	ID        string
	Username  string
	Email     string
	CreatedAt time.Time
}
