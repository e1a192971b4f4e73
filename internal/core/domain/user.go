package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// WorkerTrades is the fixed set of service categories a user can be promoted to.
var WorkerTrades = []string{
	"plumber",
	"electrician",
	"carpenter",
	"painter",
	"gardener",
	"cleaner",
}

var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrUserNotFound = errors.New("user not found")
var ErrWorkerNotFound = errors.New("worker not found")
var ErrWeakPassword = errors.New("password is not strong enough")
var ErrInvalidRole = errors.New("invalid role")
var ErrForbidden = errors.New("access forbidden")

// IsWorkerTrade reports whether role is one of the worker service categories.
func IsWorkerTrade(role string) bool {
	for _, t := range WorkerTrades {
		if t == role {
			return true
		}
	}
	return false
}

// IsValidRole reports whether role is any recognised role, worker or otherwise.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin || IsWorkerTrade(role)
}

// User models an account in the marketplace. Role starts as "user" and is
// promoted to a worker trade by the application review workflow.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
