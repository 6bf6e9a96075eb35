package domain

import (
	"context"
	"errors"
)

// UserProfile is the demo student profile attached to a session.
type UserProfile struct {
	StudentName string `json:"studentName"`
	SchoolName  string `json:"schoolName"`
	Grade       string `json:"grade"`
	StudentID   string `json:"studentId"`
}

// ErrEmptyCredential sign-in requires a non-empty id and password
var ErrEmptyCredential = errors.New("Identifiant et mot de passe requis")

type UserUseCase interface {
	// SignIn accepts any non-empty credential pair and returns the demo
	// profile plus a signed session token.
	SignIn(ctx context.Context, studentID, password string) (*UserProfile, string, error)
	// SignOut blacklists the token for its remaining lifetime and clears the
	// persisted session.
	SignOut(ctx context.Context, tokenStr string) error
	Profile(ctx context.Context) (*UserProfile, bool)
}
