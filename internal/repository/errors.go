package repository

import "errors"

// Common repository errors
var (
	// ErrProjectNotFound is returned when a project is not found
	ErrProjectNotFound = errors.New("project not found")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrCommentNotFound is returned when a comment is not found
	ErrCommentNotFound = errors.New("comment not found")

	// ErrDuplicateKey is returned when a project key is already taken
	ErrDuplicateKey = errors.New("project key already exists")

	// ErrUserNotFound is returned when an update targets a missing user
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when another account already uses the email
	ErrEmailTaken = errors.New("email already registered")

	// ErrTeamNotFound is returned when a team is not found
	ErrTeamNotFound = errors.New("team not found")
)
