package domain

import "errors"

var (
	// ErrNotAuthenticated is returned when a flow requires a session and none exists.
	ErrNotAuthenticated = errors.New("not signed in")
	// ErrNotAdmin is returned when a non-admin reaches an admin-only flow.
	ErrNotAdmin = errors.New("admin role required")
	// ErrQuestionNotFound indicates an answer targets an unknown question ID.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates an answer index falls outside the option list.
	ErrOptionNotFound = errors.New("option not found")
	// ErrEmptyQuizCode is returned before any network call when the entered code is blank.
	ErrEmptyQuizCode = errors.New("quiz code is empty")
)
