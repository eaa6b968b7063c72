package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Game errors
	ErrNoActiveGame = errors.New("no active game")

	// Daily challenge errors
	ErrDailyNotFound = errors.New("daily challenge not found")
	ErrDailyExists   = errors.New("daily challenge already exists")
)
