package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrEmptyPlayerName = errors.New("player name must not be empty")

	// Match errors
	ErrMatchNotFound  = errors.New("match not found")
	ErrNoPlayers      = errors.New("cannot create a match without players")
	ErrAlreadyDecided = errors.New("match already has a winner")
	ErrNotParticipant = errors.New("player is not part of this match")
	ErrMatchChanged   = errors.New("match was changed by another update")

	// Storage errors
	ErrDuplicateID = errors.New("identifier already in use")
)
