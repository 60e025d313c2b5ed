package game

import (
	"errors"
	"fmt"
)

// Kind classifies an engine failure so the transport layer can relay a
// user-facing message without inspecting error strings.
type Kind string

const (
	KindNotFound         Kind = "NotFound"
	KindInvalidState     Kind = "InvalidState"
	KindCardNotHeld      Kind = "CardNotHeld"
	KindCardNotInPlay    Kind = "CardNotInPlay"
	KindPositionConflict Kind = "PositionConflict"
	KindSessionConflict  Kind = "SessionConflict"
	KindStorage          Kind = "Storage"
)

// GameError carries a kind and a user-facing message, optionally wrapping the
// underlying cause.
type GameError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GameError) Unwrap() error {
	return e.Err
}

func NewError(kind Kind, message string) *GameError {
	return &GameError{Kind: kind, Message: message}
}

// Wrap returns a copy of the error with the cause attached, leaving the
// sentinel itself untouched.
func (e *GameError) Wrap(err error) *GameError {
	return &GameError{Kind: e.Kind, Message: e.Message, Err: err}
}

// IsKind reports whether err is a GameError of the given kind.
func IsKind(err error, kind Kind) bool {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.Kind == kind
	}
	return false
}

// KindOf extracts the kind, defaulting to Storage for foreign errors.
func KindOf(err error) Kind {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.Kind
	}
	return KindStorage
}

var (
	ErrGameNotFound   = NewError(KindNotFound, "game does not exist")
	ErrPlayerNotFound = NewError(KindNotFound, "player does not exist")

	ErrGameStarted    = NewError(KindInvalidState, "game has already started")
	ErrGameNotStarted = NewError(KindInvalidState, "game has not started")
	ErrGameFull       = NewError(KindInvalidState, "game is full")
	ErrNotEnough      = NewError(KindInvalidState, "not enough players to start")
	ErrNotYourTurn    = NewError(KindInvalidState, "it is not your turn")
	ErrNoRecentClaim  = NewError(KindInvalidState, "turn transfer requires a correct declare")
	ErrInvalidCard    = NewError(KindInvalidState, "card is not part of the deck")
	ErrInvalidAsk     = NewError(KindInvalidState, "ask request is not allowed")
	ErrInvalidClaim   = NewError(KindInvalidState, "declaration is malformed")

	ErrCardNotHeld   = NewError(KindCardNotHeld, "card is not in hand")
	ErrCardNotInPlay = NewError(KindCardNotInPlay, "card has already been declared")

	ErrPositionTaken = NewError(KindPositionConflict, "position is already occupied")
	ErrNotSameTeam   = NewError(KindPositionConflict, "players are not on the same team")
	ErrNotOwner      = NewError(KindPositionConflict, "only the game owner may do that")

	ErrSessionConflict = NewError(KindSessionConflict, "another session is already active")
)
