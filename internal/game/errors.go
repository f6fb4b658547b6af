package game

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when adopting with a blank name.
	ErrEmptyName = errors.New("pet name must not be empty")
	// ErrUnknownSpecies is returned when adopting a species not in the catalog.
	ErrUnknownSpecies = errors.New("unknown species")
	// ErrNoActivePet is returned when a care action has no pet to target.
	ErrNoActivePet = errors.New("no active pet")
	// ErrBusy is returned while a reaction request is still in flight.
	ErrBusy = errors.New("a reaction is still pending")
)

// NotFoundError reports a pet id that is not in the game state.
type NotFoundError struct {
	PetID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pet %q not found", e.PetID)
}

// InvalidActionError reports an unrecognized care action or food type.
type InvalidActionError struct {
	Kind string
	Food string
}

func (e *InvalidActionError) Error() string {
	if e.Food != "" {
		return fmt.Sprintf("invalid action %q with food %q", e.Kind, e.Food)
	}
	return fmt.Sprintf("invalid action %q", e.Kind)
}

// PersistenceError reports a saved blob that could not be read or decoded.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
