package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moorebrett0/wonderpets/internal/achievement"
	"github.com/moorebrett0/wonderpets/internal/game"
	"github.com/moorebrett0/wonderpets/internal/pet"
	"github.com/moorebrett0/wonderpets/internal/savetime"
)

// Saves stores the game state and music preference in a Backend.
type Saves struct {
	backend Backend
}

var _ game.Persister = (*Saves)(nil)

// NewSaves wraps a backend.
func NewSaves(b Backend) *Saves {
	return &Saves{backend: b}
}

// LoadState returns the saved game, false if there is none, or a
// *game.PersistenceError if the blob cannot be read or decoded.
func (s *Saves) LoadState(ctx context.Context) (game.GameState, bool, error) {
	data, ok, err := s.backend.Get(ctx, StateKey)
	if err != nil {
		return game.GameState{}, false, &game.PersistenceError{Key: StateKey, Err: err}
	}
	if !ok {
		return game.GameState{}, false, nil
	}

	state, err := decodeState(data)
	if err != nil {
		return game.GameState{}, false, &game.PersistenceError{Key: StateKey, Err: fmt.Errorf("unmarshal state: %w", err)}
	}
	return state, true, nil
}

// SaveState writes the whole game state.
func (s *Saves) SaveState(ctx context.Context, state game.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return s.backend.Put(ctx, StateKey, data)
}

// LoadMusic returns the music preference, false if unset.
func (s *Saves) LoadMusic(ctx context.Context) (bool, error) {
	data, ok, err := s.backend.Get(ctx, MusicKey)
	if err != nil {
		return false, &game.PersistenceError{Key: MusicKey, Err: err}
	}
	if !ok {
		return false, nil
	}
	var enabled bool
	if err := json.Unmarshal(data, &enabled); err != nil {
		return false, &game.PersistenceError{Key: MusicKey, Err: fmt.Errorf("unmarshal music: %w", err)}
	}
	return enabled, nil
}

// SaveMusic writes the music preference.
func (s *Saves) SaveMusic(ctx context.Context, enabled bool) error {
	data, err := json.Marshal(enabled)
	if err != nil {
		return fmt.Errorf("marshal music: %w", err)
	}
	return s.backend.Put(ctx, MusicKey, data)
}

type (
	petRecord         pet.OwnedPet
	achievementRecord achievement.Achievement
)

// savedState mirrors game.GameState but takes timestamps raw, since older
// saves store them as epoch milliseconds.
type savedState struct {
	OwnedPets []struct {
		petRecord
		LastInteraction json.RawMessage `json:"lastInteraction"`
	} `json:"ownedPets"`
	ActivePetID       string `json:"activePetId"`
	UnlockProgress    int    `json:"unlockProgress"`
	TotalInteractions int    `json:"totalInteractions"`
	Achievements      []struct {
		achievementRecord
		UnlockedAt json.RawMessage `json:"unlockedAt"`
	} `json:"achievements"`
}

func decodeState(data []byte) (game.GameState, error) {
	var raw savedState
	if err := json.Unmarshal(data, &raw); err != nil {
		return game.GameState{}, err
	}

	state := game.GameState{
		ActivePetID:       raw.ActivePetID,
		UnlockProgress:    raw.UnlockProgress,
		TotalInteractions: raw.TotalInteractions,
	}
	if raw.OwnedPets != nil {
		state.OwnedPets = make([]pet.OwnedPet, 0, len(raw.OwnedPets))
	}
	for _, r := range raw.OwnedPets {
		p := pet.OwnedPet(r.petRecord)
		at, err := savetime.Decode(r.LastInteraction)
		if err != nil {
			return game.GameState{}, fmt.Errorf("pet %s: %w", p.ID, err)
		}
		p.LastInteraction = at
		state.OwnedPets = append(state.OwnedPets, p)
	}
	if raw.Achievements != nil {
		state.Achievements = make([]achievement.Achievement, 0, len(raw.Achievements))
	}
	for _, r := range raw.Achievements {
		a := achievement.Achievement(r.achievementRecord)
		a.UnlockedAt = nil
		if !savetime.IsNull(r.UnlockedAt) {
			at, err := savetime.Decode(r.UnlockedAt)
			if err != nil {
				return game.GameState{}, fmt.Errorf("achievement %s: %w", a.ID, err)
			}
			a.UnlockedAt = &at
		}
		state.Achievements = append(state.Achievements, a)
	}
	return state, nil
}
