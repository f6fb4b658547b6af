package game

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/moorebrett0/wonderpets/internal/achievement"
	"github.com/moorebrett0/wonderpets/internal/pet"
	"github.com/moorebrett0/wonderpets/internal/species"
)

// Persister loads and saves the game blobs. Implementations return a
// *PersistenceError when a saved blob exists but cannot be decoded.
type Persister interface {
	LoadState(ctx context.Context) (GameState, bool, error)
	SaveState(ctx context.Context, state GameState) error
	LoadMusic(ctx context.Context) (bool, error)
	SaveMusic(ctx context.Context, enabled bool) error
}

// Store holds the live game state. Every transition builds a new state,
// re-evaluates achievements, swaps it in, and writes it through the
// Persister.
type Store struct {
	mu        sync.RWMutex
	state     GameState
	music     bool
	unlocked  []achievement.Achievement // notifications not yet drained
	persister Persister
	now       func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store holding a fresh game. Call Initialize to load a
// save. persister may be nil, in which case nothing is written.
func NewStore(persister Persister, opts ...StoreOption) *Store {
	s := &Store{
		state:     NewGameState(),
		persister: persister,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted game and music preference. A save that
// cannot be read is discarded in favor of a fresh game. The loaded
// achievement list is reconciled against the current catalog and evaluated
// once, so entries the save already satisfies unlock immediately.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = NewGameState()
	s.music = false
	s.unlocked = nil
	if s.persister == nil {
		return
	}

	loaded, ok, err := s.persister.LoadState(ctx)
	switch {
	case err != nil:
		var perr *PersistenceError
		if errors.As(err, &perr) {
			slog.Warn("store: discarding unreadable save", "key", perr.Key, "err", perr.Err)
		} else {
			slog.Warn("store: load failed, starting fresh", "err", err)
		}
	case ok:
		if loaded.OwnedPets == nil {
			loaded.OwnedPets = []pet.OwnedPet{}
		}
		loaded.Achievements = achievement.Reconcile(loaded.Achievements)
		s.state = loaded
		slog.Info("store: save loaded", "pets", len(loaded.OwnedPets))
		if s.evaluate(loaded) {
			s.save(ctx, loaded)
		}
	}

	music, err := s.persister.LoadMusic(ctx)
	if err != nil {
		slog.Warn("store: discarding unreadable music preference", "err", err)
		music = false
	}
	s.music = music
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Adopt creates a new pet, appends it, and makes it the active pet.
func (s *Store) Adopt(speciesID, name string) (pet.OwnedPet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return pet.OwnedPet{}, ErrEmptyName
	}
	if species.Get(speciesID) == nil {
		return pet.OwnedPet{}, ErrUnknownSpecies
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	p := pet.New(speciesID, name, s.now())
	for next.FindPet(p.ID) >= 0 {
		p = pet.New(speciesID, name, p.LastInteraction)
	}
	next.OwnedPets = append(next.OwnedPets, p)
	next.ActivePetID = p.ID
	s.commit(next)
	return p, nil
}

// SetActivePet switches the active pet. Unknown ids are ignored.
func (s *Store) SetActivePet(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.FindPet(id) < 0 || s.state.ActivePetID == id {
		return
	}
	next := s.state.Clone()
	next.ActivePetID = id
	s.commit(next)
}

// ApplyAction adds delta to the pet's affection, stamps the interaction
// time, and counts one interaction. Affection never drops below zero.
func (s *Store) ApplyAction(petID string, delta int) (pet.OwnedPet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.FindPet(petID)
	if i < 0 {
		return pet.OwnedPet{}, &NotFoundError{PetID: petID}
	}

	next := s.state.Clone()
	p := s.applyAction(&next, i, delta)
	s.commit(next)
	return p, nil
}

// AccumulateUnlockProgress adds amount to the unlock progress. Crossing the
// threshold subtracts it once and reports true, meaning a new adoption has
// been earned. Negative amounts are ignored.
func (s *Store) AccumulateUnlockProgress(amount int) bool {
	if amount <= 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	earned := accumulate(&next, amount)
	s.commit(next)
	return earned
}

// Care applies a care action and its unlock progress as one transition, so
// readers never see the affection change without the matching progress.
func (s *Store) Care(petID string, delta int) (pet.OwnedPet, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.FindPet(petID)
	if i < 0 {
		return pet.OwnedPet{}, false, &NotFoundError{PetID: petID}
	}

	next := s.state.Clone()
	p := s.applyAction(&next, i, delta)
	earned := false
	if delta > 0 {
		earned = accumulate(&next, delta)
	}
	s.commit(next)
	return p, earned, nil
}

func (s *Store) applyAction(next *GameState, i, delta int) pet.OwnedPet {
	p := &next.OwnedPets[i]
	p.Affection += delta
	if p.Affection < 0 {
		p.Affection = 0
	}
	p.LastInteraction = s.now()
	next.TotalInteractions++
	return *p
}

func accumulate(next *GameState, amount int) bool {
	progress := next.UnlockProgress + amount
	earned := false
	if progress >= UnlockThreshold {
		earned = true
		progress -= UnlockThreshold
		if progress >= UnlockThreshold {
			// Only one adoption is granted per call.
			progress = UnlockThreshold - 1
		}
	}
	next.UnlockProgress = progress
	return earned
}

// DrainUnlocked returns and clears the achievements unlocked since the last
// call, oldest first.
func (s *Store) DrainUnlocked() []achievement.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.unlocked
	s.unlocked = nil
	return out
}

// Music reports whether background music is enabled.
func (s *Store) Music() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.music
}

// ToggleMusic flips the music preference, persists it, and returns the new value.
func (s *Store) ToggleMusic() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.music = !s.music
	if s.persister != nil {
		if err := s.persister.SaveMusic(context.Background(), s.music); err != nil {
			slog.Error("store: persist music failed", "err", err)
		}
	}
	return s.music
}

// commit must be called with mu held.
func (s *Store) commit(next GameState) {
	s.evaluate(next)
	s.state = next
	s.save(context.Background(), next)
}

// evaluate unlocks achievements in next and queues them for DrainUnlocked.
// It reports whether anything was unlocked.
func (s *Store) evaluate(next GameState) bool {
	unlocked := achievement.Evaluate(next.Achievements, next.Stats(), s.now())
	for _, a := range unlocked {
		slog.Info("store: achievement unlocked", "id", a.ID)
		s.unlocked = append(s.unlocked, a)
	}
	return len(unlocked) > 0
}

func (s *Store) save(ctx context.Context, next GameState) {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveState(ctx, next); err != nil {
		slog.Error("store: persist failed", "err", err)
	}
}
