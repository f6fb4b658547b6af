package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/moorebrett0/wonderpets/internal/achievement"
	"github.com/moorebrett0/wonderpets/internal/pet"
	"github.com/moorebrett0/wonderpets/internal/species"
)

// Reactor produces the cosmetic reaction line after a care action. It must
// always return text, falling back to canned lines on failure.
type Reactor interface {
	Generate(ctx context.Context, sp *species.Species, action string, affection int, extra string) string
}

// Recorder receives gameplay counters.
type Recorder interface {
	RecordAdoption(speciesID string)
	RecordAction(kind string)
	RecordUnlock(id string)
}

type nopRecorder struct{}

func (nopRecorder) RecordAdoption(string) {}
func (nopRecorder) RecordAction(string)   {}
func (nopRecorder) RecordUnlock(string)   {}

// Reaction is the latest reaction line shown for a pet.
type Reaction struct {
	PetID   string    `json:"petId"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
	Pending bool      `json:"pending"`
}

// AdoptOutcome is the result of an adoption.
type AdoptOutcome struct {
	Pet      PetView                   `json:"pet"`
	Unlocked []achievement.Achievement `json:"unlocked"`
}

// ActionOutcome is the committed result of a care action. Reaction delivers
// exactly one line once the reaction request finishes.
type ActionOutcome struct {
	Pet              PetView                   `json:"pet"`
	Delta            int                       `json:"delta"`
	Context          string                    `json:"context"`
	AdoptionUnlocked bool                      `json:"adoptionUnlocked"`
	Unlocked         []achievement.Achievement `json:"unlocked"`
	Reaction         <-chan string             `json:"-"`
}

// ServiceConfig for creating a Service.
type ServiceConfig struct {
	Store           *Store
	Reactor         Reactor
	Recorder        Recorder // optional
	ReactionTimeout time.Duration
}

// Service maps the UI action surface onto the store.
type Service struct {
	store           *Store
	reactor         Reactor
	recorder        Recorder
	reactionTimeout time.Duration

	// At most one reaction request in flight.
	busy *semaphore.Weighted

	mu     sync.Mutex
	latest Reaction
}

// NewService creates a Service.
func NewService(cfg ServiceConfig) *Service {
	rec := cfg.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	timeout := cfg.ReactionTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Service{
		store:           cfg.Store,
		reactor:         cfg.Reactor,
		recorder:        rec,
		reactionTimeout: timeout,
		busy:            semaphore.NewWeighted(1),
	}
}

// State returns the current read model.
func (s *Service) State() View {
	return newView(s.store.Snapshot(), s.store.Music())
}

// NeedsAdoption reports whether the player owns no pets yet.
func (s *Service) NeedsAdoption() bool {
	return len(s.store.Snapshot().OwnedPets) == 0
}

// Species returns the adoptable species in display order.
func (s *Service) Species() []*species.Species {
	return species.All()
}

// Achievements returns the achievement list.
func (s *Service) Achievements() []achievement.Achievement {
	return s.store.Snapshot().Achievements
}

// Adopt adopts a new pet and makes it active.
func (s *Service) Adopt(speciesID, name string) (AdoptOutcome, error) {
	p, err := s.store.Adopt(speciesID, name)
	if err != nil {
		return AdoptOutcome{}, err
	}
	slog.Info("game: pet adopted", "pet", p.ID, "species", speciesID)
	s.recorder.RecordAdoption(speciesID)
	return AdoptOutcome{Pet: ViewPet(p), Unlocked: s.drain()}, nil
}

// SelectPet makes id the active pet. Unknown ids are ignored.
func (s *Service) SelectPet(id string) {
	s.store.SetActivePet(id)
}

// ToggleMusic flips the music preference and returns the new value.
func (s *Service) ToggleMusic() bool {
	return s.store.ToggleMusic()
}

// Music reports the music preference.
func (s *Service) Music() bool {
	return s.store.Music()
}

// LatestReaction returns the most recent reaction, with Pending set while a
// request is in flight.
func (s *Service) LatestReaction() Reaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// PerformAction applies a care action to the active pet. The state change is
// committed before returning; the reaction line arrives later on
// ActionOutcome.Reaction. While it is pending further actions fail with
// ErrBusy.
func (s *Service) PerformAction(ctx context.Context, kind Kind, food species.Diet) (ActionOutcome, error) {
	if !s.busy.TryAcquire(1) {
		return ActionOutcome{}, ErrBusy
	}

	updated, sp, res, earned, err := s.apply(kind, food)
	if err != nil {
		s.busy.Release(1)
		return ActionOutcome{}, err
	}

	s.mu.Lock()
	s.latest.PetID = updated.ID
	s.latest.Pending = true
	s.mu.Unlock()

	// The reaction goroutine owns the busy slot from here on.
	ch := make(chan string, 1)
	go s.react(ctx, ch, sp, kind, updated.ID, updated.Affection, res.Context)

	return ActionOutcome{
		Pet:              ViewPet(updated),
		Delta:            res.Delta,
		Context:          res.Context,
		AdoptionUnlocked: earned,
		Unlocked:         s.drain(),
		Reaction:         ch,
	}, nil
}

func (s *Service) apply(kind Kind, food species.Diet) (pet.OwnedPet, *species.Species, Resolution, bool, error) {
	active, ok := s.store.Snapshot().ActivePet()
	if !ok {
		return pet.OwnedPet{}, nil, Resolution{}, false, ErrNoActivePet
	}
	sp := species.Get(active.SpeciesID)
	if sp == nil {
		return pet.OwnedPet{}, nil, Resolution{}, false, ErrUnknownSpecies
	}

	res, err := Resolve(sp, kind, food)
	if err != nil {
		return pet.OwnedPet{}, nil, Resolution{}, false, err
	}

	updated, earned, err := s.store.Care(active.ID, res.Delta)
	if err != nil {
		return pet.OwnedPet{}, nil, Resolution{}, false, err
	}
	s.recorder.RecordAction(string(kind))
	if earned {
		slog.Info("game: new adoption unlocked")
	}
	return updated, sp, res, earned, nil
}

func (s *Service) react(ctx context.Context, ch chan<- string, sp *species.Species, kind Kind, petID string, affection int, extra string) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.reactionTimeout)
	defer cancel()

	text := s.reactor.Generate(rctx, sp, string(kind), affection, extra)

	s.mu.Lock()
	s.latest = Reaction{PetID: petID, Text: text, At: time.Now()}
	s.mu.Unlock()

	s.busy.Release(1)
	ch <- text
}

func (s *Service) drain() []achievement.Achievement {
	unlocked := s.store.DrainUnlocked()
	for _, a := range unlocked {
		s.recorder.RecordUnlock(a.ID)
	}
	return unlocked
}
