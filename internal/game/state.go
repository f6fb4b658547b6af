package game

import (
	"github.com/moorebrett0/wonderpets/internal/achievement"
	"github.com/moorebrett0/wonderpets/internal/pet"
	"github.com/moorebrett0/wonderpets/internal/species"
)

// UnlockThreshold is the unlock progress needed to earn a new adoption.
const UnlockThreshold = 40

// GameState is the whole save. It is replaced, never mutated in place, by
// the Store.
type GameState struct {
	OwnedPets         []pet.OwnedPet            `json:"ownedPets"`
	ActivePetID       string                    `json:"activePetId"` // "" when no pet is active
	UnlockProgress    int                       `json:"unlockProgress"`
	TotalInteractions int                       `json:"totalInteractions"`
	Achievements      []achievement.Achievement `json:"achievements"`
}

// NewGameState returns the state of a fresh game.
func NewGameState() GameState {
	return GameState{
		OwnedPets:    []pet.OwnedPet{},
		Achievements: achievement.Locked(),
	}
}

// Clone returns a deep copy.
func (g GameState) Clone() GameState {
	out := g
	out.OwnedPets = append(make([]pet.OwnedPet, 0, len(g.OwnedPets)), g.OwnedPets...)
	out.Achievements = make([]achievement.Achievement, len(g.Achievements))
	for i, a := range g.Achievements {
		if a.UnlockedAt != nil {
			at := *a.UnlockedAt
			a.UnlockedAt = &at
		}
		out.Achievements[i] = a
	}
	return out
}

// FindPet returns the index of the pet with id, or -1.
func (g GameState) FindPet(id string) int {
	for i, p := range g.OwnedPets {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// ActivePet returns a copy of the active pet, or false if there is none.
func (g GameState) ActivePet() (pet.OwnedPet, bool) {
	if g.ActivePetID == "" {
		return pet.OwnedPet{}, false
	}
	i := g.FindPet(g.ActivePetID)
	if i < 0 {
		return pet.OwnedPet{}, false
	}
	return g.OwnedPets[i], true
}

// Stats summarizes the state for achievement predicates.
func (g GameState) Stats() achievement.Stats {
	kinds := make(map[string]struct{}, len(g.OwnedPets))
	maxAffection := 0
	for _, p := range g.OwnedPets {
		kinds[p.SpeciesID] = struct{}{}
		if p.Affection > maxAffection {
			maxAffection = p.Affection
		}
	}
	return achievement.Stats{
		Pets:              len(g.OwnedPets),
		TotalInteractions: g.TotalInteractions,
		MaxAffection:      maxAffection,
		DistinctSpecies:   len(kinds),
		SpeciesInCatalog:  species.Count(),
	}
}
