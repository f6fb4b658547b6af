package game

import (
	"github.com/moorebrett0/wonderpets/internal/achievement"
	"github.com/moorebrett0/wonderpets/internal/pet"
	"github.com/moorebrett0/wonderpets/internal/species"
)

// PetView is an owned pet with its derived display fields.
type PetView struct {
	pet.OwnedPet
	SpeciesName string `json:"speciesName"`
	Emoji       string `json:"emoji"`
	Diet        string `json:"diet"`
	Tier        string `json:"tier"`
	Image       string `json:"image"`
}

// ViewPet derives the display fields for p.
func ViewPet(p pet.OwnedPet) PetView {
	v := PetView{OwnedPet: p, Tier: p.Tier().String()}
	if sp := species.Get(p.SpeciesID); sp != nil {
		v.SpeciesName = sp.Name
		v.Emoji = sp.Emoji
		v.Diet = string(sp.Diet)
		v.Image = p.Tier().Image(sp)
	}
	return v
}

// View is the read model handed to front ends.
type View struct {
	Pets              []PetView                 `json:"pets"`
	ActivePetID       string                    `json:"activePetId"`
	UnlockProgress    int                       `json:"unlockProgress"`
	UnlockThreshold   int                       `json:"unlockThreshold"`
	TotalInteractions int                       `json:"totalInteractions"`
	Achievements      []achievement.Achievement `json:"achievements"`
	NeedsAdoption     bool                      `json:"needsAdoption"`
	Music             bool                      `json:"music"`
}

func newView(g GameState, music bool) View {
	pets := make([]PetView, 0, len(g.OwnedPets))
	for _, p := range g.OwnedPets {
		pets = append(pets, ViewPet(p))
	}
	return View{
		Pets:              pets,
		ActivePetID:       g.ActivePetID,
		UnlockProgress:    g.UnlockProgress,
		UnlockThreshold:   UnlockThreshold,
		TotalInteractions: g.TotalInteractions,
		Achievements:      g.Achievements,
		NeedsAdoption:     len(g.OwnedPets) == 0,
		Music:             music,
	}
}
