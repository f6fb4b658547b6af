package pet

import (
	"time"

	"github.com/google/uuid"
)

// Starting values for the hunger and cleanliness stats. Nothing reads them
// yet; they are kept so saves carry the full pet record.
const (
	StartHunger      = 50
	StartCleanliness = 50
)

// OwnedPet is one adopted pet.
type OwnedPet struct {
	ID              string    `json:"id"`
	SpeciesID       string    `json:"type"`
	Name            string    `json:"name"`
	Affection       int       `json:"affection"`
	Hunger          int       `json:"hunger"`      // 0-100
	Cleanliness     int       `json:"cleanliness"` // 0-100
	LastInteraction time.Time `json:"lastInteraction"`
}

// New creates a freshly adopted pet with a unique id.
func New(speciesID, name string, now time.Time) OwnedPet {
	return OwnedPet{
		ID:              uuid.NewString(),
		SpeciesID:       speciesID,
		Name:            name,
		Hunger:          StartHunger,
		Cleanliness:     StartCleanliness,
		LastInteraction: now,
	}
}

// Tier is the pet's current life stage.
func (p OwnedPet) Tier() Tier {
	return TierFor(p.Affection)
}
