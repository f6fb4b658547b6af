package game

import (
	"fmt"

	"github.com/moorebrett0/wonderpets/internal/species"
)

// Kind is a care action.
type Kind string

const (
	ActionFeed  Kind = "feed"
	ActionBathe Kind = "bathe"
	ActionPet   Kind = "pet"
)

// Affection gained per action.
const (
	AffectionPet       = 10
	AffectionBathe     = 10
	AffectionFeed      = 5
	AffectionWrongFood = 1
)

// Resolution is the outcome of a care action before it is applied.
type Resolution struct {
	Delta   int
	Context string // fed to the reaction prompt
}

// ParseKind validates an action name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case ActionFeed, ActionBathe, ActionPet:
		return k, nil
	default:
		return "", &InvalidActionError{Kind: s}
	}
}

// Resolve computes the affection delta and reaction context for a care
// action on a pet of species sp. food is only read for ActionFeed.
func Resolve(sp *species.Species, kind Kind, food species.Diet) (Resolution, error) {
	switch kind {
	case ActionPet:
		return Resolution{Delta: AffectionPet, Context: "enjoyed the owner's touch"}, nil
	case ActionBathe:
		return Resolution{Delta: AffectionBathe, Context: "had a nice bath"}, nil
	case ActionFeed:
		if !food.Valid() {
			return Resolution{}, &InvalidActionError{Kind: string(kind), Food: string(food)}
		}
		if food == sp.Diet {
			return Resolution{
				Delta:   AffectionFeed,
				Context: fmt.Sprintf("ate delicious %s", food.Food()),
			}, nil
		}
		return Resolution{
			Delta:   AffectionWrongFood,
			Context: fmt.Sprintf("disappointed, ate %s but wanted %s", food.Food(), sp.Diet.Food()),
		}, nil
	default:
		return Resolution{}, &InvalidActionError{Kind: string(kind)}
	}
}
