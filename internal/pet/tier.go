package pet

import "github.com/moorebrett0/wonderpets/internal/species"

// EvolutionThreshold is the affection at which a pet grows into a youth.
const EvolutionThreshold = 200

// Tier is a derived life stage. It is never stored.
type Tier int

const (
	TierBaby  Tier = 1
	TierYouth Tier = 2
)

// TierFor returns the life stage for an affection value.
func TierFor(affection int) Tier {
	if affection >= EvolutionThreshold {
		return TierYouth
	}
	return TierBaby
}

func (t Tier) String() string {
	if t == TierYouth {
		return "youth"
	}
	return "baby"
}

// Image returns the artwork for the tier.
func (t Tier) Image(sp *species.Species) string {
	if sp == nil {
		return ""
	}
	if t == TierYouth {
		return sp.Images.Youth
	}
	return sp.Images.Baby
}
