// Package achievement holds the achievement catalog and the evaluator that
// unlocks entries against a snapshot of game statistics.
package achievement

import "time"

// Catalog ids.
const (
	FirstMeet    = "first_meet"
	CareNovice   = "care_novice"
	Psychologist = "psychologist"
	Collector    = "collector"
)

// Thresholds used by the catalog predicates.
const (
	CareNoviceInteractions = 50
	PsychologistAffection  = 250
)

// Achievement is the persisted record for one catalog entry.
type Achievement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	IsUnlocked  bool       `json:"isUnlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// Stats is the view of game state the predicates are evaluated against.
type Stats struct {
	Pets              int
	TotalInteractions int
	MaxAffection      int
	DistinctSpecies   int
	SpeciesInCatalog  int
}

// Def is a catalog entry.
type Def struct {
	ID          string
	Title       string
	Description string
	Icon        string
	// Condition reports whether the achievement should be awarded.
	Condition func(Stats) bool
}

var catalog = []Def{
	{
		ID:          FirstMeet,
		Title:       "First Meeting",
		Description: "Adopt your first pet",
		Icon:        "\U0001F44B",
		Condition:   func(s Stats) bool { return s.Pets >= 1 },
	},
	{
		ID:          CareNovice,
		Title:       "Novice Caretaker",
		Description: "Interact with your pets 50 times",
		Icon:        "\U0001F37C",
		Condition:   func(s Stats) bool { return s.TotalInteractions >= CareNoviceInteractions },
	},
	{
		ID:          Psychologist,
		Title:       "Pet Psychologist",
		Description: "Raise any pet's affection to 250",
		Icon:        "\U0001F9E0",
		Condition:   func(s Stats) bool { return s.MaxAffection >= PsychologistAffection },
	},
	{
		ID:          Collector,
		Title:       "Master Collector",
		Description: "Own every kind of pet",
		Icon:        "\U0001F3C6",
		Condition: func(s Stats) bool {
			return s.SpeciesInCatalog > 0 && s.DistinctSpecies >= s.SpeciesInCatalog
		},
	},
}

// Catalog returns the catalog definitions in evaluation order.
func Catalog() []Def {
	out := make([]Def, len(catalog))
	copy(out, catalog)
	return out
}

// Locked returns a fresh, all-locked record set for a new game.
func Locked() []Achievement {
	out := make([]Achievement, 0, len(catalog))
	for _, d := range catalog {
		out = append(out, d.record())
	}
	return out
}

func (d Def) record() Achievement {
	return Achievement{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Icon:        d.Icon,
	}
}

// Reconcile merges saved records with the current catalog. Saved records keep
// their order and unlock state, catalog ids missing from the save are appended
// locked, and duplicate ids keep their first occurrence. Ids that are no
// longer in the catalog are kept.
func Reconcile(saved []Achievement) []Achievement {
	if saved == nil {
		return Locked()
	}

	out := make([]Achievement, 0, len(saved)+len(catalog))
	seen := make(map[string]bool, len(saved))
	for _, a := range saved {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	for _, d := range catalog {
		if !seen[d.ID] {
			out = append(out, d.record())
		}
	}
	return out
}

// Evaluate checks every locked record against stats in catalog order.
// Newly satisfied records are unlocked in place with the given timestamp and
// returned. Unlocked records are never touched.
func Evaluate(records []Achievement, stats Stats, now time.Time) []Achievement {
	index := make(map[string]int, len(records))
	for i, a := range records {
		if _, ok := index[a.ID]; !ok {
			index[a.ID] = i
		}
	}

	var unlocked []Achievement
	for _, d := range catalog {
		i, ok := index[d.ID]
		if !ok || records[i].IsUnlocked {
			continue
		}
		if !d.Condition(stats) {
			continue
		}
		at := now
		records[i].IsUnlocked = true
		records[i].UnlockedAt = &at
		unlocked = append(unlocked, records[i])
	}
	return unlocked
}
