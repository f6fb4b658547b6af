package species

// Diet is what a species wants to be fed.
type Diet string

const (
	Herbivore Diet = "herbivore"
	Carnivore Diet = "carnivore"
)

// Valid reports whether d is a known diet.
func (d Diet) Valid() bool {
	return d == Herbivore || d == Carnivore
}

// Food returns the display name of the food that matches the diet.
func (d Diet) Food() string {
	if d == Carnivore {
		return "meat"
	}
	return "plants"
}

// Species defines an adoptable pet species and its display metadata.
type Species struct {
	ID          string
	Name        string
	Emoji       string
	Diet        Diet
	Images      Images
	Description string
	Color       string // display color token
	Personality string // injected into the reaction prompt
}

// Images are the artwork references for each evolution tier.
type Images struct {
	Baby  string
	Youth string
}

// Registry holds all available species keyed by ID.
var Registry = map[string]*Species{
	"cat":     cat,
	"dog":     dog,
	"rabbit":  rabbit,
	"dino":    dino,
	"bird":    bird,
	"hamster": hamster,
	"panda":   panda,
}

// OrderedIDs defines display order for species selection.
var OrderedIDs = []string{"cat", "dog", "rabbit", "dino", "bird", "hamster", "panda"}

// Get returns the species for id, or nil if it is not in the catalog.
func Get(id string) *Species {
	return Registry[id]
}

// Count is the number of species in the catalog.
func Count() int {
	return len(OrderedIDs)
}

// All returns the catalog in display order.
func All() []*Species {
	out := make([]*Species, 0, len(OrderedIDs))
	for _, id := range OrderedIDs {
		out = append(out, Registry[id])
	}
	return out
}

const artBase = "https://raw.githubusercontent.com/Tarikul-Islam-Anik/Animated-Fluent-Emojis/master/Emojis/Animals/"

var cat = &Species{
	ID:          "cat",
	Name:        "Kitty",
	Emoji:       "\U0001F431",
	Diet:        Carnivore,
	Images:      Images{Baby: artBase + "Cat%20Face.png", Youth: artBase + "Cat.png"},
	Description: "Independent but full of love. Likes fish and warm spots.",
	Color:       "bg-orange-100 text-orange-800 border-orange-200",
	Personality: "You are an aloof little cat who secretly adores attention. You purr when happy and pretend you did not.",
}

var dog = &Species{
	ID:          "dog",
	Name:        "Puppy",
	Emoji:       "\U0001F436",
	Diet:        Carnivore,
	Images:      Images{Baby: artBase + "Dog%20Face.png", Youth: artBase + "Dog.png"},
	Description: "Loyal and full of energy. Always happy to see you!",
	Color:       "bg-blue-100 text-blue-800 border-blue-200",
	Personality: "You are an endlessly excited puppy. Everything your owner does is the best thing that ever happened.",
}

var rabbit = &Species{
	ID:          "rabbit",
	Name:        "Bunny",
	Emoji:       "\U0001F430",
	Diet:        Herbivore,
	Images:      Images{Baby: artBase + "Rabbit%20Face.png", Youth: artBase + "Rabbit.png"},
	Description: "Soft and lively. Loves carrots and quiet corners.",
	Color:       "bg-pink-100 text-pink-800 border-pink-200",
	Personality: "You are a shy, soft bunny. You thump your foot when excited and twitch your nose when curious.",
}

var dino = &Species{
	ID:          "dino",
	Name:        "Little Dino",
	Emoji:       "\U0001F996",
	Diet:        Carnivore,
	Images:      Images{Baby: artBase + "Sauropod.png", Youth: artBase + "T-Rex.png"},
	Description: "A miniature T-Rex. Surprisingly clingy, but mind your fingers.",
	Color:       "bg-green-100 text-green-800 border-green-200",
	Personality: "You are a tiny tyrannosaur who thinks you are enormous and fearsome. Your roars come out as squeaks.",
}

var bird = &Species{
	ID:          "bird",
	Name:        "Birdie",
	Emoji:       "\U0001F99C",
	Diet:        Herbivore,
	Images:      Images{Baby: artBase + "Hatching%20Chick.png", Youth: artBase + "Parrot.png"},
	Description: "Colorful and chatty. Loves seeds and singing.",
	Color:       "bg-yellow-100 text-yellow-800 border-yellow-200",
	Personality: "You are a chatty parrot who repeats your owner's words back and bursts into song.",
}

var hamster = &Species{
	ID:          "hamster",
	Name:        "Hamster",
	Emoji:       "\U0001F439",
	Diet:        Herbivore,
	Images:      Images{Baby: artBase + "Hamster%20Face.png", Youth: artBase + "Hamster.png"},
	Description: "Round-cheeked little foodie and a champion on the wheel.",
	Color:       "bg-amber-100 text-amber-800 border-amber-200",
	Personality: "You are a hamster who stuffs every snack into your cheeks and runs on your wheel at night.",
}

var panda = &Species{
	ID:          "panda",
	Name:        "Panda",
	Emoji:       "\U0001F43C",
	Diet:        Herbivore,
	Images:      Images{Baby: artBase + "Panda%20Face.png", Youth: artBase + "Panda.png"},
	Description: "A roly-poly national treasure. Loves bamboo and long naps.",
	Color:       "bg-slate-100 text-slate-800 border-slate-200",
	Personality: "You are a sleepy, roly-poly panda. Bamboo and naps are your two great passions.",
}
