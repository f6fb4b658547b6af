// Package onboarding runs the game in a terminal: first adoption, then a
// simple command loop.
package onboarding

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/moorebrett0/wonderpets/internal/achievement"
	"github.com/moorebrett0/wonderpets/internal/game"
	"github.com/moorebrett0/wonderpets/internal/pet"
	"github.com/moorebrett0/wonderpets/internal/species"
)

// Terminal drives the game from line-based input.
type Terminal struct {
	in    *bufio.Reader
	out   io.Writer
	svc   *game.Service
	delay time.Duration // per-character delay for printSlow
}

// New creates a Terminal. A zero delay prints everything at once.
func New(in io.Reader, out io.Writer, svc *game.Service, delay time.Duration) *Terminal {
	return &Terminal{
		in:    bufio.NewReader(in),
		out:   out,
		svc:   svc,
		delay: delay,
	}
}

// Run adopts a first pet if needed and then plays until "quit" or end of input.
func (t *Terminal) Run(ctx context.Context) error {
	if t.svc.NeedsAdoption() {
		fmt.Fprintln(t.out)
		t.printSlow("  \U0001F95A welcome to wonderpets!")
		fmt.Fprintln(t.out)
		if !t.Adopt() {
			return nil
		}
	}
	return t.Play(ctx)
}

// Adopt walks through species and name selection. Returns false if input ran out.
func (t *Terminal) Adopt() bool {
	fmt.Fprintln(t.out, "  pick a species:")
	fmt.Fprintln(t.out)

	all := species.All()

	// Display species grid (2 columns)
	for i := 0; i < len(all); i += 2 {
		col1 := fmt.Sprintf("  %d) %s %-12s", i+1, all[i].Emoji, all[i].Name)
		if i+1 < len(all) {
			fmt.Fprintf(t.out, "%s%d) %s %s\n", col1, i+2, all[i+1].Emoji, all[i+1].Name)
		} else {
			fmt.Fprintln(t.out, col1)
		}
	}

	// Species selection
	fmt.Fprintln(t.out)
	var sp *species.Species
	for sp == nil {
		input, ok := t.prompt()
		if !ok {
			return false
		}
		sp = pickSpecies(input)
		if sp == nil {
			fmt.Fprintf(t.out, "  hmm, pick a number 1-%d or type the species name\n", len(all))
		}
	}

	fmt.Fprintln(t.out)
	fmt.Fprintf(t.out, "  %s ...\n", sp.Emoji)
	fmt.Fprintln(t.out)

	// Name selection
	fmt.Fprintln(t.out, "  what's my name?")
	fmt.Fprintln(t.out)

	for {
		input, ok := t.prompt()
		if !ok {
			return false
		}
		out, err := t.svc.Adopt(sp.ID, input)
		if errors.Is(err, game.ErrEmptyName) {
			fmt.Fprintln(t.out, "  pick a name")
			continue
		}
		if err != nil {
			fmt.Fprintf(t.out, "  couldn't adopt: %v\n", err)
			return false
		}

		fmt.Fprintln(t.out)
		t.printSlow(fmt.Sprintf("  %s hi. i'm %s.", sp.Emoji, out.Pet.Name))
		t.printUnlocked(out.Unlocked)
		fmt.Fprintln(t.out)
		return true
	}
}

// Play reads commands until "quit", end of input, or ctx is done.
func (t *Terminal) Play(ctx context.Context) error {
	fmt.Fprintln(t.out, "  type 'help' for commands")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		input, ok := t.prompt()
		if !ok {
			return nil
		}
		cmd, arg, _ := strings.Cut(strings.ToLower(input), " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
		case "quit", "exit":
			t.printSlow("  bye! don't forget about me.")
			return nil
		case "help":
			fmt.Fprint(t.out, helpText)
		case "feed":
			food, ok := parseFood(arg)
			if !ok {
				fmt.Fprintln(t.out, "  feed what? try 'feed meat' or 'feed plants'")
				continue
			}
			t.act(ctx, game.ActionFeed, food)
		case "bathe", "bath":
			t.act(ctx, game.ActionBathe, "")
		case "pet":
			t.act(ctx, game.ActionPet, "")
		case "status":
			t.printStatus()
		case "pets":
			t.printPets()
		case "select":
			t.selectPet(arg)
		case "adopt":
			t.Adopt()
		case "achievements":
			t.printAchievements()
		case "music":
			if t.svc.ToggleMusic() {
				fmt.Fprintln(t.out, "  \U0001F3B5 music on")
			} else {
				fmt.Fprintln(t.out, "  \U0001F507 music off")
			}
		default:
			fmt.Fprintf(t.out, "  unknown command %q, type 'help'\n", cmd)
		}
	}
}

func (t *Terminal) act(ctx context.Context, kind game.Kind, food species.Diet) {
	out, err := t.svc.PerformAction(ctx, kind, food)
	switch {
	case errors.Is(err, game.ErrNoActivePet):
		fmt.Fprintln(t.out, "  adopt a pet first: type 'adopt'")
		return
	case err != nil:
		fmt.Fprintf(t.out, "  %v\n", err)
		return
	}

	fmt.Fprintf(t.out, "  %s %s %s (+%d)\n", out.Pet.Emoji, out.Pet.Name, out.Context, out.Delta)

	select {
	case reaction := <-out.Reaction:
		t.printSlow("  > " + reaction)
	case <-ctx.Done():
		return
	}

	if out.Pet.Affection >= pet.EvolutionThreshold && out.Pet.Affection-out.Delta < pet.EvolutionThreshold {
		fmt.Fprintf(t.out, "  ✨ %s grew into a youth!\n", out.Pet.Name)
	}
	if out.AdoptionUnlocked {
		fmt.Fprintln(t.out, "  \U0001F381 a new adoption is available! type 'adopt'")
	}
	t.printUnlocked(out.Unlocked)
}

func (t *Terminal) selectPet(query string) {
	for _, p := range t.svc.State().Pets {
		if p.ID == query || strings.EqualFold(p.Name, query) {
			t.svc.SelectPet(p.ID)
			fmt.Fprintf(t.out, "  %s %s is now active\n", p.Emoji, p.Name)
			return
		}
	}
	fmt.Fprintf(t.out, "  no pet called %q\n", query)
}

func (t *Terminal) printStatus() {
	view := t.svc.State()
	for _, p := range view.Pets {
		if p.ID != view.ActivePetID {
			continue
		}
		fmt.Fprintf(t.out, "  %s %s the %s %s\n", p.Emoji, p.Name, p.Tier, p.SpeciesName)
		fmt.Fprintf(t.out, "  affection %d", p.Affection)
		if p.Tier == pet.TierBaby.String() {
			fmt.Fprintf(t.out, " (grows up at %d)", pet.EvolutionThreshold)
		}
		fmt.Fprintln(t.out)
	}
	fmt.Fprintf(t.out, "  next adoption %d/%d | interactions %d\n",
		view.UnlockProgress, view.UnlockThreshold, view.TotalInteractions)
}

func (t *Terminal) printPets() {
	view := t.svc.State()
	if len(view.Pets) == 0 {
		fmt.Fprintln(t.out, "  no pets yet")
		return
	}
	for _, p := range view.Pets {
		marker := " "
		if p.ID == view.ActivePetID {
			marker = "*"
		}
		fmt.Fprintf(t.out, "  %s %s %s (%s, %d)\n", marker, p.Emoji, p.Name, p.SpeciesName, p.Affection)
	}
}

func (t *Terminal) printAchievements() {
	for _, a := range t.svc.Achievements() {
		mark := "\U0001F512"
		if a.IsUnlocked {
			mark = a.Icon
		}
		fmt.Fprintf(t.out, "  %s %s: %s\n", mark, a.Title, a.Description)
	}
}

func (t *Terminal) printUnlocked(list []achievement.Achievement) {
	for _, a := range list {
		fmt.Fprintf(t.out, "  %s achievement unlocked: %s\n", a.Icon, a.Title)
	}
}

// prompt reads one trimmed line. ok is false at end of input.
func (t *Terminal) prompt() (string, bool) {
	fmt.Fprint(t.out, "  > ")
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// PrintStartup prints the startup checklist.
func PrintStartup(out io.Writer, aiEnabled bool, backend string, discordEnabled bool) {
	fmt.Fprintln(out, "  starting up...")

	checks := []struct {
		label string
		ok    bool
	}{
		{"state loaded (" + backend + ")", true},
		{"ai reactions", aiEnabled},
		{"discord connected", discordEnabled},
	}

	for _, c := range checks {
		mark := "✓"
		if !c.ok {
			mark = "✗"
		}
		fmt.Fprintf(out, "  %s %s\n", mark, c.label)
	}
	fmt.Fprintln(out)
}

func (t *Terminal) printSlow(text string) {
	if t.delay <= 0 {
		fmt.Fprintln(t.out, text)
		return
	}
	for _, ch := range text {
		fmt.Fprint(t.out, string(ch))
		time.Sleep(t.delay)
	}
	fmt.Fprintln(t.out)
}

// pickSpecies accepts a 1-based number, an id, or a display name.
func pickSpecies(input string) *species.Species {
	all := species.All()
	if num, err := strconv.Atoi(input); err == nil && num >= 1 && num <= len(all) {
		return all[num-1]
	}
	lower := strings.ToLower(input)
	for _, sp := range all {
		if sp.ID == lower || strings.ToLower(sp.Name) == lower {
			return sp
		}
	}
	return nil
}

func parseFood(arg string) (species.Diet, bool) {
	switch arg {
	case "meat", string(species.Carnivore):
		return species.Carnivore, true
	case "plants", "veggies", string(species.Herbivore):
		return species.Herbivore, true
	default:
		return "", false
	}
}

const helpText = `  commands:
    feed meat|plants   feed the active pet
    bathe              bath time
    pet                give some love
    status             active pet and progress
    pets               list your pets
    select <name>      switch the active pet
    adopt              adopt another pet
    achievements       show achievements
    music              toggle music
    quit               leave
`
