package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ericogr/technonomicon/internal/config"
	"github.com/ericogr/technonomicon/internal/dice"
	"github.com/ericogr/technonomicon/internal/engine"
	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/ledger"
	"github.com/ericogr/technonomicon/internal/service"
)

type attemptKind string

const (
	kindSpell  attemptKind = "craft"
	kindRitual attemptKind = "summon"
)

type attemptFlags struct {
	elements []string
	codeBits []string
	level    int
	name     string
	data     int
	seed     int64
	rolls    []int
	catalog  string
	asJSON   bool
}

func attemptCmd(kind attemptKind) *cobra.Command {
	var f attemptFlags

	short := "Craft a spell from elements and code bits"
	if kind == kindRitual {
		short = "Perform a summoning ritual"
	}
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAttempt(cmd.OutOrStdout(), kind, f)
		},
	}
	cmd.Flags().StringSliceVarP(&f.elements, "element", "e", nil, "element id (repeatable)")
	cmd.Flags().StringSliceVarP(&f.codeBits, "code-bit", "c", nil, "code bit id (repeatable)")
	cmd.Flags().IntVarP(&f.level, "level", "l", 1, "character level")
	cmd.Flags().StringVar(&f.name, "name", "Technomancer", "character name")
	cmd.Flags().IntVar(&f.data, "data", 0, "starting data balance")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "RNG seed (0 picks a random seed)")
	cmd.Flags().IntSliceVar(&f.rolls, "roll", nil, "scripted d20 rolls instead of random ones")
	cmd.Flags().StringVar(&f.catalog, "catalog", "", "catalog file (default: built-in)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the raw result as JSON")
	return cmd
}

func runAttempt(w io.Writer, kind attemptKind, f attemptFlags) error {
	lc, err := config.LoadCatalog(f.catalog)
	if err != nil {
		return err
	}
	seed := f.seed
	if seed == 0 {
		if seed, err = dice.NewSeed(); err != nil {
			return err
		}
	}
	opts := service.Options{Rng: rand.New(rand.NewSource(seed))}
	if len(f.rolls) > 0 {
		if opts.Roller, err = dice.ParseScript(f.rolls...); err != nil {
			return err
		}
	}
	s, err := service.NewSession("cli", f.name, lc, opts)
	if err != nil {
		return err
	}
	if f.data > 0 {
		if err := s.Deposit(ledger.SourceTerminalExtracts, f.data); err != nil {
			return err
		}
	}
	actor := game.Character{Name: f.name, Level: f.level}

	var (
		res    interface{}
		view   attemptView
		entity interface{}
	)
	if kind == kindRitual {
		r := s.AttemptSummon(f.elements, f.codeBits, actor)
		res, view = r, viewOf(r.Outcome.Kind(), r.Success(), r.Quality, r.Roll, r.Modifier, r.Message)
		if a, ok := r.Entity(); ok {
			entity = allyLine(a)
		}
	} else {
		r := s.AttemptCraft(f.elements, f.codeBits, actor)
		res, view = r, viewOf(r.Outcome.Kind(), r.Success(), r.Quality, r.Roll, r.Modifier, r.Message)
		if fx, ok := r.Entity(); ok {
			entity = spellLine(fx)
		}
	}

	if f.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	renderAttempt(w, view, entity, s.Balance())
	return nil
}

type attemptView struct {
	outcome  engine.OutcomeKind
	success  bool
	quality  game.QualityTier
	roll     int
	modifier int
	message  string
}

func viewOf(o engine.OutcomeKind, success bool, q game.QualityTier, roll, mod int, msg string) attemptView {
	return attemptView{outcome: o, success: success, quality: q, roll: roll, modifier: mod, message: msg}
}

func renderAttempt(w io.Writer, v attemptView, entity interface{}, balance int) {
	status := color.GreenString("✓")
	switch {
	case v.outcome == engine.OutcomeRejected:
		status = color.RedString("⊥")
	case !v.success:
		status = color.RedString("✗")
	case v.outcome == engine.OutcomeEphemeral:
		status = color.YellowString("~")
	}
	fmt.Fprintf(w, "[%s] %s\n", status, v.message)
	if v.outcome != engine.OutcomeRejected {
		fmt.Fprintf(w, "    roll %d%+d → %s\n", v.roll, v.modifier, qualityColor(v.quality))
	}
	if entity != nil {
		fmt.Fprintf(w, "    %s\n", entity)
	}
	fmt.Fprintf(w, "    data: %d\n", balance)
}

func qualityColor(q game.QualityTier) string {
	switch q {
	case game.QualityCritical:
		return color.MagentaString(q.String())
	case game.QualityHigh:
		return color.GreenString(q.String())
	case game.QualityMedium:
		return color.CyanString(q.String())
	default:
		return color.RedString(q.String())
	}
}

func spellLine(fx game.SpellEffect) string {
	return fmt.Sprintf("%s: power %d, attack %d, healing %d, defense %d, mana %d",
		color.CyanString(fx.Name), fx.Power, fx.Attack, fx.Healing, fx.Defense, fx.ManaCost)
}

func allyLine(a game.Ally) string {
	name := color.CyanString(a.Name)
	if a.Hostile {
		name = color.RedString(a.Name + " (hostile)")
	}
	return fmt.Sprintf("%s: level %d, hp %d/%d, attack %d, defense %d", name, a.Level, a.HP, a.MaxHP, a.Attack, a.Defense)
}
