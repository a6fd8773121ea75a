package story

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/samdwyer/shadowspire/internal/combat"
	"github.com/samdwyer/shadowspire/internal/session"
)

// ErrChoiceOutOfRange reports an edge index outside the current scene's
// choices. Nothing is mutated; the caller re-prompts.
var ErrChoiceOutOfRange = errors.New("choice out of range")

// RequirementNotMet reports an edge rejected by its precondition. Nothing
// is mutated; the caller re-renders the same scene.
type RequirementNotMet struct {
	Requirement string
}

func (e *RequirementNotMet) Error() string {
	return fmt.Sprintf("requirement %q not met", e.Requirement)
}

// CombatRequest asks the caller to run an encounter before the transition
// can commit. Feed the finished outcome to ResolveCombat.
type CombatRequest struct {
	EnemyKey string
	After    string // victory destination override, may be empty
	Next     string // declared destination: victory fallback and flee target
}

// Transition is the committed result of choosing an edge.
type Transition struct {
	Events []string       // player-facing notifications, in order
	Combat *CombatRequest // non-nil when the edge starts an encounter
}

// Engine walks a session through the scene graph. The graph is immutable;
// all mutable position lives in the session state passed to each call.
type Engine struct {
	graph *Graph
	log   zerolog.Logger
}

// NewEngine creates an engine over the given graph.
func NewEngine(graph *Graph, log zerolog.Logger) *Engine {
	return &Engine{graph: graph, log: log}
}

// Graph returns the engine's scene table.
func (e *Engine) Graph() *Graph { return e.graph }

// Current returns the session's current scene. If the session points at an
// id the graph does not define, the session is reset to the start scene and
// a diagnostic is logged; the playthrough continues.
func (e *Engine) Current(st *session.State) *Scene {
	if scene := e.graph.Scene(st.Scene); scene != nil {
		return scene
	}
	e.log.Warn().Str("scene", st.Scene).Str("start", e.graph.Start).
		Msg("session points at undefined scene, resetting to start")
	st.Scene = e.graph.Start
	return e.graph.Scene(st.Scene)
}

// Choose applies the edge at the given index of the current scene.
//
// Preconditions gate everything: a failing requires rejects the edge with
// no state change. A combat edge returns a CombatRequest without committing
// a new scene; every other edge applies its effect and commits. An ending
// effect supersedes the edge's declared destination.
func (e *Engine) Choose(st *session.State, index int) (Transition, error) {
	scene := e.Current(st)
	if index < 0 || index >= len(scene.Choices) {
		return Transition{}, ErrChoiceOutOfRange
	}
	choice := scene.Choices[index]

	if choice.Requires != "" &&
		!st.Flags.Has(choice.Requires) &&
		!st.Inventory.HasNamed(choice.Requires) {
		return Transition{}, &RequirementNotMet{Requirement: choice.Requires}
	}

	var tr Transition
	switch effect := choice.Effect.(type) {
	case StartCombat:
		tr.Combat = &CombatRequest{EnemyKey: effect.EnemyKey, After: effect.After, Next: choice.Next}
		return tr, nil

	case GrantItem:
		st.Inventory.Add(effect.Item)
		tr.Events = append(tr.Events,
			fmt.Sprintf("You obtained: %s - %s", effect.Item.Name, effect.Item.Description))

	case HealPlayer:
		old := st.Player.HP
		st.Player.Heal(effect.Amount)
		tr.Events = append(tr.Events,
			fmt.Sprintf("You recovered %d HP by resting.", st.Player.HP-old))

	case RaiseFlag:
		st.Flags.Add(effect.Name)
		tr.Events = append(tr.Events, fmt.Sprintf("(Flag gained: %s)", effect.Name))

	case JumpEnding:
		st.Scene = e.resolveEnding(effect.ID)
		return tr, nil
	}

	st.Scene = choice.Next
	return tr, nil
}

// ResolveCombat commits the transition implied by a finished encounter:
// victory proceeds to the after-scene when declared (else the edge's
// destination), defeat routes through the defeat policy, and fleeing skips
// the battle entirely.
func (e *Engine) ResolveCombat(st *session.State, req CombatRequest, outcome combat.Outcome) {
	switch outcome {
	case combat.Victory:
		if req.After != "" {
			st.Scene = req.After
		} else {
			st.Scene = req.Next
		}
	case combat.Defeat:
		st.Scene = combat.DefeatEnding(st.Flags)
	case combat.Fled:
		st.Scene = req.Next
	}
}

// resolveEnding maps an ending id to its scene: "ending_<id>" when such a
// scene exists, else the raw id.
func (e *Engine) resolveEnding(id string) string {
	if prefixed := "ending_" + id; e.graph.Has(prefixed) {
		return prefixed
	}
	return id
}
