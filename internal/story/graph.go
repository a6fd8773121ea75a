// Package story provides the scene graph engine and the edge-effect interpreter.
package story

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/samdwyer/shadowspire/internal/gamedata"
	"github.com/samdwyer/shadowspire/internal/inventory"
)

// Effect is the typed state mutation or flow redirection attached to an
// edge. Exactly one concrete kind is attached per edge; edges with no
// effect carry nil. The requires precondition is not an Effect: it gates
// the edge and lives on the Choice itself.
type Effect interface {
	isEffect()
}

// StartCombat triggers an encounter against the keyed enemy template.
// On victory the player proceeds to After when declared, otherwise to the
// edge's declared destination.
type StartCombat struct {
	EnemyKey string
	After    string
}

// GrantItem appends an item to the inventory.
type GrantItem struct {
	Item inventory.Item
}

// RaiseFlag adds a name to the flag set.
type RaiseFlag struct {
	Name string
}

// HealPlayer restores player HP, clamped to max.
type HealPlayer struct {
	Amount int
}

// JumpEnding redirects to a terminal scene, superseding the edge's
// declared destination.
type JumpEnding struct {
	ID string
}

func (StartCombat) isEffect() {}
func (GrantItem) isEffect()   {}
func (RaiseFlag) isEffect()   {}
func (HealPlayer) isEffect()  {}
func (JumpEnding) isEffect()  {}

// Choice is one traversable edge out of a scene.
type Choice struct {
	Text     string
	Next     string // declared destination scene id
	Requires string // flag or item name gating the edge; empty means ungated
	Effect   Effect // nil for a plain transition
}

// Scene is one narrative node.
type Scene struct {
	ID      string
	Title   string
	Desc    string
	Choices []Choice
}

// IsEnding reports whether the scene is terminal.
func (s *Scene) IsEnding() bool { return len(s.Choices) == 0 }

// Graph is the immutable scene table, built once at startup.
type Graph struct {
	Start  string
	scenes map[string]*Scene
}

// BuildGraph compiles the raw scene file into a typed graph. Malformed
// effects are build errors; dangling destinations are only warned about,
// since the engine recovers from them at runtime.
func BuildGraph(file *gamedata.SceneFile, log zerolog.Logger) (*Graph, error) {
	g := &Graph{Start: file.Start, scenes: make(map[string]*Scene, len(file.Scenes))}

	for _, raw := range file.Scenes {
		if _, dup := g.scenes[raw.ID]; dup {
			return nil, fmt.Errorf("duplicate scene id %q", raw.ID)
		}
		scene := &Scene{ID: raw.ID, Title: raw.Title, Desc: raw.Desc}
		for _, rawChoice := range raw.Choices {
			effect, err := compileEffect(rawChoice.Effect)
			if err != nil {
				return nil, fmt.Errorf("scene %q, choice %q: %w", raw.ID, rawChoice.Text, err)
			}
			scene.Choices = append(scene.Choices, Choice{
				Text:     rawChoice.Text,
				Next:     rawChoice.Next,
				Requires: rawChoice.Requires,
				Effect:   effect,
			})
		}
		g.scenes[raw.ID] = scene
	}

	if g.Scene(g.Start) == nil {
		return nil, fmt.Errorf("start scene %q is not defined", g.Start)
	}
	g.warnDangling(log)
	return g, nil
}

// MustBuildGraph builds the graph from the embedded scene file, panicking
// on error. Content is embedded, so failure is a programmer error.
func MustBuildGraph(log zerolog.Logger) *Graph {
	g, err := BuildGraph(gamedata.MustLoadSceneFile(), log)
	if err != nil {
		panic(err)
	}
	return g
}

// compileEffect turns the loosely-keyed authoring record into exactly one
// typed effect.
func compileEffect(def *gamedata.EffectDef) (Effect, error) {
	if def == nil {
		return nil, nil
	}

	var effects []Effect
	if def.Enemy != "" {
		effects = append(effects, StartCombat{EnemyKey: def.Enemy, After: def.After})
	} else if def.After != "" {
		return nil, fmt.Errorf("after %q declared without an enemy", def.After)
	}
	if def.Item != nil {
		effects = append(effects, GrantItem{Item: inventory.FromDef(def.Item)})
	}
	if def.Flag != "" {
		effects = append(effects, RaiseFlag{Name: def.Flag})
	}
	if def.Heal != 0 {
		effects = append(effects, HealPlayer{Amount: def.Heal})
	}
	if def.Ending != "" {
		effects = append(effects, JumpEnding{ID: def.Ending})
	}

	switch len(effects) {
	case 0:
		return nil, nil
	case 1:
		return effects[0], nil
	default:
		return nil, fmt.Errorf("edge declares %d effects, want at most one", len(effects))
	}
}

// Scene returns the scene with the given id, or nil.
func (g *Graph) Scene(id string) *Scene { return g.scenes[id] }

// Has reports whether a scene id is defined.
func (g *Graph) Has(id string) bool { return g.scenes[id] != nil }

// Len returns the number of scenes in the graph.
func (g *Graph) Len() int { return len(g.scenes) }

// warnDangling logs every edge destination that does not resolve. These are
// content bugs, not fatal: the engine falls back to the start scene when a
// playthrough actually reaches one.
func (g *Graph) warnDangling(log zerolog.Logger) {
	for id, scene := range g.scenes {
		for _, choice := range scene.Choices {
			if choice.Next != "" && !g.Has(choice.Next) {
				log.Warn().Str("scene", id).Str("dest", choice.Next).Msg("edge destination not defined")
			}
			if c, ok := choice.Effect.(StartCombat); ok && c.After != "" && !g.Has(c.After) {
				log.Warn().Str("scene", id).Str("after", c.After).Msg("post-combat destination not defined")
			}
		}
	}
}
