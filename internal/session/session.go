// Package session bundles the mutable per-playthrough state and its persistence.
package session

import (
	"sort"

	"github.com/google/uuid"

	"github.com/samdwyer/shadowspire/internal/entity"
	"github.com/samdwyer/shadowspire/internal/gamedata"
	"github.com/samdwyer/shadowspire/internal/inventory"
)

// Flags is the set of narrative markers gathered over a playthrough.
// Flags accumulate monotonically; nothing ever removes one.
type Flags map[string]struct{}

// NewFlags creates a flag set holding the given names.
func NewFlags(names ...string) Flags {
	f := make(Flags, len(names))
	for _, name := range names {
		f[name] = struct{}{}
	}
	return f
}

// Add records a flag. Adding an existing flag is a no-op.
func (f Flags) Add(name string) { f[name] = struct{}{} }

// Has reports whether the flag has been recorded.
func (f Flags) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// Names returns all recorded flags in sorted order.
func (f Flags) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// State is everything a playthrough owns: the player actor, inventory,
// current scene and flag set. It is created at new-game or load, replaced
// wholesale on load, and discarded on quit.
type State struct {
	ID          string
	TemplateKey string
	Player      *entity.Actor
	Inventory   *inventory.Inventory
	Scene       string
	Flags       Flags
}

// New starts a fresh playthrough for the chosen character template.
func New(def *gamedata.CharacterDef, startScene string) *State {
	return &State{
		ID:          uuid.NewString(),
		TemplateKey: def.Key,
		Player:      entity.NewPlayer(def),
		Inventory:   inventory.Starting(),
		Scene:       startScene,
		Flags:       NewFlags(),
	}
}
