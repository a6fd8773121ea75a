// Package game provides the main game loop and top-level state routing.
package game

// State represents which screen the game is on.
type State int

const (
	// StateMenu is the start menu (new game, load, quit).
	StateMenu State = iota
	// StateCharacterSelect is the roster screen.
	StateCharacterSelect
	// StateScene is normal story navigation.
	StateScene
	// StateEnding is a terminal scene with its post-game menu.
	StateEnding
	// StateInventory is the item list, overlaying scene or combat.
	StateInventory
	// StateCombat is an active encounter.
	StateCombat
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateCharacterSelect:
		return "character_select"
	case StateScene:
		return "scene"
	case StateEnding:
		return "ending"
	case StateInventory:
		return "inventory"
	case StateCombat:
		return "combat"
	default:
		return "unknown"
	}
}
