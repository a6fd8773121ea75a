package gamedata

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

// MoveClass categorizes what a combat move does when it connects.
type MoveClass string

const (
	MovePhysical MoveClass = "physical" // Strength-scaled damage
	MoveMagic    MoveClass = "magic"    // Magic-scaled damage
	MoveDrain    MoveClass = "drain"    // Damage that heals the attacker
	MoveDebuff   MoveClass = "debuff"   // No damage; applies a status
	MoveBuff     MoveClass = "buff"     // Self-targeted status
)

// MoveDef defines a single combat move.
type MoveDef struct {
	Name  string    `json:"name"`  // Display name (e.g., "Bite")
	Base  int       `json:"base"`  // Base power; may be 0 for pure status moves
	Class MoveClass `json:"class"` // How the move resolves on a hit
}

// EnemyDef defines an enemy template loaded from JSON.
// Templates are immutable; every spawn of a key shares the same definition.
type EnemyDef struct {
	Key      string    `json:"key"`      // Unique identifier (e.g., "wolf_spirit")
	Name     string    `json:"name"`     // Display name (e.g., "Wolf Spirit")
	Color    string    `json:"color"`    // Hex color for the combat banner
	HP       int       `json:"hp"`       // Base hit points before player scaling
	Strength int       `json:"strength"` // Base strength
	Agility  int       `json:"agility"`  // Base agility
	Magic    int       `json:"magic"`    // Base magic
	Moves    []MoveDef `json:"moves"`    // Nonempty move list
}

// TCellColor returns the banner color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy templates from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}

// EnemyRegistry holds loaded enemy templates keyed for encounter lookup.
type EnemyRegistry struct {
	enemies []EnemyDef
	byKey   map[string]*EnemyDef
}

// NewEnemyRegistry creates a registry from loaded enemy templates.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	registry := &EnemyRegistry{
		enemies: enemies,
		byKey:   make(map[string]*EnemyDef),
	}
	for i := range enemies {
		registry.byKey[enemies[i].Key] = &enemies[i]
	}
	return registry
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// ByKey returns the enemy template with the given key, or nil if not found.
// Spawning handles the nil case with a generic fallback; lookup never fails hard.
func (r *EnemyRegistry) ByKey(key string) *EnemyDef {
	return r.byKey[key]
}

// All returns all enemy templates.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy templates in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}
