// Package entity provides the combatant model shared by the player and enemies.
package entity

import (
	"sort"

	"github.com/samdwyer/shadowspire/internal/gamedata"
)

// Recognized stat names. Stats live in a map so data files and save files
// can round-trip them without schema churn.
const (
	StatStrength = "strength"
	StatAgility  = "agility"
	StatMagic    = "magic"
)

// Status effect names tracked during combat.
const (
	StatusFocused = "focused" // Set by the Focus action; bookkeeping only for now
	StatusShaken  = "shaken"  // Applied by enemy debuff moves
)

// Move is one combat action an actor can take.
type Move struct {
	Name  string
	Base  int
	Class gamedata.MoveClass
}

// Actor is a combatant: the player for the whole session, or an enemy for
// the duration of one encounter.
type Actor struct {
	Name  string
	HP    int
	MaxHP int
	Stats map[string]int
	Moves []Move

	statuses map[string]int // status name -> remaining rounds
}

// NewActor creates an actor at full health.
func NewActor(name string, maxHP int, stats map[string]int, moves []Move) *Actor {
	return &Actor{
		Name:     name,
		HP:       maxHP,
		MaxHP:    maxHP,
		Stats:    stats,
		Moves:    moves,
		statuses: make(map[string]int),
	}
}

// NewPlayer creates the session player from a character template.
// HP derives from the template: 60 + 2x strength + magic.
func NewPlayer(def *gamedata.CharacterDef) *Actor {
	stats := map[string]int{
		StatStrength: def.Strength,
		StatAgility:  def.Agility,
		StatMagic:    def.Magic,
	}
	return NewActor(def.Name, 60+def.Strength*2+def.Magic, stats, PlayerMoves(stats))
}

// RestorePlayer rebuilds a player actor from persisted state. Moves are
// derived from stats, so they are not stored in the save file.
func RestorePlayer(name string, hp, maxHP int, stats map[string]int) *Actor {
	a := NewActor(name, maxHP, stats, PlayerMoves(stats))
	a.HP = clamp(hp, 0, maxHP)
	return a
}

// PlayerMoves returns the default player move list for the given stats.
func PlayerMoves(stats map[string]int) []Move {
	return []Move{
		{Name: "Attack", Base: stats[StatStrength], Class: gamedata.MovePhysical},
		{Name: "Magic", Base: stats[StatMagic], Class: gamedata.MoveMagic},
		{Name: "Focus", Base: 0, Class: gamedata.MoveBuff},
	}
}

// IsAlive returns true if the actor has HP remaining.
func (a *Actor) IsAlive() bool { return a.HP > 0 }

// Stat returns the named stat value, or zero if the actor lacks it.
func (a *Actor) Stat(name string) int { return a.Stats[name] }

// AddStat permanently raises the named stat, creating it if absent.
func (a *Actor) AddStat(name string, delta int) {
	if a.Stats == nil {
		a.Stats = make(map[string]int)
	}
	a.Stats[name] += delta
}

// Power is the sum of the three recognized stats; enemy HP scales on it.
func (a *Actor) Power() int {
	return a.Stats[StatStrength] + a.Stats[StatAgility] + a.Stats[StatMagic]
}

// TakeDamage reduces HP, clamped at zero, and returns actual damage taken.
func (a *Actor) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > a.HP {
		actual = a.HP
	}
	a.HP -= actual
	return actual
}

// Heal restores HP, clamped at MaxHP, and returns the actual amount healed.
func (a *Actor) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if a.HP+actual > a.MaxHP {
		actual = a.MaxHP - a.HP
	}
	a.HP += actual
	return actual
}

// ApplyStatus sets a status effect's remaining duration, replacing any
// existing entry of the same name.
func (a *Actor) ApplyStatus(name string, rounds int) {
	if rounds <= 0 {
		return
	}
	if a.statuses == nil {
		a.statuses = make(map[string]int)
	}
	a.statuses[name] = rounds
}

// StatusDuration returns the remaining rounds for a status, or 0 if inactive.
func (a *Actor) StatusDuration(name string) int { return a.statuses[name] }

// ActiveStatuses returns the names of active statuses in stable order.
func (a *Actor) ActiveStatuses() []string {
	names := make([]string, 0, len(a.statuses))
	for name := range a.statuses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DecayStatuses decrements every active status by one round and removes
// entries that reach zero. It returns the names of statuses that expired.
func (a *Actor) DecayStatuses() []string {
	var expired []string
	for name := range a.statuses {
		a.statuses[name]--
		if a.statuses[name] <= 0 {
			delete(a.statuses, name)
			expired = append(expired, name)
		}
	}
	sort.Strings(expired)
	return expired
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
