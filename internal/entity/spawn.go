package entity

import (
	"github.com/rs/zerolog"

	"github.com/samdwyer/shadowspire/internal/gamedata"
)

// Enemy HP scales with player power so encounters stay challenging.
// power 15 is the implied baseline of a fresh, unbuffed character.
const (
	basePower  = 15
	scaleSpan  = 80
	minSpawnHP = 10
)

// Spawner builds fresh enemy actors from static templates.
type Spawner struct {
	registry *gamedata.EnemyRegistry
	log      zerolog.Logger
}

// NewSpawner creates a spawner over the given template registry.
func NewSpawner(registry *gamedata.EnemyRegistry, log zerolog.Logger) *Spawner {
	return &Spawner{registry: registry, log: log}
}

// Spawn produces a fresh enemy actor for the given template key.
// Unknown keys produce a generic fallback actor; spawning never fails.
// HP is scaled by the player's total stat power in integer math:
// hp = tpl.HP * (scaleSpan + power - basePower) / scaleSpan, floored, min 10.
func (s *Spawner) Spawn(key string, player *Actor) *Actor {
	def := s.registry.ByKey(key)
	if def == nil {
		s.log.Warn().Str("enemy", key).Msg("unknown enemy template, spawning fallback")
		return NewActor("Faint Echo", 30,
			map[string]int{StatStrength: 5, StatAgility: 5, StatMagic: 5},
			[]Move{{Name: "Tap", Base: 4, Class: gamedata.MovePhysical}})
	}

	power := basePower
	if player != nil {
		power = player.Power()
	}
	hp := def.HP * (scaleSpan + power - basePower) / scaleSpan
	if hp < minSpawnHP {
		hp = minSpawnHP
	}

	moves := make([]Move, len(def.Moves))
	for i, m := range def.Moves {
		moves[i] = Move{Name: m.Name, Base: m.Base, Class: m.Class}
	}
	stats := map[string]int{
		StatStrength: def.Strength,
		StatAgility:  def.Agility,
		StatMagic:    def.Magic,
	}
	return NewActor(def.Name, hp, stats, moves)
}
