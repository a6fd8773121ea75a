// Package combat provides the turn-based combat resolver.
package combat

import (
	"fmt"
	"math/rand"

	"github.com/samdwyer/shadowspire/internal/entity"
	"github.com/samdwyer/shadowspire/internal/gamedata"
	"github.com/samdwyer/shadowspire/internal/inventory"
)

// Outcome is the state of an encounter. Ongoing is the only non-terminal state.
type Outcome int

const (
	Ongoing Outcome = iota
	Victory
	Defeat
	Fled
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	case Fled:
		return "fled"
	default:
		return "unknown"
	}
}

// Action is a player combat action. Item use goes through the inventory and
// ItemRound instead.
type Action int

const (
	ActionAttack Action = iota
	ActionMagic
	ActionFocus
	ActionFlee
)

// Flag and ending names consulted by the defeat policy.
const (
	FlagVillagerToken = "villager_token"
	EndingSacrifice   = "ending_sacrifice"
	EndingFlee        = "ending_flee"
)

// FlagSet is the narrative flag state the defeat policy consults.
type FlagSet interface {
	Has(name string) bool
}

// DefeatEnding returns the scene id a combat defeat routes to. A player
// carrying the villager's token earns the sacrifice ending; everyone else
// shares the flee ending.
func DefeatEnding(flags FlagSet) string {
	if flags != nil && flags.Has(FlagVillagerToken) {
		return EndingSacrifice
	}
	return EndingFlee
}

// Chance that a wolf_spirit victory drops a pelt.
const wolfPeltChance = 0.4

// Encounter is one combat between the session player and a spawned enemy.
// It advances one round per PlayRound/ItemRound call so an event-driven
// caller can interleave rendering and input between rounds.
type Encounter struct {
	Player *entity.Actor
	Enemy  *entity.Actor
	Key    string // enemy template key; drives victory spoils

	Loot []inventory.Item // bonus items earned on victory

	rng     *rand.Rand
	outcome Outcome
	rounds  int
}

// NewEncounter starts an encounter in the Ongoing state.
func NewEncounter(player, enemy *entity.Actor, key string, rng *rand.Rand) *Encounter {
	return &Encounter{Player: player, Enemy: enemy, Key: key, rng: rng, outcome: Ongoing}
}

// Outcome returns the encounter's current state.
func (c *Encounter) Outcome() Outcome { return c.outcome }

// Rounds returns how many rounds have been fought.
func (c *Encounter) Rounds() int { return c.rounds }

// PlayRound executes one full combat round for the given player action:
// the player acts, then the enemy acts if it survived, then statuses decay.
// It returns narration for everything that happened. Calling it on a
// finished encounter is a no-op.
func (c *Encounter) PlayRound(action Action) []string {
	if c.outcome != Ongoing {
		return nil
	}

	events, acted := c.playerAct(action)
	if !acted {
		// Unrecognized action: re-prompt, the enemy does not get a turn.
		return events
	}
	c.rounds++
	if c.outcome != Ongoing {
		return events
	}

	if !c.Enemy.IsAlive() {
		return append(events, c.win()...)
	}

	events = append(events, c.enemyAct()...)
	return append(events, c.endRound()...)
}

// ItemRound completes a round in which the player's action was using an
// item. The item's own effect has already been applied by the inventory;
// an escape attempt is resolved here, and the enemy responds if the fight
// is still on.
func (c *Encounter) ItemRound(used inventory.UseResult) []string {
	if c.outcome != Ongoing {
		return nil
	}
	c.rounds++

	var events []string
	if used.Escape {
		if c.rng.Float64() < used.EscapeChance {
			c.outcome = Fled
			return append(events, "You slip away in the confusion.")
		}
		events = append(events, "The escape attempt fails!")
	}

	events = append(events, c.enemyAct()...)
	return append(events, c.endRound()...)
}

// playerAct resolves the player's half of a round. The boolean reports
// whether the action was recognized and consumed the player's turn.
func (c *Encounter) playerAct(action Action) ([]string, bool) {
	switch action {
	case ActionAttack:
		hit := rollD20(c.rng) + c.Player.Stat(entity.StatAgility)/2
		defend := 8 + c.Enemy.Stat(entity.StatAgility)/2
		if hit < defend {
			return []string{"Your attack missed!"}, true
		}
		damage := c.Player.Stat(entity.StatStrength) + uniform(c.rng, -3, 3)
		if damage < 1 {
			damage = 1
		}
		c.Enemy.TakeDamage(damage)
		return []string{fmt.Sprintf("You strike with Attack for %d damage.", damage)}, true

	case ActionMagic:
		hit := rollD20(c.rng) + c.Player.Stat(entity.StatMagic)/2
		defend := 7 + c.Enemy.Stat(entity.StatAgility)/2
		if hit < defend {
			return []string{"Your magic fizzles and fails."}, true
		}
		damage := c.Player.Stat(entity.StatMagic) + uniform(c.rng, -4, 4)
		if damage < 1 {
			damage = 1
		}
		c.Enemy.TakeDamage(damage)
		return []string{fmt.Sprintf("You unleash Magic for %d damage.", damage)}, true

	case ActionFocus:
		c.Player.ApplyStatus(entity.StatusFocused, 2)
		return []string{"You gather yourself. Your next attacks are empowered."}, true

	case ActionFlee:
		chance := 0.3 + 0.02*float64(c.Player.Stat(entity.StatAgility)-c.Enemy.Stat(entity.StatAgility))
		if c.rng.Float64() < chance {
			c.outcome = Fled
			return []string{"You successfully fled the battle."}, true
		}
		return []string{"Flee attempt failed."}, true

	default:
		return []string{"Unknown action; try again."}, false
	}
}

// enemyAct resolves the enemy's half of a round: a uniformly random move.
func (c *Encounter) enemyAct() []string {
	move := c.Enemy.Moves[c.rng.Intn(len(c.Enemy.Moves))]
	events := []string{fmt.Sprintf("%s uses %s!", c.Enemy.Name, move.Name)}

	hit := rollD20(c.rng) + c.Enemy.Stat(entity.StatAgility)/2
	defend := 7 + c.Player.Stat(entity.StatAgility)/2
	if hit < defend {
		return append(events, fmt.Sprintf("%s's attack misses!", c.Enemy.Name))
	}

	switch move.Class {
	case gamedata.MovePhysical:
		damage := move.Base + int(0.3*float64(c.Enemy.Stat(entity.StatStrength))) + uniform(c.rng, -2, 2)
		if damage < 1 {
			damage = 1
		}
		c.Player.TakeDamage(damage)
		events = append(events, fmt.Sprintf("It hits you for %d damage.", damage))

	case gamedata.MoveMagic:
		damage := move.Base + int(0.35*float64(c.Enemy.Stat(entity.StatMagic))) + uniform(c.rng, -3, 2)
		if damage < 1 {
			damage = 1
		}
		c.Player.TakeDamage(damage)
		events = append(events, fmt.Sprintf("Magic wounds you for %d damage.", damage))

	case gamedata.MoveDrain:
		damage := move.Base + int(0.25*float64(c.Enemy.Stat(entity.StatMagic)))
		if damage < 1 {
			damage = 1
		}
		c.Player.TakeDamage(damage)
		c.Enemy.Heal(damage / 2)
		events = append(events, fmt.Sprintf("The attack drains %d HP and heals the enemy a bit.", damage))

	case gamedata.MoveDebuff:
		c.Player.ApplyStatus(entity.StatusShaken, 2)
		events = append(events, "You are shaken and less steady.")
	}

	return events
}

// endRound decays statuses on both combatants and checks for defeat.
func (c *Encounter) endRound() []string {
	c.Player.DecayStatuses()
	c.Enemy.DecayStatuses()

	if !c.Player.IsAlive() {
		c.outcome = Defeat
		return []string{"You have been defeated..."}
	}
	return nil
}

// win records the victory and rolls for bonus spoils.
func (c *Encounter) win() []string {
	c.outcome = Victory
	events := []string{fmt.Sprintf("You defeated %s!", c.Enemy.Name)}

	if c.Key == "wolf_spirit" && c.rng.Float64() < wolfPeltChance {
		pelt := inventory.Item{Name: "Wolf Pelt", Description: "A pelt of a spectral wolf."}
		c.Loot = append(c.Loot, pelt)
		events = append(events, "You recover a Wolf Pelt.")
	}
	return events
}
