// Package inventory provides the item model and the player's inventory.
package inventory

import (
	"fmt"

	"github.com/samdwyer/shadowspire/internal/entity"
	"github.com/samdwyer/shadowspire/internal/gamedata"
)

// Kind classifies what using an item does.
type Kind int

const (
	KindFlavor Kind = iota // No mechanical effect
	KindHeal               // Restores HP
	KindBuff               // Permanently raises a stat
	KindEscape             // Attempts to flee combat
)

// Buff is a stat increase carried by an item. Duration is kept for data
// fidelity but buff items apply permanently when used.
type Buff struct {
	Stat     string `json:"stat"`
	Amount   int    `json:"amount"`
	Duration int    `json:"duration"`
}

// Effect is an item's mechanical payload. At most one field is set; an
// all-zero Effect is flavor only.
type Effect struct {
	Heal   int     `json:"heal,omitempty"`
	Buff   *Buff   `json:"buff,omitempty"`
	Escape float64 `json:"escape,omitempty"`
}

// Kind returns which effect variant is set.
func (e Effect) Kind() Kind {
	switch {
	case e.Heal > 0:
		return KindHeal
	case e.Buff != nil:
		return KindBuff
	case e.Escape > 0:
		return KindEscape
	default:
		return KindFlavor
	}
}

// Item is a single inventory entry.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Effect      Effect `json:"effect"`
}

// FromDef converts an item as authored in scene data into an Item.
func FromDef(def *gamedata.ItemDef) Item {
	item := Item{
		Name:        def.Name,
		Description: def.Description,
		Effect:      Effect{Heal: def.Heal, Escape: def.Escape},
	}
	if def.Buff != nil {
		item.Effect.Buff = &Buff{Stat: def.Buff.Stat, Amount: def.Buff.Amount, Duration: def.Buff.Duration}
	}
	return item
}

// UseResult reports what using an item did.
type UseResult struct {
	Message  string
	Consumed bool

	// Escape is true when the item is a combat-escape attempt; the combat
	// flow rolls EscapeChance against the RNG. Escape items are consumed by
	// the attempt regardless of its outcome.
	Escape       bool
	EscapeChance float64
}

// Inventory is the player's ordered item list.
type Inventory struct {
	items []Item
}

// New creates an inventory holding the given items.
func New(items ...Item) *Inventory {
	return &Inventory{items: items}
}

// Starting returns the inventory a new game begins with.
func Starting() *Inventory {
	return New(
		Item{Name: "Small Potion", Description: "Heals 25 HP.", Effect: Effect{Heal: 25}},
		Item{Name: "Smoke Bomb", Description: "Escape attempt in combat (60%).", Effect: Effect{Escape: 0.6}},
	)
}

// Items returns the items in order.
func (v *Inventory) Items() []Item { return v.items }

// Len returns the number of items held.
func (v *Inventory) Len() int { return len(v.items) }

// Add appends an item.
func (v *Inventory) Add(item Item) { v.items = append(v.items, item) }

// Remove deletes and returns the item at index i.
func (v *Inventory) Remove(i int) (Item, bool) {
	if i < 0 || i >= len(v.items) {
		return Item{}, false
	}
	item := v.items[i]
	v.items = append(v.items[:i], v.items[i+1:]...)
	return item, true
}

// HasNamed reports whether any held item bears the given name.
// Edge preconditions accept an item name in place of a flag.
func (v *Inventory) HasNamed(name string) bool {
	for _, item := range v.items {
		if item.Name == name {
			return true
		}
	}
	return false
}

// Use applies the item at index i to the player. Heal and buff items are
// consumed on use. Escape items are only meaningful mid-combat: outside
// combat they are refused unconsumed, inside combat they are consumed and
// the attempt is reported back for the combat flow to resolve.
func (v *Inventory) Use(i int, player *entity.Actor, inCombat bool) (UseResult, error) {
	if i < 0 || i >= len(v.items) {
		return UseResult{}, fmt.Errorf("no item at slot %d", i+1)
	}
	item := v.items[i]

	switch item.Effect.Kind() {
	case KindHeal:
		old := player.HP
		player.Heal(item.Effect.Heal)
		v.Remove(i)
		return UseResult{
			Message:  fmt.Sprintf("You used %s: HP %d -> %d.", item.Name, old, player.HP),
			Consumed: true,
		}, nil

	case KindBuff:
		buff := item.Effect.Buff
		player.AddStat(buff.Stat, buff.Amount)
		v.Remove(i)
		return UseResult{
			Message:  fmt.Sprintf("%s permanently increased your %s by %d.", item.Name, buff.Stat, buff.Amount),
			Consumed: true,
		}, nil

	case KindEscape:
		if !inCombat {
			return UseResult{Message: "That item is only usable in a fight to attempt escape."}, nil
		}
		v.Remove(i)
		return UseResult{
			Message:      fmt.Sprintf("You hurl the %s!", item.Name),
			Consumed:     true,
			Escape:       true,
			EscapeChance: item.Effect.Escape,
		}, nil

	default:
		return UseResult{Message: "Item could not be used."}, nil
	}
}
