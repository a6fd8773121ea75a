package game

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/shadowspire/internal/combat"
	"github.com/samdwyer/shadowspire/internal/inventory"
	"github.com/samdwyer/shadowspire/internal/story"
	"github.com/samdwyer/shadowspire/internal/telemetry"
	"github.com/samdwyer/shadowspire/internal/ui"
)

// startEncounter spawns the enemy and switches to the combat screen.
func (g *Game) startEncounter(ctx context.Context, req story.CombatRequest) {
	enemy := g.spawner.Spawn(req.EnemyKey, g.sess.Player)
	g.encounter = combat.NewEncounter(g.sess.Player, enemy, req.EnemyKey, g.rng)
	g.combatReq = req
	g.combatLog = []string{fmt.Sprintf("--- COMBAT START: %s appears! ---", enemy.Name)}
	g.state = StateCombat

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("enemy", req.EnemyKey),
		attribute.Int("enemy_hp", enemy.MaxHP),
		attribute.Int("player_hp", g.sess.Player.HP),
	)
	span.End()
}

// combatKey handles one key press during an encounter. Unrecognized keys
// consume no round.
func (g *Game) combatKey(ctx context.Context, ev *tcell.EventKey) {
	switch keyRune(ev) {
	case '1':
		g.combatRound(ctx, combat.ActionAttack)
	case '2':
		g.combatRound(ctx, combat.ActionMagic)
	case '3', 'u':
		g.returnState = StateCombat
		g.state = StateInventory
	case '4':
		g.combatRound(ctx, combat.ActionFocus)
	case 'f':
		g.combatRound(ctx, combat.ActionFlee)
	}
}

// combatRound plays one full round for the chosen action.
func (g *Game) combatRound(ctx context.Context, action combat.Action) {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.round")
	span.SetAttributes(
		attribute.String("enemy", g.encounter.Key),
		attribute.Int("round", g.encounter.Rounds()+1),
	)

	events := g.encounter.PlayRound(action)
	g.combatLog = append(g.combatLog, events...)

	span.SetAttributes(attribute.String("outcome", g.encounter.Outcome().String()))
	span.End()

	g.finishEncounterIfDone(ctx)
}

// combatItem completes a round in which the player's action was an item.
func (g *Game) combatItem(ctx context.Context, used inventory.UseResult) {
	events := g.encounter.ItemRound(used)
	g.combatLog = append(g.combatLog, events...)
	g.finishEncounterIfDone(ctx)
}

// finishEncounterIfDone commits a terminal outcome back into the story.
func (g *Game) finishEncounterIfDone(ctx context.Context) {
	outcome := g.encounter.Outcome()
	if outcome == combat.Ongoing {
		return
	}

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("enemy", g.encounter.Key),
		attribute.String("outcome", outcome.String()),
		attribute.Int("rounds", g.encounter.Rounds()),
	)
	span.End()

	// Carry the closing combat lines over to the next screen.
	g.notices = nil
	if n := len(g.combatLog); n > 0 {
		start := n - 2
		if start < 0 {
			start = 0
		}
		g.notices = append(g.notices, g.combatLog[start:]...)
	}

	for _, item := range g.encounter.Loot {
		g.sess.Inventory.Add(item)
	}

	g.engine.ResolveCombat(g.sess, g.combatReq, outcome)
	g.log.Debug().Str("enemy", g.encounter.Key).Str("outcome", outcome.String()).
		Str("scene", g.sess.Scene).Msg("encounter finished")

	g.encounter = nil
	g.combatLog = nil
	g.syncSceneState()
}

// combatView assembles the combat screen's view data.
func (g *Game) combatView() ui.CombatView {
	enemyColor := tcell.ColorWhite
	if def := g.enemies.ByKey(g.encounter.Key); def != nil {
		enemyColor = def.TCellColor()
	}
	return ui.CombatView{
		PlayerName:     g.sess.Player.Name,
		PlayerHP:       g.sess.Player.HP,
		PlayerMaxHP:    g.sess.Player.MaxHP,
		PlayerStatuses: g.sess.Player.ActiveStatuses(),
		EnemyName:      g.encounter.Enemy.Name,
		EnemyHP:        g.encounter.Enemy.HP,
		EnemyMaxHP:     g.encounter.Enemy.MaxHP,
		EnemyColor:     enemyColor,
		EnemyStatuses:  g.encounter.Enemy.ActiveStatuses(),
		Log:            g.combatLog,
	}
}
