package game

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/shadowspire/internal/combat"
	"github.com/samdwyer/shadowspire/internal/entity"
	"github.com/samdwyer/shadowspire/internal/gamedata"
	"github.com/samdwyer/shadowspire/internal/session"
	"github.com/samdwyer/shadowspire/internal/story"
	"github.com/samdwyer/shadowspire/internal/telemetry"
	"github.com/samdwyer/shadowspire/internal/ui"
)

// Game holds the entire game: screen, static registries, and the active
// session. Everything is single-threaded; each state transition is driven
// by one blocking input event.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	cfg      Config
	log      zerolog.Logger
	rng      *rand.Rand
	seed     int64

	characters *gamedata.CharacterRegistry
	enemies    *gamedata.EnemyRegistry
	spawner    *entity.Spawner
	engine     *story.Engine
	store      *session.Store

	state   State
	sess    *session.State
	notices []string
	running bool

	encounter   *combat.Encounter
	combatReq   story.CombatRequest
	combatLog   []string
	returnState State // screen the inventory overlay returns to
}

// New creates a game instance with all static data loaded.
func New(cfg Config, log zerolog.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	enemies := gamedata.MustLoadEnemyRegistry()

	return &Game{
		screen:     screen,
		renderer:   ui.NewRenderer(screen),
		cfg:        cfg,
		log:        log,
		rng:        rand.New(rand.NewSource(seed)),
		seed:       seed,
		characters: gamedata.MustLoadCharacterRegistry(),
		enemies:    enemies,
		spawner:    entity.NewSpawner(enemies, log),
		engine:     story.NewEngine(story.MustBuildGraph(log), log),
		store:      session.NewStore(cfg.SavePath, log),
		state:      StateMenu,
		running:    true,
	}, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	_, initSpan := tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(
		attribute.Int("scenes", g.engine.Graph().Len()),
		attribute.Int("enemy_templates", g.enemies.Count()),
		attribute.Int64("seed", g.seed),
	)
	initSpan.End()

	for g.running {
		g.render()
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}

// render draws the screen for the current state.
func (g *Game) render() {
	switch g.state {
	case StateMenu:
		g.renderer.RenderMenu(g.notices)
	case StateCharacterSelect:
		g.renderer.RenderCharacterSelect(g.characters.All(), g.notices)
	case StateScene:
		scene := g.engine.Current(g.sess)
		g.renderer.RenderScene(scene, g.sess.Player.HP, g.sess.Player.MaxHP, g.notices)
	case StateEnding:
		g.renderer.RenderEnding(g.engine.Current(g.sess), g.notices)
	case StateInventory:
		g.renderer.RenderInventory(g.sess.Inventory.Items(), g.notices)
	case StateCombat:
		g.renderer.RenderCombat(g.combatView())
	}
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent routes keyboard input to the current state's handler.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		g.running = false
		return
	}

	switch g.state {
	case StateMenu:
		g.menuKey(ctx, ev)
	case StateCharacterSelect:
		g.characterKey(ev)
	case StateScene:
		g.sceneKey(ctx, ev)
	case StateEnding:
		g.endingKey(ctx, ev)
	case StateInventory:
		g.inventoryKey(ctx, ev)
	case StateCombat:
		g.combatKey(ctx, ev)
	}
}

// menuKey handles the start menu.
func (g *Game) menuKey(ctx context.Context, ev *tcell.EventKey) {
	switch keyRune(ev) {
	case 'n':
		g.notices = nil
		g.state = StateCharacterSelect
	case 'l':
		g.loadGame(ctx)
	case 'q':
		g.running = false
	}
}

// characterKey handles the roster screen.
func (g *Game) characterKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		g.notices = nil
		g.state = StateMenu
		return
	}
	d := digitKey(ev)
	if d < 0 {
		return
	}
	def := g.characters.ByIndex(d - 1)
	if def == nil {
		g.notices = []string{"Invalid selection; try again."}
		return
	}

	g.sess = session.New(def, g.engine.Graph().Start)
	g.log.Info().Str("template", def.Key).Str("session", g.sess.ID).Msg("new game started")
	g.notices = []string{"You chose " + def.Name + ". Good luck!"}
	g.syncSceneState()
}

// sceneKey handles story navigation.
func (g *Game) sceneKey(ctx context.Context, ev *tcell.EventKey) {
	switch keyRune(ev) {
	case 'i':
		g.notices = nil
		g.returnState = StateScene
		g.state = StateInventory
		return
	case 's':
		g.saveGame(ctx)
		return
	case 'q':
		g.notices = []string{"Quitting to main menu."}
		g.sess = nil
		g.state = StateMenu
		return
	}
	if d := digitKey(ev); d > 0 {
		g.chooseEdge(ctx, d-1)
	}
}

// chooseEdge applies one story choice through the engine.
func (g *Game) chooseEdge(ctx context.Context, index int) {
	g.notices = nil

	tracer := telemetry.Tracer("story")
	_, span := tracer.Start(ctx, "scene.choose")
	span.SetAttributes(
		attribute.String("scene", g.sess.Scene),
		attribute.Int("choice", index),
	)
	defer span.End()

	tr, err := g.engine.Choose(g.sess, index)
	var reqErr *story.RequirementNotMet
	switch {
	case errors.Is(err, story.ErrChoiceOutOfRange):
		g.notices = append(g.notices, "Invalid choice number.")
		return
	case errors.As(err, &reqErr):
		g.notices = append(g.notices, "You do not have the required condition to take that action.")
		return
	}

	g.notices = append(g.notices, tr.Events...)
	if tr.Combat != nil {
		g.startEncounter(ctx, *tr.Combat)
		return
	}
	span.SetAttributes(attribute.String("next", g.sess.Scene))
	g.syncSceneState()
}

// endingKey handles the post-game menu on a terminal scene.
func (g *Game) endingKey(ctx context.Context, ev *tcell.EventKey) {
	switch keyRune(ev) {
	case 's':
		g.saveGame(ctx)
	case 'n':
		g.notices = nil
		g.sess = nil
		g.state = StateMenu
	case 'q':
		g.running = false
	}
}

// inventoryKey handles the item list overlay.
func (g *Game) inventoryKey(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape || keyRune(ev) == 'b' {
		g.notices = nil
		g.state = g.returnState
		return
	}
	if d := digitKey(ev); d > 0 {
		g.useItem(ctx, d-1)
	}
}

// useItem applies an inventory item. In combat, a consumed item is the
// player's action for the round and the enemy responds.
func (g *Game) useItem(ctx context.Context, index int) {
	g.notices = nil
	inCombat := g.returnState == StateCombat

	res, err := g.sess.Inventory.Use(index, g.sess.Player, inCombat)
	if err != nil {
		g.notices = append(g.notices, "Invalid item number.")
		return
	}
	if !res.Consumed {
		g.notices = append(g.notices, res.Message)
		return
	}

	if !inCombat {
		g.notices = append(g.notices, res.Message)
		g.state = g.returnState
		return
	}

	g.combatLog = append(g.combatLog, res.Message)
	g.state = StateCombat
	g.combatItem(ctx, res)
}

// loadGame replaces the session with persisted state, if any.
func (g *Game) loadGame(ctx context.Context) {
	g.notices = nil

	tracer := telemetry.Tracer("session")
	_, span := tracer.Start(ctx, "session.load")
	defer span.End()

	st, err := g.store.Load(g.characters)
	switch {
	case errors.Is(err, session.ErrNoSave):
		g.notices = append(g.notices, "No save file found.")
	case err != nil:
		g.log.Error().Err(err).Msg("load failed")
		g.notices = append(g.notices, "Failed to load save: "+err.Error())
	default:
		g.sess = st
		g.notices = append(g.notices, "Game loaded. Welcome back, "+st.Player.Name+"!")
		g.syncSceneState()
	}
}

// saveGame persists the session in place.
func (g *Game) saveGame(ctx context.Context) {
	g.notices = nil

	tracer := telemetry.Tracer("session")
	_, span := tracer.Start(ctx, "session.save")
	defer span.End()

	if err := g.store.Save(g.sess); err != nil {
		g.log.Error().Err(err).Msg("save failed")
		g.notices = append(g.notices, "Save failed: "+err.Error())
		return
	}
	g.notices = append(g.notices, "Game saved to "+g.cfg.SavePath+".")
}

// syncSceneState routes to the ending screen when the session has reached
// a terminal scene.
func (g *Game) syncSceneState() {
	if g.engine.Current(g.sess).IsEnding() {
		g.state = StateEnding
		return
	}
	g.state = StateScene
}

// keyRune returns the lowercased rune of a character key, or 0.
func keyRune(ev *tcell.EventKey) rune {
	if ev.Key() != tcell.KeyRune {
		return 0
	}
	r := ev.Rune()
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return r
}

// digitKey returns the value of a pressed digit key 1-9, or -1.
func digitKey(ev *tcell.EventKey) int {
	if ev.Key() != tcell.KeyRune {
		return -1
	}
	r := ev.Rune()
	if r < '1' || r > '9' {
		return -1
	}
	return int(r - '0')
}
