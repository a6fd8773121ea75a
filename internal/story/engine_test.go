package story

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/samdwyer/shadowspire/internal/combat"
	"github.com/samdwyer/shadowspire/internal/gamedata"
	"github.com/samdwyer/shadowspire/internal/inventory"
	"github.com/samdwyer/shadowspire/internal/session"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(MustBuildGraph(zerolog.Nop()), zerolog.Nop())
}

func newTestSession(t *testing.T, e *Engine) *session.State {
	t.Helper()
	def := gamedata.MustLoadCharacterRegistry().ByKey("sans")
	if def == nil {
		t.Fatal("character template sans missing")
	}
	return session.New(def, e.Graph().Start)
}

func TestChooseCommitsPlainTransition(t *testing.T) {
	e := newTestEngine(t)
	st := newTestSession(t, e)

	tr, err := e.Choose(st, 0)
	if err != nil {
		t.Fatalf("Choose(0) error = %v", err)
	}
	if st.Scene != "village" {
		t.Errorf("scene = %q, want village", st.Scene)
	}
	if len(tr.Events) != 0 {
		t.Errorf("plain transition produced events %v", tr.Events)
	}
	if tr.Combat != nil {
		t.Errorf("plain transition requested combat %+v", tr.Combat)
	}
}

// Searching the glade grants the amulet, and wearing it raises the
// amulet_worn flag on the way to the village.
func TestGladeAmuletPath(t *testing.T) {
	e := newTestEngine(t)
	st := newTestSession(t, e)

	tr, err := e.Choose(st, 2)
	if err != nil {
		t.Fatalf("Choose(glade search) error = %v", err)
	}
	if st.Scene != "glade_search" {
		t.Fatalf("scene = %q, want glade_search", st.Scene)
	}
	if !st.Inventory.HasNamed("Tarnished Amulet") {
		t.Error("amulet not granted by the search edge")
	}
	if len(tr.Events) == 0 {
		t.Error("item grant produced no event")
	}

	if _, err := e.Choose(st, 0); err != nil {
		t.Fatalf("Choose(wear amulet) error = %v", err)
	}
	if !st.Flags.Has("amulet_worn") {
		t.Error("amulet_worn flag not raised")
	}
	if st.Scene != "village" {
		t.Errorf("scene = %q, want village", st.Scene)
	}
}

func TestChooseOutOfRangeMutatesNothing(t *testing.T) {
	e := newTestEngine(t)
	st := newTestSession(t, e)
	itemsBefore := st.Inventory.Len()
	hpBefore := st.Player.HP

	_, err := e.Choose(st, 99)
	if !errors.Is(err, ErrChoiceOutOfRange) {
		t.Fatalf("Choose(99) error = %v, want ErrChoiceOutOfRange", err)
	}

	if st.Scene != e.Graph().Start {
		t.Errorf("scene = %q, want unchanged start", st.Scene)
	}
	if st.Inventory.Len() != itemsBefore {
		t.Error("inventory changed by rejected choice")
	}
	if len(st.Flags) != 0 {
		t.Error("flags changed by rejected choice")
	}
	if st.Player.HP != hpBefore {
		t.Error("player HP changed by rejected choice")
	}

	if _, err := e.Choose(st, -1); !errors.Is(err, ErrChoiceOutOfRange) {
		t.Errorf("Choose(-1) error = %v, want ErrChoiceOutOfRange", err)
	}
}

func TestChooseRejectsUnmetRequirement(t *testing.T) {
	e := newTestEngine(t)
	st := newTestSession(t, e)
	st.Scene = "approach_castle"

	_, err := e.Choose(st, 1)
	var unmet *RequirementNotMet
	if !errors.As(err, &unmet) {
		t.Fatalf("Choose(gated edge) error = %v, want RequirementNotMet", err)
	}
	if unmet.Requirement != "Hidden Map" {
		t.Errorf("Requirement = %q, want Hidden Map", unmet.Requirement)
	}
	if st.Scene != "approach_castle" {
		t.Errorf("scene = %q, want unchanged approach_castle", st.Scene)
	}

	// An item with the required name satisfies the gate.
	st.Inventory.Add(inventory.Item{Name: "Hidden Map", Description: "A secret entrance."})
	if _, err := e.Choose(st, 1); err != nil {
		t.Fatalf("Choose(gated edge with item) error = %v", err)
	}
	if st.Scene != "dungeon_entrance" {
		t.Errorf("scene = %q, want dungeon_entrance", st.Scene)
	}
}

func TestChooseAcceptsFlagRequirement(t *testing.T) {
	e := newTestEngine(t)
	st := newTestSession(t, e)
	st.Scene = "final_negotiate"
	st.Flags.Add("saved_villager")

	if _, err := e.Choose(st, 0); err != nil {
		t.Fatalf("Choose(peace offer) error = %v", err)
	}
	if st.Scene != "ending_peace" {
		t.Errorf("scene = %q, want ending_peace", st.Scene)
	}
	if !e.Current(st).IsEnding() {
		t.Error("ending_peace not terminal")
	}
}

func TestChooseCombatEdgeDefersCommit(t *testing.T) {
	e := newTestEngine(t)
	st := newTestSession(t, e)
	st.Scene = "cellar"

	tr, err := e.Choose(st, 0)
	if err != nil {
		t.Fatalf("Choose(fight wolves) error = %v", err)
	}
	if tr.Combat == nil {
		t.Fatal("combat edge returned no CombatRequest")
	}
	if tr.Combat.EnemyKey != "wolf_spirit" {
		t.Errorf("EnemyKey = %q, want wolf_spirit", tr.Combat.EnemyKey)
	}
	if tr.Combat.After != "village_reward" {
		t.Errorf("After = %q, want village_reward", tr.Combat.After)
	}
	if tr.Combat.Next != "cellar" {
		t.Errorf("Next = %q, want cellar", tr.Combat.Next)
	}
	if st.Scene != "cellar" {
		t.Errorf("scene = %q, want uncommitted cellar", st.Scene)
	}
}

func TestResolveCombat(t *testing.T) {
	e := newTestEngine(t)
	req := CombatRequest{EnemyKey: "wolf_spirit", After: "village_reward", Next: "cellar"}

	tests := []struct {
		name    string
		req     CombatRequest
		outcome combat.Outcome
		flags   []string
		want    string
	}{
		{"victory goes to after", req, combat.Victory, nil, "village_reward"},
		{"victory without after goes to next", CombatRequest{EnemyKey: "wolf_spirit", Next: "road"}, combat.Victory, nil, "road"},
		{"fled returns to next", req, combat.Fled, nil, "cellar"},
		{"defeat without token", req, combat.Defeat, nil, "ending_flee"},
		{"defeat with token", req, combat.Defeat, []string{"villager_token"}, "ending_sacrifice"},
	}

	for _, tt := range tests {
		st := newTestSession(t, e)
		st.Scene = "cellar"
		for _, flag := range tt.flags {
			st.Flags.Add(flag)
		}

		e.ResolveCombat(st, tt.req, tt.outcome)
		if st.Scene != tt.want {
			t.Errorf("%s: scene = %q, want %q", tt.name, st.Scene, tt.want)
		}
	}
}

func TestChooseHealClampsAndReports(t *testing.T) {
	e := newTestEngine(t)
	st := newTestSession(t, e)
	st.Scene = "road"
	st.Player.TakeDamage(30)
	hpBefore := st.Player.HP

	tr, err := e.Choose(st, 1)
	if err != nil {
		t.Fatalf("Choose(camp) error = %v", err)
	}
	if st.Player.HP != hpBefore+10 {
		t.Errorf("HP after camp = %d, want %d", st.Player.HP, hpBefore+10)
	}
	if st.Scene != "camp" {
		t.Errorf("scene = %q, want camp", st.Scene)
	}
	if len(tr.Events) != 1 || tr.Events[0] != "You recovered 10 HP by resting." {
		t.Errorf("events = %v, want recovery message", tr.Events)
	}
}

func TestChooseHealAtFullHealth(t *testing.T) {
	e := newTestEngine(t)
	st := newTestSession(t, e)
	st.Scene = "road"

	tr, err := e.Choose(st, 1)
	if err != nil {
		t.Fatalf("Choose(camp) error = %v", err)
	}
	if st.Player.HP != st.Player.MaxHP {
		t.Errorf("HP = %d, want clamped max %d", st.Player.HP, st.Player.MaxHP)
	}
	if len(tr.Events) != 1 || tr.Events[0] != "You recovered 0 HP by resting." {
		t.Errorf("events = %v, want zero-recovery message", tr.Events)
	}
}

func TestEndingEffectSupersedesDestination(t *testing.T) {
	file := &gamedata.SceneFile{
		Start: "crossroads",
		Scenes: []gamedata.SceneDef{
			{
				ID: "crossroads",
				Choices: []gamedata.ChoiceDef{
					{
						Text:   "give up",
						Next:   "tavern",
						Effect: &gamedata.EffectDef{Ending: "flee"},
					},
				},
			},
			{ID: "tavern", Choices: []gamedata.ChoiceDef{{Text: "drink", Next: "tavern"}}},
			{ID: "ending_flee"},
		},
	}
	g, err := BuildGraph(file, zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildGraph() error = %v", err)
	}
	e := NewEngine(g, zerolog.Nop())
	st := newTestSession(t, e)

	if _, err := e.Choose(st, 0); err != nil {
		t.Fatalf("Choose() error = %v", err)
	}
	if st.Scene != "ending_flee" {
		t.Errorf("scene = %q, want ending_flee superseding tavern", st.Scene)
	}
}

func TestResolveEndingFallsBackToRawID(t *testing.T) {
	file := &gamedata.SceneFile{
		Start: "crossroads",
		Scenes: []gamedata.SceneDef{
			{
				ID: "crossroads",
				Choices: []gamedata.ChoiceDef{
					{
						Text:   "step through",
						Next:   "crossroads",
						Effect: &gamedata.EffectDef{Ending: "last_door"},
					},
				},
			},
			{ID: "last_door"},
		},
	}
	g, err := BuildGraph(file, zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildGraph() error = %v", err)
	}
	e := NewEngine(g, zerolog.Nop())
	st := newTestSession(t, e)

	if _, err := e.Choose(st, 0); err != nil {
		t.Fatalf("Choose() error = %v", err)
	}
	if st.Scene != "last_door" {
		t.Errorf("scene = %q, want raw id last_door", st.Scene)
	}
}

func TestCurrentResetsUnknownScene(t *testing.T) {
	e := newTestEngine(t)
	st := newTestSession(t, e)
	st.Scene = "the_void"

	scene := e.Current(st)
	if scene == nil {
		t.Fatal("Current() = nil after reset")
	}
	if scene.ID != e.Graph().Start {
		t.Errorf("Current().ID = %q, want start", scene.ID)
	}
	if st.Scene != e.Graph().Start {
		t.Errorf("session scene = %q, want reset to start", st.Scene)
	}
}

func TestChooseFlagIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	st := newTestSession(t, e)
	st.Scene = "cellar"

	if _, err := e.Choose(st, 1); err != nil {
		t.Fatalf("Choose(distract) error = %v", err)
	}
	if !st.Flags.Has("saved_villager") {
		t.Error("saved_villager flag not raised")
	}
	if st.Scene != "road" {
		t.Errorf("scene = %q, want road", st.Scene)
	}

	// Raising the flag again keeps the set stable.
	st.Scene = "cellar"
	if _, err := e.Choose(st, 1); err != nil {
		t.Fatalf("second Choose(distract) error = %v", err)
	}
	if len(st.Flags.Names()) != 1 {
		t.Errorf("flags = %v, want exactly one", st.Flags.Names())
	}
}
