package gamedata

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestLoadCharacterRegistry(t *testing.T) {
	registry, err := LoadCharacterRegistry()
	if err != nil {
		t.Fatalf("LoadCharacterRegistry() error = %v", err)
	}

	if registry.Count() != 8 {
		t.Errorf("Count() = %d, want 8", registry.Count())
	}

	first := registry.ByIndex(0)
	if first == nil {
		t.Fatal("ByIndex(0) = nil, want first template")
	}
	if first.Key != "sans" {
		t.Errorf("ByIndex(0).Key = %q, want %q", first.Key, "sans")
	}
	if first.Strength != 6 || first.Agility != 10 || first.Magic != 9 {
		t.Errorf("ByIndex(0) stats = %d/%d/%d, want 6/10/9",
			first.Strength, first.Agility, first.Magic)
	}

	if registry.ByIndex(-1) != nil {
		t.Error("ByIndex(-1) should return nil")
	}
	if registry.ByIndex(registry.Count()) != nil {
		t.Error("ByIndex(Count()) should return nil")
	}

	if got := registry.ByKey("nightmare_sans"); got == nil {
		t.Error("ByKey(nightmare_sans) = nil, want template")
	}
	if got := registry.ByKey("nonexistent"); got != nil {
		t.Errorf("ByKey(nonexistent) = %v, want nil", got)
	}
}

func TestCharacterRegistryOrderIsStable(t *testing.T) {
	registry := MustLoadCharacterRegistry()

	all := registry.All()
	for i := range all {
		byIndex := registry.ByIndex(i)
		if byIndex.Key != all[i].Key {
			t.Errorf("ByIndex(%d).Key = %q, want %q", i, byIndex.Key, all[i].Key)
		}
	}
}

func TestLoadEnemyRegistry(t *testing.T) {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		t.Fatalf("LoadEnemyRegistry() error = %v", err)
	}

	if registry.Count() != 4 {
		t.Errorf("Count() = %d, want 4", registry.Count())
	}

	wolf := registry.ByKey("wolf_spirit")
	if wolf == nil {
		t.Fatal("ByKey(wolf_spirit) = nil, want template")
	}
	if wolf.HP != 45 {
		t.Errorf("wolf_spirit HP = %d, want 45", wolf.HP)
	}
	if len(wolf.Moves) != 2 {
		t.Fatalf("wolf_spirit has %d moves, want 2", len(wolf.Moves))
	}
	if wolf.Moves[1].Class != MoveDebuff {
		t.Errorf("wolf_spirit second move class = %q, want %q", wolf.Moves[1].Class, MoveDebuff)
	}

	if got := registry.ByKey("dragon"); got != nil {
		t.Errorf("ByKey(dragon) = %v, want nil", got)
	}
}

func TestEnemyMovesHaveKnownClasses(t *testing.T) {
	known := map[MoveClass]bool{
		MovePhysical: true,
		MoveMagic:    true,
		MoveDrain:    true,
		MoveDebuff:   true,
		MoveBuff:     true,
	}

	for _, enemy := range MustLoadEnemyRegistry().All() {
		if len(enemy.Moves) == 0 {
			t.Errorf("enemy %q has no moves", enemy.Key)
		}
		for _, move := range enemy.Moves {
			if !known[move.Class] {
				t.Errorf("enemy %q move %q has unknown class %q", enemy.Key, move.Name, move.Class)
			}
		}
	}
}

func TestLoadSceneFile(t *testing.T) {
	file, err := LoadSceneFile()
	if err != nil {
		t.Fatalf("LoadSceneFile() error = %v", err)
	}

	if file.Start != "start" {
		t.Errorf("Start = %q, want %q", file.Start, "start")
	}

	ids := make(map[string]bool, len(file.Scenes))
	for _, scene := range file.Scenes {
		if scene.ID == "" {
			t.Error("scene with empty id")
		}
		if ids[scene.ID] {
			t.Errorf("duplicate scene id %q", scene.ID)
		}
		ids[scene.ID] = true
	}

	if !ids[file.Start] {
		t.Errorf("start scene %q not defined", file.Start)
	}
}

func TestSceneDestinationsResolve(t *testing.T) {
	file := MustLoadSceneFile()

	ids := make(map[string]bool, len(file.Scenes))
	for _, scene := range file.Scenes {
		ids[scene.ID] = true
	}

	for _, scene := range file.Scenes {
		for _, choice := range scene.Choices {
			if choice.Next != "" && !ids[choice.Next] {
				t.Errorf("scene %q: destination %q not defined", scene.ID, choice.Next)
			}
			if choice.Effect != nil && choice.Effect.After != "" && !ids[choice.Effect.After] {
				t.Errorf("scene %q: after destination %q not defined", scene.ID, choice.Effect.After)
			}
		}
	}
}

func TestCombatEdgesReferenceKnownEnemies(t *testing.T) {
	enemies := MustLoadEnemyRegistry()

	for _, scene := range MustLoadSceneFile().Scenes {
		for _, choice := range scene.Choices {
			if choice.Effect == nil || choice.Effect.Enemy == "" {
				continue
			}
			if enemies.ByKey(choice.Effect.Enemy) == nil {
				t.Errorf("scene %q: combat edge names unknown enemy %q", scene.ID, choice.Effect.Enemy)
			}
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    tcell.Color
		wantErr bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), false},
		{"00FF00", tcell.NewRGBColor(0, 255, 0), false},
		{"#5B2D8E", tcell.NewRGBColor(0x5B, 0x2D, 0x8E), false},
		{"#FFF", tcell.ColorDefault, true},
		{"#GGGGGG", tcell.ColorDefault, true},
		{"", tcell.ColorDefault, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestEnemyTCellColorFallsBack(t *testing.T) {
	bad := EnemyDef{Key: "x", Color: "not-a-color"}
	if got := bad.TCellColor(); got != tcell.ColorWhite {
		t.Errorf("TCellColor() with bad hex = %v, want white", got)
	}

	good := EnemyDef{Key: "y", Color: "#8CB4E6"}
	if got := good.TCellColor(); got != tcell.NewRGBColor(0x8C, 0xB4, 0xE6) {
		t.Errorf("TCellColor() = %v, want parsed color", got)
	}
}
