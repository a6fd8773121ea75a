package gamedata

import "errors"

// The scene graph ships as YAML rather than JSON: scene descriptions are
// paragraphs of prose, and YAML block scalars keep the content file editable.

// SceneFile represents the structure of scenes.yaml.
type SceneFile struct {
	Start  string     `yaml:"start"`  // ID of the scene a new game begins at
	Scenes []SceneDef `yaml:"scenes"` // All narrative nodes
}

// SceneDef defines one narrative node. A scene with no choices is an ending.
type SceneDef struct {
	ID      string      `yaml:"id"`
	Title   string      `yaml:"title"`
	Desc    string      `yaml:"desc"`
	Choices []ChoiceDef `yaml:"choices"`
}

// ChoiceDef defines one traversable edge out of a scene.
type ChoiceDef struct {
	Text     string     `yaml:"text"`     // Menu line shown to the player
	Next     string     `yaml:"next"`     // Declared destination scene ID
	Requires string     `yaml:"requires"` // Flag or item name gating the edge, if any
	Effect   *EffectDef `yaml:"effect"`   // Attached effect, if any
}

// EffectDef is the raw, loosely-keyed effect record as authored in YAML.
// The story package compiles it into a typed effect; at most one of the
// effect keys should be set per edge.
type EffectDef struct {
	Enemy  string   `yaml:"enemy"`  // Enemy template key to fight
	After  string   `yaml:"after"`  // Post-victory destination override
	Item   *ItemDef `yaml:"item"`   // Item granted to the inventory
	Flag   string   `yaml:"flag"`   // Flag added to the flag set
	Heal   int      `yaml:"heal"`   // HP restored, clamped to max
	Ending string   `yaml:"ending"` // Ending ID to jump to
}

// BuffDef defines a stat buff carried by an item.
type BuffDef struct {
	Stat     string `yaml:"stat" json:"stat"`
	Amount   int    `yaml:"amount" json:"amount"`
	Duration int    `yaml:"duration" json:"duration"`
}

// ItemDef defines an item as authored in scene data. At most one of Heal,
// Buff, Escape is set; an item with none is flavor only.
type ItemDef struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Heal        int      `yaml:"heal,omitempty" json:"heal,omitempty"`
	Buff        *BuffDef `yaml:"buff,omitempty" json:"buff,omitempty"`
	Escape      float64  `yaml:"escape,omitempty" json:"escape,omitempty"`
}

// LoadSceneFile loads the scene graph from the embedded scenes.yaml.
func LoadSceneFile() (*SceneFile, error) {
	file, err := LoadYAML[SceneFile]("scenes.yaml")
	if err != nil {
		return nil, err
	}
	if file.Start == "" {
		return nil, errors.New("scenes.yaml declares no start scene")
	}
	if len(file.Scenes) == 0 {
		return nil, errors.New("no scenes loaded from scenes.yaml")
	}
	return &file, nil
}

// MustLoadSceneFile loads the scene graph, panicking on error.
func MustLoadSceneFile() *SceneFile {
	file, err := LoadSceneFile()
	if err != nil {
		panic(err)
	}
	return file
}
