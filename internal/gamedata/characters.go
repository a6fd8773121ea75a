package gamedata

import "errors"

// CharacterDef defines a playable character template loaded from JSON.
type CharacterDef struct {
	Key         string `json:"key"`         // Unique identifier (e.g., "sans")
	Name        string `json:"name"`        // Display name (e.g., "Sans")
	Description string `json:"description"` // One-line blurb shown at selection
	Strength    int    `json:"strength"`    // Base strength
	Agility     int    `json:"agility"`     // Base agility
	Magic       int    `json:"magic"`       // Base magic
}

// CharactersFile represents the structure of characters.json.
type CharactersFile struct {
	Characters []CharacterDef `json:"characters"`
}

// LoadCharacters loads character templates from the embedded characters.json file.
func LoadCharacters() ([]CharacterDef, error) {
	file, err := Load[CharactersFile]("characters.json")
	if err != nil {
		return nil, err
	}
	return file.Characters, nil
}

// CharacterRegistry holds the fixed, ordered roster of playable templates.
type CharacterRegistry struct {
	characters []CharacterDef
	byKey      map[string]*CharacterDef
}

// NewCharacterRegistry creates a registry from loaded character templates.
func NewCharacterRegistry(characters []CharacterDef) *CharacterRegistry {
	registry := &CharacterRegistry{
		characters: characters,
		byKey:      make(map[string]*CharacterDef),
	}
	for i := range characters {
		registry.byKey[characters[i].Key] = &characters[i]
	}
	return registry
}

// LoadCharacterRegistry loads and creates a registry from the embedded characters.json.
func LoadCharacterRegistry() (*CharacterRegistry, error) {
	characters, err := LoadCharacters()
	if err != nil {
		return nil, err
	}
	if len(characters) == 0 {
		return nil, errors.New("no characters loaded from characters.json")
	}
	return NewCharacterRegistry(characters), nil
}

// MustLoadCharacterRegistry loads a registry, panicking on error.
func MustLoadCharacterRegistry() *CharacterRegistry {
	registry, err := LoadCharacterRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// ByIndex returns the nth template in selection order, or nil if out of range.
func (r *CharacterRegistry) ByIndex(i int) *CharacterDef {
	if i < 0 || i >= len(r.characters) {
		return nil
	}
	return &r.characters[i]
}

// ByKey returns the template with the given key, or nil if not found.
func (r *CharacterRegistry) ByKey(key string) *CharacterDef {
	return r.byKey[key]
}

// All returns all character templates in selection order.
func (r *CharacterRegistry) All() []CharacterDef {
	return r.characters
}

// Count returns the number of playable templates.
func (r *CharacterRegistry) Count() int {
	return len(r.characters)
}
