package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/samdwyer/shadowspire/internal/entity"
	"github.com/samdwyer/shadowspire/internal/gamedata"
	"github.com/samdwyer/shadowspire/internal/inventory"
)

// Persistence errors callers are expected to branch on. Both are
// recoverable: the in-memory session is never touched by a failed load.
var (
	ErrNoSave          = errors.New("no save file found")
	ErrUnknownTemplate = errors.New("saved character template not recognized")
)

// saveFile is the on-disk schema. Player moves are derived from stats at
// load time, so only hp and stats are stored.
type saveFile struct {
	SessionID string           `json:"session_id"`
	Template  string           `json:"template"`
	Player    savedPlayer      `json:"player"`
	Inventory []inventory.Item `json:"inventory"`
	Scene     string           `json:"scene"`
	Flags     []string         `json:"flags"`
}

type savedPlayer struct {
	HP    int            `json:"hp"`
	MaxHP int            `json:"max_hp"`
	Stats map[string]int `json:"stats"`
}

// Store saves and loads sessions as a single JSON file.
type Store struct {
	path string
	log  zerolog.Logger
}

// NewStore creates a store writing to the given path.
func NewStore(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log}
}

// Save writes the whole session state. The file is written to a temp path
// and renamed into place so a failed write never leaves a torn save.
func (s *Store) Save(st *State) error {
	record := saveFile{
		SessionID: st.ID,
		Template:  st.TemplateKey,
		Player: savedPlayer{
			HP:    st.Player.HP,
			MaxHP: st.Player.MaxHP,
			Stats: st.Player.Stats,
		},
		Inventory: st.Inventory.Items(),
		Scene:     st.Scene,
		Flags:     st.Flags.Names(),
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to finalize save file: %w", err)
	}

	s.log.Debug().Str("path", s.path).Str("scene", st.Scene).Msg("session saved")
	return nil
}

// Load reads the save file and rebuilds a session. On any failure the
// returned error describes the problem and no partial state escapes.
func (s *Store) Load(characters *gamedata.CharacterRegistry) (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	var record saveFile
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("corrupt save file: %w", err)
	}

	def := characters.ByKey(record.Template)
	if def == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, record.Template)
	}

	id := record.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	st := &State{
		ID:          id,
		TemplateKey: record.Template,
		Player:      entity.RestorePlayer(def.Name, record.Player.HP, record.Player.MaxHP, record.Player.Stats),
		Inventory:   inventory.New(record.Inventory...),
		Scene:       record.Scene,
		Flags:       NewFlags(record.Flags...),
	}
	s.log.Debug().Str("path", s.path).Str("template", st.TemplateKey).Msg("session loaded")
	return st, nil
}
