package game

import "github.com/kelseyhightower/envconfig"

// Config holds runtime options read from SHADOWSPIRE_* environment
// variables (a .env file is loaded by main before this runs).
type Config struct {
	// Seed for the session RNG. 0 means derive one from the clock.
	Seed int64 `envconfig:"SEED"`
	// SavePath is where the session save file lives.
	SavePath string `envconfig:"SAVE_PATH" default:"savegame.json"`
	// LogPath is where diagnostics are written.
	LogPath string `envconfig:"LOG_PATH" default:"shadowspire.log"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("SHADOWSPIRE", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
