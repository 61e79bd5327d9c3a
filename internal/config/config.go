// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config holds settings read from the environment. None of them are
// exposed as flags.
type Config struct {
	// Workers is the batch pool size. Zero means runtime.NumCPU().
	Workers    int    `env:"EXIF_WORKERS,default=0"`
	LogLevel   string `env:"LOG_LEVEL,default=info"`
	MakerNotes bool   `env:"EXIF_MAKER_NOTES,default=false"`
	Partial    bool   `env:"EXIF_PARTIAL,default=false"`
}

// Load reads an optional .env file from the working directory, then the
// process environment. Variables already set in the environment win over
// the file.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an
// error.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("config loading failed: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that cannot be applied.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("EXIF_WORKERS must not be negative, got %d", c.Workers)
	}
	return nil
}
