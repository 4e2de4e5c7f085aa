package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/usherbot/usher/internal/guild"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// CurrentVersion of the config file.
const CurrentVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version int `koanf:"version"`
	// Discord bot configuration.
	Bot BotConfig `koanf:"bot"`
	// Logging configuration.
	Logging LoggingConfig `koanf:"logging"`
	// Per-guild section configuration.
	Guilds []GuildConfig `koanf:"guild"`
}

// BotConfig contains Discord connection configuration.
type BotConfig struct {
	// Token for the Discord gateway.
	Token string `koanf:"token"`
}

// LoggingConfig contains log output configuration.
type LoggingConfig struct {
	// Log level (debug, info, warn, error).
	Level string `koanf:"level"`
	// Number of log sessions to keep before rotation.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
}

// GuildConfig contains one guild's section configuration.
type GuildConfig struct {
	// Guild snowflake ID.
	ID uint64 `koanf:"id"`
	// Ordered section list for the guild.
	Sections []SectionConfig `koanf:"section"`
}

// SectionConfig contains one section entry.
type SectionConfig struct {
	// Identifier unique within the guild.
	ID string `koanf:"id"`
	// Display name shown to members.
	Name string `koanf:"name"`
	// Whether this is the guild's main section.
	Main bool `koanf:"main"`
	// Member role granted by the section, zero for none.
	RoleID uint64 `koanf:"role_id"`
}

// LoadConfig loads the application configuration from the first
// config.toml found in the search paths and validates its version.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// List search paths
	configPaths := []string{
		".usher",
		homeDir + "/.usher/config",
		"/etc/usher/config",
		"/app/config",
		"config",
		".",
	}

	var usedConfigPath string

	for _, path := range configPaths {
		configPath := fmt.Sprintf("%s/config.toml", path)
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: config.toml", ErrConfigFileNotFound)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.Version != CurrentVersion {
		return nil, "", fmt.Errorf("%w: expected version %d, found %d",
			ErrConfigVersionMismatch, CurrentVersion, config.Version)
	}

	return &config, usedConfigPath, nil
}

// GuildRegistry converts the configured guilds into the runtime section
// registry.
func (c *Config) GuildRegistry() *guild.Registry {
	configs := make([]*guild.Config, 0, len(c.Guilds))

	for _, g := range c.Guilds {
		sections := make([]guild.Section, 0, len(g.Sections))
		for _, s := range g.Sections {
			sections = append(sections, guild.Section{
				ID:     s.ID,
				Name:   s.Name,
				Main:   s.Main,
				RoleID: snowflake.ID(s.RoleID),
			})
		}

		configs = append(configs, &guild.Config{
			GuildID:  snowflake.ID(g.ID),
			Sections: sections,
		})
	}

	return guild.NewRegistry(configs)
}
