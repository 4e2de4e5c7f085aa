package guild

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// Section is a named sub-group within a guild, optionally linked to a
// member role. Sections are read-only once loaded; the picker never
// mutates them.
type Section struct {
	// ID uniquely identifies the section within its guild.
	ID string
	// Name is the display name shown to members.
	Name string
	// Main marks the guild's default section. At most one section
	// should carry this flag.
	Main bool
	// RoleID is the member role granted to the section, zero when the
	// section has no role.
	RoleID snowflake.ID
}

// HasRole reports whether the section is linked to a member role.
func (s Section) HasRole() bool {
	return s.RoleID != 0
}

// Config is a read-only snapshot of a guild's section configuration.
type Config struct {
	GuildID  snowflake.ID
	Sections []Section
}

// Section returns the section with the given ID, if present.
func (c *Config) Section(id string) (Section, bool) {
	for _, s := range c.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// MainSection returns the section flagged as the guild's default, if any.
func (c *Config) MainSection() (Section, bool) {
	for _, s := range c.Sections {
		if s.Main {
			return s, true
		}
	}
	return Section{}, false
}

// RoleResolver looks up a role in a guild's role cache. Lookups are
// synchronous and absence is an expected state, not an error.
type RoleResolver interface {
	Role(guildID snowflake.ID, roleID snowflake.ID) (discord.Role, bool)
}

// Registry holds the section configuration for every known guild.
type Registry struct {
	configs map[snowflake.ID]*Config
}

// NewRegistry builds a registry from the given guild configurations.
func NewRegistry(configs []*Config) *Registry {
	byGuild := make(map[snowflake.ID]*Config, len(configs))
	for _, cfg := range configs {
		byGuild[cfg.GuildID] = cfg
	}
	return &Registry{configs: byGuild}
}

// Guild returns the section configuration for the given guild, if present.
func (r *Registry) Guild(guildID snowflake.ID) (*Config, bool) {
	cfg, ok := r.configs[guildID]
	return cfg, ok
}
