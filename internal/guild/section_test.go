package guild_test

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"

	"github.com/usherbot/usher/internal/guild"
)

func TestConfigSection(t *testing.T) {
	t.Parallel()

	cfg := &guild.Config{
		GuildID: snowflake.ID(100),
		Sections: []guild.Section{
			{ID: "MAIN", Name: "Everyone", Main: true, RoleID: snowflake.ID(1)},
			{ID: "VETS", Name: "Veterans"},
		},
	}

	tests := []struct {
		name   string
		id     string
		wantOK bool
	}{
		{
			name:   "existing section",
			id:     "VETS",
			wantOK: true,
		},
		{
			name:   "unknown section",
			id:     "MODS",
			wantOK: false,
		},
		{
			name:   "empty id",
			id:     "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			section, ok := cfg.Section(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.id, section.ID)
			}
		})
	}
}

func TestConfigMainSection(t *testing.T) {
	t.Parallel()

	t.Run("with main section", func(t *testing.T) {
		t.Parallel()
		cfg := &guild.Config{
			Sections: []guild.Section{
				{ID: "VETS", Name: "Veterans"},
				{ID: "MAIN", Name: "Everyone", Main: true},
			},
		}

		section, ok := cfg.MainSection()
		assert.True(t, ok)
		assert.Equal(t, "MAIN", section.ID)
	})

	t.Run("without main section", func(t *testing.T) {
		t.Parallel()
		cfg := &guild.Config{
			Sections: []guild.Section{
				{ID: "VETS", Name: "Veterans"},
			},
		}

		_, ok := cfg.MainSection()
		assert.False(t, ok)
	})
}

func TestSectionHasRole(t *testing.T) {
	t.Parallel()

	assert.True(t, guild.Section{RoleID: snowflake.ID(5)}.HasRole())
	assert.False(t, guild.Section{}.HasRole())
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	known := &guild.Config{GuildID: snowflake.ID(100)}
	registry := guild.NewRegistry([]*guild.Config{known})

	cfg, ok := registry.Guild(snowflake.ID(100))
	assert.True(t, ok)
	assert.Same(t, known, cfg)

	_, ok = registry.Guild(snowflake.ID(200))
	assert.False(t, ok)
}
