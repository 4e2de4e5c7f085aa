package section_test

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	builder "github.com/usherbot/usher/internal/bot/builder/section"
	"github.com/usherbot/usher/internal/bot/constants"
	"github.com/usherbot/usher/internal/guild"
)

// fakeRoles resolves roles from a fixed map.
type fakeRoles struct {
	roles map[snowflake.ID]discord.Role
}

func (f fakeRoles) Role(_ snowflake.ID, roleID snowflake.ID) (discord.Role, bool) {
	role, ok := f.roles[roleID]
	return role, ok
}

func testConfig() *guild.Config {
	return &guild.Config{
		GuildID: snowflake.ID(100),
		Sections: []guild.Section{
			{ID: "MAIN", Name: "Everyone", Main: true, RoleID: snowflake.ID(1)},
			{ID: "VETS", Name: "Veterans"},
		},
	}
}

func TestPickerBuilderOptions(t *testing.T) {
	t.Parallel()

	roles := fakeRoles{roles: map[snowflake.ID]discord.Role{
		snowflake.ID(1): {Name: "Member"},
	}}

	options := builder.NewPickerBuilder(testConfig(), roles).Options()
	require.Len(t, options, 2)

	assert.Equal(t, "MAIN", options[0].Value)
	assert.Equal(t, "Everyone", options[0].Label)
	assert.Equal(t, "Member", options[0].Description)
	assert.True(t, options[0].Default)

	assert.Equal(t, "VETS", options[1].Value)
	assert.Equal(t, "Veterans", options[1].Label)
	assert.Equal(t, constants.NoRolePlaceholder, options[1].Description)
	assert.False(t, options[1].Default)
}

func TestPickerBuilderOptionsUnresolvableRole(t *testing.T) {
	t.Parallel()

	// The role exists in config but not in the cache; this is a valid
	// state and falls back to the placeholder.
	options := builder.NewPickerBuilder(testConfig(), fakeRoles{}).Options()
	require.Len(t, options, 2)
	assert.Equal(t, constants.NoRolePlaceholder, options[0].Description)
}

func TestPickerBuilderOptionsPreserveOrder(t *testing.T) {
	t.Parallel()

	cfg := &guild.Config{
		GuildID: snowflake.ID(100),
		Sections: []guild.Section{
			{ID: "C", Name: "Charlie"},
			{ID: "A", Name: "Alpha"},
			{ID: "B", Name: "Bravo"},
		},
	}

	options := builder.NewPickerBuilder(cfg, fakeRoles{}).Options()
	require.Len(t, options, 3)

	values := make([]string, len(options))
	for i, o := range options {
		values[i] = o.Value
	}
	assert.Equal(t, []string{"C", "A", "B"}, values)
}

func TestPickerBuilderComponents(t *testing.T) {
	t.Parallel()

	components := builder.NewPickerBuilder(testConfig(), fakeRoles{}).Components()
	require.Len(t, components, 2)

	selectRow, ok := components[0].(discord.ActionRowComponent)
	require.True(t, ok)
	require.Len(t, selectRow, 1)

	selectMenu, ok := selectRow[0].(discord.StringSelectMenuComponent)
	require.True(t, ok)
	assert.Equal(t, constants.SectionSelectMenuCustomID, selectMenu.CustomID)
	require.NotNil(t, selectMenu.MinValues)
	assert.Equal(t, 1, *selectMenu.MinValues)
	assert.Equal(t, 1, selectMenu.MaxValues)
	assert.Len(t, selectMenu.Options, 2)

	buttonRow, ok := components[1].(discord.ActionRowComponent)
	require.True(t, ok)
	require.Len(t, buttonRow, 1)

	button, ok := buttonRow[0].(discord.ButtonComponent)
	require.True(t, ok)
	assert.Equal(t, constants.CancelButtonCustomID, button.CustomID)
	assert.Equal(t, discord.ButtonStyleDanger, button.Style)
}

func TestPickerBuilderBuild(t *testing.T) {
	t.Parallel()

	message := builder.NewPickerBuilder(testConfig(), fakeRoles{}).
		WithInstructions("Pick a section to join.").
		Build().
		Build()

	require.Len(t, message.Embeds, 1)
	assert.Equal(t, "Pick a section to join.", message.Embeds[0].Description)
	require.NotNil(t, message.Embeds[0].Footer)
	assert.NotEmpty(t, message.Embeds[0].Footer.Text)
	assert.Len(t, message.Components, 2)
}

func TestPickerBuilderBuildUpdate(t *testing.T) {
	t.Parallel()

	t.Run("without overrides keeps content untouched", func(t *testing.T) {
		t.Parallel()
		update := builder.NewPickerBuilder(testConfig(), fakeRoles{}).
			BuildUpdate(nil).
			Build()

		assert.Nil(t, update.Content)
		assert.Nil(t, update.Embeds)
		require.NotNil(t, update.Components)
		assert.Len(t, *update.Components, 2)
	})

	t.Run("with overrides replaces content", func(t *testing.T) {
		t.Parallel()
		update := builder.NewPickerBuilder(testConfig(), fakeRoles{}).
			BuildUpdate(&builder.Overrides{Content: "Choose again."}).
			Build()

		require.NotNil(t, update.Content)
		assert.Equal(t, "Choose again.", *update.Content)
		require.NotNil(t, update.Components)
		assert.Len(t, *update.Components, 2)
	})
}
