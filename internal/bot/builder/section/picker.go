package section

import (
	"github.com/disgoorg/disgo/discord"

	"github.com/usherbot/usher/internal/bot/constants"
	"github.com/usherbot/usher/internal/guild"
)

// PickerBuilder creates the visual layout for the section picker prompt.
type PickerBuilder struct {
	cfg          *guild.Config
	roles        guild.RoleResolver
	instructions string
}

// NewPickerBuilder creates a new picker builder for the guild's sections.
func NewPickerBuilder(cfg *guild.Config, roles guild.RoleResolver) *PickerBuilder {
	return &PickerBuilder{
		cfg:   cfg,
		roles: roles,
	}
}

// WithInstructions sets the instruction text shown in the prompt embed.
func (b *PickerBuilder) WithInstructions(instructions string) *PickerBuilder {
	b.instructions = instructions
	return b
}

// Options maps the guild's sections onto select menu options, preserving
// their configured order. The description carries the section role's name
// when the role resolves in the guild's cache; a missing role is an
// expected state and falls back to a fixed placeholder.
func (b *PickerBuilder) Options() []discord.StringSelectMenuOption {
	options := make([]discord.StringSelectMenuOption, 0, len(b.cfg.Sections))

	for _, s := range b.cfg.Sections {
		description := constants.NoRolePlaceholder
		if s.HasRole() {
			if role, ok := b.roles.Role(b.cfg.GuildID, s.RoleID); ok {
				description = role.Name
			}
		}

		options = append(options, discord.NewStringSelectMenuOption(s.Name, s.ID).
			WithDescription(description).
			WithDefault(s.Main))
	}

	return options
}

// Components creates the picker's control rows: a single-choice section
// select menu and a cancel button.
func (b *PickerBuilder) Components() []discord.ContainerComponent {
	return []discord.ContainerComponent{
		discord.NewActionRow(
			discord.NewStringSelectMenu(constants.SectionSelectMenuCustomID, "Select a section", b.Options()...).
				WithMinValues(1).
				WithMaxValues(1),
		),
		discord.NewActionRow(
			discord.NewDangerButton("Cancel", constants.CancelButtonCustomID),
		),
	}
}

// Build creates a fresh prompt message with the instruction embed and the
// picker controls.
func (b *PickerBuilder) Build() *discord.MessageCreateBuilder {
	embed := discord.NewEmbedBuilder().
		SetTitle("Section Selection").
		SetDescription(b.instructions).
		SetFooter("Press Cancel to exit without choosing a section.", "").
		SetColor(constants.DefaultEmbedColor)

	return discord.NewMessageCreateBuilder().
		SetEmbeds(embed.Build()).
		AddContainerComponents(b.Components()...)
}

// Overrides carries optional replacement content for an existing prompt
// message. The picker owns the component rows, so overrides cannot
// include them.
type Overrides struct {
	Content string
	Embeds  []discord.Embed
}

// BuildUpdate creates an update that attaches the picker controls to an
// existing message. With overrides the message content is replaced; without
// them only the components are set, leaving the message's own content
// untouched.
func (b *PickerBuilder) BuildUpdate(overrides *Overrides) *discord.MessageUpdateBuilder {
	builder := discord.NewMessageUpdateBuilder()
	if overrides != nil {
		builder.SetContent(overrides.Content).SetEmbeds(overrides.Embeds...)
	}
	return builder.SetContainerComponents(b.Components()...)
}
