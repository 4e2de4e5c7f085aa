package constants

import "time"

const (
	// Commands.
	SectionsCommandName = "sections"

	// Section Picker.
	SectionSelectMenuCustomID = "section_selector"
	CancelButtonCustomID      = "cancel_button"
	NoRolePlaceholder         = "No Member Role."
	SectionPromptTimeout      = 60 * time.Second

	// Common.
	DefaultEmbedColor = 0x312D2B
)
