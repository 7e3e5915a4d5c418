package model

// Default values for Settings.
const (
	DefaultTabSize             = 4
	DefaultUseThis             = true
	DefaultPrivateMemberPrefix = ""
	DefaultReformatAfterChange = true
)

// Settings carries the user configuration queried on every invocation.
type Settings struct {
	TabSize             int
	UseThis             bool
	PrivateMemberPrefix string
	ReformatAfterChange bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		TabSize:             DefaultTabSize,
		UseThis:             DefaultUseThis,
		PrivateMemberPrefix: DefaultPrivateMemberPrefix,
		ReformatAfterChange: DefaultReformatAfterChange,
	}
}
