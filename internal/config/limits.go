package config

// Field bounds enforced by the domain model. These mirror the database
// column constraints; changing one requires a migration.
const (
	MaxFolderNameLength = 50

	MaxTaskTitleLength       = 100
	MaxTaskDescriptionLength = 500

	MinTaskPriority = 1
	MaxTaskPriority = 5
)

// Search pagination bounds.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)
