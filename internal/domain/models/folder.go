package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"taskdesk/internal/config"
)

// Folder is a named grouping of tasks owned by exactly one user. A folder
// with no tasks is valid; tasks never outlive their folder.
type Folder struct {
	ID        string    `json:"folder_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the field bounds. ID and timestamps are store-assigned
// and not validated here.
func (f *Folder) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.UserID, validation.Required),
		validation.Field(&f.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		),
	)
}
