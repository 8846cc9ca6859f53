package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray stores a string slice as a JSON column. Works for both the
// postgres jsonb column and the sqlite text column used in tests.
type StringArray []string

// Value implements the driver.Valuer interface.
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported column type %T for StringArray", value)
	}

	return json.Unmarshal(bytes, a)
}

// SavedRecipe is a recommendation a user chose to keep.
type SavedRecipe struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	UserID        uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	RecipeID      string         `gorm:"size:50" json:"recipe_id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Ingredients   StringArray    `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
	Tools         StringArray    `gorm:"type:text;not null;default:'[]'" json:"tools"`
	Steps         StringArray    `gorm:"type:text;not null;default:'[]'" json:"steps"`
	Substitutions StringArray    `gorm:"type:text;not null;default:'[]'" json:"substitutions"`
}

// BeforeCreate assigns an ID when the caller did not.
func (r *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
