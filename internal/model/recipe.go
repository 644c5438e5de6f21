package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// CookLog is a dated note recording when and where a recipe was cooked.
// Entries are append-only; there is no edit or delete path.
type CookLog struct {
	Date     string `json:"date"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// CookLogList stores cook logs as a JSONB array on the recipe row.
type CookLogList []CookLog

// Value implements the driver.Valuer interface
func (l CookLogList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *CookLogList) Scan(value interface{}) error {
	if value == nil {
		*l = CookLogList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Recipe is the sole persisted entity. DeletedAt drives soft deletion: GORM
// excludes rows with a non-null deleted_at from every query unless Unscoped.
type Recipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"deletedAt"`
	Title        string           `gorm:"size:200;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	PrepTime     *int             `json:"prepTime"`
	CookTime     *int             `json:"cookTime"`
	Servings     *int             `json:"servings"`
	Difficulty   string           `gorm:"size:10" json:"difficulty"`
	Tags         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	ImageURL     string           `gorm:"size:2048" json:"imageUrl"`
	GalleryURLs  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"galleryUrls"`
	CookLogs     CookLogList      `gorm:"type:jsonb;not null;default:'[]'" json:"cookLogs"`
}

// BeforeCreate assigns an ID so inserts work on both Postgres and SQLite.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
