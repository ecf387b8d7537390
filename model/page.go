package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONMap holds the free-form page payload. The content is opaque to the
// server beyond being a JSON object.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported page data column type")
	}
}

type SitePage struct {
	Slug      string    `gorm:"primaryKey" json:"slug"`
	Data      JSONMap   `gorm:"type:jsonb" json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}
