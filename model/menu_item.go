package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
)

// AllergenVocabulary is the closed set of recognized allergen tags
// (the 14 EU allergens, Italian labels).
var AllergenVocabulary = map[string]bool{
	"glutine":         true,
	"crostacei":       true,
	"uova":            true,
	"pesce":           true,
	"arachidi":        true,
	"soia":            true,
	"latte":           true,
	"frutta_a_guscio": true,
	"sedano":          true,
	"senape":          true,
	"sesamo":          true,
	"solfiti":         true,
	"lupini":          true,
	"molluschi":       true,
}

// AllergenList is stored as a JSON array in a single column.
type AllergenList []string

// NormalizeAllergens lower-cases and trims each tag, drops anything outside
// the vocabulary and de-duplicates. The result is never nil.
func NormalizeAllergens(tags []string) AllergenList {
	out := AllergenList{}
	seen := map[string]bool{}
	for _, t := range tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if !AllergenVocabulary[tag] || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func (a AllergenList) Value() (driver.Value, error) {
	if a == nil {
		a = AllergenList{}
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *AllergenList) Scan(value interface{}) error {
	if value == nil {
		*a = AllergenList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("unsupported allergen column type")
	}
}

type MenuItem struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"not null" json:"name"`
	NameEN        string       `gorm:"column:name_en" json:"name_en"`
	Description   string       `json:"description"`
	DescriptionEN string       `gorm:"column:description_en" json:"description_en"`
	Category      string       `json:"category"`
	CategoryEN    string       `gorm:"column:category_en" json:"category_en"`
	PriceCents    int64        `gorm:"not null" json:"price_cents"`
	Position      int          `json:"position"`
	IsAvailable   bool         `json:"is_available"`
	ImageURL      *string      `json:"image_url"`
	Allergens     AllergenList `gorm:"type:jsonb" json:"allergens"`
}
