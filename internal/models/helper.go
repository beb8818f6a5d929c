package models

import (
	"encoding/json"
	"strings"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

func (d DifficultyLevel) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty is case-insensitive; unknown values report false.
func ParseDifficulty(s string) (DifficultyLevel, bool) {
	d := DifficultyLevel(strings.ToLower(strings.TrimSpace(s)))
	return d, d.IsValid()
}

// CategoryRef is a skill category as the platform sends it: either a bare
// string or an object carrying a name.
type CategoryRef string

func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ""
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*c = CategoryRef(name)
		return nil
	}

	var obj struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Name != "" {
		*c = CategoryRef(obj.Name)
	} else {
		*c = CategoryRef(obj.ID)
	}
	return nil
}

func (c CategoryRef) String() string {
	return string(c)
}
