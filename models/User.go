package models

import (
	"strings"

	"gorm.io/gorm"
)

// Supported interface languages.
const (
	LanguageEnglish = "en-US"
	LanguageFrench  = "fr-FR"

	DefaultLanguage = LanguageEnglish
)

// User represents an administrator allowed into the admin interface.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	Language     string `gorm:"type:varchar(16);default:en-US"`
}

// ValidLanguage reports whether the value is a supported interface language.
func ValidLanguage(value string) bool {
	switch value {
	case LanguageEnglish, LanguageFrench:
		return true
	default:
		return false
	}
}

// NormalizeLanguage returns a supported language, falling back to the default.
func NormalizeLanguage(value string) string {
	trimmed := strings.TrimSpace(value)
	if ValidLanguage(trimmed) {
		return trimmed
	}
	return DefaultLanguage
}
