package models

// OptionActiveTheme names the option holding the active theme directory.
const OptionActiveTheme = "active_theme"

// Option is a named configuration value persisted for the whole installation.
type Option struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Value string `gorm:"type:text;not null;default:''"`
}
