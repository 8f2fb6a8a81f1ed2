package types

// Setting overrides one configuration variable at startup. Name is the
// lower-cased environment variable name, e.g. "llm_model".
type Setting struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:64;not null;uniqueIndex"`
	Value string `gorm:"size:1024;not null"`
}
