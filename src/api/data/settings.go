package data

import (
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/stake-plus/portfolio-chat/src/api/types"
)

var (
	settingsCache map[string]string
	settingsMu    sync.RWMutex
)

// LoadSettings loads all settings from the database into cache. It runs
// once at startup; request handling only reads the cache.
func LoadSettings(db *gorm.DB) error {
	var settings []types.Setting
	if err := db.Find(&settings).Error; err != nil {
		return err
	}
	SetSettings(settings)
	return nil
}

// SetSettings replaces the cache, keyed by lower-cased setting name.
func SetSettings(settings []types.Setting) {
	cache := make(map[string]string, len(settings))
	for _, s := range settings {
		cache[strings.ToLower(strings.TrimSpace(s.Name))] = s.Value
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()
	settingsCache = cache
}

// GetSetting retrieves a setting value from cache (call LoadSettings first)
func GetSetting(name string) string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCache[name]
}
