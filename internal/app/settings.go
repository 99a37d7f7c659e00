package app

import (
	"sync"

	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/lavendersgloss/glossd/internal/domain"
)

// ConfigManager reads sys_config values with a small in-process cache.
type ConfigManager struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]string
}

func NewConfigManager(db *gorm.DB) *ConfigManager {
	return &ConfigManager{db: db, cache: make(map[string]string)}
}

func (m *ConfigManager) get(category, name string) (string, bool) {
	key := category + "." + name

	m.mu.RLock()
	if v, ok := m.cache[key]; ok {
		m.mu.RUnlock()
		return v, true
	}
	m.mu.RUnlock()

	var cfg domain.SysConfig
	if err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error; err != nil {
		return "", false
	}

	m.mu.Lock()
	m.cache[key] = cfg.Value
	m.mu.Unlock()
	return cfg.Value, true
}

// Invalidate clears the cache, forcing the next read through to the table.
func (m *ConfigManager) Invalidate() {
	m.mu.Lock()
	m.cache = make(map[string]string)
	m.mu.Unlock()
}

func (m *ConfigManager) GetString(category, name string) string {
	v, _ := m.get(category, name)
	return v
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	v, _ := m.get(category, name)
	return cast.ToInt64(v)
}

func (m *ConfigManager) GetBool(category, name string) bool {
	v, _ := m.get(category, name)
	return cast.ToBool(v)
}
