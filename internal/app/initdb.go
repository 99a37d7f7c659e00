package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lavendersgloss/glossd/internal/domain"
	"github.com/lavendersgloss/glossd/pkg/common"
)

// settingSchema describes one seeded sys_config row.
type settingSchema struct {
	Key         string
	Default     string
	Description string
}

var settingSchemas = []settingSchema{
	{Key: "shop.currency", Default: "KSH", Description: "Display currency code"},
	{Key: "shop.placeholder_image", Default: "/images/placeholder-product.jpg", Description: "Image used for products without an upload"},
	{Key: "shop.name", Default: "Lavender's Gloss", Description: "Shop display name"},
}

func (a *Application) checkAdmin() {
	const adminEmail = "admin@lavendersgloss.com"
	const defaultPassword = "lavendersgloss"

	var admin domain.User
	err := a.gormDB.Where("email = ?", adminEmail).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, herr := common.HashPassword(defaultPassword)
		if herr != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(herr))
			return
		}
		if err := a.gormDB.Create(&domain.User{
			ID:        common.UUIDint64(),
			Name:      "Administrator",
			Email:     adminEmail,
			Password:  hash,
			Phone:     "0000",
			IsAdmin:   true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("email", adminEmail))
		}
		return
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
		return
	}

	if !admin.IsAdmin {
		if err := a.gormDB.Model(&domain.User{}).Where("id = ?", admin.ID).
			Update("is_admin", true).Error; err != nil {
			zap.L().Error("failed to repair admin account", zap.Error(err))
			return
		}
		zap.L().Warn("repaired default admin account", zap.String("email", adminEmail))
	}
}

func (a *Application) checkSettings() {
	for sortid, schema := range settingSchemas {
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}

		category := parts[0]
		name := parts[1]

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}
