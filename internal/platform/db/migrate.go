package db

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// Migrate はモデルのテーブルを作成・更新します。
// モデルは外部キーの参照先から順に渡してください。
func Migrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	slog.Info("database migrated", "models", len(models))
	return nil
}
