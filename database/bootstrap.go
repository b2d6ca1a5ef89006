package database

import (
	"fmt"
	"strings"
	"sync/atomic"

	sqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pacemaker/entities"
)

// Open connects to Postgres when databaseURL is set, otherwise to the SQLite file at path.
func Open(databaseURL, path string, logLevel logger.LogLevel) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	}
	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	}
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	db, err := gorm.Open(sqlite.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

var memCounter int64

// OpenMemory returns a migrated, private in-memory SQLite database.
func OpenMemory() (*gorm.DB, error) {
	n := atomic.AddInt64(&memCounter, 1)
	dsn := fmt.Sprintf("file:pacemaker_mem_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open memory sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// shared-cache memory databases lock per table; one connection keeps writers serialized
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate prepares legacy data and then auto-migrates every table.
func Migrate(db *gorm.DB) error {
	// must run BEFORE AutoMigrate so the unique index can be created
	if err := dedupeWeeklyPlanItems(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := db.AutoMigrate(
		&entities.Project{},
		&entities.Task{},
		&entities.TaskLog{},
		&entities.WeeklyPlan{},
		&entities.WeeklyPlanItem{},
		&entities.WeeklyReview{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// dedupeWeeklyPlanItems keeps one row per (weekly_plan_id, task_id) in databases
// created before the pair became unique.
func dedupeWeeklyPlanItems(db *gorm.DB) error {
	if !db.Migrator().HasTable(&entities.WeeklyPlanItem{}) {
		return nil
	}
	if db.Migrator().HasIndex(&entities.WeeklyPlanItem{}, "idx_plan_items_plan_task") {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
DELETE FROM weekly_plan_items
WHERE id NOT IN (
    SELECT MIN(id) FROM weekly_plan_items GROUP BY weekly_plan_id, task_id
)`)
		if res.Error != nil {
			return fmt.Errorf("dedupe weekly_plan_items: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			zap.S().Infow("[db] removed duplicate plan items", "rows", res.RowsAffected)
		}
		return nil
	})
}
