package migrations

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mwantia/cookbook/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migration is a single reversible schema or data change
type Migration struct {
	Version     int
	Description string
	Up          func(*gorm.DB) error
	Down        func(*gorm.DB) error
}

// schemaMigration is one row of the applied-migrations history
type schemaMigration struct {
	ID          uint   `gorm:"primaryKey"`
	Version     int    `gorm:"uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	AppliedAt   int64  `gorm:"autoCreateTime"`
}

func (schemaMigration) TableName() string {
	return "t_schema_migration"
}

// MigrationStatus reports whether a known migration has been applied
type MigrationStatus struct {
	Version     int
	Description string
	Applied     bool
	AppliedAt   time.Time
}

// Migrator applies and reverts the cookbook schema
type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

func NewMigrator(db *gorm.DB) *Migrator {
	return newMigrator(db, allMigrations())
}

func newMigrator(db *gorm.DB, list []Migration) *Migrator {
	sorted := append([]Migration(nil), list...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})
	return &Migrator{db: db, migrations: sorted}
}

// Migrate applies every pending migration in version order and returns the
// versions it applied
func (m *Migrator) Migrate(ctx context.Context) ([]int, error) {
	if err := m.db.WithContext(ctx).AutoMigrate(&schemaMigration{}); err != nil {
		return nil, fmt.Errorf("failed to create migration history table: %w", err)
	}

	history, err := m.history(ctx)
	if err != nil {
		return nil, err
	}

	var applied []int
	for _, migration := range m.migrations {
		if _, ok := history[migration.Version]; ok {
			continue
		}
		if err := m.apply(ctx, migration); err != nil {
			return applied, fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}
		applied = append(applied, migration.Version)
	}
	return applied, nil
}

// Rollback reverts the most recently applied migration and returns its version
func (m *Migrator) Rollback(ctx context.Context) (int, error) {
	var last schemaMigration
	if err := m.db.WithContext(ctx).Order("version DESC").First(&last).Error; err != nil {
		return 0, fmt.Errorf("no migrations to rollback: %w", err)
	}

	migration, ok := m.find(last.Version)
	if !ok {
		return 0, fmt.Errorf("migration %d is not known to this build", last.Version)
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := migration.Down(tx); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		return tx.Delete(&last).Error
	})
	if err != nil {
		return 0, err
	}
	return last.Version, nil
}

// Status lists every known migration with its applied state
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	if err := m.db.WithContext(ctx).AutoMigrate(&schemaMigration{}); err != nil {
		return nil, fmt.Errorf("failed to create migration history table: %w", err)
	}

	history, err := m.history(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(m.migrations))
	for _, migration := range m.migrations {
		status := MigrationStatus{
			Version:     migration.Version,
			Description: migration.Description,
		}
		if h, ok := history[migration.Version]; ok {
			status.Applied = true
			status.AppliedAt = time.Unix(h.AppliedAt, 0).UTC()
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (m *Migrator) history(ctx context.Context) (map[int]schemaMigration, error) {
	var rows []schemaMigration
	if err := m.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query migration history: %w", err)
	}

	history := make(map[int]schemaMigration, len(rows))
	for _, row := range rows {
		history[row.Version] = row
	}
	return history, nil
}

func (m *Migrator) find(version int) (Migration, bool) {
	for _, migration := range m.migrations {
		if migration.Version == version {
			return migration, true
		}
	}
	return Migration{}, false
}

func (m *Migrator) apply(ctx context.Context, migration Migration) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := migration.Up(tx); err != nil {
			return err
		}
		return tx.Create(&schemaMigration{
			Version:     migration.Version,
			Description: migration.Description,
		}).Error
	})
}

// allMigrations returns all migrations in order
func allMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Initial schema creation",
			Up: func(db *gorm.DB) error {
				return db.AutoMigrate(
					&models.Country{},
					&models.User{},
					&models.Textblock{},
					&models.Category{},
					&models.Recipe{},
					&models.Ingredient{},
					&models.MeasurementUnit{},
					&models.MeasurementQuantity{},
					&models.RecipeIngredient{},
				)
			},
			Down: func(db *gorm.DB) error {
				return db.Migrator().DropTable(
					&models.RecipeIngredient{},
					&models.MeasurementQuantity{},
					&models.MeasurementUnit{},
					&models.Ingredient{},
					&models.Recipe{},
					&models.Category{},
					&models.Textblock{},
					&models.User{},
					&models.Country{},
				)
			},
		},
		{
			Version:     2,
			Description: "Seed supported countries",
			Up: func(db *gorm.DB) error {
				countries := seedCountries()
				return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&countries).Error
			},
			Down: func(db *gorm.DB) error {
				codes := make([]string, 0)
				for _, c := range seedCountries() {
					codes = append(codes, c.ISO2)
				}
				return db.Where("iso2 IN ?", codes).Delete(&models.Country{}).Error
			},
		},
	}
}

func seedCountries() []models.Country {
	return []models.Country{
		{Name: "Germany", ISO2: "DE", ISO3: "DEU"},
		{Name: "Spain", ISO2: "ES", ISO3: "ESP"},
		{Name: "France", ISO2: "FR", ISO3: "FRA"},
		{Name: "Belgium", ISO2: "BE", ISO3: "BEL"},
		{Name: "United Kingdom", ISO2: "GB", ISO3: "GBR"},
	}
}
