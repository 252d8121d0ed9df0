package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "shorty/internal/log"
	"shorty/models"
)

// AdminEmail and AdminPassword are the credentials of the seeded administrator.
const (
	AdminEmail    = "admin@shorty.test"
	AdminPassword = "shorty"
)

// New returns an in-memory sqlite database seeded with an administrator and a few links.
func New(ctx context.Context) (*gorm.DB, error) {
	return open(ctx, "file:shorty-mock?mode=memory&cache=shared")
}

// NewIsolated behaves like New but each call gets its own private database.
func NewIsolated(ctx context.Context) (*gorm.DB, error) {
	return open(ctx, "file::memory:")
}

func open(ctx context.Context, dsn string) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database", "dsn", dsn)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	// A private :memory: database lives on a single connection.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&models.Option{},
		&models.Link{},
		&models.User{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	var users int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		applog.Debug(ctx, "mock database already seeded")
		return nil
	}

	password, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Shorty Admin",
		Email:        AdminEmail,
		PasswordHash: string(password),
		Language:     models.DefaultLanguage,
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	links := []models.Link{
		{Keyword: "gh", URL: "https://github.com", Title: "GitHub", Clicks: 1204, CreatedAt: now.Add(-72 * time.Hour)},
		{Keyword: "go", URL: "https://go.dev", Title: "The Go Programming Language", Clicks: 587, CreatedAt: now.Add(-48 * time.Hour)},
		{Keyword: "docs", URL: "https://pkg.go.dev", Title: "Go Packages", Clicks: 33, CreatedAt: now.Add(-2 * time.Hour)},
	}
	if err := db.WithContext(ctx).Create(&links).Error; err != nil {
		return err
	}

	// The option row exists from the start, with no theme selected.
	option := &models.Option{Name: models.OptionActiveTheme, Value: ""}
	return db.WithContext(ctx).Create(option).Error
}
