// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"kam-api/config"
	"kam-api/models"
)

// NewDB opens a migrated in-memory sqlite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := config.OpenDB(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name),
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Logger discards output; tests assert on behaviour, not log lines.
func Logger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// Day parses a YYYY-MM-DD date at UTC midnight.
func Day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return d
}

// SeedRestaurant inserts a restaurant with the given cadence and last call.
func SeedRestaurant(t *testing.T, db *gorm.DB, name string, freq int, lastCall *time.Time) models.Restaurant {
	t.Helper()
	r := models.Restaurant{Name: name, Status: models.StatusActive, CallFrequency: freq, LastCallDate: lastCall}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("seed restaurant %q: %v", name, err)
	}
	return r
}

// SeedInteraction inserts an interaction without touching last_call_date.
func SeedInteraction(t *testing.T, db *gorm.DB, restaurantID uint, typ models.InteractionType, date time.Time) models.Interaction {
	t.Helper()
	in := models.Interaction{RestaurantID: restaurantID, Type: typ, Date: date.UTC()}
	if err := db.Create(&in).Error; err != nil {
		t.Fatalf("seed interaction: %v", err)
	}
	return in
}
