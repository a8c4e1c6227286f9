// Package testutil provides shared helpers for repository and service
// tests. Tests run against an in-memory SQLite database with the same
// GORM entities the server migrates; JSON-serialized columns keep the
// schema portable between SQLite and Postgres.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zihui-app/zihui/internal/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh in-memory database, named after the test so
// parallel tests in one package never share state.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.UserSettings{},
		&entity.CharacterProgress{},
		&entity.Character{},
	))

	return db
}
