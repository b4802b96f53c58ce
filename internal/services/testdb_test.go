package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/justsurfingit/talent-matrix/internal/database"
	"github.com/justsurfingit/talent-matrix/internal/dtos"
	"github.com/justsurfingit/talent-matrix/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database with the schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, email string) *models.Student {
	t.Helper()
	s, err := NewStudentService(db).Signup(&dtos.SignupRequest{
		FullName: "Alice Example",
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return s
}
