package models_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-backend/models"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "report.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestColumnReport_MissingTable(t *testing.T) {
	db := openDB(t)

	report, err := models.GenerateColumnMismatchReport(db)
	require.NoError(t, err)
	assert.Nil(t, report["projects"])
	assert.Equal(t, 0, report.Total())

	var buf bytes.Buffer
	report.Print(&buf)
	assert.Contains(t, buf.String(), "Table does not exist yet")
}

func TestColumnReport_NoDrift(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.AutoMigrate(&models.Project{}))

	report, err := models.GenerateColumnMismatchReport(db)
	require.NoError(t, err)
	assert.NotNil(t, report["projects"])
	assert.Empty(t, report["projects"])
}

func TestColumnReport_ExtraColumn(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.AutoMigrate(&models.Project{}))
	require.NoError(t, db.Exec("ALTER TABLE projects ADD COLUMN featured INTEGER").Error)

	report, err := models.GenerateColumnMismatchReport(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"featured"}, report["projects"])
	assert.Equal(t, 1, report.Total())

	var buf bytes.Buffer
	report.Print(&buf)
	assert.Contains(t, buf.String(), "  - featured")
	assert.Contains(t, buf.String(), "Total mismatched columns across all tables: 1")
}
