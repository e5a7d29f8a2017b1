package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

func setupRepo(t *testing.T) *ProjectRepo {
	t.Helper()

	db, err := Open(config.DatabaseConfig{
		URL: sqliteScheme + filepath.Join(t.TempDir(), "projects.db"),
	}, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, Migrate(context.Background(), db))

	d := New(db)
	t.Cleanup(func() { _ = d.Close() })
	return d.ProjectRepo()
}

func newProject(title string) *models.Project {
	return &models.Project{
		ProjectURL:  "https://example.com/" + title,
		Title:       title,
		Description: "about " + title,
		Image:       title + ".png",
	}
}

func TestProjectRepo_AddAndFind(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	p := newProject("alpha")
	require.NoError(t, repo.Add(ctx, p))
	require.NotZero(t, p.ID)

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *p, *got)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *p, *all[0])
}

func TestProjectRepo_FindAllEmptyIsNotNil(t *testing.T) {
	all, err := setupRepo(t).FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestProjectRepo_FindByIDMissing(t *testing.T) {
	got, err := setupRepo(t).FindByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProjectRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	keep := newProject("keep")
	drop := newProject("drop")
	require.NoError(t, repo.Add(ctx, keep))
	require.NoError(t, repo.Add(ctx, drop))

	require.NoError(t, repo.Delete(ctx, drop.ID))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *keep, *all[0])

	err = repo.Delete(ctx, drop.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

}

func TestProjectRepo_IDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	first := newProject("first")
	require.NoError(t, repo.Add(ctx, first))
	require.NoError(t, repo.Delete(ctx, first.ID))

	second := newProject("second")
	require.NoError(t, repo.Add(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := Open(config.DatabaseConfig{
		URL: sqliteScheme + filepath.Join(t.TempDir(), "twice.db"),
	}, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, Migrate(context.Background(), db))
	assert.True(t, db.Migrator().HasTable("projects"))
}

func TestDialectorFor(t *testing.T) {
	_, err := dialectorFor("mysql://root@localhost/db")
	assert.ErrorIs(t, err, errs.ErrConfigInvalid)

	_, err = dialectorFor(sqliteScheme)
	assert.ErrorIs(t, err, errs.ErrConfigInvalid)

	d, err := dialectorFor("postgres://u:p@localhost:5432/db")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
}

func TestOpenRejectsReplicasForSQLite(t *testing.T) {
	_, err := Open(config.DatabaseConfig{
		URL:         sqliteScheme + filepath.Join(t.TempDir(), "r.db"),
		ReplicaURLs: []string{"postgres://replica/db"},
	}, zerolog.Nop())
	assert.ErrorIs(t, err, errs.ErrConfigInvalid)
}
