package watchlist

import (
	"context"
	"testing"

	"pm-backend/internal/models"
	"pm-backend/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWatchlistTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.WatchlistEntry{}))
	require.NoError(t, db.Create(&models.User{Username: "u1", Password: "x", Email: "u1@test.com"}).Error)
	return &Service{DB: db}
}

func TestList_EmptyForNewUser(t *testing.T) {
	svc := setupWatchlistTest(t)
	symbols, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, symbols)
}

func TestAddAndList(t *testing.T) {
	svc := setupWatchlistTest(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", "MSFT"))
	require.NoError(t, svc.Add(ctx, "u1", "AAPL"))

	symbols, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"MSFT", "AAPL"}, symbols)
}

func TestAdd_DuplicatePair(t *testing.T) {
	svc := setupWatchlistTest(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", "MSFT"))
	err := svc.Add(ctx, "u1", "MSFT")
	require.Error(t, err)
	assert.True(t, apperr.IsDuplicate(err))
}

func TestAdd_UnknownUser(t *testing.T) {
	svc := setupWatchlistTest(t)
	err := svc.Add(context.Background(), "nobody", "MSFT")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRemove_NotWatched(t *testing.T) {
	svc := setupWatchlistTest(t)
	ctx := context.Background()

	err := svc.Remove(ctx, "u1", "MSFT")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// Table unchanged.
	symbols, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, symbols)
}

func TestRemove_ThenReAdd(t *testing.T) {
	svc := setupWatchlistTest(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", "MSFT"))
	require.NoError(t, svc.Remove(ctx, "u1", "MSFT"))
	require.NoError(t, svc.Add(ctx, "u1", "MSFT"))
}
