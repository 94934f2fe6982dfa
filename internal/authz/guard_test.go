package authz

import (
	"context"
	"testing"

	"pm-backend/internal/application/holdings"
	"pm-backend/internal/application/portfolios"
	"pm-backend/internal/models"
	"pm-backend/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupGuardTest(t *testing.T) (*Guard, uint, uint) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Portfolio{}, &models.Holding{}, &models.WatchlistEntry{},
	))
	require.NoError(t, db.Create(&models.User{Username: "alice", Password: "x", Email: "a@test.com"}).Error)
	require.NoError(t, db.Create(&models.User{Username: "bob", Password: "x", Email: "b@test.com"}).Error)

	p := &models.Portfolio{Name: "Ret", Username: "alice"}
	require.NoError(t, db.Create(p).Error)
	h := &models.Holding{Symbol: "AAPL", SharesOwned: 10, PortfolioID: p.ID}
	require.NoError(t, db.Create(h).Error)

	guard := NewGuard(&portfolios.Service{DB: db}, &holdings.Service{DB: db})
	return guard, p.ID, h.ID
}

func TestCorrectUser(t *testing.T) {
	guard, _, _ := setupGuardTest(t)

	assert.NoError(t, guard.CorrectUser("alice", "alice"))
	assert.True(t, apperr.IsForbidden(guard.CorrectUser("bob", "alice")))
	assert.True(t, apperr.IsUnauthorized(guard.CorrectUser("", "alice")))
}

func TestCorrectPortfolio(t *testing.T) {
	guard, pid, _ := setupGuardTest(t)
	ctx := context.Background()

	assert.NoError(t, guard.CorrectPortfolio(ctx, "alice", pid))
	assert.True(t, apperr.IsForbidden(guard.CorrectPortfolio(ctx, "bob", pid)))
	assert.True(t, apperr.IsNotFound(guard.CorrectPortfolio(ctx, "alice", 999)))
	assert.True(t, apperr.IsUnauthorized(guard.CorrectPortfolio(ctx, "", pid)))
}

func TestCorrectHolding_OwnershipIsTransitive(t *testing.T) {
	guard, _, hid := setupGuardTest(t)
	ctx := context.Background()

	assert.NoError(t, guard.CorrectHolding(ctx, "alice", hid))
	assert.True(t, apperr.IsForbidden(guard.CorrectHolding(ctx, "bob", hid)))
	assert.True(t, apperr.IsNotFound(guard.CorrectHolding(ctx, "alice", 999)))
}

func TestCorrectHolding_OrphanedParent(t *testing.T) {
	guard, pid, hid := setupGuardTest(t)
	ctx := context.Background()

	// Deleting the portfolio does not cascade; the orphaned holding then
	// denies everyone because its parent cannot be resolved.
	require.NoError(t, guard.Portfolios.Remove(ctx, pid))
	assert.True(t, apperr.IsNotFound(guard.CorrectHolding(ctx, "alice", hid)))
}
