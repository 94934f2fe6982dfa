package portfolios

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

func setupPortfolioTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Portfolio{}, &models.Holding{}, &models.WatchlistEntry{},
	))
	require.NoError(t, db.Create(&models.User{Username: "u1", Password: "x", Email: "u1@test.com"}).Error)
	return &Service{DB: db}, db
}

func TestCreate_RoundTrip(t *testing.T) {
	svc, _ := setupPortfolioTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Name: "Ret", Cash: 1000, Notes: "long term", Username: "u1"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, got.Portfolio)
	assert.Empty(t, got.Holdings)
}

func TestCreate_DuplicateNameSameOwner(t *testing.T) {
	svc, db := setupPortfolioTest(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateInput{Name: "Ret", Cash: 1000, Username: "u1"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Name: "Ret", Cash: 500, Username: "u1"})
	require.Error(t, err)
	assert.True(t, apperr.IsDuplicate(err))

	// Existing data unchanged.
	var p models.Portfolio
	require.NoError(t, db.First(&p, first.ID).Error)
	assert.Equal(t, 1000.0, p.Cash)
	var count int64
	db.Model(&models.Portfolio{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreate_SameNameDifferentOwner(t *testing.T) {
	svc, db := setupPortfolioTest(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.User{Username: "u2", Password: "x", Email: "u2@test.com"}).Error)

	_, err := svc.Create(ctx, CreateInput{Name: "Ret", Username: "u1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Name: "Ret", Username: "u2"})
	require.NoError(t, err)
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := setupPortfolioTest(t)
	_, err := svc.Get(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGet_IncludesHoldings(t *testing.T) {
	svc, db := setupPortfolioTest(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Name: "Ret", Username: "u1"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Holding{Symbol: "AAPL", SharesOwned: 10, PortfolioID: p.ID}).Error)
	require.NoError(t, db.Create(&models.Holding{Symbol: "MSFT", SharesOwned: 5, PortfolioID: p.ID}).Error)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Holdings, 2)
}

func TestUpdate_PartialLeavesOtherFields(t *testing.T) {
	svc, _ := setupPortfolioTest(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Name: "Ret", Cash: 1000, Notes: "keep", Username: "u1"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, map[string]interface{}{"cash": 2000.0}, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, updated.Cash)
	assert.Equal(t, "Ret", updated.Name)
	assert.Equal(t, "keep", updated.Notes)
	assert.Equal(t, "u1", updated.Username)

	// Applying the same partial update twice yields the same final state.
	again, err := svc.Update(ctx, p.ID, map[string]interface{}{"cash": 2000.0}, "u1")
	require.NoError(t, err)
	assert.Equal(t, updated, again)
}

func TestUpdate_RenameCollision(t *testing.T) {
	svc, _ := setupPortfolioTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Ret", Username: "u1"})
	require.NoError(t, err)
	p2, err := svc.Create(ctx, CreateInput{Name: "Growth", Username: "u1"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, p2.ID, map[string]interface{}{"name": "Ret"}, "u1")
	require.Error(t, err)
	assert.True(t, apperr.IsDuplicate(err))
}

func TestUpdate_EmptyFields(t *testing.T) {
	svc, _ := setupPortfolioTest(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Name: "Ret", Username: "u1"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, p.ID, map[string]interface{}{}, "u1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindEmptyUpdate, apperr.KindOf(err))
}

func TestUpdate_RejectsNonMutableField(t *testing.T) {
	svc, _ := setupPortfolioTest(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Name: "Ret", Username: "u1"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, p.ID, map[string]interface{}{"username": "u2"}, "u1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := setupPortfolioTest(t)
	_, err := svc.Update(context.Background(), 999, map[string]interface{}{"cash": 1.0}, "u1")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRemove(t *testing.T) {
	svc, _ := setupPortfolioTest(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Name: "Ret", Username: "u1"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, p.ID))
	err = svc.Remove(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRemove_DoesNotCascadeHoldings(t *testing.T) {
	svc, db := setupPortfolioTest(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Name: "Ret", Username: "u1"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Holding{Symbol: "AAPL", PortfolioID: p.ID}).Error)

	require.NoError(t, svc.Remove(ctx, p.ID))

	var count int64
	db.Model(&models.Holding{}).Where("portfolio_id = ?", p.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
