package watchlist

import (
	"context"

	"pm-backend/internal/models"
	"pm-backend/internal/pkg/apperr"

	"gorm.io/gorm"
)

// Service encapsulates per-user watchlist operations.
type Service struct {
	DB *gorm.DB
}

// List returns the symbols a user watches, in store order. It does not check
// the user exists; callers that need that do it first.
func (s *Service) List(ctx context.Context, username string) ([]string, error) {
	symbols := []string{}
	err := s.DB.WithContext(ctx).
		Model(&models.WatchlistEntry{}).
		Where("username = ?", username).
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}

// Add puts a symbol on a user's watchlist. Fails NotFound for an unknown
// user, Duplicate if the pair already exists.
func (s *Service) Add(ctx context.Context, username, symbol string) error {
	if err := s.userExists(ctx, username); err != nil {
		return err
	}

	var existing models.WatchlistEntry
	err := s.DB.WithContext(ctx).
		Where("username = ? AND symbol = ?", username, symbol).
		First(&existing).Error
	if err == nil {
		return apperr.Duplicate("symbol %s already watched by user %s", symbol, username)
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	return s.DB.WithContext(ctx).
		Create(&models.WatchlistEntry{Username: username, Symbol: symbol}).Error
}

// Remove takes a symbol off a user's watchlist. Fails NotFound for an unknown
// user and for a pair that was never added.
func (s *Service) Remove(ctx context.Context, username, symbol string) error {
	if err := s.userExists(ctx, username); err != nil {
		return err
	}

	var existing models.WatchlistEntry
	err := s.DB.WithContext(ctx).
		Where("username = ? AND symbol = ?", username, symbol).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return apperr.NotFound("symbol %s not watched by user %s", symbol, username)
	}
	if err != nil {
		return err
	}

	return s.DB.WithContext(ctx).
		Where("username = ? AND symbol = ?", username, symbol).
		Delete(&models.WatchlistEntry{}).Error
}

func (s *Service) userExists(ctx context.Context, username string) error {
	var u models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		return apperr.NotFound("no user: %s", username)
	}
	return err
}
