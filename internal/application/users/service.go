package users

import (
	"context"

	"pm-backend/internal/application/portfolios"
	"pm-backend/internal/application/watchlist"
	"pm-backend/internal/models"
	"pm-backend/internal/pkg/apperr"
	"pm-backend/internal/pkg/sqlpatch"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Service encapsulates user operations. It delegates watchlist mutations to
// the watchlist service and portfolio aggregation to the portfolios service.
type Service struct {
	DB         *gorm.DB
	Portfolios *portfolios.Service
	Watchlist  *watchlist.Service
	BcryptCost int
}

// RegisterInput holds the required fields for a new user.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// mutableCols is the allowlist of fields Update accepts. Username is the
// identity key and immutable.
var mutableCols = map[string]string{
	"password": "password",
	"email":    "email",
}

// Register hashes the password and inserts the user. Fails Duplicate if the
// username is taken.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	var existing models.User
	err := s.DB.WithContext(ctx).Where("username = ?", in.Username).First(&existing).Error
	if err == nil {
		return nil, apperr.Duplicate("duplicate username: %s", in.Username)
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.BcryptCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username: in.Username,
		Password: string(hash),
		Email:    in.Email,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies username and password. It fails Unauthorized whether
// the user is absent or the password is wrong, so account existence cannot be
// probed through the error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var u models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.Unauthorized("invalid username/password")
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid username/password")
	}
	return &u, nil
}

// FindAll returns every user ordered by username.
func (s *Service) FindAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.DB.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns a user with their watchlist symbols.
func (s *Service) Get(ctx context.Context, username string) (*models.UserDetail, error) {
	u, err := s.find(ctx, username)
	if err != nil {
		return nil, err
	}
	symbols, err := s.Watchlist.List(ctx, username)
	if err != nil {
		return nil, err
	}
	return &models.UserDetail{
		Username:  u.Username,
		Email:     u.Email,
		Watchlist: symbols,
	}, nil
}

// GetComplete returns a user with watchlist and every owned portfolio,
// holdings included. Portfolio reads run concurrently against the shared
// handle; any nested failure surfaces as one BadRequest.
func (s *Service) GetComplete(ctx context.Context, username string) (*models.UserComplete, error) {
	detail, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	ids, err := s.PortfolioIDs(ctx, username)
	if err != nil {
		return nil, apperr.BadRequest(err, "could not load portfolios for %s", username)
	}

	pfs := make([]models.PortfolioDetail, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := s.Portfolios.Get(gctx, id)
			if err != nil {
				return err
			}
			pfs[i] = *p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.BadRequest(err, "could not load portfolios for %s", username)
	}

	return &models.UserComplete{
		Username:   detail.Username,
		Email:      detail.Email,
		Watchlist:  detail.Watchlist,
		Portfolios: pfs,
	}, nil
}

// Update applies a partial update to the mutable subset. A new password is
// hashed before it reaches the store.
func (s *Service) Update(ctx context.Context, username string, fields map[string]interface{}) (*models.User, error) {
	if len(fields) == 0 {
		return nil, apperr.EmptyUpdate()
	}
	for name := range fields {
		if _, ok := mutableCols[name]; !ok {
			return nil, apperr.BadRequest(nil, "field not updatable: %s", name)
		}
	}

	if pw, ok := fields["password"].(string); ok {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), s.BcryptCost)
		if err != nil {
			return nil, err
		}
		fields["password"] = string(hash)
	}

	setClause, vals, err := sqlpatch.SetClause(fields, mutableCols)
	if err != nil {
		return nil, err
	}
	res := s.DB.WithContext(ctx).Exec(
		"UPDATE users SET "+setClause+" WHERE username = ?",
		append(vals, username)...,
	)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("no user: %s", username)
	}

	return s.find(ctx, username)
}

// Remove deletes a user by username.
func (s *Service) Remove(ctx context.Context, username string) error {
	res := s.DB.WithContext(ctx).Where("username = ?", username).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("no user: %s", username)
	}
	return nil
}

// AddToWatchlist puts a symbol on the user's watchlist.
func (s *Service) AddToWatchlist(ctx context.Context, username, symbol string) error {
	return s.Watchlist.Add(ctx, username, symbol)
}

// RemoveFromWatchlist takes a symbol off the user's watchlist.
func (s *Service) RemoveFromWatchlist(ctx context.Context, username, symbol string) error {
	return s.Watchlist.Remove(ctx, username, symbol)
}

// PortfolioIDs returns the ids of every portfolio the user owns, in store order.
func (s *Service) PortfolioIDs(ctx context.Context, username string) ([]uint, error) {
	ids := []uint{}
	err := s.DB.WithContext(ctx).
		Model(&models.Portfolio{}).
		Where("username = ?", username).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// HoldingIDs returns the ids of every holding the user owns transitively
// through their portfolios, in store order.
func (s *Service) HoldingIDs(ctx context.Context, username string) ([]uint, error) {
	ids := []uint{}
	err := s.DB.WithContext(ctx).
		Model(&models.Holding{}).
		Joins("JOIN portfolios ON holdings.portfolio_id = portfolios.id").
		Where("portfolios.username = ?", username).
		Pluck("holdings.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Service) find(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("no user: %s", username)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
