package holdings

import (
	"context"

	"pm-backend/internal/models"
	"pm-backend/internal/pkg/apperr"
	"pm-backend/internal/pkg/sqlpatch"

	"gorm.io/gorm"
)

// Service encapsulates holding operations over the shared DB handle.
type Service struct {
	DB *gorm.DB
}

// CreateInput holds the required fields for a new holding.
type CreateInput struct {
	Symbol           string  `json:"symbol"`
	SharesOwned      float64 `json:"shares_owned"`
	CostBasis        float64 `json:"cost_basis"`
	TargetPercentage float64 `json:"target_percentage"`
	Goal             string  `json:"goal"`
	PortfolioID      uint    `json:"portfolio_id"`
}

// mutableCols is the allowlist of fields Update accepts. Symbol and
// portfolio_id are natural-key fields and stay immutable.
var mutableCols = map[string]string{
	"shares_owned":      "shares_owned",
	"cost_basis":        "cost_basis",
	"target_percentage": "target_percentage",
	"goal":              "goal",
}

// Create inserts a holding after verifying the parent portfolio exists and
// the (symbol, portfolio_id) natural key is free. Checks and insert are
// separate round trips; the unique index is the backstop under concurrency.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Holding, error) {
	var parent models.Portfolio
	err := s.DB.WithContext(ctx).Where("id = ?", in.PortfolioID).First(&parent).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("invalid portfolio: %d", in.PortfolioID)
	}
	if err != nil {
		return nil, err
	}

	var existing models.Holding
	err = s.DB.WithContext(ctx).
		Where("symbol = ? AND portfolio_id = ?", in.Symbol, in.PortfolioID).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Duplicate("duplicate holding: %s", in.Symbol)
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	h := &models.Holding{
		Symbol:           in.Symbol,
		SharesOwned:      in.SharesOwned,
		CostBasis:        in.CostBasis,
		TargetPercentage: in.TargetPercentage,
		Goal:             in.Goal,
		PortfolioID:      in.PortfolioID,
	}
	if err := s.DB.WithContext(ctx).Create(h).Error; err != nil {
		return nil, err
	}
	return h, nil
}

// Get returns a holding by id.
func (s *Service) Get(ctx context.Context, id uint) (*models.Holding, error) {
	var h models.Holding
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&h).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("no holding: %d", id)
		}
		return nil, err
	}
	return &h, nil
}

// Update applies a partial update to the mutable subset.
func (s *Service) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Holding, error) {
	if len(fields) == 0 {
		return nil, apperr.EmptyUpdate()
	}
	for name := range fields {
		if _, ok := mutableCols[name]; !ok {
			return nil, apperr.BadRequest(nil, "field not updatable: %s", name)
		}
	}

	setClause, vals, err := sqlpatch.SetClause(fields, mutableCols)
	if err != nil {
		return nil, err
	}
	res := s.DB.WithContext(ctx).Exec(
		"UPDATE holdings SET "+setClause+" WHERE id = ?",
		append(vals, id)...,
	)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("no holding: %d", id)
	}

	var h models.Holding
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// Remove deletes a holding by id.
func (s *Service) Remove(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Holding{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("no holding: %d", id)
	}
	return nil
}
