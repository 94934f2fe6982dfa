package portfolios

import (
	"context"

	"pm-backend/internal/models"
	"pm-backend/internal/pkg/apperr"
	"pm-backend/internal/pkg/sqlpatch"

	"gorm.io/gorm"
)

// Service encapsulates portfolio operations over the shared DB handle.
type Service struct {
	DB *gorm.DB
}

// CreateInput holds the required fields for a new portfolio.
type CreateInput struct {
	Name     string  `json:"name"`
	Cash     float64 `json:"cash"`
	Notes    string  `json:"notes"`
	Username string  `json:"username"`
}

// mutableCols is the allowlist of fields Update accepts. The owning username
// is not on it: a portfolio cannot change hands through this path.
var mutableCols = map[string]string{
	"name":  "name",
	"cash":  "cash",
	"notes": "notes",
}

// Create inserts a portfolio after checking the (name, username) natural key.
// The check and the insert are separate round trips; the unique index catches
// the race two concurrent creates can win simultaneously.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Portfolio, error) {
	var existing models.Portfolio
	err := s.DB.WithContext(ctx).
		Where("name = ? AND username = ?", in.Name, in.Username).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Duplicate("duplicate portfolio name: %s", in.Name)
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	p := &models.Portfolio{
		Name:     in.Name,
		Cash:     in.Cash,
		Notes:    in.Notes,
		Username: in.Username,
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a portfolio with its holdings, in store order.
func (s *Service) Get(ctx context.Context, id uint) (*models.PortfolioDetail, error) {
	var p models.Portfolio
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("no portfolio: %d", id)
		}
		return nil, err
	}

	holdings := []models.Holding{}
	if err := s.DB.WithContext(ctx).
		Where("portfolio_id = ?", id).
		Find(&holdings).Error; err != nil {
		return nil, err
	}

	return &models.PortfolioDetail{Portfolio: p, Holdings: holdings}, nil
}

// Update applies a partial update. A new name re-runs the duplicate check
// scoped to the caller so a rename cannot collide with an existing portfolio.
func (s *Service) Update(ctx context.Context, id uint, fields map[string]interface{}, callerUsername string) (*models.Portfolio, error) {
	if len(fields) == 0 {
		return nil, apperr.EmptyUpdate()
	}
	for name := range fields {
		if _, ok := mutableCols[name]; !ok {
			return nil, apperr.BadRequest(nil, "field not updatable: %s", name)
		}
	}

	if newName, ok := fields["name"]; ok {
		var existing models.Portfolio
		err := s.DB.WithContext(ctx).
			Where("name = ? AND username = ?", newName, callerUsername).
			First(&existing).Error
		if err == nil {
			return nil, apperr.Duplicate("duplicate portfolio name: %v", newName)
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	setClause, vals, err := sqlpatch.SetClause(fields, mutableCols)
	if err != nil {
		return nil, err
	}
	res := s.DB.WithContext(ctx).Exec(
		"UPDATE portfolios SET "+setClause+" WHERE id = ?",
		append(vals, id)...,
	)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("no portfolio: %d", id)
	}

	var p models.Portfolio
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Remove deletes a portfolio by id. Holdings are not cascaded; see DESIGN.md.
func (s *Service) Remove(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Portfolio{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("no portfolio: %d", id)
	}
	return nil
}
