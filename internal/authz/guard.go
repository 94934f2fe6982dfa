// Package authz decides whether a caller may act on a resource by walking the
// ownership chain User → Portfolio → Holding. It never mutates anything.
package authz

import (
	"context"

	"pm-backend/internal/application/holdings"
	"pm-backend/internal/application/portfolios"
	"pm-backend/internal/pkg/apperr"
)

// Guard resolves resource ownership through the repositories. Resource ids
// are not secrets, so NotFound and Forbidden are both acceptable outcomes
// for a denied request.
type Guard struct {
	Portfolios *portfolios.Service
	Holdings   *holdings.Service
}

// NewGuard wires a guard over the portfolio and holding repositories.
func NewGuard(p *portfolios.Service, h *holdings.Service) *Guard {
	return &Guard{Portfolios: p, Holdings: h}
}

// CorrectUser allows a caller acting on their own username.
func (g *Guard) CorrectUser(identity, username string) error {
	if identity == "" {
		return apperr.Unauthorized("authentication required")
	}
	if identity != username {
		return apperr.Forbidden("user %s may not act on user %s", identity, username)
	}
	return nil
}

// CorrectPortfolio allows a caller who owns the portfolio. Fails NotFound if
// the portfolio is absent, Forbidden if present but owned by someone else.
func (g *Guard) CorrectPortfolio(ctx context.Context, identity string, id uint) error {
	if identity == "" {
		return apperr.Unauthorized("authentication required")
	}
	p, err := g.Portfolios.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.Username != identity {
		return apperr.Forbidden("user %s does not own portfolio %d", identity, id)
	}
	return nil
}

// CorrectHolding allows a caller who owns the holding transitively through
// its parent portfolio; the holding itself carries no owner field.
func (g *Guard) CorrectHolding(ctx context.Context, identity string, id uint) error {
	if identity == "" {
		return apperr.Unauthorized("authentication required")
	}
	h, err := g.Holdings.Get(ctx, id)
	if err != nil {
		return err
	}
	return g.CorrectPortfolio(ctx, identity, h.PortfolioID)
}
