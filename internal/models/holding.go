package models

// Holding matches the holdings table. The (symbol, portfolio_id) pair is
// unique: a portfolio cannot hold the same symbol twice. A holding has no
// owner column of its own; ownership is resolved through its portfolio.
type Holding struct {
	ID               uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Symbol           string  `gorm:"column:symbol;not null;uniqueIndex:idx_holdings_symbol_portfolio" json:"symbol"`
	SharesOwned      float64 `gorm:"column:shares_owned;type:decimal(18,4);not null;default:0" json:"shares_owned"`
	CostBasis        float64 `gorm:"column:cost_basis;type:decimal(18,2);not null;default:0" json:"cost_basis"`
	TargetPercentage float64 `gorm:"column:target_percentage;type:decimal(7,4);not null;default:0" json:"target_percentage"`
	Goal             string  `gorm:"column:goal" json:"goal"`
	PortfolioID      uint    `gorm:"column:portfolio_id;not null;uniqueIndex:idx_holdings_symbol_portfolio" json:"portfolio_id"`
}

func (Holding) TableName() string {
	return "holdings"
}
