package models

// Portfolio matches the portfolios table. The (name, username) pair is unique:
// a user cannot have two portfolios with the same name. The index backstops
// the application-level duplicate check, which can race under concurrency.
type Portfolio struct {
	ID       uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"column:name;not null;uniqueIndex:idx_portfolios_name_owner" json:"name"`
	Cash     float64 `gorm:"column:cash;type:decimal(18,2);not null;default:0" json:"cash"`
	Notes    string  `gorm:"column:notes" json:"notes"`
	Username string  `gorm:"column:username;not null;uniqueIndex:idx_portfolios_name_owner" json:"username"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}

// PortfolioDetail is the Portfolio.Get shape: the record plus its holdings.
type PortfolioDetail struct {
	Portfolio
	Holdings []Holding `json:"holdings"`
}
