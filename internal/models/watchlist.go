package models

// WatchlistEntry matches the watchlist table: a (username, symbol) pair with
// no surrogate id. Symbols are free-form strings, not validated against any
// catalog.
type WatchlistEntry struct {
	Username string `gorm:"column:username;primaryKey" json:"username"`
	Symbol   string `gorm:"column:symbol;primaryKey" json:"symbol"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist"
}
