package models

// User matches the users table. Username is the identity key and is immutable
// after registration. Password holds the bcrypt hash and is never serialized.
type User struct {
	Username string `gorm:"column:username;primaryKey" json:"username"`
	Password string `gorm:"column:password;not null" json:"-"`
	Email    string `gorm:"column:email;not null" json:"email"`
}

func (User) TableName() string {
	return "users"
}

// UserDetail is the User.Get shape: the stored record plus watchlist symbols.
type UserDetail struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Watchlist []string `json:"watchlist"`
}

// UserComplete is the User.GetComplete shape: UserDetail plus every owned
// portfolio with its nested holdings.
type UserComplete struct {
	Username   string            `json:"username"`
	Email      string            `json:"email"`
	Watchlist  []string          `json:"watchlist"`
	Portfolios []PortfolioDetail `json:"portfolios"`
}
