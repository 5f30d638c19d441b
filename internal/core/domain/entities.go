package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role represents user role in the system
type Role string

const (
	RoleUser       Role = "ROLE_USER"
	RoleSuperAdmin Role = "ROLE_SUPER_ADMIN"
)

// User represents a balance holder in the domain layer
type User struct {
	ID        uint
	Email     string
	Password  string // Hashed
	Roles     []Role
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRole reports whether the user carries role
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleNames returns roles as plain strings (JWT claims, responses)
func (u *User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = string(r)
	}
	return names
}

// Course represents a catalog item
type Course struct {
	ID    uint
	Code  string
	Name  string
	Type  CourseType
	Price decimal.NullDecimal // Valid only when Type != CourseFree
}

// Cost returns the amount a purchase of the course moves (zero for FREE)
func (c *Course) Cost() decimal.Decimal {
	if c.Type == CourseFree || !c.Price.Valid {
		return decimal.Zero
	}
	return c.Price.Decimal
}

// Transaction represents an immutable ledger row
type Transaction struct {
	ID             uint
	CustomerID     uint
	CourseID       *uint
	CourseCode     string // Empty for deposits
	Type           TransactionType
	Value          decimal.Decimal
	CreationDate   time.Time
	ExpirationDate *time.Time
}

// IsExpired reports whether a rental transaction no longer grants access at now
func (t *Transaction) IsExpired(now time.Time) bool {
	return t.ExpirationDate != nil && !t.ExpirationDate.After(now)
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TransactionFilter narrows a user's transaction history
type TransactionFilter struct {
	Type        *TransactionType
	CourseCode  string
	SkipExpired bool
}

// ReportRow is one (user, course) aggregate of a period report
type ReportRow struct {
	Email             string
	CourseName        string
	CourseType        CourseType
	TransactionsCount int64
	TotalValue        decimal.Decimal
}

// ExpiredRental is a (user, course) pair whose rental ended
type ExpiredRental struct {
	Email      string
	CourseCode string
	CourseName string
	ExpiredAt  time.Time
}
