package models

import (
	"time"

	"studyon-billing/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Email     string          `gorm:"uniqueIndex;size:180;not null" json:"email"`
	Password  string          `gorm:"size:255;not null" json:"-"`
	Roles     []string        `gorm:"serializer:json;type:text;not null" json:"roles"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint            `json:"id"`
	Username  string          `json:"username"`
	Roles     []string        `json:"roles"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

func (u *User) ToDomain() *domain.User {
	roles := make([]domain.Role, len(u.Roles))
	for i, r := range u.Roles {
		roles[i] = domain.Role(r)
	}
	return &domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Roles:     roles,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserFromDomain builds a row from a domain user
func UserFromDomain(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Roles:     u.RoleNames(),
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserResponse renders a domain user for API consumers
func NewUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Email,
		Roles:     u.RoleNames(),
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// ============================================================
// Catalog
// ============================================================

// Course represents courses table
type Course struct {
	ID    uint                `gorm:"primaryKey" json:"id"`
	Code  string              `gorm:"uniqueIndex;size:255;not null" json:"code"`
	Name  string              `gorm:"size:255;not null" json:"name"`
	Type  domain.CourseType   `gorm:"not null;default:0" json:"type"`
	Price decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"price"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseResponse DTO; price is omitted for free courses
type CourseResponse struct {
	Code  string            `json:"code"`
	Name  string            `json:"name"`
	Type  domain.CourseType `json:"type"`
	Price *decimal.Decimal  `json:"price,omitempty"`
}

func (c *Course) ToDomain() *domain.Course {
	return &domain.Course{
		ID:    c.ID,
		Code:  c.Code,
		Name:  c.Name,
		Type:  c.Type,
		Price: c.Price,
	}
}

// CourseFromDomain builds a row from a domain course
func CourseFromDomain(c *domain.Course) *Course {
	return &Course{
		ID:    c.ID,
		Code:  c.Code,
		Name:  c.Name,
		Type:  c.Type,
		Price: c.Price,
	}
}

// NewCourseResponse renders a domain course for API consumers
func NewCourseResponse(c *domain.Course) *CourseResponse {
	resp := &CourseResponse{
		Code: c.Code,
		Name: c.Name,
		Type: c.Type,
	}
	if c.Type != domain.CourseFree && c.Price.Valid {
		price := c.Price.Decimal
		resp.Price = &price
	}
	return resp
}

// ============================================================
// Ledger
// ============================================================

// Transaction represents transactions table (append-only)
type Transaction struct {
	ID             uint                   `gorm:"primaryKey" json:"id"`
	CustomerID     uint                   `gorm:"not null;index:idx_transactions_customer_course" json:"customer_id"`
	CourseID       *uint                  `gorm:"index:idx_transactions_customer_course" json:"course_id"`
	Type           domain.TransactionType `gorm:"not null" json:"type"`
	Value          decimal.Decimal        `gorm:"type:decimal(12,2);not null" json:"value"`
	CreationDate   time.Time              `gorm:"not null;index" json:"creation_date"`
	ExpirationDate *time.Time             `gorm:"index" json:"expiration_date"`

	// Relations
	Customer *User   `gorm:"foreignKey:CustomerID" json:"-"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionResponse DTO
type TransactionResponse struct {
	ID        uint                   `json:"id"`
	Course    string                 `json:"course,omitempty"`
	Type      domain.TransactionType `json:"type"`
	Value     decimal.Decimal        `json:"value"`
	CreatedAt string                 `json:"created_at"`
	ExpiresAt string                 `json:"expires_at,omitempty"`
}

// DateTimeLayout is the wire format of ledger timestamps
const DateTimeLayout = "2006-01-02 15:04:05"

// Money goes out as JSON numbers (100.5, not "100.5")
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func (t *Transaction) ToDomain() *domain.Transaction {
	tx := &domain.Transaction{
		ID:             t.ID,
		CustomerID:     t.CustomerID,
		CourseID:       t.CourseID,
		Type:           t.Type,
		Value:          t.Value,
		CreationDate:   t.CreationDate,
		ExpirationDate: t.ExpirationDate,
	}
	if t.Course != nil {
		tx.CourseCode = t.Course.Code
	}
	return tx
}

// TransactionFromDomain builds a row from a domain transaction
func TransactionFromDomain(t *domain.Transaction) *Transaction {
	return &Transaction{
		ID:             t.ID,
		CustomerID:     t.CustomerID,
		CourseID:       t.CourseID,
		Type:           t.Type,
		Value:          t.Value,
		CreationDate:   t.CreationDate,
		ExpirationDate: t.ExpirationDate,
	}
}

// NewTransactionResponse renders a ledger row for API consumers
func NewTransactionResponse(t *domain.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:        t.ID,
		Course:    t.CourseCode,
		Type:      t.Type,
		Value:     t.Value,
		CreatedAt: t.CreationDate.Format(DateTimeLayout),
	}
	if t.ExpirationDate != nil {
		resp.ExpiresAt = t.ExpirationDate.Format(DateTimeLayout)
	}
	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all billing tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Course{},
		&Transaction{},
	)
}
