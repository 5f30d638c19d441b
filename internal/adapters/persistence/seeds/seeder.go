// Package seeds loads the development fixtures.
package seeds

import (
	"context"
	"log"

	"studyon-billing/internal/adapters/persistence/repositories"
	"studyon-billing/internal/core/domain"
	"studyon-billing/internal/core/services"
	"studyon-billing/internal/pkg/password"

	"github.com/shopspring/decimal"
)

// Seeder handles database seeding
type Seeder struct {
	uow     repositories.UnitOfWork
	payment *services.PaymentService
	now     services.Clock
}

// NewSeeder creates a new seeder instance
func NewSeeder(uow repositories.UnitOfWork, payment *services.PaymentService, now services.Clock) *Seeder {
	if now == nil {
		now = services.SystemClock
	}
	return &Seeder{uow: uow, payment: payment, now: now}
}

type fixtureUser struct {
	email    string
	password string
	roles    []domain.Role
	deposit  string
}

var fixtureUsers = []fixtureUser{
	{"user@gmail.com", "user", []domain.Role{domain.RoleUser}, "100.50"},
	{"no_money@gmail.com", "no_money", []domain.Role{domain.RoleUser}, ""},
	{"admin@gmail.com", "admin", []domain.Role{domain.RoleSuperAdmin, domain.RoleUser}, "35.75"},
}

var fixtureCourses = []*domain.Course{
	{Code: "Godot4beginner", Name: "Godot 4 для начинающих", Type: domain.CourseFree},
	{Code: "unity_beginner", Name: "Unity для начинающих", Type: domain.CourseBuy,
		Price: decimal.NewNullDecimal(decimal.NewFromInt(20))},
	{Code: "UE5pro", Name: "UE5 для профи", Type: domain.CourseRent,
		Price: decimal.NewNullDecimal(decimal.NewFromInt(10))},
}

// Run loads all fixtures in one transaction. It does nothing when users exist.
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	err := s.uow.Within(ctx, func(tx *repositories.Store) error {
		if _, total, err := tx.Users.List(ctx, 0, 1); err != nil || total > 0 {
			if total > 0 {
				log.Println("⚠️ Seeding skipped: users already exist")
			}
			return err
		}

		users := make(map[string]*domain.User, len(fixtureUsers))
		for _, f := range fixtureUsers {
			user, err := s.seedUser(ctx, tx, f)
			if err != nil {
				return err
			}
			users[f.email] = user
		}

		for _, c := range fixtureCourses {
			course := *c
			if err := tx.Courses.Create(ctx, &course); err != nil {
				return err
			}
		}

		if _, err := s.payment.PurchaseTx(ctx, tx, users["user@gmail.com"].ID, "unity_beginner"); err != nil {
			return err
		}
		if _, err := s.payment.PurchaseTx(ctx, tx, users["admin@gmail.com"].ID, "UE5pro"); err != nil {
			return err
		}

		return s.seedExpiredRental(ctx, tx, users["no_money@gmail.com"])
	})
	if err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

func (s *Seeder) seedUser(ctx context.Context, tx *repositories.Store, f fixtureUser) (*domain.User, error) {
	hashed, err := password.Hash(f.password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: f.email, Password: hashed, Roles: f.roles}
	if err := tx.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	if f.deposit != "" {
		if _, err := s.payment.DepositTx(ctx, tx, user.ID, decimal.RequireFromString(f.deposit)); err != nil {
			return nil, err
		}
	}

	log.Printf("✅ Fixture user created: %s", user.Email)
	return user, nil
}

// seedExpiredRental records a rental that ends the moment it is created.
// It bypasses the payment engine and does not touch the balance.
func (s *Seeder) seedExpiredRental(ctx context.Context, tx *repositories.Store, user *domain.User) error {
	course, err := tx.Courses.GetByCode(ctx, "UE5pro")
	if err != nil {
		return err
	}

	now := s.now()
	courseID := course.ID
	return tx.Transactions.Create(ctx, &domain.Transaction{
		CustomerID:     user.ID,
		CourseID:       &courseID,
		Type:           domain.TxPayment,
		Value:          course.Cost(),
		CreationDate:   now,
		ExpirationDate: &now,
	})
}
