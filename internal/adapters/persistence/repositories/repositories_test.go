package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyon-billing/internal/adapters/persistence/repositories"
	"studyon-billing/internal/core/domain"
	"studyon-billing/internal/testutil"
)

var t0 = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store *repositories.Store
	alice *domain.User
	bob   *domain.User
	free  *domain.Course
	buy   *domain.Course
	rent  *domain.Course
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := repositories.NewStore(testutil.NewDB(t))

	f := &fixture{store: store}
	f.alice = &domain.User{Email: "alice@example.com", Password: "x", Roles: []domain.Role{domain.RoleUser}}
	f.bob = &domain.User{Email: "bob@example.com", Password: "x", Roles: []domain.Role{domain.RoleUser}}
	require.NoError(t, store.Users.Create(ctx, f.alice))
	require.NoError(t, store.Users.Create(ctx, f.bob))

	f.free = &domain.Course{Code: "godot", Name: "Godot", Type: domain.CourseFree}
	f.buy = &domain.Course{Code: "unity", Name: "Unity", Type: domain.CourseBuy,
		Price: decimal.NewNullDecimal(decimal.NewFromInt(20))}
	f.rent = &domain.Course{Code: "ue5", Name: "Unreal", Type: domain.CourseRent,
		Price: decimal.NewNullDecimal(decimal.NewFromInt(10))}
	for _, c := range []*domain.Course{f.free, f.buy, f.rent} {
		require.NoError(t, store.Courses.Create(ctx, c))
	}
	return f
}

func (f *fixture) pay(t *testing.T, user *domain.User, course *domain.Course, at time.Time) *domain.Transaction {
	t.Helper()
	shape := domain.ResolveTransactionShape(course, at)
	id := course.ID
	tx := &domain.Transaction{
		CustomerID:     user.ID,
		CourseID:       &id,
		Type:           domain.TxPayment,
		Value:          shape.Value,
		CreationDate:   at,
		ExpirationDate: shape.ExpiresAt,
	}
	require.NoError(t, f.store.Transactions.Create(context.Background(), tx))
	return tx
}

func (f *fixture) deposit(t *testing.T, user *domain.User, amount string, at time.Time) *domain.Transaction {
	t.Helper()
	tx := &domain.Transaction{
		CustomerID:   user.ID,
		Type:         domain.TxDeposit,
		Value:        decimal.RequireFromString(amount),
		CreationDate: at,
	}
	require.NoError(t, f.store.Transactions.Create(context.Background(), tx))
	return tx
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("new users start with zero balance", func(t *testing.T) {
		u, err := f.store.Users.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.True(t, u.Balance.IsZero())
		assert.True(t, u.HasRole(domain.RoleUser))
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		err := f.store.Users.Create(ctx, &domain.User{Email: "alice@example.com", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.store.Users.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.ErrorIs(t, f.store.Users.UpdateBalance(ctx, 9999, decimal.NewFromInt(1)), domain.ErrUserNotFound)
	})

	t.Run("balance update round trips decimals", func(t *testing.T) {
		require.NoError(t, f.store.Users.UpdateBalance(ctx, f.bob.ID, decimal.RequireFromString("35.75")))
		u, err := f.store.Users.GetByIDForUpdate(ctx, f.bob.ID)
		require.NoError(t, err)
		assert.True(t, u.Balance.Equal(decimal.RequireFromString("35.75")), u.Balance.String())
	})

	t.Run("list paginates in id order", func(t *testing.T) {
		users, total, err := f.store.Users.List(ctx, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, users, 1)
		assert.Equal(t, "bob@example.com", users[0].Email)
	})
}

func TestCourseRepository(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("free course has no price", func(t *testing.T) {
		c, err := f.store.Courses.GetByCode(ctx, "godot")
		require.NoError(t, err)
		assert.Equal(t, domain.CourseFree, c.Type)
		assert.False(t, c.Price.Valid)
	})

	t.Run("duplicate code", func(t *testing.T) {
		exists, err := f.store.Courses.ExistsByCode(ctx, "unity")
		require.NoError(t, err)
		assert.True(t, exists)

		err = f.store.Courses.Create(ctx, &domain.Course{Code: "unity", Name: "Again", Type: domain.CourseFree})
		assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	})

	t.Run("update can clear the price", func(t *testing.T) {
		c, err := f.store.Courses.GetByCode(ctx, "unity")
		require.NoError(t, err)
		c.Type = domain.CourseFree
		c.Price = decimal.NullDecimal{}
		c.Name = "Unity for free"
		require.NoError(t, f.store.Courses.Update(ctx, c))

		got, err := f.store.Courses.GetByCode(ctx, "unity")
		require.NoError(t, err)
		assert.Equal(t, "Unity for free", got.Name)
		assert.Equal(t, domain.CourseFree, got.Type)
		assert.False(t, got.Price.Valid)
	})

	t.Run("list is ordered by code", func(t *testing.T) {
		courses, err := f.store.Courses.List(ctx)
		require.NoError(t, err)
		require.Len(t, courses, 3)
		assert.Equal(t, []string{"godot", "ue5", "unity"},
			[]string{courses[0].Code, courses[1].Code, courses[2].Code})
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := f.store.Courses.GetByCode(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})
}

func TestTransactionRepository_FindForUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	dep := f.deposit(t, f.alice, "100.50", t0)
	buy := f.pay(t, f.alice, f.buy, t0.Add(time.Hour))
	oldRent := f.pay(t, f.alice, f.rent, t0.Add(-10*24*time.Hour))
	f.pay(t, f.bob, f.free, t0)

	t.Run("all rows oldest first with course codes", func(t *testing.T) {
		txs, err := f.store.Transactions.FindForUser(ctx, f.alice.ID, domain.TransactionFilter{}, t0)
		require.NoError(t, err)
		require.Len(t, txs, 3)
		assert.Equal(t, oldRent.ID, txs[0].ID)
		assert.Equal(t, dep.ID, txs[1].ID)
		assert.Equal(t, buy.ID, txs[2].ID)
		assert.Equal(t, "ue5", txs[0].CourseCode)
		assert.Empty(t, txs[1].CourseCode)
		assert.True(t, txs[1].Value.Equal(decimal.RequireFromString("100.50")))
	})

	t.Run("filter by type", func(t *testing.T) {
		typ := domain.TxDeposit
		txs, err := f.store.Transactions.FindForUser(ctx, f.alice.ID, domain.TransactionFilter{Type: &typ}, t0)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, dep.ID, txs[0].ID)
	})

	t.Run("filter by course code", func(t *testing.T) {
		txs, err := f.store.Transactions.FindForUser(ctx, f.alice.ID, domain.TransactionFilter{CourseCode: "unity"}, t0)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, buy.ID, txs[0].ID)
		assert.Equal(t, "unity", txs[0].CourseCode)
	})

	t.Run("skip expired drops ended rentals only", func(t *testing.T) {
		txs, err := f.store.Transactions.FindForUser(ctx, f.alice.ID, domain.TransactionFilter{SkipExpired: true}, t0)
		require.NoError(t, err)
		require.Len(t, txs, 2)
		for _, tx := range txs {
			assert.NotEqual(t, oldRent.ID, tx.ID)
		}
	})
}

func TestTransactionRepository_HasValidPurchase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.pay(t, f.alice, f.buy, t0.Add(-365*24*time.Hour))
	f.pay(t, f.alice, f.rent, t0.Add(-3*24*time.Hour))
	f.pay(t, f.bob, f.rent, t0.Add(-7*24*time.Hour))

	ok, err := f.store.Transactions.HasValidPurchase(ctx, f.alice.ID, f.buy, t0)
	require.NoError(t, err)
	assert.True(t, ok, "buy access is permanent")

	ok, err = f.store.Transactions.HasValidPurchase(ctx, f.alice.ID, f.rent, t0)
	require.NoError(t, err)
	assert.True(t, ok, "rental still running")

	ok, err = f.store.Transactions.HasValidPurchase(ctx, f.bob.ID, f.rent, t0)
	require.NoError(t, err)
	assert.False(t, ok, "rental ending exactly now is expired")

	ok, err = f.store.Transactions.HasValidPurchase(ctx, f.bob.ID, f.buy, t0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransactionRepository_MonthlyReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	march := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	f.pay(t, f.alice, f.rent, march.Add(24*time.Hour))
	f.pay(t, f.alice, f.rent, march.Add(9*24*time.Hour))
	f.pay(t, f.alice, f.buy, march.Add(2*24*time.Hour))
	f.pay(t, f.bob, f.free, march.Add(3*24*time.Hour))
	f.deposit(t, f.bob, "50", march.Add(3*24*time.Hour))
	f.pay(t, f.bob, f.buy, march.AddDate(0, 1, 1)) // April, out of range

	rows, err := f.store.Transactions.MonthlyReport(ctx, march, march.AddDate(0, 1, 0).Add(-time.Second))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "alice@example.com", rows[0].Email)
	assert.Equal(t, "Unity", rows[0].CourseName)
	assert.EqualValues(t, 1, rows[0].TransactionsCount)
	assert.True(t, rows[0].TotalValue.Equal(decimal.NewFromInt(20)))

	assert.Equal(t, "Unreal", rows[1].CourseName)
	assert.Equal(t, domain.CourseRent, rows[1].CourseType)
	assert.EqualValues(t, 2, rows[1].TransactionsCount)
	assert.True(t, rows[1].TotalValue.Equal(decimal.NewFromInt(20)))

	assert.Equal(t, "bob@example.com", rows[2].Email)
	assert.Equal(t, domain.CourseFree, rows[2].CourseType)
	assert.True(t, rows[2].TotalValue.IsZero())
}

func TestTransactionRepository_FindExpiredRentals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.pay(t, f.alice, f.rent, t0.Add(-7*24*time.Hour-time.Hour)) // ended an hour ago
	f.pay(t, f.bob, f.rent, t0.Add(-7*24*time.Hour-2*time.Hour)) // ended, then renewed
	f.pay(t, f.bob, f.rent, t0.Add(-time.Hour))
	f.pay(t, f.bob, f.buy, t0.Add(-8*24*time.Hour))

	rows, err := f.store.Transactions.FindExpiredRentals(ctx, t0, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice@example.com", rows[0].Email)
	assert.Equal(t, "ue5", rows[0].CourseCode)
	assert.Equal(t, "Unreal", rows[0].CourseName)
	assert.True(t, rows[0].ExpiredAt.Equal(t0.Add(-time.Hour)), rows[0].ExpiredAt.String())

	rows, err = f.store.Transactions.FindExpiredRentals(ctx, t0.Add(48*time.Hour), 24*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, rows, "alice's rental fell out of the window")
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	uow := repositories.NewUnitOfWork(db)
	store := repositories.NewStore(db)

	user := &domain.User{Email: "carol@example.com", Password: "x"}
	require.NoError(t, store.Users.Create(ctx, user))

	err := uow.Within(ctx, func(tx *repositories.Store) error {
		if err := tx.Users.UpdateBalance(ctx, user.ID, decimal.NewFromInt(99)); err != nil {
			return err
		}
		return domain.ErrInsufficientFunds
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	got, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())
}
