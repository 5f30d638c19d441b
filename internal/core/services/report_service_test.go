package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyon-billing/internal/core/services"
)

type fakeMailer struct {
	sent   []services.Mail
	failOn string
}

func (m *fakeMailer) Send(_ context.Context, mail services.Mail) error {
	if mail.To == m.failOn {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, mail)
	return nil
}

func TestMonthBounds(t *testing.T) {
	start, end := services.MonthBounds(time.Date(2024, time.February, 17, 8, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), end)
}

func TestReportService_SendMonthlyReport(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	alice := l.user(t, "alice@gmail.com", "100")
	bob := l.user(t, "bob@gmail.com", "50")

	_, err := l.payment.Purchase(ctx, alice.ID, "unity_beginner")
	require.NoError(t, err)
	_, err = l.payment.Purchase(ctx, alice.ID, "UE5pro")
	require.NoError(t, err)
	_, err = l.payment.Purchase(ctx, bob.ID, "Godot4beginner")
	require.NoError(t, err)

	mailer := &fakeMailer{}
	reports := services.NewReportService(l.store.Transactions, mailer, l.clock.Now)

	sent, err := reports.SendMonthlyReport(ctx, t0)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	require.Len(t, mailer.sent, 2)

	first := mailer.sent[0]
	assert.Equal(t, "alice@gmail.com", first.To)
	assert.Equal(t, services.PaymentReportSubject, first.Subject)
	assert.Equal(t, services.PaymentReportTemplate, first.Template)

	data, ok := first.Data.(*services.PaymentReportData)
	require.True(t, ok)
	assert.Len(t, data.Courses, 2)
	assert.True(t, data.TotalPaid.Equal(decimal.NewFromInt(30)), data.TotalPaid.String())
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), data.From)

	t.Run("a failed delivery aborts the batch", func(t *testing.T) {
		mailer := &fakeMailer{failOn: "alice@gmail.com"}
		reports := services.NewReportService(l.store.Transactions, mailer, l.clock.Now)

		sent, err := reports.SendMonthlyReport(ctx, t0)
		assert.Error(t, err)
		assert.Equal(t, 0, sent)
		assert.Empty(t, mailer.sent, "bob is not mailed after alice failed")
	})

	t.Run("another month is empty", func(t *testing.T) {
		mailer := &fakeMailer{}
		reports := services.NewReportService(l.store.Transactions, mailer, l.clock.Now)

		sent, err := reports.SendMonthlyReport(ctx, t0.AddDate(0, -1, 0))
		require.NoError(t, err)
		assert.Zero(t, sent)
	})
}

func TestReportService_SendRentEndingNotices(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	alice := l.user(t, "alice@gmail.com", "100")

	_, err := l.payment.Purchase(ctx, alice.ID, "UE5pro")
	require.NoError(t, err)

	mailer := &fakeMailer{}
	reports := services.NewReportService(l.store.Transactions, mailer, l.clock.Now)

	sent, err := reports.SendRentEndingNotices(ctx, t0.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, sent, "rental still running")

	sent, err = reports.SendRentEndingNotices(ctx, t0.AddDate(0, 0, 7).Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, services.RentEndingSubject, mailer.sent[0].Subject)

	data, ok := mailer.sent[0].Data.(*services.RentEndingData)
	require.True(t, ok)
	require.Len(t, data.Courses, 1)
	assert.Equal(t, "UE5pro", data.Courses[0].CourseCode)
}
