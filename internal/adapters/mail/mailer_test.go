package mail_test

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyon-billing/internal/adapters/mail"
	"studyon-billing/internal/config"
	"studyon-billing/internal/core/domain"
	"studyon-billing/internal/core/services"
)

func TestRender_PaymentReport(t *testing.T) {
	tmpl, err := mail.Templates()
	require.NoError(t, err)

	html, err := mail.Render(tmpl, services.PaymentReportTemplate, &services.PaymentReportData{
		From: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC),
		Courses: []services.ReportCourse{
			{Name: "Unity <beginner>", Type: "buy", TransactionsCount: 1, Total: decimal.NewFromInt(20)},
		},
		TotalPaid: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Contains(t, html, "01.03.2026 - 31.03.2026")
	assert.Contains(t, html, "Unity &lt;beginner&gt;")
	assert.Contains(t, html, "Итого: 20.00")
}

func TestRender_RentEnding(t *testing.T) {
	tmpl, err := mail.Templates()
	require.NoError(t, err)

	html, err := mail.Render(tmpl, services.RentEndingTemplate, &services.RentEndingData{
		Courses: []domain.ExpiredRental{
			{Email: "a@b.c", CourseCode: "UE5pro", CourseName: "Unreal", ExpiredAt: time.Date(2026, time.March, 17, 9, 0, 0, 0, time.UTC)},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Unreal действует до 17.03.2026 09:00")

	_, err = mail.Render(tmpl, "missing.html", nil)
	assert.Error(t, err)
}

func TestSMTPMailer_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	m, err := mail.NewSMTPMailer(config.MailConfig{Host: "localhost", Port: "1025", From: "admins@studyon.com"})
	require.NoError(t, err)
	m.WithSendFunc(func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	})

	err = m.Send(context.Background(), services.Mail{
		To:       "user@gmail.com",
		Subject:  services.RentEndingSubject,
		Template: services.RentEndingTemplate,
		Data:     &services.RentEndingData{},
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:1025", gotAddr)
	assert.Equal(t, "admins@studyon.com", gotFrom)
	assert.Equal(t, []string{"user@gmail.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Content-Type: text/html")
	assert.Contains(t, string(gotMsg), "To: user@gmail.com")

	m.WithSendFunc(func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("451 temporary failure")
	})
	err = m.Send(context.Background(), services.Mail{To: "user@gmail.com", Template: services.RentEndingTemplate, Data: &services.RentEndingData{}})
	assert.Error(t, err)
}
