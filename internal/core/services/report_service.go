package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"studyon-billing/internal/adapters/persistence/repositories"
	"studyon-billing/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Mail subjects and template names of the scheduled reports
const (
	PaymentReportSubject  = "Отчет об операциях за месяц"
	PaymentReportTemplate = "payment_report.html"

	RentEndingSubject  = "Окончание аренды курсов"
	RentEndingTemplate = "rent_ending_notification.html"

	// RentNoticeWindow matches the daily rent notice schedule
	RentNoticeWindow = 24 * time.Hour
)

// ReportCourse is one course line of a payment report mail
type ReportCourse struct {
	Name              string
	Type              string
	TransactionsCount int64
	Total             decimal.Decimal
}

// PaymentReportData is rendered into the payment report template
type PaymentReportData struct {
	From      time.Time
	To        time.Time
	Courses   []ReportCourse
	TotalPaid decimal.Decimal
}

// RentEndingData is rendered into the rent ending template
type RentEndingData struct {
	Courses []domain.ExpiredRental
}

// ReportService builds and mails the periodic ledger reports
type ReportService struct {
	txRepo repositories.TransactionRepository
	mailer Mailer
	now    Clock
}

// NewReportService creates a new report service
func NewReportService(txRepo repositories.TransactionRepository, mailer Mailer, now Clock) *ReportService {
	if now == nil {
		now = SystemClock
	}
	return &ReportService{txRepo: txRepo, mailer: mailer, now: now}
}

// MonthBounds returns the first and last second of the calendar month of t
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// SendMonthlyReport mails every paying user a summary of the month containing
// asOf. It stops at the first delivery failure and returns the number of
// mails sent before it.
func (s *ReportService) SendMonthlyReport(ctx context.Context, asOf time.Time) (int, error) {
	start, end := MonthBounds(asOf)
	rows, err := s.txRepo.MonthlyReport(ctx, start, end)
	if err != nil {
		return 0, err
	}

	emails, byEmail := groupByEmail(rows, func(r domain.ReportRow) string { return r.Email })
	sent := 0
	for _, email := range emails {
		data := &PaymentReportData{From: start, To: end, TotalPaid: decimal.Zero}
		for _, row := range byEmail[email] {
			data.Courses = append(data.Courses, ReportCourse{
				Name:              row.CourseName,
				Type:              row.CourseType.String(),
				TransactionsCount: row.TransactionsCount,
				Total:             row.TotalValue,
			})
			data.TotalPaid = data.TotalPaid.Add(row.TotalValue)
		}

		err := s.mailer.Send(ctx, Mail{
			To:       email,
			Subject:  PaymentReportSubject,
			Template: PaymentReportTemplate,
			Data:     data,
		})
		if err != nil {
			return sent, fmt.Errorf("send payment report to %s: %w", email, err)
		}
		sent++
	}

	log.Printf("✅ Payment report %s: %d mails sent", start.Format("2006-01"), sent)
	return sent, nil
}

// SendRentEndingNotices mails users whose rentals ended in the last
// RentNoticeWindow before asOf. It stops at the first delivery failure.
func (s *ReportService) SendRentEndingNotices(ctx context.Context, asOf time.Time) (int, error) {
	rentals, err := s.txRepo.FindExpiredRentals(ctx, asOf, RentNoticeWindow)
	if err != nil {
		return 0, err
	}

	emails, byEmail := groupByEmail(rentals, func(r domain.ExpiredRental) string { return r.Email })
	sent := 0
	for _, email := range emails {
		err := s.mailer.Send(ctx, Mail{
			To:       email,
			Subject:  RentEndingSubject,
			Template: RentEndingTemplate,
			Data:     &RentEndingData{Courses: byEmail[email]},
		})
		if err != nil {
			return sent, fmt.Errorf("send rent notice to %s: %w", email, err)
		}
		sent++
	}

	log.Printf("✅ Rent ending notices: %d mails sent", sent)
	return sent, nil
}

// groupByEmail groups items by email keeping first-seen order
func groupByEmail[T any](items []T, email func(T) string) ([]string, map[string][]T) {
	var emails []string
	byEmail := make(map[string][]T)
	for _, item := range items {
		key := email(item)
		if _, ok := byEmail[key]; !ok {
			emails = append(emails, key)
		}
		byEmail[key] = append(byEmail[key], item)
	}
	return emails, byEmail
}
