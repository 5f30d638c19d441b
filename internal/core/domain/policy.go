package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentalWindow is the access period granted by one RENT purchase
const RentalWindow = 7 * 24 * time.Hour

// TransactionShape is what a purchase of a course records
type TransactionShape struct {
	Value     decimal.Decimal
	ExpiresAt *time.Time
}

// ResolveTransactionShape maps a course to the value and expiry of the
// PAYMENT transaction a purchase at now creates.
func ResolveTransactionShape(course *Course, now time.Time) TransactionShape {
	shape := TransactionShape{Value: course.Cost()}
	if course.Type == CourseRent {
		expires := now.Add(RentalWindow)
		shape.ExpiresAt = &expires
	}
	return shape
}
