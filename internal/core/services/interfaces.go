package services

import (
	"context"
	"time"

	"studyon-billing/internal/adapters/persistence/repositories"
)

// LedgerTx is the transactional scope the payment engine works in.
// Every repository reached through it shares one database transaction.
type LedgerTx = repositories.Store

// Clock returns the current time
type Clock func() time.Time

// SystemClock is the default Clock: UTC wall time at second precision
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Mail is one outgoing HTML message
type Mail struct {
	To       string
	Subject  string
	Template string // template file name
	Data     interface{}
}

// Mailer delivers rendered report mails
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}
