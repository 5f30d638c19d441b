// Command jobs runs one report mailing and exits.
//
//	jobs -job=report        payment report for the month that ended yesterday
//	jobs -job=rent-notice   rentals that ended in the last 24 hours
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"studyon-billing/internal/adapters/mail"
	"studyon-billing/internal/adapters/persistence/repositories"
	"studyon-billing/internal/config"
	"studyon-billing/internal/core/services"
)

func main() {
	job := flag.String("job", "", "job to run: report | rent-notice")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	mailer, err := mail.NewSMTPMailer(cfg.Mail)
	if err != nil {
		log.Fatalf("❌ Failed to load mail templates: %v", err)
	}
	reports := services.NewReportService(repositories.NewTransactionRepository(db), mailer, services.SystemClock)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now().UTC()
	var sent int
	switch *job {
	case "report":
		sent, err = reports.SendMonthlyReport(ctx, now.AddDate(0, 0, -1))
	case "rent-notice":
		sent, err = reports.SendRentEndingNotices(ctx, now)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Printf("❌ Job %s failed after %d mails: %v", *job, sent, err)
		config.CloseDatabase()
		os.Exit(1)
	}
	log.Printf("✅ Job %s finished: %d mails sent", *job, sent)
}
