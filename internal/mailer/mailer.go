// Package mailer is the send-invoice-email collaborator: fire-and-forget
// notification, no retry. Failures surface as a generic email error.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/asadtechlead/precise-price-print/pkg/logger"
)

// ErrEmailFailed is the generic condition surfaced to callers; the
// underlying transport error is logged, not exposed.
var ErrEmailFailed = errors.New("email failed")

// InvoiceEmail carries everything the notification needs.
type InvoiceEmail struct {
	To             string
	ClientName     string
	InvoiceNumber  string
	Total          decimal.Decimal
	CurrencySymbol string
	DueDate        time.Time
	CompanyName    string
}

type Mailer interface {
	SendInvoice(ctx context.Context, msg InvoiceEmail) error
}

// NewFromEnv returns an SMTP mailer when SMTP_HOST is configured, otherwise
// a log-only mailer.
func NewFromEnv() Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return &logMailer{log: logger.WithComponent("mailer")}
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &smtpMailer{
		addr: host + ":" + port,
		from: os.Getenv("SMTP_FROM"),
		auth: smtp.PlainAuth("", os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD"), host),
		log:  logger.WithComponent("mailer"),
	}
}

type smtpMailer struct {
	addr string
	from string
	auth smtp.Auth
	log  zerolog.Logger
}

func (m *smtpMailer) SendInvoice(ctx context.Context, msg InvoiceEmail) error {
	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Invoice %s from %s\r\n\r\n"+
		"Hi %s,\r\n\r\n"+
		"Invoice %s for %s%s is due on %s.\r\n\r\n"+
		"Thank you for your business.\r\n",
		m.from, msg.To, msg.InvoiceNumber, msg.CompanyName,
		msg.ClientName,
		msg.InvoiceNumber, msg.CurrencySymbol, msg.Total.StringFixed(2),
		msg.DueDate.Format("January 2, 2006"))

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{msg.To}, []byte(body)); err != nil {
		m.log.Error().Err(err).Str("invoice", msg.InvoiceNumber).Msg("smtp send failed")
		return ErrEmailFailed
	}
	m.log.Info().Str("invoice", msg.InvoiceNumber).Str("to", msg.To).Msg("invoice email sent")
	return nil
}

// logMailer records the attempt without sending anything. Used when no SMTP
// transport is configured.
type logMailer struct {
	log zerolog.Logger
}

func (m *logMailer) SendInvoice(ctx context.Context, msg InvoiceEmail) error {
	m.log.Info().
		Str("invoice", msg.InvoiceNumber).
		Str("to", msg.To).
		Str("total", msg.Total.StringFixed(2)).
		Msg("would send invoice email (no SMTP configured)")
	return nil
}
