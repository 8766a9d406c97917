// Package smtpmail sends reservation confirmation emails over SMTP.
// Delivery is best effort: every failure is logged and reported as a
// false return, never as an error or panic, so a flaky mail server can
// never downgrade a committed reservation.
package smtpmail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/goodfoods/goodfoods/internal/usecase"
)

// Config holds SMTP connection settings.
type Config struct {
	Enabled   bool
	Host      string
	Port      int
	User      string
	Password  string
	FromEmail string
	FromName  string
}

// Sender implements usecase.NotificationSender over SMTP.
type Sender struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a new Sender.
func New(cfg Config, logger *slog.Logger) *Sender {
	return &Sender{cfg: cfg, logger: logger.With("component", "smtp_sender")}
}

// SendConfirmation delivers the booking confirmation. When SMTP is
// disabled or credentials are missing, the message is logged instead of
// sent. net/smtp has no context support; ctx is accepted for interface
// symmetry only.
func (s *Sender) SendConfirmation(ctx context.Context, c usecase.Confirmation) bool {
	log := s.logger.With(slog.String("booking_id", c.BookingID), slog.String("to", c.Email))

	if !s.cfg.Enabled {
		log.Info("Email disabled, skipping confirmation")
		return false
	}
	if s.cfg.User == "" || s.cfg.Password == "" {
		log.Warn("Email credentials not configured, skipping confirmation")
		return false
	}

	msg := s.buildMessage(c)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{c.Email}, msg); err != nil {
		log.Error("Failed to send confirmation email", slog.Any("error", err))
		return false
	}
	log.Info("Confirmation email sent")
	return true
}

func (s *Sender) buildMessage(c usecase.Confirmation) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", c.Email)
	fmt.Fprintf(&b, "Subject: Reservation Confirmed - %s\r\n", c.VenueName)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")

	people := "people"
	if c.PartySize == 1 {
		people = "person"
	}
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<h1>Reservation Confirmed!</h1>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", c.Name)
	fmt.Fprintf(&b, "<p>Great news! Your reservation at <strong>%s</strong> has been confirmed.</p>", c.VenueName)
	fmt.Fprintf(&b, "<p><strong>Booking ID: %s</strong></p>", c.BookingID)
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li>Restaurant: %s</li>", c.VenueName)
	fmt.Fprintf(&b, "<li>Date: %s</li>", c.Time.Format("Monday, January 2, 2006"))
	fmt.Fprintf(&b, "<li>Time: %s</li>", c.Time.Format("3:04 PM"))
	fmt.Fprintf(&b, "<li>Party size: %d %s</li>", c.PartySize, people)
	if c.Notes != "" {
		fmt.Fprintf(&b, "<li>Notes: %s</li>", c.Notes)
	}
	b.WriteString("</ul>")
	b.WriteString("<p>Please arrive 10 minutes before your reservation time and keep your booking ID handy.</p>")
	b.WriteString("<p>We look forward to serving you!<br>The GoodFoods Team</p>")
	b.WriteString("</body></html>\r\n")
	return []byte(b.String())
}
