package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/starkedge/timelogger-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendDailyAlert(to string, data DailyAlertData) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

// AlertEntryRow is one itemized worked entry in the alert body.
type AlertEntryRow struct {
	TaskName    string
	ProjectName string
	Logged      string
	Description string
}

// DailyAlertData feeds the daily under-logging alert templates.
type DailyAlertData struct {
	EmployeeFirstName string
	EmployeeName      string
	Date              string
	TotalHours        string // two-decimal hours
	Entries           []AlertEntryRow
}

// SendDailyAlert sends the under-logging alert for one employee.
func (s *emailServiceImpl) SendDailyAlert(to string, data DailyAlertData) error {
	subject := fmt.Sprintf("Daily Time Report for %s - %s", data.EmployeeName, data.Date)

	var htmlBody bytes.Buffer
	if err := s.templates.ExecuteTemplate(&htmlBody, "daily_alert.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.send(to, subject, buildAlertText(data), htmlBody.String())
}

// buildAlertText renders the plain-text alternative of the alert.
func buildAlertText(data DailyAlertData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", data.EmployeeFirstName)
	fmt.Fprintf(&b, "You have logged %s hours today (%s). Please ensure you log at least 8 hours daily.\n\n", data.TotalHours, data.Date)
	b.WriteString("Detailed Time Entries:\n")
	for _, entry := range data.Entries {
		fmt.Fprintf(&b, "- Task: %s, Project: %s, Logged: %s, Description: %s\n",
			entry.TaskName, entry.ProjectName, entry.Logged, entry.Description)
	}
	b.WriteString("\nBest regards,\nTime Logger System\n")
	return b.String()
}

func (s *emailServiceImpl) send(to, subject, textBody, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	boundary := "timelogger-alt"
	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	headers += "\r\n"

	body := fmt.Sprintf("--%s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n", boundary, textBody)
	body += fmt.Sprintf("--%s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n", boundary, htmlBody)
	body += fmt.Sprintf("--%s--\r\n", boundary)

	message := []byte(headers + body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
