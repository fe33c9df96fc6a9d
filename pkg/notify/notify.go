// Package notify delivers rendered reports to topic owners.
package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/topicwatch/pkg/config"
)

// SMTP sends reports as html emails
type SMTP struct {
	host     string
	port     int
	username string
	password string
	from     string
	timeout  time.Duration
	now      func() time.Time
}

// NewSMTP makes SMTP notifier from config, port defaults to 587
func NewSMTP(cfg config.SMTPConfig) *SMTP {
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	return &SMTP{host: cfg.Host, port: port, username: cfg.Username, password: cfg.Password, from: cfg.From,
		timeout: 30 * time.Second, now: time.Now}
}

// Send delivers the html report to a single recipient
func (s *SMTP) Send(ctx context.Context, to, subject, html string) error {
	if strings.TrimSpace(to) == "" {
		return errors.New("empty recipient")
	}
	msg, err := buildMessage(s.from, to, subject, html, s.now())
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(s.host, strconv.Itoa(s.port)))
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = s.now().Add(s.timeout)
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if s.username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}
	return client.Quit()
}

// buildMessage makes a quoted-printable html message with encoded subject
func buildMessage(from, to, subject, html string, date time.Time) ([]byte, error) {
	var buf bytes.Buffer
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"Date: " + date.Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"Content-Transfer-Encoding: quoted-printable",
	}
	buf.WriteString(strings.Join(headers, "\r\n"))
	buf.WriteString("\r\n\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(html)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Log only logs reports, used when no smtp host is configured
type Log struct{}

// Send logs the report subject and size
func (Log) Send(_ context.Context, to, subject, html string) error {
	lgr.Printf("[INFO] report %q for %s, %d bytes (delivery disabled)", subject, to, len(html))
	return nil
}
