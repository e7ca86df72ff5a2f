package service

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/mahfuzul873/m873/internal/config"
	appErr "github.com/mahfuzul873/m873/internal/pkg/errors"
)

type EmailSender interface {
	Send(to, subject, htmlBody, textBody string) error
}

type smtpSender struct {
	cfg config.MailConfig
}

func NewEmailSender(cfg config.MailConfig) EmailSender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(to, subject, htmlBody, textBody string) error {
	from := strings.TrimSpace(s.cfg.From)
	if s.cfg.Host == "" || s.cfg.Port == 0 || from == "" {
		return appErr.ErrInvalid
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}
	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return dialer.DialAndSend(msg)
}

func otpMailSubject() string {
	return "M873 Owner Login - Your Verification Code"
}

func otpMailText(code string, ttlMinutes int) string {
	return fmt.Sprintf(`M873 Owner Access - Verification Code

Your one-time password for owner login is: %s

This code expires in %d minutes and can only be used once.

If you didn't request this code, please ignore this email.

This is an automated security message from M873.
`, code, ttlMinutes)
}

func otpMailHTML(code string, ttlMinutes int) string {
	return fmt.Sprintf(`<html><body>
<h2>M873 Owner Login</h2>
<p>Your one-time password (OTP) for owner login is:</p>
<p style="font-size:32px;font-weight:700;letter-spacing:4px;font-family:monospace">%s</p>
<p><strong>Important:</strong> this code expires in %d minutes and can only be used once.</p>
<p>If you didn't request this code, please ignore this email. No changes will be made to your account.</p>
</body></html>`, code, ttlMinutes)
}
