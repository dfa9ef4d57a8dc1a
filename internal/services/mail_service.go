// services/mail_service.go
package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
)

type IMailService interface {
	SendLeadAccessLink(to, leadName, eventName, accessURL string) error
	SendPaymentReceipt(to, leadName, eventName, membershipName string, amountMinor int64, currency string) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host     string // e.g. "smtp.gmail.com"
	Port     int    // 587 (STARTTLS) or 465 (SMTPS)
	Username string
	Password string
	From     string // e.g. "no-reply@yourapp.com"
	FromName string
	UseSSL   bool // true for SMTPS 465, false for STARTTLS 587

	AppName    string
	AppBaseURL string
}

type smtpMailService struct {
	cfg     SMTPConfig
	bodyTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	bodyTpl := template.Must(template.New("mailBody").Parse(mailBodyTemplate))

	return &smtpMailService{
		cfg:     cfg,
		bodyTpl: bodyTpl,
	}, nil
}

type mailData struct {
	AppName  string
	Greeting string
	Lines    []string
	CTAText  string
	CTAURL   string
}

func (s *smtpMailService) SendLeadAccessLink(to, leadName, eventName, accessURL string) error {
	subject := fmt.Sprintf("You're registered for %s", eventName)
	return s.send(to, subject, mailData{
		AppName:  s.cfg.AppName,
		Greeting: fmt.Sprintf("Hi %s,", leadName),
		Lines: []string{
			fmt.Sprintf("You're registered for %s.", eventName),
			"Keep this link, it's your personal access to the event.",
		},
		CTAText: "Open event",
		CTAURL:  accessURL,
	})
}

func (s *smtpMailService) SendPaymentReceipt(to, leadName, eventName, membershipName string, amountMinor int64, currency string) error {
	subject := fmt.Sprintf("Receipt for %s", eventName)
	return s.send(to, subject, mailData{
		AppName:  s.cfg.AppName,
		Greeting: fmt.Sprintf("Hi %s,", leadName),
		Lines: []string{
			fmt.Sprintf("Your payment for %s (%s) went through.", eventName, membershipName),
			fmt.Sprintf("Amount: %d.%02d %s", amountMinor/100, amountMinor%100, strings.ToUpper(currency)),
			"Your access is now active.",
		},
		CTAText: "Go to your events",
		CTAURL:  s.cfg.AppBaseURL,
	})
}

func (s *smtpMailService) send(to, subject string, data mailData) error {
	var body bytes.Buffer
	if err := s.bodyTpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render mail: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.Write(body.Bytes())

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		return s.sendSMTPS(addr, auth, to, msg.Bytes())
	}
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg.Bytes())
}

func (s *smtpMailService) sendSMTPS(addr string, auth smtp.Auth, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.cfg.Host})
	if err != nil {
		return err
	}
	defer conn.Close()

	host, _, _ := net.SplitHostPort(addr)
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

const mailBodyTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>{{.AppName}}</h2>
  <p>{{.Greeting}}</p>
  {{range .Lines}}<p>{{.}}</p>{{end}}
  {{if .CTAURL}}<p><a href="{{.CTAURL}}" style="background:#2b6cb0;color:#fff;padding:10px 18px;text-decoration:none;border-radius:4px;">{{.CTAText}}</a></p>{{end}}
  <hr/>
  <p style="font-size:12px;color:#888;">{{.AppName}}</p>
</body>
</html>`
