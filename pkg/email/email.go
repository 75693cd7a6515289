package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// QuoteEmailItem is one line of the quote summary table
type QuoteEmailItem struct {
	ServiceName string
	Description string
	Quantity    int
	UnitPrice   string
	SubTotal    string
}

// QuoteEmailData carries everything the quote summary template needs
type QuoteEmailData struct {
	QuoteID    string
	ClientName string
	Status     string
	CreatedAt  string
	Items      []QuoteEmailItem
	Total      string
	Message    string
	AppName    string
}

// SendQuoteEmail sends the quote summary to each recipient
func (s *EmailService) SendQuoteEmail(recipients []string, data QuoteEmailData) error {
	if data.AppName == "" {
		data.AppName = "Quotify"
	}

	htmlContent, err := s.renderQuoteEmail(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Quote #%s - %s", data.QuoteID, data.AppName)
	message := s.buildHTMLEmail(strings.Join(recipients, ", "), subject, htmlContent)

	return s.sendEmail(recipients, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to []string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, to, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderQuoteEmail renders the quote summary email template
func (s *EmailService) renderQuoteEmail(data QuoteEmailData) (string, error) {
	tmpl, err := template.New("quote_summary").Parse(quoteSummaryTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// quoteSummaryTemplate is the HTML template for quote summary emails
const quoteSummaryTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Quote #{{.QuoteID}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 640px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <tr>
                        <td style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.AppName}}</h1>
                        </td>
                    </tr>

                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 24px; font-weight: 600;">Quote #{{.QuoteID}}</h2>

                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 10px 0;">
                                <strong>Client:</strong> {{.ClientName}}
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 10px 0;">
                                <strong>Status:</strong> {{.Status}}
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                <strong>Date:</strong> {{.CreatedAt}}
                            </p>

                            {{if .Message}}
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">{{.Message}}</p>
                            {{end}}

                            <table role="presentation" style="width: 100%; border-collapse: collapse; margin: 0 0 20px 0;">
                                <tr>
                                    <th style="border: 1px solid #e2e8f0; background: #f8fafc; padding: 10px; text-align: left; color: #1a1a2e;">Service</th>
                                    <th style="border: 1px solid #e2e8f0; background: #f8fafc; padding: 10px; text-align: left; color: #1a1a2e;">Description</th>
                                    <th style="border: 1px solid #e2e8f0; background: #f8fafc; padding: 10px; text-align: right; color: #1a1a2e;">Qty</th>
                                    <th style="border: 1px solid #e2e8f0; background: #f8fafc; padding: 10px; text-align: right; color: #1a1a2e;">Unit Price</th>
                                    <th style="border: 1px solid #e2e8f0; background: #f8fafc; padding: 10px; text-align: right; color: #1a1a2e;">Subtotal</th>
                                </tr>
                                {{range .Items}}
                                <tr>
                                    <td style="border: 1px solid #e2e8f0; padding: 10px; color: #4a5568;">{{.ServiceName}}</td>
                                    <td style="border: 1px solid #e2e8f0; padding: 10px; color: #4a5568;">{{.Description}}</td>
                                    <td style="border: 1px solid #e2e8f0; padding: 10px; text-align: right; color: #4a5568;">{{.Quantity}}</td>
                                    <td style="border: 1px solid #e2e8f0; padding: 10px; text-align: right; color: #4a5568;">{{.UnitPrice}}</td>
                                    <td style="border: 1px solid #e2e8f0; padding: 10px; text-align: right; color: #4a5568;">{{.SubTotal}}</td>
                                </tr>
                                {{end}}
                            </table>

                            <p style="color: #1a1a2e; font-size: 18px; font-weight: 600; text-align: right; margin: 0;">
                                Total: {{.Total}}
                            </p>
                        </td>
                    </tr>

                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0 0 10px 0;">
                                This email was sent by {{.AppName}}
                            </p>
                            <p style="color: #cbd5e0; font-size: 12px; margin: 0;">
                                © 2026 {{.AppName}}. All rights reserved.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
