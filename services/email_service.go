// File: /services/email_service.go
package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"dealertrack-api/config"
	"dealertrack-api/models"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
	log    *zap.SugaredLogger
}

func NewEmailService(cfg *config.Config, log *zap.SugaredLogger) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
		log:    log,
	}
}

// Enabled reports whether outgoing mail is configured. With no SMTP host the
// service stays silent and delivery notices are skipped.
func (es *EmailService) Enabled() bool {
	return es.config.SMTPHost != ""
}

// SendSaleConfirmation mails the branch mailbox when a match reaches
// DELIVERED. Failures are logged by the caller and never fail the request.
func (es *EmailService) SendSaleConfirmation(match *models.Match, car *models.Car) error {
	if !es.Enabled() {
		return nil
	}

	saleDate := ""
	if match.SaleDate != nil {
		saleDate = match.SaleDate.Format("2006-01-02")
	}

	body := fmt.Sprintf(`
		<h2>Vehicle Delivered</h2>
		<p><strong>Model:</strong> %s</p>
		<p><strong>VIN:</strong> %s</p>
		<p><strong>Customer:</strong> %s</p>
		<p><strong>Salesperson:</strong> %s</p>
		<p><strong>Sale date:</strong> %s</p>
		<p>Recorded at %s.</p>
	`, car.Model, car.VIN, match.CustomerName, match.SalespersonName, saleDate,
		time.Now().Format("2006-01-02 15:04"))

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", es.config.FromEmail)
	m.SetHeader("Subject", fmt.Sprintf("Sold: %s (%s)", car.Model, car.VIN))
	m.SetBody("text/html", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send sale confirmation: %w", err)
	}

	es.log.Infow("sale confirmation sent", "vin", car.VIN, "customer", match.CustomerName)
	return nil
}
