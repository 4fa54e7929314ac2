package managers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/matcornic/hermes/v2"
	"github.com/sirupsen/logrus"
)

// MailMgr sends the transactional mails the user lifecycle needs.
type MailMgr interface {
	SendLicenseKeyMail(email, licenseKey string) error
	SendResetTokenMail(email, username, resetToken string) error
}

// MailManager renders mails with hermes and delivers them over Mailgun.
type MailManager struct {
	client *mailgun.MailgunImpl
	hermes *hermes.Hermes
	sender string
}

// NewMailManager configures the Mailgun client from MAILGUN_API_KEY.
func NewMailManager() MailMgr {
	domain := "cu2m.app"
	client := mailgun.NewMailgun(domain, os.Getenv("MAILGUN_API_KEY"))
	client.SetAPIBase(mailgun.APIBaseEU)

	h := &hermes.Hermes{
		Product: hermes.Product{
			Name:      "CU2M",
			Link:      "https://cu2m.app",
			Copyright: "Copyright © 2026 CU2M. All rights reserved.",
		},
	}

	logrus.Info("Initialized mail manager")
	return &MailManager{
		client: client,
		hermes: h,
		sender: fmt.Sprintf("CU2M <noreply@%s>", domain),
	}
}

// SendLicenseKeyMail mails a pre-created user the license key they need to
// complete signup.
func (mm *MailManager) SendLicenseKeyMail(email, licenseKey string) error {
	mail := hermes.Email{
		Body: hermes.Body{
			Greeting: "Hello",
			Intros: []string{
				"An account has been prepared for you on CU2M, the course planning platform.",
			},
			Dictionary: []hermes.Entry{
				{Key: "License key", Value: licenseKey},
			},
			Outros: []string{
				"Use this key together with this email address to finish your signup.",
				"If you did not expect this mail, you can safely ignore it.",
			},
		},
	}

	return mm.send(email, "Your CU2M license key", mail)
}

// SendResetTokenMail mails a password reset token. The token expires after
// ten minutes.
func (mm *MailManager) SendResetTokenMail(email, username, resetToken string) error {
	mail := hermes.Email{
		Body: hermes.Body{
			Name: username,
			Intros: []string{
				"A password reset was requested for your CU2M account.",
			},
			Dictionary: []hermes.Entry{
				{Key: "Reset token", Value: resetToken},
			},
			Outros: []string{
				"The token expires in 10 minutes.",
				"If you did not request a reset, you can safely ignore this mail.",
			},
		},
	}

	return mm.send(email, "Reset your CU2M password", mail)
}

func (mm *MailManager) send(recipient, subject string, mail hermes.Email) error {
	// Outside production we log instead of sending, so local stacks work
	// without Mailgun credentials.
	if os.Getenv("ENVIRONMENT") != "production" {
		logrus.WithFields(logrus.Fields{
			"recipient": recipient,
			"subject":   subject,
		}).Info("Skipping mail delivery outside production")
		return nil
	}

	html, err := mm.hermes.GenerateHTML(mail)
	if err != nil {
		return err
	}
	text, err := mm.hermes.GeneratePlainText(mail)
	if err != nil {
		return err
	}

	message := mm.client.NewMessage(mm.sender, subject, text, recipient)
	message.SetHtml(html)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, _, err := mm.client.Send(ctx, message); err != nil {
		logrus.WithError(err).Error("Failed to send mail")
		return err
	}

	return nil
}
