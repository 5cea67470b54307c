package services

import (
	"fmt"
	"log"
	"net/mail"
	"net/smtp"

	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/models"
)

// SendWelcomeEmail sends the onboarding mail to a newly signed up user.
// Delivery is best effort; a failure is logged, never surfaced to the caller.
func SendWelcomeEmail(smtpConfig config.SMTPConfig, user *models.PortalUser, associationName string) {
	subject := "Welcome to Socialite"
	body := fmt.Sprintf("Hello %s,\r\n\r\nYour association %s has been created and is pending activation.\r\nComplete the onboarding to start collecting dues.\r\n\r\nThe Socialite team",
		user.FirstName, associationName)

	message := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		smtpConfig.From, user.Email, subject, body))

	addr := fmt.Sprintf("%s:%d", smtpConfig.Host, smtpConfig.Port)
	auth := smtp.PlainAuth("", smtpConfig.Username, smtpConfig.Password, smtpConfig.Host)

	go func() {
		if err := smtp.SendMail(addr, auth, envelopeSender(smtpConfig.From), []string{user.Email}, message); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
		}
	}()
}

// envelopeSender strips the display name from a configured From value.
// SMTP's MAIL FROM takes a bare address; the display name only belongs in
// the message header.
func envelopeSender(from string) string {
	address, err := mail.ParseAddress(from)
	if err != nil {
		return from
	}
	return address.Address
}
