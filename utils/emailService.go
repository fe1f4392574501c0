package utils

import (
	"devcamper/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #263238; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #263238; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>DEVCAMPER</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">If you did not request this email you can safely ignore it.</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendResetPasswordEmail delivers the one-time reset link. The plaintext
// token only ever travels in this email and the API response.
func SendResetPasswordEmail(toEmail, name, resetURL string) error {
	from := mail.NewEmail(config.AppConfig.FromName, config.AppConfig.FromEmail)
	to := mail.NewEmail(name, toEmail)
	subject := "Password Reset Request"

	plain := fmt.Sprintf(
		"You are receiving this email because you (or someone else) requested a password reset. "+
			"Make a PUT request to:\n\n%s\n\nThe link expires in 10 minutes.", resetURL)

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are receiving this email because you (or someone else) requested a password reset.</p>
		<p>Make a <strong>PUT</strong> request to:</p>
		<p><a href="%s">%s</a></p>
		<p>The link expires in 10 minutes.</p>
	`, name, resetURL, resetURL)

	message := mail.NewSingleEmail(from, subject, to, plain, getEmailTemplate("Password Reset", body))

	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending reset email: %v", err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Reset email rejected with status %d: %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("email delivery failed with status %d", resp.StatusCode)
	}

	return nil
}
