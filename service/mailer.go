package service

import (
	"fmt"
	"net/url"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// SMTPMailer sends the magic-link email through the SMTP relay configured
// under mail.* in the config.
type SMTPMailer struct{}

// SendLoginLink mails the one-time pair as a clickable link. The link lands
// on the login_link endpoint which consumes the pair.
func (SMTPMailer) SendLoginLink(email, token, seriesID string) error {
	from := viper.GetString("mail.sender_address")

	var scheme string
	if viper.GetBool("host.ssl.enabled") {
		scheme = "https"
	} else {
		scheme = "http"
	}

	q := url.Values{}
	q.Set("email", email)
	q.Set("token1", token)
	q.Set("token2", seriesID)

	link := fmt.Sprintf("%s://%s/api/users/login_link?%s",
		scheme, viper.GetString("host.domain"), q.Encode())

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your magic link to sign in")
	m.SetBody("text/html", fmt.Sprintf(
		"Click <a href='%s'>here</a> to sign in.<br/><br/>The link works once. If you didn't request it you can ignore this email.", link))

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		from,
		viper.GetString("mail.password"),
	)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send magic link mail, %w", err)
	}

	return nil
}
