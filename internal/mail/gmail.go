package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ward28/wardbot/internal/interaction"
)

const (
	gmailHost = "smtp.gmail.com"
	gmailPort = 587
)

// GmailSender delivers notifications through Gmail SMTP, authenticating with
// XOAUTH2 access tokens minted from a long-lived refresh token.
type GmailSender struct {
	client *gomail.Client
	tokens oauth2.TokenSource
	from   string
}

// Compile-time interface check.
var _ interaction.NotificationSender = (*GmailSender)(nil) //nolint:gochecknoglobals // compile-time check

// NewGmailSender creates a sender for the given Gmail account. clientID,
// clientSecret and refreshToken come from the account's OAuth consent.
func NewGmailSender(from, clientID, clientSecret, refreshToken string) (*GmailSender, error) {
	client, err := gomail.NewClient(gmailHost,
		gomail.WithPort(gmailPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthXOAUTH2),
		gomail.WithUsername(from),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("mail.NewGmailSender: %w", err)
	}

	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
	}
	tokens := cfg.TokenSource(context.Background(), &oauth2.Token{RefreshToken: refreshToken})

	return &GmailSender{
		client: client,
		tokens: tokens,
		from:   from,
	}, nil
}

// Send delivers one notification. A fresh access token is fetched per send;
// the oauth2 token source caches and refreshes it as needed.
func (s *GmailSender) Send(ctx context.Context, n interaction.Notification) error {
	token, err := s.tokens.Token()
	if err != nil {
		return fmt.Errorf("mail.GmailSender.Send: access token: %w", err)
	}
	s.client.SetPassword(token.AccessToken)

	msg := gomail.NewMsg()
	if fromErr := msg.From(s.from); fromErr != nil {
		return fmt.Errorf("mail.GmailSender.Send: from: %w", fromErr)
	}
	if toErr := msg.To(n.Recipient); toErr != nil {
		return fmt.Errorf("mail.GmailSender.Send: to: %w", toErr)
	}
	msg.Subject(n.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, n.Body)

	if sendErr := s.client.DialAndSendWithContext(ctx, msg); sendErr != nil {
		return fmt.Errorf("mail.GmailSender.Send: %w", sendErr)
	}

	return nil
}
