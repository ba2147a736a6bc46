// Package mailer delivers the Orion purchase confirmation through an
// authenticated SMTP relay.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/mail"
	"net/smtp"

	"orion_service/internal/clock"
	"orion_service/internal/logger"
)

//go:embed templates/confirmation.html
var templates embed.FS

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Options struct {
	Addr        string
	Username    string
	Password    string
	FromName    string
	FromAddress string
	Subject     string
}

type Option func(*Client)

func WithClock(c clock.Clock) Option {
	return func(client *Client) {
		client.clock = c
	}
}

func WithSendFunc(fn SendFunc) Option {
	return func(client *Client) {
		client.send = fn
	}
}

type Client struct {
	addr    string
	auth    smtp.Auth
	from    mail.Address
	subject string
	tmpl    *template.Template
	clock   clock.Clock
	send    SendFunc
}

type confirmationData struct {
	FullName string
	Contact  string
	Year     int
}

func New(opts Options, optFns ...Option) (*Client, error) {
	tmpl, err := template.ParseFS(templates, "templates/confirmation.html")
	if err != nil {
		return nil, fmt.Errorf("parse email template: %w", err)
	}
	c := &Client{
		addr:    opts.Addr,
		auth:    LoginAuth(opts.Username, opts.Password),
		from:    mail.Address{Name: opts.FromName, Address: opts.FromAddress},
		subject: opts.Subject,
		tmpl:    tmpl,
		clock:   clock.RealClock{},
		send:    smtp.SendMail,
	}
	for _, fn := range optFns {
		fn(c)
	}
	return c, nil
}

// Render executes the confirmation template for fullName.
func (c *Client) Render(fullName string) (string, error) {
	body := new(bytes.Buffer)
	err := c.tmpl.Execute(body, confirmationData{
		FullName: fullName,
		Contact:  c.from.Address,
		Year:     c.clock.Now().Year(),
	})
	if err != nil {
		return "", fmt.Errorf("execute email template: %w", err)
	}
	return body.String(), nil
}

// SendConfirmationEmail sends one confirmation message to recipient. The
// address is handed to the relay as-is. Failures are logged here, so callers
// that treat delivery as best-effort may drop the returned error.
func (c *Client) SendConfirmationEmail(ctx context.Context, recipient, fullName string) error {
	err := c.sendConfirmation(ctx, recipient, fullName)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("recipient", recipient).Msg("Error sending email")
		return err
	}
	logger.FromContext(ctx).Info().Str("recipient", recipient).Msg("Email sent successfully")
	return nil
}

func (c *Client) sendConfirmation(ctx context.Context, recipient, fullName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := c.Render(fullName)
	if err != nil {
		return err
	}
	msg, err := buildMessage(Email{
		From:       c.from,
		Recipients: []string{recipient},
		Subject:    c.subject,
		Body:       body,
		Date:       c.clock.Now(),
	})
	if err != nil {
		return err
	}
	if err := c.send(c.addr, c.auth, c.from.Address, []string{recipient}, msg); err != nil {
		return fmt.Errorf("send mail via %s: %w", c.addr, err)
	}
	return nil
}
