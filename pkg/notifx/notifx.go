// Package notifx sends transactional email through a pluggable provider.
package notifx

import (
	"context"
	"strings"
)

type EmailMessage struct {
	From     string   `json:"from"`
	To       []string `json:"to"`
	ReplyTo  string   `json:"reply_to,omitempty"`
	Subject  string   `json:"subject"`
	TextBody string   `json:"text_body,omitempty"`
	HTMLBody string   `json:"html_body,omitempty"`
}

// SendOptions carries provider specific metadata.
type SendOptions struct {
	Tags     map[string]string
	ConfigID string
}

type Option func(*SendOptions)

func WithTags(tags map[string]string) Option {
	return func(o *SendOptions) { o.Tags = tags }
}

// WithConfigID names an SES configuration set.
func WithConfigID(id string) Option {
	return func(o *SendOptions) { o.ConfigID = id }
}

// ApplyOptions folds opts into a SendOptions value.
func ApplyOptions(opts []Option) SendOptions {
	var so SendOptions
	for _, o := range opts {
		o(&so)
	}
	return so
}

// EmailSender is implemented by every provider.
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) error
}

// Client validates messages, fills in the sender and renders templates.
type Client struct {
	provider  EmailSender
	templates *TemplateRegistry
	from      string
}

// NewClient uses from for messages that do not set one.
func NewClient(provider EmailSender, from string) *Client {
	return &Client{
		provider:  provider,
		templates: NewTemplateRegistry(),
		from:      from,
	}
}

func (c *Client) SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) error {
	if len(msg.To) == 0 {
		return ErrRegistry.New(CodeInvalidMessage).WithDetail("reason", "no recipients")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return ErrRegistry.New(CodeInvalidMessage).WithDetail("reason", "empty subject")
	}
	if msg.From == "" {
		msg.From = c.from
	}
	return c.provider.SendEmail(ctx, msg, opts...)
}

func (c *Client) RegisterTemplate(name, subject, html string) error {
	return c.templates.Register(name, subject, html)
}

// SendTemplatedEmail renders the named template's subject and HTML body
// with data and sends them to msg.To.
func (c *Client) SendTemplatedEmail(ctx context.Context, name string, data any, msg EmailMessage, opts ...Option) error {
	subject, body, err := c.templates.Render(name, data)
	if err != nil {
		return err
	}
	msg.Subject = subject
	msg.HTMLBody = body
	return c.SendEmail(ctx, msg, opts...)
}
