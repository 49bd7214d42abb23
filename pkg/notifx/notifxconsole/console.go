// Package notifxconsole logs emails instead of sending them.
package notifxconsole

import (
	"context"
	"strings"
	"sync"

	"github.com/riderota/core/pkg/logx"
	"github.com/riderota/core/pkg/notifx"
)

// ConsoleProvider keeps the messages it was asked to send, which makes it
// usable as a test double as well as a development provider.
type ConsoleProvider struct {
	mu   sync.Mutex
	sent []notifx.EmailMessage
}

func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{}
}

func (p *ConsoleProvider) SendEmail(ctx context.Context, msg notifx.EmailMessage, _ ...notifx.Option) error {
	p.mu.Lock()
	p.sent = append(p.sent, msg)
	p.mu.Unlock()

	logx.WithContext(ctx).WithFields(logx.Fields{
		"from":    msg.From,
		"to":      strings.Join(msg.To, ", "),
		"subject": msg.Subject,
	}).Info("notifx/console: email")
	if msg.HTMLBody != "" {
		logx.Debugf("notifx/console: body:\n%s", msg.HTMLBody)
	}
	return nil
}

// Sent returns a copy of every message seen so far.
func (p *ConsoleProvider) Sent() []notifx.EmailMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notifx.EmailMessage(nil), p.sent...)
}
