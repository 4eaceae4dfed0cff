// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify delivers messages by email. Each message is sent over a
// fresh SMTP session that upgrades with STARTTLS and authenticates with the
// strongest AUTH mechanism the server advertises.
package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// DefaultPort is the SMTP submission port used when none is configured.
const DefaultPort = 587

// ErrIncompleteConfig is returned when a required mail setting is missing.
// Nothing is dialled in that case.
var ErrIncompleteConfig = errors.New("incomplete mail configuration")

// Dialer opens an SMTP session and sends msg.
type Dialer interface {
	DialAndSend(ctx context.Context, cfg types.MailConfig, msg *mail.Msg) error
}

// SMTPDialer is the production Dialer backed by go-mail.
type SMTPDialer struct {
	// TLSConfig replaces go-mail's STARTTLS configuration when set.
	TLSConfig *tls.Config
}

// DialAndSend implements Dialer.
func (d SMTPDialer) DialAndSend(ctx context.Context, cfg types.MailConfig, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthAutoDiscover),
		mail.WithUsername(cfg.Sender),
		mail.WithPassword(cfg.Password),
	}
	if d.TLSConfig != nil {
		opts = append(opts, mail.WithTLSConfig(d.TLSConfig))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// Notifier sends Messages with the configured SMTP account.
type Notifier struct {
	Config types.MailConfig
	Dialer Dialer
}

// New returns a Notifier that sends through SMTPDialer.
func New(cfg types.MailConfig) *Notifier {
	return &Notifier{Config: cfg, Dialer: SMTPDialer{}}
}

// Validate reports ErrIncompleteConfig naming every missing setting needed
// to send to recipient.
func (n *Notifier) Validate(recipient string) error {
	var missing []string
	if n.Config.Host == "" {
		missing = append(missing, "host")
	}
	if n.Config.Port <= 0 {
		missing = append(missing, "port")
	}
	if n.Config.Sender == "" {
		missing = append(missing, "sender")
	}
	if n.Config.Password == "" {
		missing = append(missing, "password")
	}
	if recipient == "" {
		missing = append(missing, "recipient")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteConfig, strings.Join(missing, ", "))
	}
	return nil
}

// Notify sends m. Errors are written to w and returned; the caller decides
// whether to continue.
func (n *Notifier) Notify(ctx context.Context, m types.Message, w io.Writer) error {
	if err := n.Validate(m.To); err != nil {
		fmt.Fprintf(w, "failed:  mail to %q (%v)\n", m.To, err)
		return err
	}

	msg, err := n.Build(m, w)
	if err != nil {
		fmt.Fprintf(w, "failed:  mail to %s (%v)\n", m.To, err)
		return err
	}

	dialer := n.Dialer
	if dialer == nil {
		dialer = SMTPDialer{}
	}
	if err := dialer.DialAndSend(ctx, n.Config, msg); err != nil {
		err = fmt.Errorf("sending mail to %s via %s:%d: %w", m.To, n.Config.Host, n.Config.Port, err)
		fmt.Fprintf(w, "failed:  %v\n", err)
		return err
	}

	fmt.Fprintf(w, "sent:    %q to %s\n", m.Subject, m.To)
	return nil
}

// Build assembles the MIME message for m. With an attachment the message is
// multipart/mixed; without one it is a single text/plain part. A set but
// missing attachment is reported to w and left out.
func (n *Notifier) Build(m types.Message, w io.Writer) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.Config.Sender); err != nil {
		return nil, fmt.Errorf("setting sender %q: %w", n.Config.Sender, err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("setting recipient %q: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Body)

	if m.AttachmentPath != "" {
		if _, err := os.Stat(m.AttachmentPath); err != nil {
			fmt.Fprintf(w, "warning: attachment %s not found, sending without it\n", m.AttachmentPath)
		} else {
			msg.AttachFile(m.AttachmentPath, mail.WithFileName(filepath.Base(m.AttachmentPath)))
		}
	}
	return msg, nil
}
