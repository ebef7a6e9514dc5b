package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"visitor-pass-console/internal/model"
)

// Notifier announces console events.
type Notifier interface {
	VisitorRegistered(ctx context.Context, v model.Visitor)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) VisitorRegistered(context.Context, model.Visitor) {}

var visitorTemplate = template.Must(template.New("visitor_registered").Parse(`<html>
<body>
<h2>Visitor awaiting approval</h2>
<table>
<tr><th>Name</th><td>{{.FullName}}</td></tr>
<tr><th>Card</th><td>{{.CardNumber}}</td></tr>
<tr><th>Destination</th><td>{{.Destination}}</td></tr>
<tr><th>Visit</th><td>{{.VisitDate}} {{.VisitTime}}</td></tr>
<tr><th>Purpose</th><td>{{.Purpose}}</td></tr>
</table>
</body>
</html>`))

// MailNotifier mails each event to a fixed address.
type MailNotifier struct {
	sender interface {
		Send(ctx context.Context, msg *Message) error
	}
	to     string
	logger *slog.Logger
}

// NewNotifier returns a MailNotifier, or a NopNotifier when mail is not configured.
func NewNotifier(cfg SMTPConfig) (Notifier, error) {
	if !cfg.Enabled() {
		return NopNotifier{}, nil
	}
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &MailNotifier{
		sender: client,
		to:     cfg.Notify,
		logger: slog.With("component", "email"),
	}, nil
}

func RenderVisitorRegistered(v model.Visitor) (*Message, error) {
	var buf bytes.Buffer
	if err := visitorTemplate.Execute(&buf, v); err != nil {
		return nil, err
	}
	return &Message{
		Subject: fmt.Sprintf("Visitor awaiting approval: %s", v.FullName),
		HTML:    buf.String(),
	}, nil
}

// VisitorRegistered sends the notice in the background. Failures are logged only.
func (n *MailNotifier) VisitorRegistered(ctx context.Context, v model.Visitor) {
	msg, err := RenderVisitorRegistered(v)
	if err != nil {
		n.logger.Error("Failed to render visitor notification", "error", err)
		return
	}
	msg.To = []string{n.to}

	go func() {
		if err := n.sender.Send(context.WithoutCancel(ctx), msg); err != nil {
			n.logger.Error("Failed to send visitor notification", "error", err, "visitor", v.ID)
			return
		}
		n.logger.Info("Sent visitor notification", "to", n.to, "visitor", v.ID)
	}()
}
