package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"visitor-pass-console/internal/model"
)

func TestNewNotifierDisabled(t *testing.T) {
	n, err := NewNotifier(SMTPConfig{Host: "smtp.example.com"})
	if err != nil {
		t.Fatalf("NewNotifier failed: %v", err)
	}
	if _, ok := n.(NopNotifier); !ok {
		t.Errorf("expected NopNotifier without a notify address, got %T", n)
	}
}

func TestRenderVisitorRegistered(t *testing.T) {
	msg, err := RenderVisitorRegistered(model.Visitor{FullName: "Ivanov <script>", CardNumber: "A-1", VisitDate: "2024-05-01", VisitTime: "10:00"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(msg.Subject, "Ivanov") {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Error("visitor fields must be escaped")
	}

	text, err := htmlToText(msg.HTML)
	if err != nil {
		t.Fatalf("htmlToText failed: %v", err)
	}
	if !strings.Contains(text, "A-1") || strings.Contains(text, "<td>") {
		t.Errorf("unexpected text alternative: %q", text)
	}
}

func TestBuildMessage(t *testing.T) {
	c, err := NewClient(SMTPConfig{Host: "localhost", Port: 25, From: "console@example.com"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	m, err := c.build(&Message{To: []string{"desk@example.com"}, Subject: "Hi", HTML: "<p>Hello</p>"})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if got := m.GetToString(); len(got) != 1 || got[0] != "<desk@example.com>" {
		t.Errorf("unexpected recipients %v", got)
	}

	if _, err := c.build(&Message{To: []string{"not an address"}, HTML: "<p></p>"}); err == nil {
		t.Error("expected invalid recipient to fail")
	}
}

type recordingSender struct {
	mu   sync.Mutex
	sent []*Message
	err  error
	done chan struct{}
}

func (r *recordingSender) Send(ctx context.Context, msg *Message) error {
	r.mu.Lock()
	r.sent = append(r.sent, msg)
	r.mu.Unlock()
	close(r.done)
	return r.err
}

func TestMailNotifierSendsToNotifyAddress(t *testing.T) {
	sender := &recordingSender{done: make(chan struct{}), err: errors.New("smtp down")}
	n := &MailNotifier{sender: sender, to: "desk@example.com", logger: testLogger()}

	n.VisitorRegistered(context.Background(), model.Visitor{ID: "1", FullName: "Ivanov"})

	select {
	case <-sender.done:
	case <-time.After(time.Second):
		t.Fatal("notification was not sent")
	}
	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.sent) != 1 || sender.sent[0].To[0] != "desk@example.com" {
		t.Errorf("unexpected messages %+v", sender.sent)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
