package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mashkanta-plus/leads-api/internal/leads"
	"github.com/mashkanta-plus/leads-api/pkg/logging"
)

type recordingSender struct {
	msgs []EmailMessage
	err  error
}

func (r *recordingSender) Send(ctx context.Context, msg EmailMessage) error {
	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, msg)
	return nil
}

func sampleLead() *leads.Lead {
	return &leads.Lead{
		ID:           "lead-1",
		FullName:     "דנה לוי",
		Phone:        "0501234567",
		Email:        "dana@example.com",
		MortgageType: leads.MortgageNew,
		Source:       "website",
		UTMCampaign:  "spring",
		IPAddress:    "203.0.113.7",
		CreatedAt:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestNotifyNewLead(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, "owner@mashkanta.plus", "יעל", logging.Default())

	if err := svc.NotifyNewLead(context.Background(), sampleLead()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.msgs) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.msgs))
	}

	msg := sender.msgs[0]
	if msg.To != "owner@mashkanta.plus" {
		t.Errorf("unexpected recipient: %s", msg.To)
	}
	if !strings.Contains(msg.Subject, "דנה לוי") {
		t.Errorf("subject missing lead name: %s", msg.Subject)
	}
	if !strings.Contains(msg.Body, "0501234567") {
		t.Errorf("body missing phone: %s", msg.Body)
	}
	if !strings.Contains(msg.HTML, leads.MortgageNew.Label()) {
		t.Errorf("html missing mortgage label: %s", msg.HTML)
	}
}

func TestNotifyNewLeadEscapesHTML(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, "owner@mashkanta.plus", "", logging.Default())

	lead := sampleLead()
	lead.FullName = `Dana <script>alert("x")</script>`
	lead.UTMCampaign = `<img onerror='x'>`

	if err := svc.NotifyNewLead(context.Background(), lead); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := sender.msgs[0].HTML
	if strings.Contains(html, "<script>") || strings.Contains(html, "<img") {
		t.Errorf("unescaped markup in html body: %s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("expected escaped script tag, got: %s", html)
	}
}

func TestNotifyNewLeadUnconfigured(t *testing.T) {
	svc := NewService(nil, "", "", logging.Default())
	if err := svc.NotifyNewLead(context.Background(), sampleLead()); err != nil {
		t.Fatalf("unconfigured service must be a no-op, got %v", err)
	}
}

func TestNotifyNewLeadSendFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := NewService(sender, "owner@mashkanta.plus", "", logging.Default())

	err := svc.NotifyNewLead(context.Background(), sampleLead())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "notify:") {
		t.Errorf("error not wrapped at package boundary: %v", err)
	}
}
