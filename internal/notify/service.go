package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mashkanta-plus/leads-api/internal/leads"
	"github.com/mashkanta-plus/leads-api/pkg/logging"
)

// Service formats and sends the owner alert for a stored lead. The pipeline
// treats it as non-critical: failures are logged and swallowed, never
// surfaced to the visitor.
type Service struct {
	email      EmailSender
	ownerEmail string
	ownerName  string
	logger     *logging.Logger
}

// NewService creates a notification service.
func NewService(email EmailSender, ownerEmail, ownerName string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:      email,
		ownerEmail: ownerEmail,
		ownerName:  ownerName,
		logger:     logger,
	}
}

// NotifyNewLead sends the owner a new-lead alert. Returns an error for the
// dispatcher's logging only; callers must not propagate it to the client.
func (s *Service) NotifyNewLead(ctx context.Context, lead *leads.Lead) error {
	if s.email == nil || s.ownerEmail == "" {
		s.logger.Debug("notify: email sender not configured, skipping lead alert")
		return nil
	}

	msg := EmailMessage{
		To:      s.ownerEmail,
		ToName:  s.ownerName,
		Subject: fmt.Sprintf("ליד חדש מהאתר: %s", lead.FullName),
		Body:    leadAlertText(lead),
		HTML:    leadAlertHTML(lead),
	}

	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: lead alert failed: %w", err)
	}
	return nil
}

func leadAlertText(lead *leads.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ליד חדש התקבל באתר\n\n")
	fmt.Fprintf(&b, "שם: %s\n", lead.FullName)
	fmt.Fprintf(&b, "טלפון: %s\n", lead.Phone)
	if lead.Email != "" {
		fmt.Fprintf(&b, "אימייל: %s\n", lead.Email)
	}
	fmt.Fprintf(&b, "סוג משכנתא: %s\n", lead.MortgageType.Label())
	fmt.Fprintf(&b, "מקור: %s\n", lead.Source)
	if lead.UTMCampaign != "" {
		fmt.Fprintf(&b, "קמפיין: %s\n", lead.UTMCampaign)
	}
	fmt.Fprintf(&b, "התקבל: %s\n", lead.CreatedAt.Format(time.RFC3339))
	return b.String()
}

// leadAlertHTML renders the alert body. Every user-controlled value passes
// through SanitizeForHTML immediately before interpolation; no logic runs on
// a value after it is escaped.
func leadAlertHTML(lead *leads.Lead) string {
	var b strings.Builder
	b.WriteString(`<div dir="rtl">`)
	b.WriteString("<h2>ליד חדש התקבל באתר</h2><table>")
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "<tr><td><b>%s</b></td><td>%s</td></tr>", label, leads.SanitizeForHTML(value))
	}
	row("שם", lead.FullName)
	row("טלפון", lead.Phone)
	row("אימייל", lead.Email)
	row("סוג משכנתא", lead.MortgageType.Label())
	row("מקור", lead.Source)
	row("קמפיין", lead.UTMCampaign)
	row("כתובת IP", lead.IPAddress)
	row("התקבל", lead.CreatedAt.Format(time.RFC3339))
	b.WriteString("</table></div>")
	return b.String()
}
