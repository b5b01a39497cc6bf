package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/maisonsia/bd-crm/internal/entity"
)

func NewSender(cfg Config) *Sender {
	return &Sender{cfg: cfg}
}

// Send delivers one HTML email over SMTP.
func (s *Sender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.SenderMail, s.cfg.SenderName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}

	return nil
}

// SendFollowUp renders the reminder for one category and sends it to the
// lead's BD. Satisfies the scan's notifier contract.
func (s *Sender) SendFollowUp(lead *entity.Lead, category entity.FollowUpCategory) error {
	subject, body, err := RenderFollowUp(category, FollowUpData{
		LeadID:        lead.LeadID,
		BDName:        lead.BDName,
		ClientName:    lead.ClientName,
		ArchitectName: lead.ArchitectName,
		FirmName:      lead.FirmName,
		ClientMobile:  lead.ClientMobile,
	})
	if err != nil {
		return err
	}
	return s.Send(lead.BDEmail, subject, body)
}
