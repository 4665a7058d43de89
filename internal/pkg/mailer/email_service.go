package mailer

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/vinixspb/vnxChooseApple-bot/internal/entity"
)

type IEmailService interface {
	SendLeadNotification(toEmail string, lead *entity.Lead) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendLeadNotification mails the completed selection to the manager so
// they can follow up with the customer.
func (s *emailService) SendLeadNotification(toEmail string, lead *entity.Lead) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s", lead.Source))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New storefront lead</h2>
			<p><b>Source:</b> %s</p>
			<ul>%s</ul>
			<p><b>Price:</b> %s<br><b>Availability:</b> %s</p>
			<hr>
			<p>Customer: <b>%s</b> (@%s, id %s)</p>
		</div>
	`, lead.Source, selectionRows(lead), lead.Price, lead.Availability,
		lead.FullName, lead.Username, lead.ChatUserId)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send lead notification to %s: %w", toEmail, err)
	}
	return nil
}

func selectionRows(lead *entity.Lead) string {
	keys := make([]string, 0, len(lead.Selection))
	for k := range lead.Selection {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "<li><b>%s:</b> %v</li>", k, lead.Selection[k])
	}
	return b.String()
}
