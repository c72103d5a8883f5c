package services

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"sova/models"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/gomail.v2"
)

const thankYouSubject = "Thank You for Your Support! Together, We’re Empowering Lives with Sova"

var thankYouTemplate = template.Must(template.New("thank-you").Parse(`<p>Hello,</p>
<p>Thank you for showing interest in Sova's mission! Together, we aim to empower individuals and communities with self-care solutions that truly make a difference.</p>
<p>Thank you for your contribution to our mission by contributing to Sova and becoming a vital part of this transformative journey. Your support will directly help us make gloves more accessible to farmers, laborers, and anyone in need of protection.</p>
<p><strong>Title: {{.DonorTitle}}</strong></p>
<p>Every small contribution matters, and with your help, we will take this mission to greater heights. Thank you for being an essential part of this vision!</p>
<p>We will be delivering your rewards soon. Digital Certificate will be sent on your mobile till the end of the day.<br>
Rewards will be delivered to your doorstep.</p>
<p>Warm regards,<br>The Sova Team</p>`))

// MailDialer sends prepared messages. *gomail.Dialer satisfies it.
type MailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer composes campaign mail and hands it to SMTP.
type Mailer struct {
	dialer   MailDialer
	fromAddr string
	fromName string
}

func NewMailer(host string, port int, user, pass, fromName string) *Mailer {
	return &Mailer{
		dialer:   gomail.NewDialer(host, port, user, pass),
		fromAddr: user,
		fromName: fromName,
	}
}

// NewMailerWithDialer is used when the transport is provided by the caller.
func NewMailerWithDialer(dialer MailDialer, fromAddr, fromName string) *Mailer {
	return &Mailer{dialer: dialer, fromAddr: fromAddr, fromName: fromName}
}

// SendThankYou mails the donor with the certificate attached as post.png.
func (m *Mailer) SendThankYou(job NotificationJob, certificate []byte) error {
	var html bytes.Buffer
	if err := thankYouTemplate.Execute(&html, job); err != nil {
		return fmt.Errorf("render mail body: %w", err)
	}
	text, err := htmlToText(html.String())
	if err != nil {
		return fmt.Errorf("render plain-text body: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromAddr, m.fromName)
	msg.SetHeader("To", job.Email)
	msg.SetHeader("Subject", thankYouSubject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html.String())
	msg.Attach("post.png",
		gomail.SetHeader(map[string][]string{"Content-Type": {"image/png"}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(certificate)
			return err
		}),
	)

	return m.dialer.DialAndSend(msg)
}

// SendContact forwards a contact-form message to the campaign inbox.
func (m *Mailer) SendContact(req models.ContactRequest, inbox string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromAddr, m.fromName)
	msg.SetHeader("To", inbox)
	msg.SetAddressHeader("Reply-To", req.Email, req.Name)
	msg.SetHeader("Subject", "New Message from Contact Form")
	msg.SetBody("text/plain", fmt.Sprintf("You have a new message from %s (%s):\n\n%s", req.Name, req.Email, req.Message))
	return m.dialer.DialAndSend(msg)
}

// htmlToText flattens paragraph markup into plain text, one blank line
// between paragraphs.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("br").ReplaceWithHtml("\n")

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		var lines []string
		for _, line := range strings.Split(s.Text(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
		}
	})
	return strings.Join(paragraphs, "\n\n"), nil
}
