package mailer

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"gopkg.in/mail.v2"
)

//go:embed "templates"
var templateFS embed.FS

// Mailer holds a mail.Dialer connected to an SMTP server and the sender
// address, such as "Bookswap <no-reply@bookswap.local>".
type Mailer struct {
	dialer *mail.Dialer
	sender string
}

// New returns a Mailer for the given SMTP server with a 5-second dial timeout.
func New(host string, port int, username, password, sender string) Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second
	return Mailer{
		dialer: dialer,
		sender: sender,
	}
}

type message struct {
	subject   string
	plainBody string
	htmlBody  string
}

// render executes the "subject", "plainBody" and "htmlBody" templates
// defined in templateFile.
func render(templateFile string, data any) (*message, error) {
	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}
	var subject, plainBody, htmlBody bytes.Buffer
	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return nil, err
	}
	if err := tmpl.ExecuteTemplate(&plainBody, "plainBody", data); err != nil {
		return nil, err
	}
	if err := tmpl.ExecuteTemplate(&htmlBody, "htmlBody", data); err != nil {
		return nil, err
	}
	return &message{
		subject:   subject.String(),
		plainBody: plainBody.String(),
		htmlBody:  htmlBody.String(),
	}, nil
}

// Send renders templateFile with data and delivers it to recipient,
// retrying up to three times.
func (m Mailer) Send(recipient, templateFile string, data any) error {
	rendered, err := render(templateFile, data)
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", rendered.subject)
	msg.SetBody("text/plain", rendered.plainBody)
	msg.AddAlternative("text/html", rendered.htmlBody)
	for i := 1; i <= 3; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
		time.Sleep(time.Second)
	}
	return err
}
