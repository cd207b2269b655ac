package relay

import (
	"bytes"
	"fmt"
	"html/template"
)

var emailTemplate = template.Must(template.New("contact-email").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #dc2626; border-bottom: 2px solid #dc2626; padding-bottom: 10px;">
    New Contact Form Submission
  </h2>
  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    <p><strong>Phone:</strong> <a href="tel:{{.Phone}}">{{.Phone}}</a></p>
  </div>
  <div style="background-color: #fff; padding: 20px; border-left: 4px solid #dc2626; margin: 20px 0;">
    <h3 style="color: #374151; margin-top: 0;">Message:</h3>
    <p style="line-height: 1.6; color: #4b5563;">{{.Message}}</p>
  </div>
  <div style="text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #e5e7eb;">
    <p style="color: #6b7280; font-size: 14px;">
      This email was sent from the Ayyavu Promoters website contact form.
    </p>
  </div>
</div>
`))

// Subject is the email subject for a submission.
func Subject(s Submission) string {
	return fmt.Sprintf("New Contact Form Submission from %s", s.Name)
}

// RenderHTML renders the notification body. Submitted values are escaped.
func RenderHTML(s Submission) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return buf.String(), nil
}

// RenderText is the plain-text alternative.
func RenderText(s Submission) string {
	return fmt.Sprintf("New Contact Form Submission\n\nName: %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s\n",
		s.Name, s.Email, s.Phone, s.Message)
}
