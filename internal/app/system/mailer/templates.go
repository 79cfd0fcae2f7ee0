// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ConfirmEmailData holds data for the signup confirmation email.
type ConfirmEmailData struct {
	SiteName   string
	FullName   string
	ConfirmURL string
	ExpiresIn  string // e.g., "10 minutes"
}

// BuildConfirmEmail creates the signup confirmation email with both HTML
// and text bodies. The caller sets To.
func BuildConfirmEmail(data ConfirmEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Confirm your %s account", data.SiteName),
		TextBody: buildConfirmText(data),
		HTMLBody: buildConfirmHTML(data),
	}
}

func buildConfirmText(data ConfirmEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hi %s,\n\n", data.FullName)
	fmt.Fprintf(&buf, "Confirm your %s account by opening this link:\n\n", data.SiteName)
	buf.WriteString(data.ConfirmURL + "\n\n")
	fmt.Fprintf(&buf, "This link expires in %s.\n\n", data.ExpiresIn)
	buf.WriteString("If you did not create this account, you can safely ignore this email.\n")
	return buf.String()
}

func buildConfirmHTML(data ConfirmEmailData) string {
	tmpl := template.Must(template.New("confirm").Parse(confirmHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const confirmHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Confirm your account</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                Hi {{.FullName}}, welcome aboard. Confirm your email address to activate your account:
              </p>
              <div style="text-align: center; margin-bottom: 24px;">
                <a href="{{.ConfirmURL}}" style="display: inline-block; background-color: #4f46e5; color: #ffffff; padding: 12px 32px; border-radius: 8px; text-decoration: none; font-size: 16px; font-weight: 600;">Confirm email</a>
              </div>
              <p style="margin: 0; font-size: 14px; color: #6b7280;">
                This link expires in {{.ExpiresIn}}. If you did not create this account, you can safely ignore this email.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
