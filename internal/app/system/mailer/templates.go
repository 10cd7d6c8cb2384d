// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// LoginCodeData holds data for login code email templates.
type LoginCodeData struct {
	SiteName  string
	Code      string
	ExpiresIn string // e.g., "10 minutes"
}

// BuildLoginCodeEmail creates a login code email with HTML and text bodies.
func BuildLoginCodeEmail(data LoginCodeData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Your %s login code", data.SiteName),
		TextBody: buildLoginCodeText(data),
		HTMLBody: buildLoginCodeHTML(data),
	}
}

func buildLoginCodeText(data LoginCodeData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Your %s login code is: %s\n\n", data.SiteName, data.Code))
	buf.WriteString(fmt.Sprintf("This code expires in %s.\n\n", data.ExpiresIn))
	buf.WriteString("If you did not request this code, you can safely ignore this email.\n")
	return buf.String()
}

func buildLoginCodeHTML(data LoginCodeData) string {
	tmpl := template.Must(template.New("logincode").Parse(loginCodeHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const loginCodeHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Login Code</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
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
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151;">Your login code is:</p>
              <div style="background-color: #f3f4f6; border-radius: 8px; padding: 24px; text-align: center; margin-bottom: 24px;">
                <span style="font-size: 32px; font-weight: 700; letter-spacing: 8px; color: #1f2937; font-family: 'Courier New', monospace;">{{.Code}}</span>
              </div>
              <p style="margin: 0; font-size: 13px; color: #9ca3af; text-align: center;">This code expires in {{.ExpiresIn}}.</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                If you did not request this code, you can safely ignore this email.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

// GrantNoticeData holds data for the "shared with you" notification email.
type GrantNoticeData struct {
	SiteName     string
	OwnerName    string
	ResourceName string
	ResourceKind string // "space" or "content item"
	Permission   string // "read" or "read-write"
	OpenLink     string
}

// BuildGrantNoticeEmail creates the notification sent to a grantee when a
// resource is shared with them.
func BuildGrantNoticeEmail(data GrantNoticeData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("%s shared a %s with you on %s", data.OwnerName, data.ResourceKind, data.SiteName),
		TextBody: buildGrantNoticeText(data),
		HTMLBody: buildGrantNoticeHTML(data),
	}
}

func buildGrantNoticeText(data GrantNoticeData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%s shared the %s %q with you (%s access).\n\n",
		data.OwnerName, data.ResourceKind, data.ResourceName, data.Permission))
	buf.WriteString("Open it here:\n")
	buf.WriteString(data.OpenLink + "\n")
	return buf.String()
}

func buildGrantNoticeHTML(data GrantNoticeData) string {
	tmpl := template.Must(template.New("grantnotice").Parse(grantNoticeHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const grantNoticeHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Shared with you</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
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
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151;">
                <strong>{{.OwnerName}}</strong> shared the {{.ResourceKind}} <strong>{{.ResourceName}}</strong> with you ({{.Permission}} access).
              </p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center">
                    <a href="{{.OpenLink}}" style="display: inline-block; padding: 14px 32px; background-color: #4f46e5; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 500; border-radius: 6px;">
                      Open
                    </a>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
