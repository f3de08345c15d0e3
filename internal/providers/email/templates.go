package email

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// InviteData fills the agent invite template.
type InviteData struct {
	OrganizationName string
	InviteURL        string
}

// RenderInvite renders the agent invite email body.
func RenderInvite(data InviteData) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, "invite_agent.html", data); err != nil {
		return "", err
	}
	return body.String(), nil
}
