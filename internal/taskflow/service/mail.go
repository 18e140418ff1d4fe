package service

import (
	"bytes"
	"html/template"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/mailer"
)

var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "otp"}}<p>Hello,</p>
<p>Your password reset code is <strong>{{.Code}}</strong>.</p>
<p>It expires in {{.Minutes}} minutes. If you did not ask for a reset you can ignore this email.</p>{{end}}

{{define "invitation"}}<p>Hi {{.InviteeName}},</p>
<p>{{.InviterName}} invited you to join the project <strong>{{.ProjectName}}</strong>.</p>
<p>Open TaskFlow to accept or decline the invitation.</p>{{end}}

{{define "removed"}}<p>Hi {{.MemberName}},</p>
<p>You are no longer a member of the project <strong>{{.ProjectName}}</strong>.</p>{{end}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func otpMail(to, code string, ttl time.Duration) (mailer.Message, error) {
	html, err := render("otp", struct {
		Code    string
		Minutes int
	}{code, int(ttl.Minutes())})
	if err != nil {
		return mailer.Message{}, err
	}
	return mailer.Message{To: to, Subject: "Your TaskFlow password reset code", HTML: html}, nil
}

func invitationMail(to, inviteeName, inviterName, projectName string) (mailer.Message, error) {
	html, err := render("invitation", struct {
		InviteeName, InviterName, ProjectName string
	}{inviteeName, inviterName, projectName})
	if err != nil {
		return mailer.Message{}, err
	}
	return mailer.Message{To: to, Subject: "You have been invited to " + projectName, HTML: html}, nil
}

func removalMail(to, memberName, projectName string) (mailer.Message, error) {
	html, err := render("removed", struct {
		MemberName, ProjectName string
	}{memberName, projectName})
	if err != nil {
		return mailer.Message{}, err
	}
	return mailer.Message{To: to, Subject: "You were removed from " + projectName, HTML: html}, nil
}
