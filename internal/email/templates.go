package email

import (
	"bytes"
	"html/template"
)

var verificationTemplate = template.Must(template.New("verification").Parse(`
<p>Hi,</p>
<p>Please confirm your email address by following the link below:</p>
<p><a href="{{.Link}}">Verify my email</a></p>
<p>If you did not create an account, you can safely ignore this email.</p>
`))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`
<p>Hi,</p>
<p>A password reset was requested for your account. The link below is valid
for one hour and can be used once:</p>
<p><a href="{{.Link}}">Reset my password</a></p>
<p>If you did not request a reset, you can safely ignore this email.</p>
`))

type templateData struct {
	Link string
}

func render(t *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
