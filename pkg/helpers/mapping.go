package helpers

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/oksasatya/go-talent-marketplace/pkg/mailer"
	mailtpl "github.com/oksasatya/go-talent-marketplace/pkg/mailer/templates"
)

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// RenderJob fills Subject, Text and HTML from the named template.
// Jobs without a template are sent as they are.
func RenderJob(job *mailer.EmailJob) error {
	if strings.TrimSpace(job.To) == "" {
		return errors.New("email job has no recipient")
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return errors.New("email job has neither template nor content")
		}
		return nil
	}
	name := strings.ToLower(job.Template)
	if !mailtpl.Known(name) {
		return errors.Errorf("unknown email template %q", job.Template)
	}
	EnsureRecipientAndEmail(job)
	subject, text, html, err := mailtpl.Render(name, job.Data)
	if err != nil {
		return errors.Wrapf(err, "render %s", name)
	}
	if job.Subject == "" {
		job.Subject = subject
	}
	job.Text, job.HTML = text, html
	return nil
}
