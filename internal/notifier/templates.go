package notifier

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var knownTemplates = []domain.NotificationTemplate{
	domain.TemplateDeposit,
	domain.TemplateWithdraw,
	domain.TemplateLoanRequest,
	domain.TemplateLoanApproval,
	domain.TemplateLoanPaid,
	domain.TemplateTransferSent,
	domain.TemplateTransferReceived,
	domain.TemplatePasswordChanged,
}

// ErrUnknownTemplate у уведомления шаблон, для которого нет html файла.
var ErrUnknownTemplate = errors.New("unknown notification template")

// Renderer собирает письма из встроенных html шаблонов. Каждый шаблон определяет блок "content",
// который подставляется в общий "layout".
type Renderer struct {
	templates map[domain.NotificationTemplate]*template.Template
}

type templateData struct {
	Name         string
	Amount       string
	Counterparty string
	Date         string
}

func NewRenderer() (*Renderer, error) {
	layout, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, errors.Wrap(err, "parsing layout template")
	}

	templates := make(map[domain.NotificationTemplate]*template.Template, len(knownTemplates))
	for _, name := range knownTemplates {
		clone, cloneErr := layout.Clone()
		if cloneErr != nil {
			return nil, errors.Wrapf(cloneErr, "cloning layout for `%s`", name)
		}
		tpl, parseErr := clone.ParseFS(templateFS, "templates/"+string(name)+".html")
		if parseErr != nil {
			return nil, errors.Wrapf(parseErr, "parsing template `%s`", name)
		}
		templates[name] = tpl
	}
	return &Renderer{templates: templates}, nil
}

// Render формирует письмо для уведомления n.
func (r *Renderer) Render(n domain.Notification) (domain.MailMessage, error) {
	tpl, ok := r.templates[n.Template]
	if !ok {
		return domain.MailMessage{}, errors.Wrapf(ErrUnknownTemplate, "`%s`", n.Template)
	}

	data := templateData{
		Name:         n.RecipientName,
		Counterparty: n.Counterparty,
		Date:         n.CreatedAt.UTC().Format("2006-01-02 15:04 MST"),
	}
	if n.Amount.Valid {
		data.Amount = n.Amount.Decimal.StringFixed(2)
	}

	var body bytes.Buffer
	if err := tpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return domain.MailMessage{}, errors.Wrapf(err, "rendering template `%s`", n.Template)
	}
	return domain.MailMessage{
		To:       n.RecipientEmail,
		Subject:  n.Subject,
		HTMLBody: body.String(),
	}, nil
}
