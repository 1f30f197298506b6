package newsletter

import (
	"strings"

	"github.com/osteele/liquid"
	"github.com/pkg/errors"

	"github.com/quantonganh/codebinge"
)

const unsubscribePath = "/unsubscribe"

const htmlTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">{{ subject }}</h2>
  <div style="line-height: 1.6;">
    {{ content | linebreaks }}
  </div>
  <div style="margin-top: 20px; font-size: 12px; color: #666;">
    <p>To unsubscribe from this newsletter, please <a href="{{ unsubscribe_url }}" style="color: #0066cc;">click here</a>.</p>
  </div>
</div>
`

// Renderer builds the newsletter HTML from a liquid template.
// Content is trusted admin input and is not escaped.
type Renderer struct {
	tpl            *liquid.Template
	unsubscribeURL string
}

// NewRenderer compiles the newsletter template. siteURL is the public base URL used for the unsubscribe link.
func NewRenderer(siteURL string) (*Renderer, error) {
	engine := liquid.NewEngine()
	engine.RegisterFilter("linebreaks", linebreaks)

	tpl, err := engine.ParseString(htmlTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "parse newsletter template")
	}

	return &Renderer{
		tpl:            tpl,
		unsubscribeURL: strings.TrimRight(siteURL, "/") + unsubscribePath,
	}, nil
}

// Render returns the HTML document and the unchanged plain-text fallback
func (r *Renderer) Render(subject, content string) (*codebinge.Document, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(content) == "" {
		return nil, errSubjectAndContentRequired
	}

	html, err := r.tpl.RenderString(liquid.Bindings{
		"subject":         subject,
		"content":         content,
		"unsubscribe_url": r.unsubscribeURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "render newsletter")
	}

	return &codebinge.Document{
		Subject: subject,
		HTML:    html,
		Text:    content,
	}, nil
}

func linebreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}
