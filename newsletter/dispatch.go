package newsletter

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/net/html"

	"github.com/quantonganh/codebinge"
)

// SendResult is the outcome of one delivery attempt
type SendResult struct {
	Recipient string
	Err       error
}

// Dispatcher sends a document to each recipient in order, one attempt per recipient.
type Dispatcher struct {
	mailer codebinge.Mailer
	logger zerolog.Logger
}

func NewDispatcher(mailer codebinge.Mailer, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		mailer: mailer,
		logger: logger,
	}
}

// DispatchAll attempts every recipient and returns the number of successful sends.
// A failed recipient is logged and skipped; it never aborts the batch.
func (d *Dispatcher) DispatchAll(ctx context.Context, recipients []string, doc *codebinge.Document) (int, error) {
	if d.mailer == nil {
		return 0, codebinge.ErrTransportUnconfigured
	}
	if doc == nil {
		return 0, &codebinge.Error{Code: codebinge.ErrInternal, Op: "newsletter.DispatchAll", Message: "Nothing to send"}
	}

	if doc.Text == "" {
		fallback := *doc
		fallback.Text = htmlToText(doc.HTML)
		doc = &fallback
	}

	results := make([]SendResult, 0, len(recipients))
	for _, to := range recipients {
		results = append(results, d.send(ctx, to, doc))
	}

	sent := lo.CountBy(results, func(r SendResult) bool {
		return r.Err == nil
	})

	d.logger.Info().
		Int("recipients", len(recipients)).
		Int("sent", sent).
		Int("failed", len(recipients)-sent).
		Msg("newsletter dispatched")

	return sent, nil
}

func (d *Dispatcher) send(ctx context.Context, to string, doc *codebinge.Document) SendResult {
	err := d.mailer.Send(ctx, to, doc)
	if err != nil {
		d.logger.Error().Err(err).Str("recipient", to).Msg("failed to send newsletter")
		sentry.CaptureException(&codebinge.Error{
			Code: codebinge.ErrTransport,
			Op:   "newsletter.send",
			Err:  err,
		})
	}
	return SendResult{Recipient: to, Err: err}
}

// htmlToText strips markup, turning <br> into line breaks.
func htmlToText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	doc.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: "\n"})
	})
	return strings.TrimSpace(doc.Text())
}
