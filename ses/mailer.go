// Package ses delivers documents through Amazon SES v2.
package ses

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/pkg/errors"

	"github.com/quantonganh/codebinge"
)

const defaultRegion = "us-east-1"

// Client is the subset of *sesv2.Client used to send mail
type Client interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type mailer struct {
	from   string
	client Client
}

// NewMailer builds an SES client from the SES section of config.
// Static credentials are used when given, otherwise the default AWS credential chain.
func NewMailer(ctx context.Context, config *codebinge.Config) (codebinge.Mailer, error) {
	region := config.SES.Region
	if region == "" {
		region = defaultRegion
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if config.SES.AccessKey != "" && config.SES.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.SES.AccessKey, config.SES.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load AWS config")
	}

	return NewMailerWithClient(config.Mail.From, sesv2.NewFromConfig(cfg)), nil
}

func NewMailerWithClient(from string, client Client) codebinge.Mailer {
	return &mailer{
		from:   from,
		client: client,
	}
}

// Send sends doc to one recipient
func (m *mailer) Send(ctx context.Context, to string, doc *codebinge.Document) error {
	body := &types.Body{
		Html: &types.Content{Data: aws.String(doc.HTML), Charset: aws.String("UTF-8")},
	}
	if doc.Text != "" {
		body.Text = &types.Content{Data: aws.String(doc.Text), Charset: aws.String("UTF-8")}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(doc.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return errors.Wrapf(err, "ses: send to %s", to)
	}

	return nil
}
