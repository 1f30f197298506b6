package ses

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantonganh/codebinge"
)

type fakeClient struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (c *fakeClient) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	c.inputs = append(c.inputs, params)
	if c.err != nil {
		return nil, c.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("0100018f-test")}, nil
}

func TestSend(t *testing.T) {
	client := &fakeClient{}
	m := NewMailerWithClient("newsletter@codebinge.dev", client)

	err := m.Send(context.Background(), "foo@gmail.com", &codebinge.Document{
		Subject: "Weekly Update",
		HTML:    "<h2>Weekly Update</h2>",
		Text:    "New problems added!",
	})
	require.NoError(t, err)
	require.Len(t, client.inputs, 1)

	in := client.inputs[0]
	assert.Equal(t, "newsletter@codebinge.dev", aws.ToString(in.FromEmailAddress))
	assert.Equal(t, []string{"foo@gmail.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Weekly Update", aws.ToString(in.Content.Simple.Subject.Data))
	assert.Equal(t, "<h2>Weekly Update</h2>", aws.ToString(in.Content.Simple.Body.Html.Data))
	assert.Equal(t, "New problems added!", aws.ToString(in.Content.Simple.Body.Text.Data))
}

func TestSendWithoutText(t *testing.T) {
	client := &fakeClient{}
	m := NewMailerWithClient("newsletter@codebinge.dev", client)

	require.NoError(t, m.Send(context.Background(), "foo@gmail.com", &codebinge.Document{Subject: "s", HTML: "<p>h</p>"}))
	assert.Nil(t, client.inputs[0].Content.Simple.Body.Text)
}

func TestSendFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("MessageRejected: Email address is not verified")}
	m := NewMailerWithClient("newsletter@codebinge.dev", client)

	err := m.Send(context.Background(), "foo@gmail.com", &codebinge.Document{Subject: "s", HTML: "h"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MessageRejected")
}
