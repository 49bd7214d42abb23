package notifxses_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/notifx"
	"github.com/riderota/core/pkg/notifx/notifxses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	in  *ses.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("m-1")}, nil
}

func TestSendEmailBuildsInput(t *testing.T) {
	api := &fakeSES{}
	p := notifxses.NewSESProvider(api)

	err := p.SendEmail(context.Background(), notifx.EmailMessage{
		From:     "Riderota <no-reply@riderota.com>",
		To:       []string{"dana@acme.test"},
		Subject:  "You're invited",
		HTMLBody: "<p>hi</p>",
	}, notifx.WithConfigID("invites"), notifx.WithTags(map[string]string{"kind": "invitation"}))
	require.NoError(t, err)

	require.NotNil(t, api.in)
	assert.Equal(t, "Riderota <no-reply@riderota.com>", aws.ToString(api.in.Source))
	assert.Equal(t, []string{"dana@acme.test"}, api.in.Destination.ToAddresses)
	assert.Equal(t, "<p>hi</p>", aws.ToString(api.in.Message.Body.Html.Data))
	assert.Nil(t, api.in.Message.Body.Text)
	assert.Equal(t, "invites", aws.ToString(api.in.ConfigurationSetName))
	require.Len(t, api.in.Tags, 1)
	assert.Equal(t, "kind", aws.ToString(api.in.Tags[0].Name))
}

func TestSendEmailWrapsFailure(t *testing.T) {
	p := notifxses.NewSESProvider(&fakeSES{err: errors.New("throttled")})

	err := p.SendEmail(context.Background(), notifx.EmailMessage{To: []string{"a@b.co"}, Subject: "x"})
	assert.True(t, errx.HasCode(err, notifxses.CodeSendFailed))
}
