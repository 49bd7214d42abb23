package notifx_test

import (
	"context"
	"testing"

	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/notifx"
	"github.com/riderota/core/pkg/notifx/notifxconsole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendTemplatedEmail(t *testing.T) {
	provider := notifxconsole.NewConsoleProvider()
	client := notifx.NewClient(provider, "no-reply@riderota.test")

	require.NoError(t, client.RegisterTemplate("hello", "Hello {{.Name}}", `<p>{{.Body}}</p>`))

	err := client.SendTemplatedEmail(context.Background(), "hello",
		map[string]string{"Name": "Dana", "Body": "<script>"},
		notifx.EmailMessage{To: []string{"dana@acme.test"}})
	require.NoError(t, err)

	sent := provider.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "no-reply@riderota.test", sent[0].From)
	assert.Equal(t, "Hello Dana", sent[0].Subject)
	assert.Equal(t, "<p>&lt;script&gt;</p>", sent[0].HTMLBody)
}

func TestSendEmailValidates(t *testing.T) {
	client := notifx.NewClient(notifxconsole.NewConsoleProvider(), "x@y.z")

	err := client.SendEmail(context.Background(), notifx.EmailMessage{Subject: "hi"})
	assert.True(t, errx.HasCode(err, notifx.CodeInvalidMessage))

	err = client.SendTemplatedEmail(context.Background(), "missing", nil, notifx.EmailMessage{To: []string{"a@b.c"}})
	assert.True(t, errx.HasCode(err, notifx.CodeTemplateNotFound))
}
