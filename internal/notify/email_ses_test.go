package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestNewSESSender_NilClient(t *testing.T) {
	assert.Nil(t, NewSESSender(nil, SESConfig{FromEmail: "a@example.com"}, nil))
}

func TestSESSender_SendsRawMultipart(t *testing.T) {
	client := &fakeSES{}
	sender := NewSESSender(client, SESConfig{FromEmail: "leads@example.com"}, nil)
	require.NotNil(t, sender)

	jpeg := bytes.Repeat([]byte{0xff, 0xd8, 0xff, 0xe0}, 40)
	err := sender.Send(context.Background(), EmailMessage{
		To:      "owner@example.com",
		Subject: "בקשה להצעת מחיר (Rishon)",
		Body:    "Name: Dana Levi\nCity: Rishon",
		Attachments: []Attachment{
			{Filename: "door.jpg", ContentType: "image/jpeg", Content: jpeg},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, client.input)
	assert.Equal(t, "Doors Leads <leads@example.com>", aws.ToString(client.input.FromEmailAddress))
	assert.Equal(t, []string{"owner@example.com"}, client.input.Destination.ToAddresses)

	parsed, err := mail.ReadMessage(bytes.NewReader(client.input.Content.Raw.Data))
	require.NoError(t, err)

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "בקשה להצעת מחיר (Rishon)", subject)

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(parsed.Body, params["boundary"])

	text, err := mr.NextPart()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text.Header.Get("Content-Type"), "text/plain"))
	decoded, err := io.ReadAll(base64.NewDecoder(base64.StdEncoding, text))
	require.NoError(t, err)
	assert.Equal(t, "Name: Dana Levi\nCity: Rishon", string(decoded))

	att, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "door.jpg", att.FileName())
	content, err := io.ReadAll(base64.NewDecoder(base64.StdEncoding, att))
	require.NoError(t, err)
	assert.Equal(t, jpeg, content)

	_, err = mr.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSESSender_PropagatesError(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	sender := NewSESSender(client, SESConfig{FromEmail: "leads@example.com"}, nil)

	err := sender.Send(context.Background(), EmailMessage{To: "owner@example.com", Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestWriteBase64Lines_WrapsAt76(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBase64Lines(&buf, bytes.Repeat([]byte("a"), 200)))
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
}
