package twilio

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeMessages struct {
	got  *openapi.CreateMessageParams
	resp *openapi.ApiV2010Message
	err  error
}

func (f *fakeMessages) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.got = params
	return f.resp, f.err
}

func strPtr(s string) *string { return &s }

func TestTruncateBody(t *testing.T) {
	require.Equal(t, "", TruncateBody(""))

	exact := strings.Repeat("a", MaxBodyLength)
	require.Equal(t, exact, TruncateBody(exact))

	long := strings.Repeat("b", MaxBodyLength-3) + strings.Repeat("c", 500)
	got := TruncateBody(long)
	require.Equal(t, MaxBodyLength, utf8.RuneCountInString(got))
	require.Equal(t, long[:MaxBodyLength-3], got[:MaxBodyLength-3])
	require.True(t, strings.HasSuffix(got, "..."))

	justOver := strings.Repeat("d", MaxBodyLength+1)
	require.Equal(t, MaxBodyLength, utf8.RuneCountInString(TruncateBody(justOver)))
}

func TestTruncateBody_CountsCharactersNotBytes(t *testing.T) {
	body := strings.Repeat("₹", MaxBodyLength)
	require.Equal(t, body, TruncateBody(body))

	got := TruncateBody(body + "₹")
	require.Equal(t, MaxBodyLength, utf8.RuneCountInString(got))
	require.True(t, utf8.ValidString(got))
}

func TestSendWhatsApp_HappyPath(t *testing.T) {
	api := &fakeMessages{resp: &openapi.ApiV2010Message{Sid: strPtr("SM123")}}
	c := newWithAPI(api, "+14155238886")

	sid, err := c.SendWhatsApp(context.Background(), "+910000", "It's due Friday.")
	require.NoError(t, err)
	require.Equal(t, "SM123", sid)
	require.Equal(t, "whatsapp:+910000", *api.got.To)
	require.Equal(t, "whatsapp:+14155238886", *api.got.From)
	require.Equal(t, "It's due Friday.", *api.got.Body)
}

func TestSendWhatsApp_KeepsExistingScheme(t *testing.T) {
	api := &fakeMessages{resp: &openapi.ApiV2010Message{}}
	c := newWithAPI(api, "whatsapp:+14155238886")

	sid, err := c.SendWhatsApp(context.Background(), "whatsapp:+910000", "hi")
	require.NoError(t, err)
	require.Empty(t, sid)
	require.Equal(t, "whatsapp:+910000", *api.got.To)
	require.Equal(t, "whatsapp:+14155238886", *api.got.From)
}

func TestSendWhatsApp_TruncatesLongBody(t *testing.T) {
	api := &fakeMessages{resp: &openapi.ApiV2010Message{}}
	c := newWithAPI(api, "+1555")

	_, err := c.SendWhatsApp(context.Background(), "+910000", strings.Repeat("x", 5000))
	require.NoError(t, err)
	require.Len(t, *api.got.Body, MaxBodyLength)
	require.True(t, strings.HasSuffix(*api.got.Body, "..."))
}

func TestSendWhatsApp_ProviderError(t *testing.T) {
	c := newWithAPI(&fakeMessages{err: errors.New("Status: 401 - Authenticate")}, "+1555")
	_, err := c.SendWhatsApp(context.Background(), "+910000", "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "create message")
	require.Contains(t, err.Error(), "Authenticate")
}

func TestSendWhatsApp_Validation(t *testing.T) {
	api := &fakeMessages{}
	c := newWithAPI(api, "+1555")

	_, err := c.SendWhatsApp(context.Background(), " ", "hi")
	require.ErrorContains(t, err, "recipient")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.SendWhatsApp(ctx, "+910000", "hi")
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, api.got)

	_, err = (&Client{}).SendWhatsApp(context.Background(), "+910000", "hi")
	require.ErrorContains(t, err, "not initialized")
}

func TestNew_WiresRestClient(t *testing.T) {
	c := New("AC123", "token", "+1555")
	require.NotNil(t, c.api)
	require.Equal(t, "+1555", c.from)
}
