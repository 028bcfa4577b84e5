package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelcraft/internal/config"
)

func testEvent() QuoteEvent {
	return QuoteEvent{
		QuoteID:      "q-123",
		FullName:     "Jo Smith",
		Email:        "jo@example.com",
		ServiceSlug:  "web-development",
		ProjectType:  "website",
		BudgetRange:  "5k-10k",
		Timeline:     "asap",
		ScopeDetails: "A long scope description for the project goes here.",
		Source:       "website",
	}
}

func baseConfig() config.Notifier {
	return config.Notifier{
		EmailFrom:      "hello@pixelcraft.agency",
		AdminBaseURL:   "https://portal.example/admin",
		HTTPTimeout:    2 * time.Second,
		DispatchBudget: 5 * time.Second,
	}
}

func TestRunQuote_AllChannelsDelivered(t *testing.T) {
	var crmHits, emailHits, chatHits atomic.Int32

	crm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		crmHits.Add(1)
		assert.Equal(t, "Bearer crm-secret", r.Header.Get("Authorization"))
		assert.Equal(t, "/contacts", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	}))
	defer crm.Close()

	email := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		emailHits.Add(1)
		var msg emailMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		assert.Equal(t, "hello@pixelcraft.agency", msg.From)
		assert.NotEmpty(t, msg.HTML)
		w.WriteHeader(http.StatusOK)
	}))
	defer email.Close()

	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatHits.Add(1)
		var msg chatMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		assert.Contains(t, msg.Text, "web-development")
		assert.Contains(t, msg.Text, "q-123")
		w.WriteHeader(http.StatusOK)
	}))
	defer chat.Close()

	cfg := baseConfig()
	cfg.CRMURL = crm.URL
	cfg.CRMToken = "crm-secret"
	cfg.EmailAPIURL = email.URL
	cfg.EmailAPIKey = "email-secret"
	cfg.InternalEmail = "team@pixelcraft.agency"
	cfg.ChatWebhookURL = chat.URL

	n := New(cfg)
	results := n.runQuote(context.Background(), testEvent())

	require.Len(t, results, 4)
	for _, r := range results {
		assert.False(t, r.skipped, "%s should not be skipped", r.channel)
		assert.NoError(t, r.err, "%s should deliver", r.channel)
	}

	assert.Equal(t, int32(1), crmHits.Load())
	assert.Equal(t, int32(2), emailHits.Load(), "client confirmation plus internal alert")
	assert.Equal(t, int32(1), chatHits.Load())
}

func TestRunQuote_UnconfiguredChannelsSkipped(t *testing.T) {
	n := New(baseConfig())
	results := n.runQuote(context.Background(), testEvent())

	require.Len(t, results, 4)
	for _, r := range results {
		assert.True(t, r.skipped, "%s should be skipped without credentials", r.channel)
		assert.NoError(t, r.err)
	}
}

func TestRunQuote_OneFailureDoesNotBlockOthers(t *testing.T) {
	var chatHits atomic.Int32

	crm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer crm.Close()

	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatHits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer chat.Close()

	cfg := baseConfig()
	cfg.CRMURL = crm.URL
	cfg.CRMToken = "crm-secret"
	cfg.ChatWebhookURL = chat.URL

	n := New(cfg)
	results := n.runQuote(context.Background(), testEvent())

	byChannel := map[string]channelStatus{}
	for _, r := range results {
		byChannel[r.channel] = r
	}

	assert.Error(t, byChannel["crm"].err)
	assert.NoError(t, byChannel["chat"].err)
	assert.False(t, byChannel["chat"].skipped)
	assert.True(t, byChannel["client_email"].skipped)
	assert.Equal(t, int32(1), chatHits.Load(), "chat delivered despite crm failing")
}

func TestRunContact_InternalChannels(t *testing.T) {
	var emailHits, chatHits atomic.Int32

	email := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		emailHits.Add(1)
		var msg emailMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		assert.Equal(t, "team@pixelcraft.agency", msg.To)
		w.WriteHeader(http.StatusOK)
	}))
	defer email.Close()

	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatHits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer chat.Close()

	cfg := baseConfig()
	cfg.EmailAPIURL = email.URL
	cfg.EmailAPIKey = "email-secret"
	cfg.InternalEmail = "team@pixelcraft.agency"
	cfg.ChatWebhookURL = chat.URL

	n := New(cfg)
	results := n.runContact(context.Background(), ContactEvent{
		Name:    "Jo",
		Email:   "jo@example.com",
		Subject: "Hello",
		Message: "I have a question about your branding work.",
	})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.skipped)
		assert.NoError(t, r.err)
	}
	assert.Equal(t, int32(1), emailHits.Load())
	assert.Equal(t, int32(1), chatHits.Load())
}

func TestExcerpt_Truncates(t *testing.T) {
	long := make([]byte, scopeExcerptLen*2)
	for i := range long {
		long[i] = 'a'
	}

	out := excerpt(string(long))
	assert.Less(t, len(out), len(long))
	assert.Contains(t, out, "…")

	assert.Equal(t, "short", excerpt("short"))
}

func TestExcerpt_KeepsUTF8Valid(t *testing.T) {
	// The leading ASCII byte puts every 2-byte rune on an odd offset, so the
	// byte limit lands mid-rune.
	long := "a" + strings.Repeat("ж", scopeExcerptLen)

	out := excerpt(long)
	assert.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasSuffix(out, "…"))
	assert.LessOrEqual(t, len(out), scopeExcerptLen+len("…"))
}
