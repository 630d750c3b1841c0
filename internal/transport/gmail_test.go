package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// gmailTestService builds a gmail client pointed at a local fake API.
func gmailTestService(t *testing.T, handler http.Handler) *gmail.Service {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	svc, err := gmail.NewService(context.Background(),
		option.WithEndpoint(ts.URL),
		option.WithoutAuthentication())
	require.NoError(t, err)
	return svc
}

func TestGmailReplyCheckerFindsUnreadReply(t *testing.T) {
	var gotQuery string
	svc := gmailTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/messages"):
			gotQuery = r.URL.Query().Get("q")
			fmt.Fprint(w, `{"messages":[{"id":"m1"}]}`)
		case strings.HasSuffix(r.URL.Path, "/messages/m1"):
			fmt.Fprint(w, `{"id":"m1","snippet":"Thanks, let's talk next week"}`)
		default:
			http.NotFound(w, r)
		}
	}))

	checker := NewGmailReplyChecker(svc)
	body, found, err := checker.Check(context.Background(), "Jordan@Acme.example")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Thanks, let's talk next week", body)
	assert.Equal(t, "from:jordan@acme.example in:inbox is:unread", gotQuery)
}

func TestGmailReplyCheckerNoUnreadMail(t *testing.T) {
	svc := gmailTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	}))

	checker := NewGmailReplyChecker(svc)
	body, found, err := checker.Check(context.Background(), "jordan@acme.example")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, body)
}

func TestGmailReplyCheckerListFailure(t *testing.T) {
	calls := 0
	svc := gmailTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	checker := NewGmailReplyChecker(svc)
	_, found, err := checker.Check(context.Background(), "jordan@acme.example")
	require.Error(t, err)
	assert.False(t, found)
	assert.Equal(t, maxAttempts, calls)
}

func TestGmailReplyCheckerInvalidAddress(t *testing.T) {
	checker := NewGmailReplyChecker(nil)
	_, _, err := checker.Check(context.Background(), "not-an-email")
	assert.Error(t, err)
}
