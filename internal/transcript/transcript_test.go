package transcript

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("  The market looks constructive this week.  "))
	}))
	defer srv.Close()

	text, err := New(srv.URL, 0).Transcript(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "The market looks constructive this week.", text)
}

func TestTranscriptTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", 100)))
	}))
	defer srv.Close()

	text, err := New(srv.URL, 10).Transcript(context.Background())
	require.NoError(t, err)
	assert.Len(t, text, 10)
}

func TestTranscriptTruncatesRuneSafe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("비트코인 시장 전망입니다"))
	}))
	defer srv.Close()

	text, err := New(srv.URL, 4).Transcript(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "비트코인", text)
}

func TestTranscriptEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("   "))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Transcript(context.Background())
	assert.Error(t, err)
}
