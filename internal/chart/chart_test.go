package chart

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngHeader)
	}))
	defer srv.Close()

	cs, err := New(srv.URL).Snapshot(context.Background())
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(cs.PNGBase64)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, decoded)
	assert.NotZero(t, cs.CapturedAt)
}

func TestSnapshotRejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>error page</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Snapshot(context.Background())
	assert.Error(t, err)
}

func TestSnapshotServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Snapshot(context.Background())
	assert.Error(t, err)
}
