package feargreed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"value":"72","value_classification":"Greed","timestamp":"1756339200"}]}`))
	}))
	defer srv.Close()

	fg, err := New(srv.URL).Index(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 72, fg.Value)
	assert.Equal(t, "Greed", fg.Classification)
	assert.Equal(t, int64(1756339200), fg.Ts)
}

func TestIndexEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Index(context.Background())
	assert.Error(t, err)
}

func TestIndexServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Index(context.Background())
	assert.Error(t, err)
}

func TestIndexUnparseableValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"value":"not-a-number","value_classification":"Fear","timestamp":"1"}]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Index(context.Background())
	assert.Error(t, err)
}
