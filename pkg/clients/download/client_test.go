package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("PK\x03\x04"))
	}))
	defer srv.Close()

	body, err := NewClient(time.Second, "secret").Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK\x03\x04"), body)

	_, err = NewClient(time.Second, "").Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "status 401")
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewClient(0, "").Fetch(context.Background(), srv.URL+"/pasze.xlsx")
	assert.ErrorContains(t, err, "status 404")
}
