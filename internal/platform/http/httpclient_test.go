package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	c := NewHTTPClient(3 * time.Second)
	assert.Equal(t, 3*time.Second, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 10, tr.MaxIdleConnsPerHost)
	assert.Equal(t, 3*time.Second, tr.ResponseHeaderTimeout)
}

func TestNewHTTPClient_TimesOut(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := NewHTTPClient(50 * time.Millisecond).Get(srv.URL)
	assert.Error(t, err)
}
