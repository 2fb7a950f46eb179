package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTunnelPrefersHTTPS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tunnels", r.URL.Path)
		_, _ = w.Write([]byte(`{"tunnels":[{"public_url":"http://a.ngrok.io","proto":"http"},{"public_url":"https://a.ngrok.io","proto":"https"}]}`))
	}))
	defer srv.Close()

	url, err := detectNgrokURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "https://a.ngrok.io", url)
}

func TestFetchTunnelEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tunnels":[]}`))
	}))
	defer srv.Close()

	_, err := fetchTunnel(context.Background(), srv.Client(), srv.URL+"/api/tunnels")
	assert.ErrorIs(t, err, errNoTunnel)
}
