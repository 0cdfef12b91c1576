package geo_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/internal/adapters/out/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestClient_Resolve(t *testing.T) {
	ctx := t.Context()

	t.Run("resolves coordinates from the first result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "123 Mabini St, Quezon City", r.URL.Query().Get("q"))
			assert.Equal(t, "json", r.URL.Query().Get("format"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"lat":"14.6760","lon":"121.0437","display_name":"Quezon City, Metro Manila"}]`))
		}))
		defer server.Close()

		client := geo.NewClient(server.URL, testLogger())
		point, err := client.Resolve(ctx, "123 Mabini St, Quezon City")

		require.NoError(t, err)
		assert.InDelta(t, 14.6760, point.Lat(), 0.0001)
		assert.InDelta(t, 121.0437, point.Lon(), 0.0001)
		assert.Equal(t, "Quezon City, Metro Manila", point.DisplayName())
	})

	t.Run("empty result list degrades to fallback", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := geo.NewClient(server.URL, testLogger())
		point, err := client.Resolve(ctx, "somewhere that does not exist")

		require.NoError(t, err)
		assert.InDelta(t, 14.5995, point.Lat(), 0.0001)
		assert.InDelta(t, 120.9842, point.Lon(), 0.0001)
	})

	t.Run("upstream error degrades to fallback", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := geo.NewClient(server.URL, testLogger())
		point, err := client.Resolve(ctx, "123 Mabini St")

		require.NoError(t, err)
		assert.InDelta(t, 14.5995, point.Lat(), 0.0001)
	})

	t.Run("unreachable endpoint degrades to fallback", func(t *testing.T) {
		client := geo.NewClient("http://127.0.0.1:1", testLogger())
		point, err := client.Resolve(ctx, "123 Mabini St")

		require.NoError(t, err)
		assert.InDelta(t, 120.9842, point.Lon(), 0.0001)
	})

	t.Run("empty address skips the upstream entirely", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			called = true
		}))
		defer server.Close()

		client := geo.NewClient(server.URL, testLogger())
		point, err := client.Resolve(ctx, "")

		require.NoError(t, err)
		assert.False(t, called)
		assert.Equal(t, "Metro Manila", point.DisplayName())
	})
}
