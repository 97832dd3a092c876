package lastfm

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"testing"
	"time"

	"fermata/internal/scrobble"

	"github.com/stretchr/testify/require"
)

func signParams(t *testing.T, params url.Values, secret string) string {
	t.Helper()
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "api_sig" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	toHash := ""
	for _, k := range keys {
		toHash += k + params.Get(k)
	}
	toHash += secret
	sum := md5.Sum([]byte(toHash))
	return hex.EncodeToString(sum[:])
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("key123", "secret456")
	client.baseURL = server.URL
	return client
}

func TestGetSession(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		require.Equal(t, "auth.getSession", params.Get("method"))
		require.Equal(t, "key123", params.Get("api_key"))
		require.Equal(t, "token789", params.Get("token"))
		require.Equal(t, signParams(t, params, "secret456"), params.Get("api_sig"))

		w.Write([]byte(`<lfm status="ok"><session><name>meatbag</name><key>sk123</key></session></lfm>`))
	})

	session, err := client.GetSession(context.Background(), "token789")
	require.NoError(t, err)
	require.Equal(t, "meatbag", session.Name)
	require.Equal(t, "sk123", session.Key)
}

func TestGetToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		require.Equal(t, "auth.getToken", params.Get("method"))
		require.Equal(t, signParams(t, params, "secret456"), params.Get("api_sig"))

		w.Write([]byte(`<lfm status="ok"><token>tok42</token></lfm>`))
	})

	token, err := client.GetToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok42", token)
}

func TestScrobble(t *testing.T) {
	t.Parallel()

	startedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		params := r.URL.Query()
		require.Equal(t, "track.Scrobble", params.Get("method"))
		require.Equal(t, "sk123", params.Get("sk"))
		require.Equal(t, "Boards of Canada", params.Get("artist"))
		require.Equal(t, "Roygbiv", params.Get("track"))
		require.Equal(t, "149", params.Get("duration"))
		require.Equal(t, "1717243200", params.Get("timestamp"))
		require.Equal(t, signParams(t, params, "secret456"), params.Get("api_sig"))

		w.Write([]byte(`<lfm status="ok"></lfm>`))
	})

	err := client.Scrobble(context.Background(), "sk123", scrobble.Submission{
		Artist:    "Boards of Canada",
		Track:     "Roygbiv",
		Duration:  149 * time.Second,
		StartedAt: startedAt,
	})
	require.NoError(t, err)
}

func TestUpdateNowPlaying(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		params := r.URL.Query()
		require.Equal(t, "track.updateNowPlaying", params.Get("method"))
		require.Empty(t, params.Get("timestamp"))
		require.Empty(t, params.Get("album"))

		w.Write([]byte(`<lfm status="ok"></lfm>`))
	})

	err := client.UpdateNowPlaying(context.Background(), "sk123", scrobble.Submission{
		Artist: "Burial",
		Track:  "Archangel",
	})
	require.NoError(t, err)
}

func TestErrorResponse(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<lfm status="failed"><error code="9">Invalid session key</error></lfm>`))
	})

	err := client.Scrobble(context.Background(), "bad", scrobble.Submission{Artist: "a", Track: "t"})
	require.ErrorIs(t, err, ErrLastFM)
	require.Contains(t, err.Error(), "Invalid session key")
}
