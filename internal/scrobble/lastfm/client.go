// Package lastfm is a minimal Last.fm API client covering the desktop
// auth flow, now-playing updates and scrobble submission.
package lastfm

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"fermata/internal/scrobble"
	"fermata/pkg/retrylimit"
)

const (
	defaultBaseURL = "https://ws.audioscrobbler.com/2.0/"
	authURLFormat  = "https://www.last.fm/api/auth/?api_key=%s&token=%s"
)

var ErrLastFM = errors.New("last.fm error")

type Client struct {
	apiKey, secret string
	baseURL        string
	httpClient     *http.Client
	lim            *retrylimit.AdaptiveLimiter
}

func NewClient(apiKey, secret string) *Client {
	return &Client{
		apiKey:     apiKey,
		secret:     secret,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		lim:        retrylimit.NewAdaptiveLimiter(5, 1, 10, 1, 0.5),
	}
}

// getParamSignature computes api_sig: md5 over key+value pairs sorted by
// key, with the shared secret appended.
func (c *Client) getParamSignature(params url.Values) string {
	paramKeys := make([]string, 0, len(params))
	for k := range params {
		paramKeys = append(paramKeys, k)
	}
	sort.Strings(paramKeys)
	toHash := ""
	for _, k := range paramKeys {
		toHash += k
		toHash += params[k][0]
	}
	toHash += c.secret
	hash := md5.Sum([]byte(toHash))
	return hex.EncodeToString(hash[:])
}

func (c *Client) makeRequest(ctx context.Context, method string, params url.Values) (LastFM, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL, nil)
	if err != nil {
		return LastFM{}, fmt.Errorf("build request: %w", err)
	}
	req.URL.RawQuery = params.Encode()

	if c.lim != nil {
		if err := c.lim.Wait(ctx); err != nil {
			return LastFM{}, err
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return LastFM{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if c.lim != nil {
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			c.lim.RateLimited()
		} else {
			c.lim.Success()
		}
	}

	var lastfm LastFM
	if err := xml.NewDecoder(resp.Body).Decode(&lastfm); err != nil {
		return LastFM{}, fmt.Errorf("decoding: %w", err)
	}
	if lastfm.Error.Code != 0 {
		return LastFM{}, fmt.Errorf("%v: %w", lastfm.Error.Value, ErrLastFM)
	}
	return lastfm, nil
}

// GetToken requests an unauthorized request token for the desktop auth flow.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Add("method", "auth.getToken")
	params.Add("api_key", c.apiKey)
	params.Add("api_sig", c.getParamSignature(params))
	resp, err := c.makeRequest(ctx, http.MethodGet, params)
	if err != nil {
		return "", fmt.Errorf("making token GET: %w", err)
	}
	return resp.Token, nil
}

// AuthURL is the page the user visits to approve the request token.
func (c *Client) AuthURL(token string) string {
	return fmt.Sprintf(authURLFormat, c.apiKey, token)
}

// GetSession exchanges an approved token for the user's name and session key.
func (c *Client) GetSession(ctx context.Context, token string) (Session, error) {
	params := url.Values{}
	params.Add("method", "auth.getSession")
	params.Add("api_key", c.apiKey)
	params.Add("token", token)
	params.Add("api_sig", c.getParamSignature(params))
	resp, err := c.makeRequest(ctx, http.MethodGet, params)
	if err != nil {
		return Session{}, fmt.Errorf("making session GET: %w", err)
	}
	return resp.Session, nil
}

// UpdateNowPlaying marks the track as currently playing on the user's profile.
func (c *Client) UpdateNowPlaying(ctx context.Context, sessionKey string, sub scrobble.Submission) error {
	params := c.trackParams(sessionKey, sub)
	params.Add("method", "track.updateNowPlaying")
	params.Add("api_sig", c.getParamSignature(params))
	if _, err := c.makeRequest(ctx, http.MethodPost, params); err != nil {
		return fmt.Errorf("making now playing POST: %w", err)
	}
	return nil
}

// Scrobble submits a finished listen with the listening-session start time.
func (c *Client) Scrobble(ctx context.Context, sessionKey string, sub scrobble.Submission) error {
	params := c.trackParams(sessionKey, sub)
	params.Add("method", "track.Scrobble")
	// last.fm wants the timestamp in seconds
	params.Add("timestamp", strconv.FormatInt(sub.StartedAt.Unix(), 10))
	params.Add("api_sig", c.getParamSignature(params))
	if _, err := c.makeRequest(ctx, http.MethodPost, params); err != nil {
		return fmt.Errorf("making scrobble POST: %w", err)
	}
	return nil
}

func (c *Client) trackParams(sessionKey string, sub scrobble.Submission) url.Values {
	params := url.Values{}
	params.Add("api_key", c.apiKey)
	params.Add("sk", sessionKey)
	params.Add("artist", sub.Artist)
	params.Add("track", sub.Track)
	if sub.Album != "" {
		params.Add("album", sub.Album)
	}
	if sub.Duration > 0 {
		params.Add("duration", strconv.Itoa(int(sub.Duration.Seconds())))
	}
	return params
}
