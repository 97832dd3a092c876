package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyAPIURL   = "https://api.spotify.com/v1"
)

var ErrInvalidSpotifyLink = errors.New("invalid Spotify track link")

// SpotifyClient looks up track metadata through the client-credentials flow.
// Only used to turn track links into search strings.
type SpotifyClient struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewSpotifyClient(clientID, clientSecret string) *SpotifyClient {
	return &SpotifyClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// IsSpotifyTrackLink recognizes both spotify:track: URIs and open.spotify.com
// track links.
func IsSpotifyTrackLink(input string) bool {
	return strings.Contains(input, "spotify:track:") ||
		strings.Contains(input, "open.spotify.com/track/")
}

// ExtractSpotifyTrackID pulls the track ID out of either link form.
func ExtractSpotifyTrackID(input string) (string, error) {
	var rest string
	switch {
	case strings.Contains(input, "spotify:track:"):
		rest = input[strings.Index(input, "spotify:track:")+len("spotify:track:"):]
	case strings.Contains(input, "open.spotify.com/track/"):
		rest = input[strings.Index(input, "open.spotify.com/track/")+len("open.spotify.com/track/"):]
	default:
		return "", ErrInvalidSpotifyLink
	}

	if i := strings.IndexAny(rest, "?&/"); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "", ErrInvalidSpotifyLink
	}
	return rest, nil
}

// SearchQuery resolves a Spotify track link to a "title artist" search string.
func (c *SpotifyClient) SearchQuery(ctx context.Context, link string) (string, error) {
	trackID, err := ExtractSpotifyTrackID(link)
	if err != nil {
		return "", err
	}

	token, err := c.token(ctx)
	if err != nil {
		return "", fmt.Errorf("spotify auth: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, spotifyAPIURL+"/tracks/"+trackID, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify track lookup failed with status %d", resp.StatusCode)
	}

	var track struct {
		Name    string `json:"name"`
		Artists []struct {
			Name string `json:"name"`
		} `json:"artists"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&track); err != nil {
		return "", fmt.Errorf("decode spotify track: %w", err)
	}
	if track.Name == "" || len(track.Artists) == 0 {
		return "", ErrInvalidSpotifyLink
	}

	return track.Name + " " + track.Artists[0].Name, nil
}

// token returns a cached client-credentials token, refreshing when expired.
func (c *SpotifyClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, spotifyTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	c.accessToken = body.AccessToken
	// Refresh a minute ahead of the advertised expiry.
	c.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn-60) * time.Second)
	return c.accessToken, nil
}
