package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotConnected = errors.New("user has no Last.fm connection")

// LastFMConnection is a user's link to their Last.fm account. SessionKey is
// the long-lived credential obtained through the auth flow; PendingToken
// holds an unauthorized request token between /lastfm-auth and
// /lastfm-confirm.
type LastFMConnection struct {
	Username          string `json:"username"`
	SessionKey        string `json:"session_key"`
	ScrobblingEnabled bool   `json:"scrobbling_enabled"`
	PendingToken      string `json:"pending_token,omitempty"`
}

func lastfmKey(userID string) string {
	return "lastfm:" + userID
}

func (s *Storage) GetLastFMConnection(userID string) (*LastFMConnection, error) {
	data, exists := s.ds.Get(lastfmKey(userID))
	if !exists {
		return nil, ErrNotConnected
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var conn LastFMConnection
	if err := json.Unmarshal(jsonData, &conn); err != nil {
		return nil, fmt.Errorf("error unmarshalling to *LastFMConnection: %w", err)
	}
	return &conn, nil
}

func (s *Storage) SetLastFMConnection(userID string, conn *LastFMConnection) error {
	if conn == nil {
		return errors.New("nil connection")
	}
	s.ds.Add(lastfmKey(userID), conn)
	return nil
}

func (s *Storage) DeleteLastFMConnection(userID string) {
	s.ds.Delete(lastfmKey(userID))
}

// SetLastFMPendingToken stores an unauthorized request token for a user,
// keeping any existing session until the new token is confirmed.
func (s *Storage) SetLastFMPendingToken(userID, token string) error {
	conn, err := s.GetLastFMConnection(userID)
	if err != nil {
		conn = &LastFMConnection{}
	}
	conn.PendingToken = token
	return s.SetLastFMConnection(userID, conn)
}

// ToggleLastFMScrobbling flips the per-user scrobbling switch and returns
// the new state.
func (s *Storage) ToggleLastFMScrobbling(userID string) (bool, error) {
	conn, err := s.GetLastFMConnection(userID)
	if err != nil {
		return false, err
	}
	conn.ScrobblingEnabled = !conn.ScrobblingEnabled
	if err := s.SetLastFMConnection(userID, conn); err != nil {
		return false, err
	}
	return conn.ScrobblingEnabled, nil
}
