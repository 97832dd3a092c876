package lastfm

import (
	"context"
	"errors"
	"fmt"

	"fermata/internal/scrobble"
	"fermata/internal/storage"
)

// Service submits profile updates for users who linked a Last.fm account
// and left scrobbling enabled. Everyone else is skipped without error.
type Service struct {
	client *Client
	store  *storage.Storage
}

var _ scrobble.Service = (*Service)(nil)

func NewService(client *Client, store *storage.Storage) *Service {
	return &Service{client: client, store: store}
}

func (s *Service) sessionKey(userID string) (string, bool, error) {
	conn, err := s.store.GetLastFMConnection(userID)
	if errors.Is(err, storage.ErrNotConnected) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("fetch connection: %w", err)
	}
	if conn.SessionKey == "" || !conn.ScrobblingEnabled {
		return "", false, nil
	}
	return conn.SessionKey, true, nil
}

func (s *Service) UpdateNowPlaying(ctx context.Context, userID string, sub scrobble.Submission) error {
	key, ok, err := s.sessionKey(userID)
	if err != nil || !ok {
		return err
	}
	return s.client.UpdateNowPlaying(ctx, key, sub)
}

func (s *Service) Scrobble(ctx context.Context, userID string, sub scrobble.Submission) error {
	key, ok, err := s.sessionKey(userID)
	if err != nil || !ok {
		return err
	}
	return s.client.Scrobble(ctx, key, sub)
}
