package scan

import (
	"context"
	"errors"
)

var (
	// ErrSessionNotFound covers unknown and foreign scan ids alike, so a
	// caller cannot probe for other users' sessions.
	ErrSessionNotFound = errors.New("scan session not found")

	// ErrConflict means a concurrent refine updated the session first.
	ErrConflict = errors.New("scan session was modified concurrently")
)

// Repository defines scan-session persistence.
type Repository interface {
	Create(ctx context.Context, s *Session) error

	// Get returns the session owned by userID with the given scan id, or
	// ErrSessionNotFound.
	Get(ctx context.Context, userID, scanID string) (*Session, error)

	// Update commits new session state if and only if the stored version
	// still matches s.Version (optimistic concurrency). On success the
	// session's version is incremented; on a lost race it returns
	// ErrConflict and the stored state is untouched.
	Update(ctx context.Context, s *Session) error
}
