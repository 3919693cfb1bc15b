package session

import (
	"context"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=session_repository_mock.go --case=underscore
type Repository interface {
	Save(ctx context.Context, session *Session) error
	// GetByID returns a domain not-found error when the session does not
	// exist or has expired.
	GetByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
