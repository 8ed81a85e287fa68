package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Sudhikumaran/ripple-ai/core"
	"github.com/Sudhikumaran/ripple-ai/pkg/creations"
	"github.com/Sudhikumaran/ripple-ai/pkg/identity"
	"github.com/Sudhikumaran/ripple-ai/pkg/logger"
)

const (
	MsgLiked   = "Creation Liked"
	MsgUnliked = "Creation Unliked"
)

// Service exposes the caller's creations and the published feed.
type Service struct {
	store  creations.Store
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a user service over the creations store.
func NewService(store creations.Store, opts ...Option) *Service {
	s := &Service{store: store, logger: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func accountID(ctx context.Context) (string, error) {
	id, ok := identity.AccountID(ctx)
	if !ok || id == "" {
		return "", core.ErrUnauthorized.WithMessage("Unauthorized: Missing or invalid authentication")
	}
	return id, nil
}

// Creations returns the caller's creations, newest first.
func (s *Service) Creations(ctx context.Context) ([]creations.Creation, error) {
	id, err := accountID(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.store.ListByUser(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list creations", logger.UserID(id), logger.Error(err))
		return nil, err
	}
	return list, nil
}

// Published returns every published creation, newest first.
func (s *Service) Published(ctx context.Context) ([]creations.Creation, error) {
	if _, err := accountID(ctx); err != nil {
		return nil, err
	}
	list, err := s.store.ListPublished(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list published creations", logger.Error(err))
		return nil, err
	}
	return list, nil
}

// ToggleLike flips the caller's like on a creation and returns the message
// describing the new state.
func (s *Service) ToggleLike(ctx context.Context, creationID int64) (string, error) {
	id, err := accountID(ctx)
	if err != nil {
		return "", err
	}

	liked, err := s.store.ToggleLike(ctx, creationID, id)
	if err != nil {
		if errors.Is(err, creations.ErrNotFound) {
			return "", errors.Join(err, core.ErrNotFound.WithMessage("Creation not found"))
		}
		s.logger.ErrorContext(ctx, "failed to toggle like",
			logger.UserID(id),
			slog.Int64("creation_id", creationID),
			logger.Error(err),
		)
		return "", err
	}

	if liked {
		return MsgLiked, nil
	}
	return MsgUnliked, nil
}
