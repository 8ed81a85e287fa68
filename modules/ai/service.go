package ai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Sudhikumaran/ripple-ai/core"
	"github.com/Sudhikumaran/ripple-ai/pkg/creations"
	"github.com/Sudhikumaran/ripple-ai/pkg/entitlement"
	"github.com/Sudhikumaran/ripple-ai/pkg/file"
	"github.com/Sudhikumaran/ripple-ai/pkg/generation"
	"github.com/Sudhikumaran/ripple-ai/pkg/identity"
	"github.com/Sudhikumaran/ripple-ai/pkg/imagegen"
	"github.com/Sudhikumaran/ripple-ai/pkg/logger"
	"github.com/Sudhikumaran/ripple-ai/pkg/quota"
	"github.com/Sudhikumaran/ripple-ai/pkg/usage"
)

// BlogTitleBudget is the token budget for blog title generation.
const BlogTitleBudget = 100

// ImagePrefix is the storage key prefix for generated images.
const ImagePrefix = "images"

var (
	ErrNoDecision       = errors.New("ai.errors.no_decision")
	ErrImageUnavailable = errors.New("ai.errors.image_unavailable")
)

// TextGenerator produces text for a prompt within a token budget.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, tokenBudget int) (generation.Result, error)
}

// ImageGenerator renders a prompt to an image.
type ImageGenerator interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (imagegen.Image, error)
}

// Service runs the metered generation pipeline: admission, generation,
// persistence, then accounting.
type Service struct {
	gate       *quota.Gate
	text       TextGenerator
	accountant *usage.Accountant
	store      creations.Store
	images     ImageGenerator
	storage    file.Storage
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithImages enables image generation. Without it generate-image answers
// with a misconfiguration error.
func WithImages(g ImageGenerator, storage file.Storage) Option {
	return func(s *Service) {
		s.images = g
		s.storage = storage
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a generation service.
func NewService(
	gate *quota.Gate,
	text TextGenerator,
	accountant *usage.Accountant,
	store creations.Store,
	opts ...Option,
) *Service {
	s := &Service{
		gate:       gate,
		text:       text,
		accountant: accountant,
		store:      store,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Outcome is the result of a pipeline run. A quota denial is an outcome
// with Denied set, not an error.
type Outcome struct {
	Denied   bool
	Reason   string
	Creation creations.Creation
}

// caller reads identity and entitlement placed in ctx by the middleware chain.
func caller(ctx context.Context) (string, entitlement.Decision, error) {
	id, ok := identity.AccountID(ctx)
	if !ok || id == "" {
		return "", entitlement.Decision{}, errors.Join(entitlement.ErrMissingIdentity,
			core.ErrUnauthorized.WithMessage("Unauthorized: Missing or invalid authentication"))
	}
	d, ok := entitlement.FromContext(ctx)
	if !ok {
		return "", entitlement.Decision{}, errors.Join(ErrNoDecision,
			core.ErrUnauthorized.WithMessage("Unauthorized: account metadata unavailable"))
	}
	return id, d, nil
}

// GenerateText runs a metered text generation and stores the creation.
// The counter is bumped only for free callers and only after the creation
// was stored.
func (s *Service) GenerateText(ctx context.Context, kind creations.Type, prompt string, budget int) (Outcome, error) {
	accountID, decision, err := caller(ctx)
	if err != nil {
		return Outcome{}, err
	}

	if res := s.gate.Admit(decision); !res.Allowed {
		s.logger.InfoContext(ctx, "generation denied",
			logger.UserID(accountID),
			logger.Usage(decision.RemainingFreeUsage),
			logger.Event("quota_denied"),
		)
		return Outcome{Denied: true, Reason: res.Reason}, nil
	}

	prompt = strings.TrimSpace(prompt)
	result, err := s.text.Generate(ctx, prompt, budget)
	if err != nil {
		return Outcome{}, generation.HTTPError(err)
	}

	c, err := s.store.Insert(ctx, creations.NewCreation{
		UserID:  accountID,
		Prompt:  prompt,
		Content: result.Text,
		Type:    kind,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store creation",
			logger.UserID(accountID),
			slog.String("type", string(kind)),
			logger.Error(err),
		)
		return Outcome{}, err
	}

	// The generation already happened; a client that hung up still owes it.
	s.accountant.Record(context.WithoutCancel(ctx), accountID, decision)

	s.logger.InfoContext(ctx, "text generated",
		logger.UserID(accountID),
		logger.Tier(decision.Tier.String()),
		logger.Strategy(string(result.Strategy)),
		logger.Attempts(len(result.Attempts)),
		slog.String("type", string(kind)),
	)
	return Outcome{Creation: c}, nil
}

// GenerateImage renders a prompt for a premium caller, uploads the image
// and stores the creation with its public URL. It is not metered.
func (s *Service) GenerateImage(ctx context.Context, prompt string, publish bool) (Outcome, error) {
	accountID, decision, err := caller(ctx)
	if err != nil {
		return Outcome{}, err
	}

	if err := s.gate.RequirePremium(decision); err != nil {
		return Outcome{}, quota.HTTPError(err)
	}
	if strings.TrimSpace(prompt) == "" {
		return Outcome{}, imagegen.HTTPError(imagegen.ErrEmptyPrompt)
	}
	if s.images == nil || !s.images.Configured() {
		return Outcome{}, imagegen.HTTPError(imagegen.ErrMissingAPIKey)
	}
	if s.storage == nil {
		return Outcome{}, errors.Join(ErrImageUnavailable,
			core.ErrInternalServerError.WithMessage("Server misconfiguration: image storage is missing"))
	}

	img, err := s.images.Generate(ctx, prompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "image generation failed",
			logger.UserID(accountID),
			logger.Error(err),
		)
		return Outcome{}, imagegen.HTTPError(err)
	}

	obj, err := s.storage.Put(ctx, file.ObjectKey(ImagePrefix, accountID, img.ContentType), img.Data, img.ContentType)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to upload image",
			logger.UserID(accountID),
			logger.Error(err),
		)
		return Outcome{}, err
	}

	c, err := s.store.Insert(ctx, creations.NewCreation{
		UserID:  accountID,
		Prompt:  prompt,
		Content: obj.URL,
		Type:    creations.TypeImage,
		Publish: publish,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store creation",
			logger.UserID(accountID),
			slog.String("type", string(creations.TypeImage)),
			logger.Error(err),
		)
		if derr := s.storage.Delete(context.WithoutCancel(ctx), obj.Key); derr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned image",
				slog.String("key", obj.Key),
				logger.Error(derr),
			)
		}
		return Outcome{}, err
	}

	s.logger.InfoContext(ctx, "image generated",
		logger.UserID(accountID),
		slog.String("key", obj.Key),
		slog.Int64("size", obj.Size),
	)
	return Outcome{Creation: c}, nil
}
