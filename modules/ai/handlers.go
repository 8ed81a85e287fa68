package ai

import (
	"net/http"

	"github.com/Sudhikumaran/ripple-ai/handler"
	"github.com/Sudhikumaran/ripple-ai/pkg/creations"
)

// ArticleRequest is the body of generate-article. Length is the requested
// token budget; it is clamped to the configured ceiling.
type ArticleRequest struct {
	Prompt string `json:"prompt"`
	Length int    `json:"length"`
}

// BlogTitleRequest is the body of generate-blog-title.
type BlogTitleRequest struct {
	Prompt string `json:"prompt"`
}

// ImageRequest is the body of generate-image.
type ImageRequest struct {
	Prompt  string `json:"prompt"`
	Publish bool   `json:"publish"`
}

func (s *Service) generateArticle(ctx handler.Context, req ArticleRequest) handler.Response {
	return s.respond(s.GenerateText(ctx, creations.TypeArticle, req.Prompt, req.Length))
}

func (s *Service) generateBlogTitle(ctx handler.Context, req BlogTitleRequest) handler.Response {
	return s.respond(s.GenerateText(ctx, creations.TypeBlogTitle, req.Prompt, BlogTitleBudget))
}

func (s *Service) generateImage(ctx handler.Context, req ImageRequest) handler.Response {
	return s.respond(s.GenerateImage(ctx, req.Prompt, req.Publish))
}

func (s *Service) respond(out Outcome, err error) handler.Response {
	if err != nil {
		return handler.Error(err)
	}
	if out.Denied {
		return handler.Fail(out.Reason, http.StatusOK)
	}
	return handler.OK(out.Creation.Content)
}
