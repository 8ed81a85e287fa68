// Package handler provides type-safe HTTP request handling for the ripple API.
//
// Handlers are generic functions that receive a bound request struct and
// return a Response. Wrap turns them into http.HandlerFunc values:
//
//	type ArticleRequest struct {
//		Prompt string `json:"prompt"`
//		Length int    `json:"length"`
//	}
//
//	func generateArticle(ctx handler.Context, req ArticleRequest) handler.Response {
//		return handler.OK("...")
//	}
//
//	r.Post("/generate-article", handler.Wrap(generateArticle,
//		handler.WithBinder[ArticleRequest](binder.BindJSON()),
//	))
//
// Every response body is an Envelope: {success, content?, message?, creations?}.
// Errors carrying a core.HTTPError keep their status code and message; other
// errors render as a generic 500 so provider payloads never reach callers.
package handler
