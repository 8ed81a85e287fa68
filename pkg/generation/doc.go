// Package generation calls the text generation backend through an ordered
// chain of authentication strategies.
//
// Two authenticators ship with the package. ServiceAccountAuthenticator reads
// the file named by GOOGLE_APPLICATION_CREDENTIALS, exchanges it for a bearer
// token with golang.org/x/oauth2/google and calls the backend with it.
// APIKeyAuthenticator sends GEMINI_API_KEY as the key query parameter.
//
//	client := generation.NewClient(cfg)
//	invoker := generation.NewInvoker(generation.FromConfig(cfg, client),
//		generation.WithMaxTokens(cfg.MaxTokens),
//		generation.WithAttemptTimeout(cfg.AttemptTimeout),
//		generation.WithLogger(log),
//	)
//	res, err := invoker.Generate(ctx, prompt, 100)
//
// Unconfigured authenticators are skipped without recording an attempt. The
// first attempt that returns non-empty text wins. When every configured
// strategy fails, or none is configured, Generate returns *UnavailableError,
// which matches ErrGenerationUnavailable and lists the attempts.
package generation
