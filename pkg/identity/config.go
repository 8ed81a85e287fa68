package identity

// Config selects how session tokens are verified. PublicKey (PEM, RS256) wins
// over Secret (HS256) when both are set.
type Config struct {
	Secret    string `env:"IDENTITY_JWT_SECRET"`
	PublicKey string `env:"IDENTITY_JWT_PUBLIC_KEY"`
	Issuer    string `env:"IDENTITY_JWT_ISSUER"`
}
