package metadata

// Backend names accepted by METADATA_BACKEND.
const (
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendClerk  = "clerk"
	BackendMemory = "memory"
)

type Config struct {
	Backend         string `env:"METADATA_BACKEND" envDefault:"redis"`
	RedisPrefix     string `env:"METADATA_REDIS_PREFIX" envDefault:"ripple:"`
	MongoCollection string `env:"METADATA_MONGO_COLLECTION" envDefault:"account_metadata"`
	ClerkSecretKey  string `env:"CLERK_SECRET_KEY"`
	ClerkAPIURL     string `env:"CLERK_API_URL" envDefault:"https://api.clerk.com"`
}
