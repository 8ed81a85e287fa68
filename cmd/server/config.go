package main

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"ripple-ai"`

	// Local image storage, used when S3_BUCKET is unset.
	UploadsDir string `env:"LOCAL_UPLOADS_DIR" envDefault:"./uploads"`
	PublicURL  string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`
}

// optionalKeys are reported at startup when unset. The server still starts
// and the affected features degrade.
var optionalKeys = []string{
	"CLIPDROP_API_KEY",
	"GEMINI_API_KEY",
	"GOOGLE_APPLICATION_CREDENTIALS",
	"S3_BUCKET",
	"PG_CONN_URL",
}
