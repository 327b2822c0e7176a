package config

// Config is the explicit configuration surface passed into constructors at
// startup. No ambient lookup happens inside business logic.
type Config struct {
	App      AppConfig      `json:"app"`
	Storage  StorageConfig  `json:"storage"`
	Proxy    ProxyConfig    `json:"proxy"`
	Database DatabaseConfig `json:"database"`
	Logging  LoggingConfig  `json:"logging"`
}

type AppConfig struct {
	// Env gates destructive capabilities such as filesystem bulk delete.
	Env string `json:"env" env:"APP_ENV" default:"development"`
}

type StorageConfig struct {
	// Backend selects the physical byte store: "s3" or "filesystem".
	Backend        string `json:"backend" env:"STORAGE_BACKEND" default:"filesystem"`
	S3Bucket       string `json:"s3_bucket" env:"STORAGE_S3_BUCKET"`
	S3Endpoint     string `json:"s3_endpoint" env:"STORAGE_S3_ENDPOINT" default:"s3.amazonaws.com"`
	S3AccessKey    string `json:"-" env:"STORAGE_S3_ACCESS_KEY"`
	S3SecretKey    string `json:"-" env:"STORAGE_S3_SECRET_KEY"`
	S3UseSSL       bool   `json:"s3_use_ssl" env:"STORAGE_S3_USE_SSL" default:"true"`
	FilesystemRoot string `json:"filesystem_root" env:"STORAGE_FS_ROOT" default:"storage"`
}

type ProxyConfig struct {
	Scheme string `json:"scheme" env:"IMAGE_PROXY_SCHEME" default:"https"`
	Host   string `json:"host" env:"IMAGE_PROXY_HOST"`
	// SigningKey and SigningSalt are hex-encoded secrets, decoded once at
	// signer construction.
	SigningKey  string `json:"-" env:"IMAGE_PROXY_KEY"`
	SigningSalt string `json:"-" env:"IMAGE_PROXY_SALT"`
}

type DatabaseConfig struct {
	URL string `json:"-" env:"DATABASE_URL"`
}

type LoggingConfig struct {
	Level  string `json:"level" env:"LOG_LEVEL" default:"info"`
	Format string `json:"format" env:"LOG_FORMAT" default:"json"`
}

// NewConfig creates a new configuration by loading from environment
// variables with fallback to default values, then validating.
func NewConfig() (*Config, error) {
	config := &Config{}

	if err := loadFromEnvironment(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
