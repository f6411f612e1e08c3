package source

// Config holds the locations of the four game data sources plus the
// credentials needed to reach remote ones. Each location is either a local
// file path, an http(s) URL or an s3://bucket/key reference.
type Config struct {
	// Shop is the structural tech tree source.
	Shop string `mapstructure:"shop" default:"shop.blk"`
	// Economy is the per-vehicle cost source.
	Economy string `mapstructure:"economy" default:"economy.blk"`
	// Ranks is the rank gating source.
	Ranks string `mapstructure:"ranks" default:"rank.blk"`
	// Locale is the localization sheet.
	Locale string `mapstructure:"locale" default:"units.csv"`

	// TimeoutSeconds bounds every remote fetch.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`

	// S3 holds the object storage credentials, used only when a source
	// location uses the s3:// scheme.
	S3 S3Config `mapstructure:"s3"`
}

// S3Config holds configuration for the object storage provider.
type S3Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Region is the location of the buckets (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
}
