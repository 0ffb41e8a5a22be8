package storage

// Config holds configuration for local artifact storage and the remote data
// commons that hosts preprocessed source files.
type Config struct {
	// LocalRoot is the directory inventories and reports are written under.
	// Empty selects a per-user cache directory.
	LocalRoot string `mapstructure:"local_root" default:""`
	// Endpoint is the S3-compatible endpoint of the data commons.
	Endpoint string `mapstructure:"endpoint" default:"s3.amazonaws.com"`
	// Bucket is the data commons bucket name.
	Bucket string `mapstructure:"bucket" default:"edap-ord-data-commons"`
	// Prefix is the object key prefix this tool's files live under.
	Prefix string `mapstructure:"prefix" default:"stewi"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"true"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
}
