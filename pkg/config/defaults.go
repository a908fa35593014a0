package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "bookings"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultMongoOpTimeout    = 5 * time.Second

	DefaultPort   = "3001"
	DefaultAppEnv = "production"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "line"
	DefaultLogDir    = "logs"

	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultCORSAllowedOrigins = "*"

	DevelopmentEnv = "development"
)
