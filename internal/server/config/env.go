package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded when present. Variables already set in the process
// environment win over the file.
var envFile = ".env"

// parseEnv overlays values from the process environment.
//
//	PORT, GRPC_ADDR, DB_BACKEND, DATABASE_DSN, MONGO_URI, DB_DATABASE,
//	SESSION_BACKEND, REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, SESSION_TTL,
//	BLOB_BACKEND, FOLDER_PATH, S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET,
//	S3_REGION, S3_BASE_ENDPOINT
//
// Malformed numeric or duration values are ignored, as is a session
// lifetime that is not positive.
func parseEnv(c *Config) {
	_ = godotenv.Load(envFile)

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		c.EndpointAddrHTTP = ":" + v
	}
	setString(&c.EndpointAddrGRPC, "GRPC_ADDR")
	setString(&c.DatabaseBackend, "DB_BACKEND")
	setString(&c.DatabaseDSN, "DATABASE_DSN")
	setString(&c.MongoURI, "MONGO_URI")
	setString(&c.MongoDatabase, "DB_DATABASE")
	setString(&c.SessionBackend, "SESSION_BACKEND")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setString(&c.BlobBackend, "BLOB_BACKEND")
	setString(&c.FolderPath, "FOLDER_PATH")
	setString(&c.S3RootUser, "S3_ROOT_USER")
	setString(&c.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&c.S3Bucket, "S3_BUCKET")
	setString(&c.S3Region, "S3_REGION")
	setString(&c.S3BaseEndpoint, "S3_BASE_ENDPOINT")

	if v, ok := os.LookupEnv("REDIS_DB"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v, ok := os.LookupEnv("SESSION_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.SessionTTL = d
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
