package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/flagx"
)

var knownFlags = []string{
	"-a", "-g", "-db", "-d", "-mongo-uri", "-mongo-db",
	"-sessions", "-redis", "-redis-password", "-redis-db", "-ttl",
	"-blobs", "-folder", "-s3-user", "-s3-password", "-s3-bucket", "-s3-region", "-s3-endpoint",
	"-cost",
}

// parseFlags populates Config fields from command-line flags.
//
//	-a string            REST bind address (e.g. ":5000")
//	-g string            gRPC health bind address
//	-db string           database backend: postgres, mongo, memory
//	-d string            PostgreSQL DSN
//	-mongo-uri string    MongoDB URI
//	-mongo-db string     MongoDB database name
//	-sessions string     session backend: redis, postgres, memory
//	-redis string        redis address
//	-redis-password      redis password
//	-redis-db int        redis logical database
//	-ttl duration        session lifetime (e.g. "24h"), must be positive
//	-blobs string        blob backend: local, s3
//	-folder string       local blob root directory
//	-s3-*                S3 user, password, bucket, region, endpoint
//	-cost int            bcrypt cost
//
// Arguments are first narrowed with flagx.FilterArgs so flags owned by
// other components do not break parsing. Parse errors panic.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run the REST API")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run the gRPC health endpoint")
	fs.StringVar(&config.DatabaseBackend, "db", config.DatabaseBackend, "database backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoURI, "mongo-uri", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.MongoDatabase, "mongo-db", config.MongoDatabase, "MongoDB database")
	fs.StringVar(&config.SessionBackend, "sessions", config.SessionBackend, "session backend")
	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "redis address")
	fs.StringVar(&config.RedisPassword, "redis-password", config.RedisPassword, "redis password")
	fs.IntVar(&config.RedisDB, "redis-db", config.RedisDB, "redis database")
	fs.Func("ttl", "session lifetime", func(v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		if d <= 0 {
			return fmt.Errorf("session lifetime must be positive, got %s", v)
		}
		config.SessionTTL = d
		return nil
	})
	fs.StringVar(&config.BlobBackend, "blobs", config.BlobBackend, "blob backend")
	fs.StringVar(&config.FolderPath, "folder", config.FolderPath, "local blob folder")
	fs.StringVar(&config.S3RootUser, "s3-user", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "s3-password", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "s3-bucket", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "s3-region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "s3-endpoint", config.S3BaseEndpoint, "S3 base endpoint")
	fs.IntVar(&config.PasswordCost, "cost", config.PasswordCost, "bcrypt cost")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
