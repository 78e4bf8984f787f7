// Package config loads environment variables into typed configuration
// structs. It wraps caarlos0/env for struct tag parsing and godotenv for
// local .env files, and caches each configuration type for the lifetime of
// the process so that independent components can load the same config
// without re-reading the environment.
//
// # Usage
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL,required"`
//	}
//
//	var cfg RedisConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// MustLoad panics on failure and is intended for configuration without
// which the process cannot start.
package config
