// Package config loads env-tagged configuration structs from the process
// environment, with an optional .env file for local development.
//
// Each component of the service declares its own Config struct using
// github.com/caarlos0/env tags and loads it once:
//
//	type Config struct {
//		SigningKey string `env:"JWT_SECRET,required"`
//		SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"12h"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Load caches by struct type, so repeated loads of the same type across the
// process observe a single parse. MustLoad panics on failure and is intended
// for startup paths where a missing required variable must abort the process.
package config
