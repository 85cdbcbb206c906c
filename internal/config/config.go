package config

import "os"

type Config struct {
	ListenAddr  string
	DatabaseURL string
	JWTSecret   string
	AuthURL     string
	AuthAnonKey string
	StrictAuth  bool
	LogLevel    string
	LogFile     string
}

// Load reads configuration from the environment. DatabaseURL has no default;
// callers must treat an empty value as a fatal startup condition.
func Load() *Config {
	return &Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getEnv("SUPABASE_JWT_SECRET", ""),
		AuthURL:     getEnv("SUPABASE_URL", ""),
		AuthAnonKey: getEnv("SUPABASE_ANON_KEY", ""),
		StrictAuth:  os.Getenv("STRICT_AUTH") == "1",
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
