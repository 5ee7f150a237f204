package config

import (
	"testing"
	"time"
)

// TestParseBoolEnv проверяет разбор булевого флага из ENV.
func TestParseBoolEnv(t *testing.T) {
	t.Setenv("PLACES_ENABLE_FETCH", " true ")

	got, err := parseBoolEnv("PLACES_ENABLE_FETCH", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !got {
		t.Fatal("expected true")
	}
}

// TestParseBoolEnvMissing проверяет значение по умолчанию.
func TestParseBoolEnvMissing(t *testing.T) {
	got, err := parseBoolEnv("MISSING_ENV", true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !got {
		t.Fatal("expected fallback true")
	}
}

// TestParseFloatEnv проверяет разбор порога рейтинга.
func TestParseFloatEnv(t *testing.T) {
	t.Setenv("PLACES_MIN_RATING", "4.2")

	got, err := parseFloatEnv("PLACES_MIN_RATING", 3.5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 4.2 {
		t.Fatalf("expected 4.2, got %v", got)
	}
}

// TestParseDurationEnvInvalid проверяет ошибку при неверной длительности.
func TestParseDurationEnvInvalid(t *testing.T) {
	t.Setenv("PLACES_PAGE_DELAY", "two seconds")

	if _, err := parseDurationEnv("PLACES_PAGE_DELAY", 2*time.Second); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

// TestValidateFetchRequiresKey проверяет требование ключа при включенном фетче.
func TestValidateFetchRequiresKey(t *testing.T) {
	cfg := Config{}
	cfg.Server.Port = 8080
	cfg.Database = DatabaseConfig{Host: "localhost", User: "u", Name: "n", MaxOpenConns: 10, MaxIdleConns: 5}
	cfg.Redis.Addr = "localhost:6379"
	cfg.Auth = AuthConfig{JWTSecret: "s", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour, RateLimitPerMinute: 60, RateLimitBurst: 10}
	cfg.Places = PlacesConfig{EnableFetch: true, MaxCities: 3, MaxTermsPerCity: 2, MaxPages: 2, MinRating: 3.5, MaxResults: 48}

	if err := cfg.validate(); err == nil {
		t.Fatal("expected error when fetch enabled without api key")
	}

	cfg.Places.APIKey = "key"
	if err := cfg.validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
