package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-0123456789"

func TestLoad_WithDefaults(t *testing.T) {
	clearConfigEnvVars()

	// Password and JWT secret have no defaults
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("Expected env development, got %s", cfg.Server.Env)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Expected host localhost, got %s", cfg.Database.Host)
	}
	if cfg.Database.Name != "room4rent" {
		t.Errorf("Expected db name room4rent, got %s", cfg.Database.Name)
	}
	if cfg.Database.PoolMin != 2 {
		t.Errorf("Expected pool min 2, got %d", cfg.Database.PoolMin)
	}
	if cfg.Database.PoolMax != 10 {
		t.Errorf("Expected pool max 10, got %d", cfg.Database.PoolMax)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("Expected auto migrate to default to true")
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %d", len(cfg.CORS.Origins))
	}
	if cfg.Auth.Issuer != "room4rent" {
		t.Errorf("Expected issuer room4rent, got %s", cfg.Auth.Issuer)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Expected token TTL 24h, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Admin.Email != "" {
		t.Errorf("Expected admin bootstrap disabled by default, got %s", cfg.Admin.Email)
	}
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	clearConfigEnvVars()

	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_POOL_MIN", "5")
	t.Setenv("DB_POOL_MAX", "20")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("CORS_ORIGINS", "http://example.com,https://app.example.com")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("ADMIN_EMAIL", "admin@room4rent.com")
	t.Setenv("ADMIN_PASSWORD", "admin123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "production" {
		t.Errorf("Expected env production, got %s", cfg.Server.Env)
	}
	if cfg.Database.Host != "db" {
		t.Errorf("Expected host db, got %s", cfg.Database.Host)
	}
	if cfg.Database.PoolMin != 5 || cfg.Database.PoolMax != 20 {
		t.Errorf("Expected pool 5..20, got %d..%d", cfg.Database.PoolMin, cfg.Database.PoolMax)
	}
	if cfg.Database.AutoMigrate {
		t.Error("Expected auto migrate to be disabled")
	}
	if cfg.CORS.Origins[0] != "http://example.com" {
		t.Errorf("Expected first origin http://example.com, got %s", cfg.CORS.Origins[0])
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("Expected token TTL 2h, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Admin.Email != "admin@room4rent.com" || cfg.Admin.Password != "admin123" {
		t.Errorf("Expected admin bootstrap credentials, got %+v", cfg.Admin)
	}
}

func TestLoad_MissingPassword(t *testing.T) {
	clearConfigEnvVars()
	t.Setenv("JWT_SECRET", testSecret)

	_, err := Load()
	if err == nil {
		t.Error("Expected error when DB_PASSWORD is missing")
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	clearConfigEnvVars()
	t.Setenv("DB_PASSWORD", "testpass")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("Expected JWT_SECRET error, got %v", err)
	}
}

func TestValidate_InvalidPoolSizes(t *testing.T) {
	tests := []struct {
		name    string
		poolMin int
		poolMax int
		wantErr bool
	}{
		{name: "negative pool min", poolMin: -1, poolMax: 10, wantErr: true},
		{name: "zero pool max", poolMin: 0, poolMax: 0, wantErr: true},
		{name: "pool min greater than max", poolMin: 15, poolMax: 10, wantErr: true},
		{name: "valid pool sizes", poolMin: 2, poolMax: 10, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Database.PoolMin = tt.poolMin
			cfg.Database.PoolMax = tt.poolMax

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }},
		{name: "missing db host", mutate: func(c *Config) { c.Database.Host = "" }},
		{name: "missing db password", mutate: func(c *Config) { c.Database.Password = "" }},
		{name: "missing CORS origins", mutate: func(c *Config) { c.CORS.Origins = []string{} }},
		{name: "short jwt secret", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }},
		{name: "zero token ttl", mutate: func(c *Config) { c.Auth.TokenTTL = 0 }},
		{name: "admin email without password", mutate: func(c *Config) {
			c.Admin.Email = "admin@room4rent.com"
			c.Admin.Password = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error but got none")
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		Name:     "room4rent",
		User:     "postgres",
		Password: "p@ss word",
	}

	dsn := cfg.DSN()
	if !strings.HasPrefix(dsn, "postgres://postgres:") {
		t.Errorf("Expected postgres scheme with user, got %s", dsn)
	}
	if !strings.Contains(dsn, "@localhost:5432/room4rent?sslmode=disable") {
		t.Errorf("Expected host, database and sslmode in DSN, got %s", dsn)
	}
	if strings.Contains(dsn, "p@ss word") {
		t.Errorf("Expected password to be escaped, got %s", dsn)
	}
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{name: "single origin", input: "http://localhost:3000", expect: []string{"http://localhost:3000"}},
		{name: "multiple origins", input: "http://localhost:3000,http://localhost:3001", expect: []string{"http://localhost:3000", "http://localhost:3001"}},
		{name: "origins with spaces", input: " http://localhost:3000 , http://localhost:3001 ", expect: []string{"http://localhost:3000", "http://localhost:3001"}},
		{name: "empty string", input: "", expect: []string{}},
		{name: "only commas", input: ",,,", expect: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseOrigins(tt.input)
			if len(result) != len(tt.expect) {
				t.Errorf("Expected %d origins, got %d", len(tt.expect), len(result))
				return
			}
			for i, origin := range result {
				if origin != tt.expect[i] {
					t.Errorf("Expected origin %s at index %d, got %s", tt.expect[i], i, origin)
				}
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Env: "development"},
		Database: DatabaseConfig{
			Host: "localhost", Port: "5432", Name: "room4rent",
			User: "postgres", Password: "postgres", PoolMin: 2, PoolMax: 10,
		},
		CORS: CORSConfig{Origins: []string{"http://localhost:3000"}},
		Auth: AuthConfig{JWTSecret: testSecret, Issuer: "room4rent", TokenTTL: time.Hour},
	}
}

// Helper function to clear all config-related environment variables
func clearConfigEnvVars() {
	for _, key := range []string{
		"PORT", "ENV", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_POOL_MIN", "DB_POOL_MAX", "DB_AUTO_MIGRATE", "CORS_ORIGINS",
		"JWT_SECRET", "JWT_ISSUER", "JWT_TTL", "ADMIN_NAME", "ADMIN_EMAIL", "ADMIN_PASSWORD",
	} {
		os.Unsetenv(key)
	}
}

func TestLoadDatabase_IgnoresServerSettings(t *testing.T) {
	clearConfigEnvVars()
	t.Setenv("DB_PASSWORD", "testpass")

	cfg, err := LoadDatabase()
	if err != nil {
		t.Fatalf("LoadDatabase() should not need JWT_SECRET: %v", err)
	}
	if !strings.Contains(cfg.DSN(), "/room4rent?") {
		t.Errorf("Expected default database in DSN, got %s", cfg.DSN())
	}
}

func TestLoadDatabase_MissingPassword(t *testing.T) {
	clearConfigEnvVars()

	if _, err := LoadDatabase(); err == nil {
		t.Fatal("Expected error when DB_PASSWORD is missing")
	}
}
