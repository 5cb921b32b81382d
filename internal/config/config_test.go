package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "tomati_market", cfg.DBName)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid development config",
			cfg:     Config{Port: "5000", Env: "development", JWTSecret: "tomati-dev-secret-change-in-production"},
			wantErr: false,
		},
		{
			name:    "missing port",
			cfg:     Config{Env: "development", JWTSecret: "secret"},
			wantErr: true,
		},
		{
			name:    "missing JWT secret",
			cfg:     Config{Port: "5000", Env: "development"},
			wantErr: true,
		},
		{
			name:    "default secret rejected in production",
			cfg:     Config{Port: "5000", Env: "production", JWTSecret: "tomati-dev-secret-change-in-production", DBPassword: "strongpassword"},
			wantErr: true,
		},
		{
			name:    "short secret rejected in production",
			cfg:     Config{Port: "5000", Env: "production", JWTSecret: "short", DBPassword: "strongpassword"},
			wantErr: true,
		},
		{
			name: "weak DB password rejected in production",
			cfg: Config{
				Port: "5000", Env: "production",
				JWTSecret:  "a-very-long-production-grade-secret-value",
				DBPassword: "tomati",
			},
			wantErr: true,
		},
		{
			name: "valid production config",
			cfg: Config{
				Port: "5000", Env: "production",
				JWTSecret:  "a-very-long-production-grade-secret-value",
				DBPassword: "strongpassword",
				DBSSLMode:  "require",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
