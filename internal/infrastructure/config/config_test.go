package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcportal/leave-portal/internal/core/domain"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "hc_session", cfg.Auth.CookieName)
	assert.Equal(t, "leave-portal", cfg.Auth.Issuer)
	assert.Equal(t, 5, cfg.Auth.LoginMaxAttempts)
	assert.Equal(t, "leave_portal", cfg.Mongo.Database)
	assert.Equal(t, 8, cfg.Seed.Workers)
	assert.Equal(t, "company.com", cfg.Seed.EmailDomain)
}

func TestLoadWith_GeneratesSecretOutsideProduction(t *testing.T) {
	first, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)
	second, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.True(t, first.SecretGenerated)
	assert.GreaterOrEqual(t, len(first.Auth.Secret), MinSecretLength)
	assert.NotEqual(t, first.Auth.Secret, second.Auth.Secret)
}

func TestLoadWith_KeepsConfiguredSecret(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"AUTH_SECRET": "short-dev-secret",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.SecretGenerated)
	assert.Equal(t, "short-dev-secret", cfg.Auth.Secret)
}

func TestLoadWith_ProductionSecretPolicy(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr error
	}{
		{name: "missing", secret: "", wantErr: domain.ErrMissingSecret},
		{name: "too short", secret: "only-sixteen-byt", wantErr: ErrWeakSecret},
		{name: "long enough", secret: strings.Repeat("k", MinSecretLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{"ENV": "production"}
			if tt.secret != "" {
				env["AUTH_SECRET"] = tt.secret
			}

			cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.True(t, cfg.IsProduction())
			assert.False(t, cfg.SecretGenerated)
		})
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":                    "9090",
		"LOG_PRETTY":              "true",
		"AUTH_TOKEN_TTL":          "1h",
		"AUTH_LOGIN_MAX_ATTEMPTS": "3",
		"SEED_WORKERS":            "2",
		"REDIS_DB":                "4",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 3, cfg.Auth.LoginMaxAttempts)
	assert.Equal(t, 2, cfg.Seed.Workers)
	assert.Equal(t, 4, cfg.Redis.DB)
}

func TestLoadWith_TrustedProxies(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"AUTH_TRUSTED_PROXIES": "10.0.0.0/8, 192.168.1.10/32",
	}))
	require.NoError(t, err)

	require.Len(t, cfg.ProxyRanges, 2)
	assert.Equal(t, "10.0.0.0/8", cfg.ProxyRanges[0].String())
	assert.Equal(t, "192.168.1.10/32", cfg.ProxyRanges[1].String())
}

func TestLoadWith_NoTrustedProxiesByDefault(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)
	assert.Empty(t, cfg.ProxyRanges)
}

func TestLoadWith_InvalidTrustedProxy(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"AUTH_TRUSTED_PROXIES": "not-a-cidr",
	}))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "AUTH_TRUSTED_PROXIES"))
}
