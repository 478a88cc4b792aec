package config

import (
	"context"
	"crypto/rand"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/hcportal/leave-portal/internal/core/domain"
)

// MinSecretLength is the shortest signing secret accepted in production.
const MinSecretLength = 32

// ErrWeakSecret is returned when a production secret is too short.
var ErrWeakSecret = fmt.Errorf("signing secret must be at least %d bytes", MinSecretLength)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Seed  SeedConfig

	// SecretGenerated is set when AUTH_SECRET was absent outside production
	// and a random per-process secret was used instead.
	SecretGenerated bool

	// ProxyRanges is Auth.TrustedProxies parsed into networks.
	ProxyRanges []*net.IPNet
}

type AuthConfig struct {
	Secret           string        `env:"AUTH_SECRET"`
	Issuer           string        `env:"AUTH_ISSUER,             default=leave-portal"`
	TokenTTL         time.Duration `env:"AUTH_TOKEN_TTL,          default=720h"`
	CookieName       string        `env:"AUTH_COOKIE_NAME,        default=hc_session"`
	LoginMaxAttempts int           `env:"AUTH_LOGIN_MAX_ATTEMPTS, default=5"`
	LoginWindow      time.Duration `env:"AUTH_LOGIN_WINDOW,       default=15m"`
	LoginLockout     time.Duration `env:"AUTH_LOGIN_LOCKOUT,      default=15m"`
	LoginRatePerMin  int           `env:"AUTH_LOGIN_RATE_PER_MIN, default=30"`
	// TrustedProxies lists the CIDRs whose X-Forwarded-For is believed.
	// Empty means the client address is the TCP peer.
	TrustedProxies []string `env:"AUTH_TRUSTED_PROXIES"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=leave_portal"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr    string        `env:"REDIS_ADDR,    default=localhost:6379"`
	DB      int           `env:"REDIS_DB,      default=0"`
	Timeout time.Duration `env:"REDIS_TIMEOUT, default=5s"`
}

type SeedConfig struct {
	CSVPath          string `env:"SEED_CSV_PATH,          default=employees.csv"`
	AdminPassword    string `env:"SEED_ADMIN_PASSWORD,    default=admin123"`
	EmployeePassword string `env:"SEED_EMPLOYEE_PASSWORD, default=password123"`
	EmailDomain      string `env:"SEED_EMAIL_DOMAIN,      default=company.com"`
	Workers          int    `env:"SEED_WORKERS,           default=8"`
}

// IsProduction reports whether the process runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from lookuper and applies the signing secret
// policy: required and at least MinSecretLength bytes in production, random
// per process otherwise.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.resolveSecret(); err != nil {
		return nil, err
	}

	ranges, err := parseCIDRs(cfg.Auth.TrustedProxies)
	if err != nil {
		return nil, err
	}
	cfg.ProxyRanges = ranges
	return &cfg, nil
}

func parseCIDRs(values []string) ([]*net.IPNet, error) {
	var ranges []*net.IPNet
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		_, ipNet, err := net.ParseCIDR(v)
		if err != nil {
			return nil, fmt.Errorf("config: AUTH_TRUSTED_PROXIES: %w", err)
		}
		ranges = append(ranges, ipNet)
	}
	return ranges, nil
}

func (c *Config) resolveSecret() error {
	switch {
	case c.IsProduction() && c.Auth.Secret == "":
		return fmt.Errorf("config: AUTH_SECRET: %w", domain.ErrMissingSecret)
	case c.IsProduction() && len(c.Auth.Secret) < MinSecretLength:
		return fmt.Errorf("config: AUTH_SECRET: %w", ErrWeakSecret)
	case c.Auth.Secret == "":
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("config: generate secret: %w", err)
		}
		c.Auth.Secret = secret
		c.SecretGenerated = true
	}
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, MinSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", buf), nil
}
