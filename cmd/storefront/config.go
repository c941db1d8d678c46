package main

import (
	"net/netip"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"storefront/pkg/infrastructure/mysql"
	"storefront/pkg/infrastructure/transport"
)

type config struct {
	ServeRESTAddress string `split_words:"true" default:":8080"`
	LogLevel         string `split_words:"true" default:"info"`

	DBUser            string        `split_words:"true" default:"storefront"`
	DBPassword        string        `split_words:"true"`
	DBAddress         string        `split_words:"true" default:"127.0.0.1:3306"`
	DBName            string        `split_words:"true" default:"storefront"`
	DBMaxConnections  int           `split_words:"true" default:"10"`
	DBConnMaxLifetime time.Duration `split_words:"true" default:"5m"`

	AMQPURL            string        `envconfig:"AMQP_URL"`
	AMQPExchange       string        `envconfig:"AMQP_EXCHANGE" default:"storefront.events"`
	AMQPConnectTimeout time.Duration `envconfig:"AMQP_CONNECT_TIMEOUT" default:"30s"`

	JWTSecret  string        `envconfig:"JWT_SECRET"`
	TokenTTL   time.Duration `split_words:"true" default:"24h"`
	BcryptCost int           `split_words:"true" default:"10"`

	AuthRateLimit float64 `split_words:"true" default:"5"`
	AuthBurst     int     `split_words:"true" default:"10"`
	MaxUploadSize int64   `split_words:"true" default:"5242880"`

	// TrustedProxies lists addresses or CIDR ranges of reverse proxies.
	TrustedProxies []string `split_words:"true"`

	MediaRoot      string   `split_words:"true" default:"./var/media"`
	MediaBaseURL   string   `envconfig:"MEDIA_BASE_URL" default:"http://localhost:8080/media"`
	StorageBuckets []string `split_words:"true" default:"avatars"`

	CatalogFile      string `split_words:"true"`
	PasswordResetURL string `envconfig:"PASSWORD_RESET_URL" default:"http://localhost:3000/reset-password"`
}

func parseEnv() (*config, error) {
	c := new(config)
	if err := envconfig.Process(appID, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse env")
	}
	return c, nil
}

func (c *config) validateServe() error {
	if c.JWTSecret == "" {
		return errors.New("STOREFRONT_JWT_SECRET must be set")
	}
	if c.TokenTTL <= 0 {
		return errors.New("STOREFRONT_TOKEN_TTL must be positive")
	}
	return nil
}

func (c *config) logLevel() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithError(err).Warn("unknown log level, falling back to info")
		return log.InfoLevel
	}
	return level
}

func (c *config) database() mysql.Config {
	return mysql.Config{
		User:            c.DBUser,
		Password:        c.DBPassword,
		Address:         c.DBAddress,
		Database:        c.DBName,
		MaxOpenConns:    c.DBMaxConnections,
		ConnMaxLifetime: c.DBConnMaxLifetime,
	}
}

func (c *config) transport() (transport.Options, error) {
	proxies := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, entry := range c.TrustedProxies {
		prefix, err := parseProxy(entry)
		if err != nil {
			return transport.Options{}, errors.Wrapf(err, "STOREFRONT_TRUSTED_PROXIES entry %q", entry)
		}
		proxies = append(proxies, prefix)
	}
	return transport.Options{
		AuthRateLimit:  rate.Limit(c.AuthRateLimit),
		AuthBurst:      c.AuthBurst,
		MaxUploadSize:  c.MaxUploadSize,
		TrustedProxies: proxies,
	}, nil
}

func parseProxy(entry string) (netip.Prefix, error) {
	entry = strings.TrimSpace(entry)
	if strings.Contains(entry, "/") {
		prefix, err := netip.ParsePrefix(entry)
		return prefix.Masked(), err
	}
	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}
