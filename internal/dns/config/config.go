package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/haukened/rr-query/internal/dns/domain"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Servers is a list of upstream DNS servers in ip:port format.
	Servers []string `koanf:"servers" validate:"required,dive,ip_port"`

	// Timeout bounds one lookup across all servers.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// Parallel queries every server at once instead of in order.
	Parallel bool `koanf:"parallel"`

	// DisableCache bypasses the answer cache entirely.
	DisableCache bool `koanf:"disable_cache"`

	// CacheSize is the in-memory answer capacity. 0 keeps only the store.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// CacheDB is the bolt file answers persist to. Empty means memory only.
	CacheDB string `koanf:"cache_db"`

	// CacheFPRate is the Bloom filter's target false-positive rate.
	CacheFPRate float64 `koanf:"cache_fp_rate" validate:"gt=0,lt=1"`

	// QueryType and QueryClass apply when the command line omits them.
	QueryType  string `koanf:"query_type" validate:"required,rrtype"`
	QueryClass string `koanf:"query_class" validate:"required,rrclass"`
}

// DEFAULT_APP_CONFIG defines the default application configuration settings.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:          "prod",
	LogLevel:     "warn",
	Servers:      []string{"1.1.1.1:53", "1.0.0.1:53"},
	Timeout:      5 * time.Second,
	Parallel:     false,
	DisableCache: false,
	CacheSize:    1000,
	CacheDB:      "",
	CacheFPRate:  0.01,
	QueryType:    "A",
	QueryClass:   "IN",
}

// validIPPort validates whether the provided field value is a valid IP address and port combination.
// It expects the value to be in the format "IP:Port". The function returns true if the IP address
// is valid and both the IP and port are non-empty; otherwise, it returns false.
func validIPPort(fl validator.FieldLevel) bool {
	// stringify the field value to get the IP:Port format.
	addr := fl.Field().String()
	// Split the address into IP and port.
	ip, port, err := net.SplitHostPort(addr)
	if err != nil || ip == "" || port == "" {
		return false
	}
	// Check if the IP address is valid.
	if net.ParseIP(ip) == nil {
		return false
	}
	// Check if the port is a valid number between 1 and 65535.
	portNum, err := strconv.ParseUint(port, 10, 16)
	return err == nil && portNum > 0 && portNum < 65536
}

// validRRType accepts mnemonics ("AAAA") and RFC 3597 forms ("TYPE65280").
func validRRType(fl validator.FieldLevel) bool {
	_, err := domain.ParseRRType(fl.Field().String())
	return err == nil
}

// validRRClass accepts mnemonics ("IN") and RFC 3597 forms ("CLASS42").
func validRRClass(fl validator.FieldLevel) bool {
	_, err := domain.ParseRRClass(fl.Field().String())
	return err == nil
}

// envLoader is a function that loads environment variables with the prefix "DNS_".
// It transforms the keys to lowercase and removes the prefix.
// and can be mocked in tests.
var envLoader = func(k *koanf.Koanf) error {
	// Load environment variables with prefix "DNS_".
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "DNS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "DNS_"))
			value = strings.TrimSpace(value)

			if value == "" {
				return key, value
			}

			if strings.Contains(value, " ") || strings.Contains(value, ",") {
				parts := strings.FieldsFunc(value, func(r rune) bool {
					return r == ' ' || r == ','
				})
				return key, parts
			}

			return key, value
		},
	}), nil)
}

// defaultLoader loads default configuration values into the provided Koanf instance
// using the structs provider and the DEFAULT_APP_CONFIG struct. It returns an error
// if loading fails.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the custom "ip_port", "rrtype" and "rrclass"
// tags with the provided validator.
var registerValidation = func(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		"ip_port": validIPPort,
		"rrtype":  validRRType,
		"rrclass": validRRClass,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
