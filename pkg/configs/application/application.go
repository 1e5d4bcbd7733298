// Package application holds the non-secret runtime configuration of the
// Licensing service for each segment.
package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"strconv"

	"github.com/bettermarks/licensing-k8s/pkg/segment"
	"github.com/golang-jwt/jwt/v5"
)

type LogFormat string

const (
	FormatConsole LogFormat = "console"
	FormatJSON    LogFormat = "json"
)

type LogLevel string

const (
	LevelDebug   LogLevel = "DEBUG"
	LevelInfo    LogLevel = "INFO"
	LevelWarning LogLevel = "WARNING"
	LevelError   LogLevel = "ERROR"
)

// JWTKey is a public key verifying JWS signatures of a peer service.
type JWTKey struct {
	Format string `json:"format"`
	Desc   string `json:"desc"`
	Key    string `json:"key"`
}

// Config is the configuration of the Licensing service in one segment.
//
// Pointer fields are optional. Nil means "not set", and such keys are not
// put into the ConfigMap.
type Config struct {
	Segment                  segment.Segment
	LogFormat                LogFormat
	LogLevel                 LogLevel
	LicensingServiceURL      string
	APMURL                   string
	APMEnabled               bool
	APMTransactionSampleRate string

	// key id -> public key
	JWTVerificationKeys map[string]JWTKey

	EventsExportFunction *string
	EventsExportHook     *string
	DataEventAPIURL      *string
	SDWHPort             *string
	SDWHUser             *string
	SDWHDBHost           *string
	SDWHDBUser           *string
	SDWHDBPort           *string
	SDWHDBName           *string
}

var (
	ErrMissingConfiguration = errors.New("missing configuration")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Table maps segments to their configuration.
type Table map[segment.Segment]Config

// Builtin returns a copy of the configuration table shipped with this module.
func Builtin() Table {
	return builtin.Clone()
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for s, c := range t {
		out[s] = c.Clone()
	}
	return out
}

// Lookup returns the configuration of the segment in the builtin table.
func Lookup(s segment.Segment) (Config, error) {
	return builtin.Lookup(s)
}

// Lookup returns the configuration of the segment.
//
// When the table has no entry for the segment, it returns ErrMissingConfiguration.
func (t Table) Lookup(s segment.Segment) (Config, error) {
	c, ok := t[s]
	if !ok {
		return Config{}, fmt.Errorf("%w: application config for segment %q", ErrMissingConfiguration, s)
	}
	return c.Clone(), nil
}

// Validate checks that every segment has a valid entry.
func (t Table) Validate() error {
	for _, s := range segment.All() {
		c, err := t.Lookup(s)
		if err != nil {
			return err
		}
		if c.Segment != s {
			return fmt.Errorf(
				"%w: entry for %s claims segment %q", ErrInvalidConfiguration, s, c.Segment,
			)
		}
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks values of the configuration.
//
// JWT verification keys should be PEM encoded EC public keys.
func (c Config) Validate() error {
	switch c.LogFormat {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("%w (%s): unknown log format %q", ErrInvalidConfiguration, c.Segment, c.LogFormat)
	}

	switch c.LogLevel {
	case LevelDebug, LevelInfo, LevelWarning, LevelError:
	default:
		return fmt.Errorf("%w (%s): unknown log level %q", ErrInvalidConfiguration, c.Segment, c.LogLevel)
	}

	if u, err := url.Parse(c.LicensingServiceURL); err != nil || !u.IsAbs() {
		return fmt.Errorf(
			"%w (%s): licensing service url should be absolute: %q",
			ErrInvalidConfiguration, c.Segment, c.LicensingServiceURL,
		)
	}

	if c.APMEnabled && c.APMURL == "" {
		return fmt.Errorf("%w (%s): APM is enabled without url", ErrInvalidConfiguration, c.Segment)
	}

	rate, err := strconv.ParseFloat(c.APMTransactionSampleRate, 64)
	if err != nil || rate < 0 || 1 < rate {
		return fmt.Errorf(
			"%w (%s): sample rate should be a number in [0, 1]: %q",
			ErrInvalidConfiguration, c.Segment, c.APMTransactionSampleRate,
		)
	}

	if len(c.JWTVerificationKeys) == 0 {
		return fmt.Errorf("%w (%s): no JWT verification keys", ErrInvalidConfiguration, c.Segment)
	}
	for kid, k := range c.JWTVerificationKeys {
		if k.Format != "pem" {
			return fmt.Errorf(
				"%w (%s): JWT key %s: unsupported format %q",
				ErrInvalidConfiguration, c.Segment, kid, k.Format,
			)
		}
		if _, err := jwt.ParseECPublicKeyFromPEM([]byte(k.Key)); err != nil {
			return fmt.Errorf(
				"%w (%s): JWT key %s: %w", ErrInvalidConfiguration, c.Segment, kid, err,
			)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	c.JWTVerificationKeys = maps.Clone(c.JWTVerificationKeys)
	for _, p := range []**string{
		&c.EventsExportFunction, &c.EventsExportHook, &c.DataEventAPIURL,
		&c.SDWHPort, &c.SDWHUser, &c.SDWHDBHost, &c.SDWHDBUser, &c.SDWHDBPort, &c.SDWHDBName,
	} {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	return c
}

// Data renders the configuration as ConfigMap data.
//
// Booleans are "true" or "false", and JWT verification keys are JSON.
// Unset optional values are left out.
func (c Config) Data() (map[string]string, error) {
	keys, err := json.Marshal(c.JWTVerificationKeys)
	if err != nil {
		return nil, fmt.Errorf("JWT_VERIFICATION_KEYS: %w", err)
	}

	data := map[string]string{
		"SEGMENT":                     c.Segment.String(),
		"LOG_FORMAT":                  string(c.LogFormat),
		"LOG_LEVEL":                   string(c.LogLevel),
		"LICENSING_SERVICE_URL":       c.LicensingServiceURL,
		"APM_URL":                     c.APMURL,
		"APM_ENABLED":                 strconv.FormatBool(c.APMEnabled),
		"APM_TRANSACTION_SAMPLE_RATE": c.APMTransactionSampleRate,
		"JWT_VERIFICATION_KEYS":       string(keys),
	}

	for k, v := range map[string]*string{
		"EVENTS_EXPORT_FUNCTION":    c.EventsExportFunction,
		"EVENTS_EXPORT_EXPORT_HOOK": c.EventsExportHook,
		"DATA_EVENT_API_URL":        c.DataEventAPIURL,
		"SDWH_PORT":                 c.SDWHPort,
		"SDWH_USER":                 c.SDWHUser,
		"SDWH_DB_HOST":              c.SDWHDBHost,
		"SDWH_DB_USER":              c.SDWHDBUser,
		"SDWH_DB_PORT":              c.SDWHDBPort,
		"SDWH_DB_NAME":              c.SDWHDBName,
	} {
		if v == nil {
			continue
		}
		data[k] = *v
	}

	return data, nil
}
