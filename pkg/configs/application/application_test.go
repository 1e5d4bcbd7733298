package application_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/bettermarks/licensing-k8s/pkg/configs/application"
	"github.com/bettermarks/licensing-k8s/pkg/segment"
	"github.com/google/go-cmp/cmp"
	"k8s.io/utils/ptr"
)

func TestBuiltin(t *testing.T) {
	t.Run("it has valid entries for every segment", func(t *testing.T) {
		if err := application.Builtin().Validate(); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("every segment resolves to non-empty config", func(t *testing.T) {
		for _, s := range segment.All() {
			conf, err := application.Lookup(s)
			if err != nil {
				t.Fatalf("%s: %v", s, err)
			}
			if conf.Segment != s || conf.LicensingServiceURL == "" || len(conf.JWTVerificationKeys) == 0 {
				t.Errorf("%s: config looks empty: %+v", s, conf)
			}
		}
	})

	t.Run("only local segment logs in console format", func(t *testing.T) {
		for _, s := range segment.All() {
			conf, err := application.Lookup(s)
			if err != nil {
				t.Fatal(err)
			}
			want := application.FormatJSON
			if s.IsLocal() {
				want = application.FormatConsole
			}
			if conf.LogFormat != want {
				t.Errorf("%s: (actual, expected) = (%s, %s)", s, conf.LogFormat, want)
			}
		}
	})

	t.Run("only production has data event api url", func(t *testing.T) {
		for _, s := range segment.All() {
			conf, err := application.Lookup(s)
			if err != nil {
				t.Fatal(err)
			}
			if (conf.DataEventAPIURL != nil) != s.IsProduction() {
				t.Errorf("%s: DataEventAPIURL = %v", s, conf.DataEventAPIURL)
			}
		}
	})
}

func TestBuiltin_IsNotSharedWithCallers(t *testing.T) {
	before, err := application.Lookup(segment.LOC00)
	if err != nil {
		t.Fatal(err)
	}

	table := application.Builtin()
	c := table[segment.LOC00]
	c.LogLevel = "CRITICAL"
	for kid := range c.JWTVerificationKeys {
		c.JWTVerificationKeys[kid] = application.JWTKey{Format: "pem", Key: "broken"}
	}
	*c.EventsExportFunction = "broken"
	table[segment.LOC00] = c
	delete(table, segment.PRO00)

	looked, err := application.Lookup(segment.LOC00)
	if err != nil {
		t.Fatal(err)
	}
	looked.JWTVerificationKeys["injected"] = application.JWTKey{}

	after, err := application.Lookup(segment.LOC00)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("builtin table is modified through copies (-before +after):\n%s", diff)
	}
	if _, err := application.Lookup(segment.PRO00); err != nil {
		t.Errorf("builtin table lost an entry: %v", err)
	}
	if err := application.Builtin().Validate(); err != nil {
		t.Errorf("builtin table is broken: %v", err)
	}
}

func TestTable_Validate(t *testing.T) {
	type When struct {
		table func() application.Table
	}
	type Then struct {
		err error
	}

	copyBuiltin := func() application.Table {
		tab := application.Table{}
		for k, v := range application.Builtin() {
			keys := map[string]application.JWTKey{}
			for kid, key := range v.JWTVerificationKeys {
				keys[kid] = key
			}
			v.JWTVerificationKeys = keys
			tab[k] = v
		}
		return tab
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			err := when.table().Validate()
			if !errors.Is(err, then.err) {
				t.Errorf("(actual, expected) = (%v, %v)", err, then.err)
			}
		}
	}

	t.Run("when a segment is missing, it reports missing configuration", theory(
		When{
			table: func() application.Table {
				tab := copyBuiltin()
				delete(tab, segment.CI01)
				return tab
			},
		},
		Then{err: application.ErrMissingConfiguration},
	))

	t.Run("when an entry claims another segment, it is invalid", theory(
		When{
			table: func() application.Table {
				tab := copyBuiltin()
				c := tab[segment.DEV01]
				c.Segment = segment.DEV00
				tab[segment.DEV01] = c
				return tab
			},
		},
		Then{err: application.ErrInvalidConfiguration},
	))

	t.Run("when a JWT key is not an EC public key, it is invalid", theory(
		When{
			table: func() application.Table {
				tab := copyBuiltin()
				c := tab[segment.PRO00]
				c.JWTVerificationKeys["broken"] = application.JWTKey{
					Format: "pem",
					Desc:   "broken",
					Key:    "-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----\n",
				}
				tab[segment.PRO00] = c
				return tab
			},
		},
		Then{err: application.ErrInvalidConfiguration},
	))

	t.Run("when sample rate is out of range, it is invalid", theory(
		When{
			table: func() application.Table {
				tab := copyBuiltin()
				c := tab[segment.LOC00]
				c.APMTransactionSampleRate = "1.5"
				tab[segment.LOC00] = c
				return tab
			},
		},
		Then{err: application.ErrInvalidConfiguration},
	))

	t.Run("when log format is unknown, it is invalid", theory(
		When{
			table: func() application.Table {
				tab := copyBuiltin()
				c := tab[segment.CI00]
				c.LogFormat = "xml"
				tab[segment.CI00] = c
				return tab
			},
		},
		Then{err: application.ErrInvalidConfiguration},
	))
}

func TestConfig_Data(t *testing.T) {
	t.Run("it renders required keys and only set optional keys", func(t *testing.T) {
		conf := application.Config{
			Segment:                  segment.CI00,
			LogFormat:                application.FormatJSON,
			LogLevel:                 application.LevelInfo,
			LicensingServiceURL:      "https://licensing.example.com",
			APMURL:                   "",
			APMEnabled:               false,
			APMTransactionSampleRate: "0.1",
			JWTVerificationKeys: map[string]application.JWTKey{
				"kid-2": {Format: "pem", Desc: "second", Key: "KEY2"},
				"kid-1": {Format: "pem", Desc: "first", Key: "KEY1"},
			},
			SDWHPort: ptr.To("22"),
		}

		got, err := conf.Data()
		if err != nil {
			t.Fatal(err)
		}

		want := map[string]string{
			"SEGMENT":                     "ci00",
			"LOG_FORMAT":                  "json",
			"LOG_LEVEL":                   "INFO",
			"LICENSING_SERVICE_URL":       "https://licensing.example.com",
			"APM_URL":                     "",
			"APM_ENABLED":                 "false",
			"APM_TRANSACTION_SAMPLE_RATE": "0.1",
			"JWT_VERIFICATION_KEYS":       `{"kid-1":{"format":"pem","desc":"first","key":"KEY1"},"kid-2":{"format":"pem","desc":"second","key":"KEY2"}}`,
			"SDWH_PORT":                   "22",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("data mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("JWT keys round trip through the ConfigMap value", func(t *testing.T) {
		conf, err := application.Lookup(segment.PRO00)
		if err != nil {
			t.Fatal(err)
		}
		data, err := conf.Data()
		if err != nil {
			t.Fatal(err)
		}
		got := map[string]application.JWTKey{}
		if err := json.Unmarshal([]byte(data["JWT_VERIFICATION_KEYS"]), &got); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(conf.JWTVerificationKeys, got); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
		if data["DATA_EVENT_API_URL"] != "https://data.bettermarks.com/events" {
			t.Errorf("unexpected DATA_EVENT_API_URL: %q", data["DATA_EVENT_API_URL"])
		}
		if data["APM_ENABLED"] != "true" {
			t.Errorf("unexpected APM_ENABLED: %q", data["APM_ENABLED"])
		}
	})
}
