package application

import (
	"github.com/bettermarks/licensing-k8s/pkg/segment"
	"k8s.io/utils/ptr"
)

// Non-secret configuration of each segment, as it is put into the ConfigMap.
var builtin = Table{
	segment.LOC00: {
		Segment:                  segment.LOC00,
		LogFormat:                FormatConsole,
		LogLevel:                 LevelDebug,
		LicensingServiceURL:      "https://licensing.bettermarks.loc",
		EventsExportFunction:     ptr.To("services.licensing.export.mock_export.export_event"),
		APMURL:                   "",
		APMEnabled:               false,
		APMTransactionSampleRate: "0.1",
		JWTVerificationKeys: map[string]JWTKey{
			"3e94b29d-c4fe-4f19-b627-dcb62f112a01": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF shop service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEPRHRuf4kEGKdYllznwF2w4T6K954\n/ltQbQZmzqDZ6WVhtfGm0ncQyv58E/uIu5UAYl55Nzprhbi+5leVyFsnaQ==\n-----END PUBLIC KEY-----\n",
			},
			"8a210c1b-1020-4835-a0c5-2c0b31c90095": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF hierarchy provider",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEpZa2khO++tAJJWjWXSWVnZ1wGl9P\nQajoLhpNGJGWJmFy4+lYyMC9g/R3ZaoAjYXwbOi2tNl4ROYqWsZGEvmgig==\n-----END PUBLIC KEY-----\n",
			},
			"9aac3057-e492-448e-90bf-1404124056b0": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF ordering service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEldVFYtN5IffED9PrPRHBwFmXHYWK\ngz9Inj/8651FRWekYyWvkdrvWkNRj5OLOpqtWRXFnRjqdxgeUPPJduajLQ==\n-----END PUBLIC KEY-----\n",
			},
			"d31c2005-cd17-4dd3-93fc-0bc07c4318da": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF backoffice service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEzSUdN8X3yf6V4NdhCHsP2mQdcZKA\n+uJWbcPr8YDjBDK4VOCaYm+WV3ce1yKFgqmXYZZEIdz5XIIPw7/zNdiJLQ==\n-----END PUBLIC KEY-----\n",
			},
		},
	},
	segment.DEV00: {
		Segment:                  segment.DEV00,
		LogFormat:                FormatJSON,
		LogLevel:                 LevelInfo,
		LicensingServiceURL:      "https://licensing-dev00.bettermarks.com",
		APMURL:                   "https://apm.bettermarks.com",
		APMEnabled:               true,
		APMTransactionSampleRate: "0.1",
		JWTVerificationKeys: map[string]JWTKey{
			"6a8913b1-8e57-436a-9551-0165b5ceaadc": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF shop service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAECK+vuevrAWEJ/pXBlPMfhxlFjT7S\nXX7f8xxa/6T1xuEBXRlaDI/pNWdHHkeFgoM/QOOX8N3gXI32h/J164lnJw==\n-----END PUBLIC KEY-----\n",
			},
			"deb57535-a9b6-437c-8ab0-edd24e888d24": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF hierarchy provider",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEUjGuzKKQf098S+FfEJyw81Bt1z0B\nS5sg2jF0b+tKGRiW4L/6wwLeXxsrCb4192gVxorIarb17o80BTGmMeaNEw==\n-----END PUBLIC KEY-----\n",
			},
			"9aac3057-e492-448e-90bf-1404124056b0": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF ordering service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEldVFYtN5IffED9PrPRHBwFmXHYWK\ngz9Inj/8651FRWekYyWvkdrvWkNRj5OLOpqtWRXFnRjqdxgeUPPJduajLQ==\n-----END PUBLIC KEY-----\n",
			},
			"cd07ca32-7d99-44c9-823e-e6103942767e": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF backoffice service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAE3ETb4eEvUXQB9zvpfe3z0slDZ+0c\nF2q3Eb1YTfCnaqE7eHPZ/4SKiwv8TojzJr3+/cImjqFkD4Xie0POo9wLfg==\n-----END PUBLIC KEY-----\n",
			},
		},
	},
	segment.DEV01: {
		Segment:                  segment.DEV01,
		LogFormat:                FormatJSON,
		LogLevel:                 LevelInfo,
		LicensingServiceURL:      "https://licensing-dev01.bettermarks.com",
		APMURL:                   "https://apm.bettermarks.com",
		APMEnabled:               true,
		APMTransactionSampleRate: "0.1",
		JWTVerificationKeys: map[string]JWTKey{
			"6a8913b1-8e57-436a-9551-0165b5ceaadc": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF shop service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAECK+vuevrAWEJ/pXBlPMfhxlFjT7S\nXX7f8xxa/6T1xuEBXRlaDI/pNWdHHkeFgoM/QOOX8N3gXI32h/J164lnJw==\n-----END PUBLIC KEY-----\n",
			},
			"deb57535-a9b6-437c-8ab0-edd24e888d24": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF hierarchy provider",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEUjGuzKKQf098S+FfEJyw81Bt1z0B\nS5sg2jF0b+tKGRiW4L/6wwLeXxsrCb4192gVxorIarb17o80BTGmMeaNEw==\n-----END PUBLIC KEY-----\n",
			},
			"9aac3057-e492-448e-90bf-1404124056b0": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF ordering service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEldVFYtN5IffED9PrPRHBwFmXHYWK\ngz9Inj/8651FRWekYyWvkdrvWkNRj5OLOpqtWRXFnRjqdxgeUPPJduajLQ==\n-----END PUBLIC KEY-----\n",
			},
			"cd07ca32-7d99-44c9-823e-e6103942767e": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF backoffice service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAE3ETb4eEvUXQB9zvpfe3z0slDZ+0c\nF2q3Eb1YTfCnaqE7eHPZ/4SKiwv8TojzJr3+/cImjqFkD4Xie0POo9wLfg==\n-----END PUBLIC KEY-----\n",
			},
		},
	},
	segment.CI00: {
		Segment:                  segment.CI00,
		LogFormat:                FormatJSON,
		LogLevel:                 LevelInfo,
		LicensingServiceURL:      "https://licensing-ci00.bettermarks.com",
		EventsExportFunction:     ptr.To("services.licensing.export.bettermarks_export.export_event"),
		EventsExportHook:         ptr.To("services.licensing.export.bettermarks_export.modified_event"),
		SDWHPort:                 ptr.To("22"),
		SDWHUser:                 ptr.To("ionos"),
		SDWHDBHost:               ptr.To("localhost"),
		SDWHDBUser:               ptr.To("bmsdwhbiuser"),
		SDWHDBPort:               ptr.To("5432"),
		SDWHDBName:               ptr.To("bmsdwh"),
		APMURL:                   "https://apm.bettermarks.com",
		APMEnabled:               true,
		APMTransactionSampleRate: "0.1",
		JWTVerificationKeys: map[string]JWTKey{
			"794724cc-d956-4009-9eba-46d2aa38eabc": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF shop service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEivNA6e6LoJKM886bFOCxQ7+3F36P\n+6QLxAGtJ5GIQDAQsOpaiKXAVaqJ2nAhGCdJbByzmtRn4nR/t0bU4jCGCA==\n-----END PUBLIC KEY-----\n",
			},
			"bd0bc964-cddf-4705-85ba-8d57be91977c": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF hierarchy provider",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEdlDx9TUME1wIxWNju6ax+RZOlkYO\njDigVFlep5dk30kCynjDYjBp0EsO4bePiyfK913/swEZ/r/CzUc2B7VlcQ==\n-----END PUBLIC KEY-----\n",
			},
			"9aac3057-e492-448e-90bf-1404124056b0": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF ordering service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEldVFYtN5IffED9PrPRHBwFmXHYWK\ngz9Inj/8651FRWekYyWvkdrvWkNRj5OLOpqtWRXFnRjqdxgeUPPJduajLQ==\n-----END PUBLIC KEY-----\n",
			},
			"cec04f88-14cb-442c-94c2-86196e33c926": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF backoffice service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAE7jG0Lko1bL1iy0exdlWt6ugJLN/D\n6W79hKhYYiMqu43fJci2Gd3huo6WQG9FrnoIzNIy6+pFbTbtVSuljy0EBQ==\n-----END PUBLIC KEY-----\n",
			},
		},
	},
	segment.CI01: {
		Segment:                  segment.CI01,
		LogFormat:                FormatJSON,
		LogLevel:                 LevelInfo,
		LicensingServiceURL:      "https://licensing-ci01.bettermarks.com",
		APMURL:                   "https://apm.bettermarks.com",
		APMEnabled:               true,
		APMTransactionSampleRate: "0.1",
		JWTVerificationKeys: map[string]JWTKey{
			"794724cc-d956-4009-9eba-46d2aa38eabc": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF shop service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEivNA6e6LoJKM886bFOCxQ7+3F36P\n+6QLxAGtJ5GIQDAQsOpaiKXAVaqJ2nAhGCdJbByzmtRn4nR/t0bU4jCGCA==\n-----END PUBLIC KEY-----\n",
			},
			"bd0bc964-cddf-4705-85ba-8d57be91977c": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF hierarchy provider",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEdlDx9TUME1wIxWNju6ax+RZOlkYO\njDigVFlep5dk30kCynjDYjBp0EsO4bePiyfK913/swEZ/r/CzUc2B7VlcQ==\n-----END PUBLIC KEY-----\n",
			},
			"9aac3057-e492-448e-90bf-1404124056b0": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF ordering service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEldVFYtN5IffED9PrPRHBwFmXHYWK\ngz9Inj/8651FRWekYyWvkdrvWkNRj5OLOpqtWRXFnRjqdxgeUPPJduajLQ==\n-----END PUBLIC KEY-----\n",
			},
			"cec04f88-14cb-442c-94c2-86196e33c926": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF backoffice service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAE7jG0Lko1bL1iy0exdlWt6ugJLN/D\n6W79hKhYYiMqu43fJci2Gd3huo6WQG9FrnoIzNIy6+pFbTbtVSuljy0EBQ==\n-----END PUBLIC KEY-----\n",
			},
		},
	},
	segment.PRO00: {
		Segment:                  segment.PRO00,
		LogFormat:                FormatJSON,
		LogLevel:                 LevelInfo,
		LicensingServiceURL:      "https://licensing.bettermarks.com",
		EventsExportFunction:     ptr.To("services.licensing.export.bettermarks_export.export_event"),
		EventsExportHook:         ptr.To("services.licensing.export.bettermarks_export.modified_event"),
		DataEventAPIURL:          ptr.To("https://data.bettermarks.com/events"),
		SDWHPort:                 ptr.To("22"),
		SDWHUser:                 ptr.To("ionos"),
		SDWHDBHost:               ptr.To("localhost"),
		SDWHDBUser:               ptr.To("bmsdwhbiuser"),
		SDWHDBPort:               ptr.To("5432"),
		SDWHDBName:               ptr.To("bmsdwh"),
		APMURL:                   "https://apm.bettermarks.com",
		APMEnabled:               true,
		APMTransactionSampleRate: "0.1",
		JWTVerificationKeys: map[string]JWTKey{
			"4b1cc728-5828-4639-8a27-a860dbd87aba": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF shop service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEUzo1cWp0LxhL6xRHUjX9LylocdWK\nCuGlz/Y7+1hawKFPcw7ZoeBCVDHUPYh9TGknnNIQHfkPZguwUUWPz2gpCA==\n-----END PUBLIC KEY-----\n",
			},
			"6a51f17d-7187-4408-a9bb-2c267cf2be78": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF hierarchy provider",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAE+TFRZVMMoK3y8ui+hSdLxjtmnwCP\ntHE8J1dsCduCSfhETqq9SgXKDks8KMkeYUmy2ykmWdyAmKydEwizTD4RDw==\n-----END PUBLIC KEY-----\n",
			},
			"9aac3057-e492-448e-90bf-1404124056b0": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF ordering service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEldVFYtN5IffED9PrPRHBwFmXHYWK\ngz9Inj/8651FRWekYyWvkdrvWkNRj5OLOpqtWRXFnRjqdxgeUPPJduajLQ==\n-----END PUBLIC KEY-----\n",
			},
			"72afe436-6b79-43a9-ae04-82d6af25f6ff": {
				Format: "pem",
				Desc:   "used as public (EC) JWS signature key OF backoffice service",
				Key:    "-----BEGIN PUBLIC KEY-----\nMFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAE4rQ1KsDrKZ2n5qyQyFRmGuEY8kI6\nx/x5t9ZnIyR96Dwr9uyPU9C5wSENDG95dlSgqgTTGDftBcavsP1DjhcydQ==\n-----END PUBLIC KEY-----",
			},
		},
	},
}
