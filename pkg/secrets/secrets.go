// Package secrets decides where Licensing workloads get their credentials from.
//
// On the local segment, secrets are literal placeholders checked in this module.
// On other segments, secrets are references into the external secret store,
// which are resolved by the external secrets operator in the cluster.
package secrets

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bettermarks/licensing-k8s/pkg/segment"
)

const (
	// Secret shared by the API, the migration job and the local database.
	LicensingSecret = "licensing-secret"

	// Secret used by the event export job.
	EventExportSecret = "licensing-event-export-secret"

	// Name of the ClusterSecretStore backed by the vault of the cloud provider.
	SecretStore = "stackit-secrets-manager"

	SecretStoreKind = "ClusterSecretStore"

	// How often external references are resolved again.
	RefreshInterval = "1h"
)

// Decoding strategy of a remote value.
type Decoding string

const (
	DecodingNone   Decoding = ""
	DecodingBase64 Decoding = "Base64"
)

// RemoteValue is a single value picked out of a key-value secret in the store.
type RemoteValue struct {
	// Key in the target Secret.
	SecretKey string

	// Path of the secret in the store.
	Key string

	// Key in the secret in the store.
	Property string

	Decoding Decoding
}

// External describes a Secret populated from the external store.
type External struct {
	Store           string
	StoreKind       string
	RefreshInterval string

	// Paths of key-value secrets whose every entry is copied into the target.
	Extract []string

	Data []RemoteValue
}

// Reference is a named source of credentials.
//
// Exactly one of Literal or External is set.
type Reference struct {
	// Name of the Secret which workloads mount.
	Name string

	Literal  map[string]string
	External *External
}

func (r Reference) IsLiteral() bool {
	return r.External == nil
}

var (
	ErrMissingSecret = errors.New("missing secret")
)

// Set is the secret references of a segment.
type Set struct {
	Segment    segment.Segment
	References []Reference
}

// Names returns names of Secrets in the set.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.References))
	for _, r := range s.References {
		names = append(names, r.Name)
	}
	return names
}

// Get returns the reference with the name.
func (s Set) Get(name string) (Reference, bool) {
	for _, r := range s.References {
		if r.Name == name {
			return r, true
		}
	}
	return Reference{}, false
}

// Require checks that every named Secret is in the set.
//
// When some are not, it returns ErrMissingSecret.
func (s Set) Require(names ...string) error {
	have := s.Names()
	for _, n := range names {
		if !slices.Contains(have, n) {
			return fmt.Errorf("%w: %s is not provided for segment %s", ErrMissingSecret, n, s.Segment)
		}
	}
	return nil
}

// Workload kinds consuming secrets.
type Workload string

const (
	API         Workload = "api"
	Migration   Workload = "migration"
	EventExport Workload = "event-export"
	Database    Workload = "database"
)

// RequiredBy returns names of Secrets which the workload reads its environment from.
func RequiredBy(w Workload) []string {
	switch w {
	case API, Migration, Database:
		return []string{LicensingSecret}
	case EventExport:
		return []string{EventExportSecret}
	}
	return nil
}

// Resolve returns the secret references for the segment.
func Resolve(s segment.Segment) (Set, error) {
	if _, err := segment.Parse(s.String()); err != nil {
		return Set{}, err
	}

	if s.IsLocal() {
		return Set{
			Segment: s,
			References: []Reference{
				{Name: LicensingSecret, Literal: localLicensingSecret()},
				{Name: EventExportSecret, Literal: localEventExportSecret()},
			},
		}, nil
	}

	return Set{
		Segment: s,
		References: []Reference{
			{Name: LicensingSecret, External: externalLicensingSecret(s)},
			{Name: EventExportSecret, External: externalEventExportSecret(s)},
		},
	}, nil
}

func external() *External {
	return &External{
		Store:           SecretStore,
		StoreKind:       SecretStoreKind,
		RefreshInterval: RefreshInterval,
	}
}

func postgresCredentials(s segment.Segment) string {
	return fmt.Sprintf("stackit/%s-pg-cluster-licensing/credentials", s)
}

func externalLicensingSecret(s segment.Segment) *External {
	e := external()
	e.Extract = []string{
		postgresCredentials(s),
		fmt.Sprintf("licensing/%s/credentials", s),
	}
	// the vault stores PEM values base64 encoded, since it accepts only key-value secrets.
	e.Data = []RemoteValue{
		{
			SecretKey: "LICENSING_SERVICE_PRIVATE_KEY",
			Key:       fmt.Sprintf("licensing/%s/licensing-service-private-key", s),
			Property:  "LICENSING_SERVICE_PRIVATE_KEY",
			Decoding:  DecodingBase64,
		},
	}
	return e
}

func externalEventExportSecret(s segment.Segment) *External {
	e := external()
	e.Extract = []string{postgresCredentials(s)}

	if s.IsProduction() {
		// the SDWH is reachable only in production, via its private network address.
		e.Extract = append(e.Extract, fmt.Sprintf("ionos/%s-sdwh/private-ip", s))
		e.Data = append(
			e.Data,
			RemoteValue{
				SecretKey: "SDWH_HOST_PRIVATE_KEY",
				Key:       fmt.Sprintf("ionos/%s-sdwh/rsa-private-key", s),
				Property:  "SDWH_HOST_PRIVATE_KEY",
				Decoding:  DecodingBase64,
			},
			RemoteValue{
				SecretKey: "SDWH_POSTGRES_SECRET",
				Key:       fmt.Sprintf("ionos/%s-sdwh/reader-password", s),
				Property:  "SDWH_POSTGRES_SECRET",
			},
			RemoteValue{
				SecretKey: "DATA_EVENT_API_KEY",
				Key:       fmt.Sprintf("%s_event_api_key_secret", s.Stage()),
				Property:  "DATA_EVENT_API_KEY",
			},
		)
	}

	e.Data = append(
		e.Data,
		RemoteValue{
			SecretKey: "BM_ENCRYPTION_PASSWORD",
			Key:       fmt.Sprintf("backend/%s/credentials", s),
			Property:  "BM_ENCRYPTION_PASSWORD",
		},
		RemoteValue{
			SecretKey: "MONGODB_URI",
			Key:       fmt.Sprintf("stackit/%s/application/readonly-secret", s),
			Property:  "MONGODB_URI",
		},
	)
	return e
}
