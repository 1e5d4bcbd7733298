// Package secret assembles Secrets of Licensing from resolved secret references.
//
// Literal references become Secrets as they are. External references become
// ExternalSecrets, and the external secrets operator creates the Secrets.
package secret

import (
	"fmt"
	"maps"

	"github.com/bettermarks/licensing-k8s/pkg/secrets"
	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/metasource"
	kubecore "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

const ChartId = "licensing-secrets"

var ExternalSecretKind = schema.GroupVersionKind{
	Group: "external-secrets.io", Version: "v1beta1", Kind: "ExternalSecret",
}

type Props struct {
	Secrets secrets.Set
}

type Chart struct {
	set secrets.Set
}

var _ workloads.Chart = &Chart{}

func New(props Props) (*Chart, error) {
	if len(props.Secrets.References) == 0 {
		return nil, fmt.Errorf("secret: %w: no secrets", workloads.ErrMalformed)
	}
	seen := map[string]struct{}{}
	for _, r := range props.Secrets.References {
		if err := workloads.ValidateName("secret", r.Name); err != nil {
			return nil, fmt.Errorf("secret: %w", err)
		}
		if _, ok := seen[r.Name]; ok {
			return nil, fmt.Errorf("secret: %w: %s is duplicated", workloads.ErrMalformed, r.Name)
		}
		seen[r.Name] = struct{}{}

		if r.IsLiteral() {
			if r.Literal == nil {
				return nil, fmt.Errorf("secret: %w: %s has no source", workloads.ErrMalformed, r.Name)
			}
			continue
		}
		if err := validateExternal(r.Name, r.External); err != nil {
			return nil, err
		}
	}
	return &Chart{set: props.Secrets}, nil
}

func validateExternal(name string, e *secrets.External) error {
	if err := workloads.ValidateName("secret store of "+name, e.Store); err != nil {
		return fmt.Errorf("secret: %w", err)
	}
	if e.StoreKind == "" {
		return fmt.Errorf("secret: %w: kind of secret store of %s is required", workloads.ErrMalformed, name)
	}
	if len(e.Extract) == 0 && len(e.Data) == 0 {
		return fmt.Errorf("secret: %w: %s picks nothing from the store", workloads.ErrMalformed, name)
	}
	for _, d := range e.Data {
		if d.SecretKey == "" || d.Key == "" {
			return fmt.Errorf("secret: %w: %s has a remote value without key", workloads.ErrMalformed, name)
		}
		switch d.Decoding {
		case secrets.DecodingNone, secrets.DecodingBase64:
		default:
			return fmt.Errorf("secret: %w: %s: unknown decoding %q", workloads.ErrMalformed, name, d.Decoding)
		}
	}
	return nil
}

func (c *Chart) Id() string {
	return ChartId
}

func (c *Chart) Name() string {
	return "licensing"
}

func (c *Chart) Instance() string {
	return "licensing-secrets"
}

func (c *Chart) Component() string {
	return "secret"
}

// Build returns one object per reference, in order of the set.
func (c *Chart) Build(p workloads.Placement) []runtime.Object {
	objs := make([]runtime.Object, 0, len(c.set.References))
	for _, r := range c.set.References {
		if r.IsLiteral() {
			objs = append(objs, c.Secret(p, r))
		} else {
			objs = append(objs, c.ExternalSecret(p, r))
		}
	}
	return objs
}

func (c *Chart) Secret(p workloads.Placement, r secrets.Reference) *kubecore.Secret {
	return &kubecore.Secret{
		ObjectMeta: metasource.ToObjectMetaNamed(c, r.Name, p.Namespace()),
		Type:       kubecore.SecretTypeOpaque,
		StringData: maps.Clone(r.Literal),
	}
}

// ExternalSecret named "ext-<name>" whose target is the Secret <name>.
func (c *Chart) ExternalSecret(p workloads.Placement, r secrets.Reference) *unstructured.Unstructured {
	e := r.External

	spec := map[string]interface{}{
		"refreshInterval": e.RefreshInterval,
		"secretStoreRef": map[string]interface{}{
			"name": e.Store,
			"kind": e.StoreKind,
		},
		"target": map[string]interface{}{
			"name": r.Name,
		},
	}

	if len(e.Extract) != 0 {
		dataFrom := make([]interface{}, 0, len(e.Extract))
		for _, key := range e.Extract {
			dataFrom = append(dataFrom, map[string]interface{}{
				"extract": map[string]interface{}{"key": key},
			})
		}
		spec["dataFrom"] = dataFrom
	}

	if len(e.Data) != 0 {
		data := make([]interface{}, 0, len(e.Data))
		for _, d := range e.Data {
			ref := map[string]interface{}{"key": d.Key}
			if d.Property != "" {
				ref["property"] = d.Property
			}
			if d.Decoding != secrets.DecodingNone {
				ref["decodingStrategy"] = string(d.Decoding)
			}
			data = append(data, map[string]interface{}{
				"secretKey": d.SecretKey,
				"remoteRef": ref,
			})
		}
		spec["data"] = data
	}

	meta := metasource.ToObjectMetaNamed(c, "ext-"+r.Name, p.Namespace())
	u := &unstructured.Unstructured{Object: map[string]interface{}{"spec": spec}}
	u.SetGroupVersionKind(ExternalSecretKind)
	u.SetName(meta.Name)
	u.SetNamespace(meta.Namespace)
	u.SetLabels(meta.Labels)
	return u
}
