// Package workloads holds what every resource assembler shares:
// placement of workloads, the Chart interface and validation of inputs.
package workloads

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bettermarks/licensing-k8s/pkg/workloads/metasource"
	"github.com/google/go-containerregistry/pkg/name"
	kubecore "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/validation"
)

// ErrMalformed is returned when an assembler is given structurally invalid input.
var ErrMalformed = errors.New("malformed")

// Chart is a set of k8s resources which is emitted together.
type Chart interface {
	metasource.ResourceBuilder[Placement, []runtime.Object]

	// Id of the chart.
	//
	// Manifests are emitted into a file named after this.
	Id() string
}

// Placement tells where workloads run: namespace, identity and nodes.
type Placement struct {
	namespace      string
	serviceAccount string
	nodeSelector   map[string]string
}

// NewPlacement validates and returns Placement.
//
// nodeSelector can be empty; then workloads are not pinned to nodes.
func NewPlacement(namespace string, serviceAccount string, nodeSelector map[string]string) (Placement, error) {
	if err := ValidateLabel("namespace", namespace); err != nil {
		return Placement{}, err
	}
	if err := ValidateName("service account", serviceAccount); err != nil {
		return Placement{}, err
	}
	for k, v := range nodeSelector {
		if errs := validation.IsQualifiedName(k); len(errs) != 0 {
			return Placement{}, fmt.Errorf("%w: node selector key %q: %s", ErrMalformed, k, strings.Join(errs, "; "))
		}
		if errs := validation.IsValidLabelValue(v); len(errs) != 0 {
			return Placement{}, fmt.Errorf("%w: node selector value %q: %s", ErrMalformed, v, strings.Join(errs, "; "))
		}
	}

	return Placement{
		namespace:      namespace,
		serviceAccount: serviceAccount,
		nodeSelector:   maps.Clone(nodeSelector),
	}, nil
}

func (p Placement) Namespace() string {
	return p.namespace
}

func (p Placement) ServiceAccount() string {
	return p.serviceAccount
}

// NodeSelector returns a copy of node selector, or nil if there are none.
func (p Placement) NodeSelector() map[string]string {
	if len(p.nodeSelector) == 0 {
		return nil
	}
	return maps.Clone(p.nodeSelector)
}

func (p Placement) Pinned() bool {
	return len(p.nodeSelector) != 0
}

// Tolerations returns tolerations for taints of nodes selected by the placement.
//
// Each label in node selector yields a toleration for a NoSchedule taint
// with the same key and value. When the placement is not pinned, this returns nil.
func (p Placement) Tolerations() []kubecore.Toleration {
	if !p.Pinned() {
		return nil
	}
	keys := slices.Sorted(maps.Keys(p.nodeSelector))
	tols := make([]kubecore.Toleration, 0, len(keys))
	for _, k := range keys {
		tols = append(tols, kubecore.Toleration{
			Key:      k,
			Operator: kubecore.TolerationOpEqual,
			Value:    p.nodeSelector[k],
			Effect:   kubecore.TaintEffectNoSchedule,
		})
	}
	return tols
}

// EnvFrom returns environment sources of a container reading a ConfigMap and Secrets.
//
// Empty configMap is skipped.
func EnvFrom(configMap string, secrets ...string) []kubecore.EnvFromSource {
	envs := []kubecore.EnvFromSource{}
	if configMap != "" {
		envs = append(envs, kubecore.EnvFromSource{
			ConfigMapRef: &kubecore.ConfigMapEnvSource{
				LocalObjectReference: kubecore.LocalObjectReference{Name: configMap},
			},
		})
	}
	for _, s := range secrets {
		envs = append(envs, kubecore.EnvFromSource{
			SecretRef: &kubecore.SecretEnvSource{
				LocalObjectReference: kubecore.LocalObjectReference{Name: s},
			},
		})
	}
	return envs
}

// ValidateName checks that the value can be a name of k8s object (DNS subdomain).
func ValidateName(what string, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrMalformed, what)
	}
	if errs := validation.IsDNS1123Subdomain(value); len(errs) != 0 {
		return fmt.Errorf("%w: %s %q: %s", ErrMalformed, what, value, strings.Join(errs, "; "))
	}
	return nil
}

// ValidateLabel checks that the value can be a name of Service, Namespace or container (DNS label).
func ValidateLabel(what string, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrMalformed, what)
	}
	if errs := validation.IsDNS1123Label(value); len(errs) != 0 {
		return fmt.Errorf("%w: %s %q: %s", ErrMalformed, what, value, strings.Join(errs, "; "))
	}
	return nil
}

// ValidateImage checks that the value is a container image reference.
func ValidateImage(what string, image string) error {
	if image == "" {
		return fmt.Errorf("%w: %s is required", ErrMalformed, what)
	}
	if _, err := name.ParseReference(image); err != nil {
		return fmt.Errorf("%w: %s %q: %w", ErrMalformed, what, image, err)
	}
	return nil
}
