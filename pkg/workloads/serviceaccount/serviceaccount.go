// Package serviceaccount assembles the identity Licensing workloads run as.
package serviceaccount

import (
	"fmt"

	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/metasource"
	kubecore "k8s.io/api/core/v1"
	kuberbac "k8s.io/api/rbac/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

const (
	ChartId = "licensing-service-account"

	// secret with credentials of the container registry.
	RegistryCredentials = "registry-credentials"
)

type Props struct {
	Name string

	// Secrets to pull images with.
	ImagePullSecrets []string
}

type Chart struct {
	props Props
}

var _ workloads.Chart = &Chart{}

func New(props Props) (*Chart, error) {
	if err := workloads.ValidateName("name", props.Name); err != nil {
		return nil, fmt.Errorf("service account: %w", err)
	}
	for _, s := range props.ImagePullSecrets {
		if err := workloads.ValidateName("image pull secret", s); err != nil {
			return nil, fmt.Errorf("service account: %w", err)
		}
	}
	props.ImagePullSecrets = append([]string{}, props.ImagePullSecrets...)
	return &Chart{props: props}, nil
}

func (c *Chart) Id() string {
	return ChartId
}

func (c *Chart) Name() string {
	return c.props.Name
}

func (c *Chart) Instance() string {
	return c.props.Name
}

func (c *Chart) Component() string {
	return "service-account"
}

func (c *Chart) Build(p workloads.Placement) []runtime.Object {
	return []runtime.Object{c.ServiceAccount(p), c.Role(p), c.RoleBinding(p)}
}

func (c *Chart) ServiceAccount(p workloads.Placement) *kubecore.ServiceAccount {
	var pullSecrets []kubecore.LocalObjectReference
	for _, s := range c.props.ImagePullSecrets {
		pullSecrets = append(pullSecrets, kubecore.LocalObjectReference{Name: s})
	}
	return &kubecore.ServiceAccount{
		ObjectMeta:       metasource.ToObjectMeta(c, p.Namespace()),
		ImagePullSecrets: pullSecrets,
	}
}

// Role lets workloads read pods in their namespace.
func (c *Chart) Role(p workloads.Placement) *kuberbac.Role {
	return &kuberbac.Role{
		ObjectMeta: metasource.ToObjectMeta(c, p.Namespace()),
		Rules: []kuberbac.PolicyRule{
			{
				APIGroups: []string{""},
				Resources: []string{"pods"},
				Verbs:     []string{"get", "list", "watch"},
			},
		},
	}
}

func (c *Chart) RoleBinding(p workloads.Placement) *kuberbac.RoleBinding {
	return &kuberbac.RoleBinding{
		ObjectMeta: metasource.ToObjectMeta(c, p.Namespace()),
		RoleRef: kuberbac.RoleRef{
			APIGroup: kuberbac.GroupName,
			Kind:     "Role",
			Name:     c.Instance(),
		},
		Subjects: []kuberbac.Subject{
			{
				Kind:      kuberbac.ServiceAccountKind,
				Name:      c.Instance(),
				Namespace: p.Namespace(),
			},
		},
	}
}
