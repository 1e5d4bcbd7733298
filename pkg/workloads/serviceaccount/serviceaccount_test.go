package serviceaccount_test

import (
	"errors"
	"testing"

	"github.com/bettermarks/licensing-k8s/internal/testutils/kcmp"
	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/serviceaccount"
	kubecore "k8s.io/api/core/v1"
	kuberbac "k8s.io/api/rbac/v1"
)

func TestNew_Malformed(t *testing.T) {
	for name, props := range map[string]serviceaccount.Props{
		"no name":            {},
		"bad pull secret":    {Name: "licensing", ImagePullSecrets: []string{"Registry Credentials"}},
		"invalid characters": {Name: "licensing_sa"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := serviceaccount.New(props); !errors.Is(err, workloads.ErrMalformed) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestChart_Build(t *testing.T) {
	type Then struct {
		pullSecrets []kubecore.LocalObjectReference
	}
	theory := func(pullSecrets []string, then Then) func(*testing.T) {
		return func(t *testing.T) {
			c, err := serviceaccount.New(serviceaccount.Props{
				Name: "licensing", ImagePullSecrets: pullSecrets,
			})
			if err != nil {
				t.Fatal(err)
			}
			p, err := workloads.NewPlacement("licensing", "licensing", nil)
			if err != nil {
				t.Fatal(err)
			}

			objs := c.Build(p)
			if len(objs) != 3 {
				t.Fatalf("unexpected number of objects: %d", len(objs))
			}

			sa := objs[0].(*kubecore.ServiceAccount)
			if sa.Name != "licensing" || sa.Namespace != "licensing" {
				t.Errorf("service account: %s/%s", sa.Namespace, sa.Name)
			}
			if diff := kcmp.Diff(then.pullSecrets, sa.ImagePullSecrets); diff != "" {
				t.Errorf("imagePullSecrets (-want +got):\n%s", diff)
			}

			role := objs[1].(*kuberbac.Role)
			wantRules := []kuberbac.PolicyRule{
				{APIGroups: []string{""}, Resources: []string{"pods"}, Verbs: []string{"get", "list", "watch"}},
			}
			if diff := kcmp.Diff(wantRules, role.Rules); diff != "" {
				t.Errorf("rules (-want +got):\n%s", diff)
			}

			binding := objs[2].(*kuberbac.RoleBinding)
			wantRef := kuberbac.RoleRef{APIGroup: "rbac.authorization.k8s.io", Kind: "Role", Name: role.Name}
			if diff := kcmp.Diff(wantRef, binding.RoleRef); diff != "" {
				t.Errorf("roleRef (-want +got):\n%s", diff)
			}
			wantSubjects := []kuberbac.Subject{{Kind: "ServiceAccount", Name: sa.Name, Namespace: sa.Namespace}}
			if diff := kcmp.Diff(wantSubjects, binding.Subjects); diff != "" {
				t.Errorf("subjects (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("with registry credentials", theory(
		[]string{serviceaccount.RegistryCredentials},
		Then{pullSecrets: []kubecore.LocalObjectReference{{Name: "registry-credentials"}}},
	))
	t.Run("without pull secrets", theory(nil, Then{}))
}
