package deployment_test

import (
	"errors"
	"testing"

	"github.com/bettermarks/licensing-k8s/pkg/configs/deployment"
	"github.com/bettermarks/licensing-k8s/pkg/segment"
	kubecore "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

func TestBuiltin(t *testing.T) {
	if err := deployment.Builtin().Validate(); err != nil {
		t.Fatal(err)
	}

	for s, replicas := range map[segment.Segment]int32{
		segment.LOC00: 1,
		segment.DEV00: 1,
		segment.DEV01: 1,
		segment.CI00:  2,
		segment.CI01:  2,
		segment.PRO00: 4,
	} {
		conf, err := deployment.Lookup(s)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if conf.APIReplicas != replicas {
			t.Errorf("%s replicas: (actual, expected) = (%d, %d)", s, conf.APIReplicas, replicas)
		}
		if s.IsLocal() != conf.API.IsZero() {
			t.Errorf("%s: only local segment should leave api unsized", s)
		}
	}
}

func TestBuiltin_IsNotSharedWithCallers(t *testing.T) {
	table := deployment.Builtin()
	c := table[segment.DEV00]
	c.APIReplicas = 0
	c.API.RequestMemory.Set(1)
	table[segment.DEV00] = c
	delete(table, segment.PRO00)

	looked, err := deployment.Lookup(segment.DEV00)
	if err != nil {
		t.Fatal(err)
	}
	looked.API.LimitMemory.Set(1)

	after, err := deployment.Lookup(segment.DEV00)
	if err != nil {
		t.Fatal(err)
	}
	if after.APIReplicas != 1 {
		t.Errorf("replicas: (actual, expected) = (%d, %d)", after.APIReplicas, 1)
	}
	want := resource.MustParse("128Mi")
	if after.API.RequestMemory.Cmp(want) != 0 {
		t.Errorf("memory request: (actual, expected) = (%s, %s)", after.API.RequestMemory, &want)
	}
	if after.API.LimitMemory.Cmp(want) != 0 {
		t.Errorf("memory limit: (actual, expected) = (%s, %s)", after.API.LimitMemory, &want)
	}
	if _, err := deployment.Lookup(segment.PRO00); err != nil {
		t.Errorf("builtin table lost an entry: %v", err)
	}
}

func TestSizing_Requirements(t *testing.T) {
	type When struct {
		sizing deployment.Sizing
	}
	type Then struct {
		requests kubecore.ResourceList
		limits   kubecore.ResourceList
	}

	q := func(s string) *resource.Quantity {
		r := resource.MustParse(s)
		return &r
	}

	eq := func(a, b kubecore.ResourceList) bool {
		if len(a) != len(b) {
			return false
		}
		for k, va := range a {
			vb, ok := b[k]
			if !ok || va.Cmp(vb) != 0 {
				return false
			}
		}
		return true
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			got := when.sizing.Requirements()
			if !eq(got.Requests, then.requests) {
				t.Errorf("requests: (actual, expected) = (%v, %v)", got.Requests, then.requests)
			}
			if !eq(got.Limits, then.limits) {
				t.Errorf("limits: (actual, expected) = (%v, %v)", got.Limits, then.limits)
			}
			if then.requests == nil && got.Requests != nil {
				t.Errorf("requests should be nil: %v", got.Requests)
			}
			if then.limits == nil && got.Limits != nil {
				t.Errorf("limits should be nil: %v", got.Limits)
			}
		}
	}

	t.Run("empty sizing has neither requests nor limits", theory(
		When{sizing: deployment.Sizing{}},
		Then{},
	))

	t.Run("full sizing", theory(
		When{
			sizing: deployment.Sizing{
				RequestCPU: q("0.25"), RequestMemory: q("512Mi"), LimitMemory: q("512Mi"),
			},
		},
		Then{
			requests: kubecore.ResourceList{
				kubecore.ResourceCPU:    resource.MustParse("250m"),
				kubecore.ResourceMemory: resource.MustParse("512Mi"),
			},
			limits: kubecore.ResourceList{
				kubecore.ResourceMemory: resource.MustParse("512Mi"),
			},
		},
	))

	t.Run("cpu only", theory(
		When{sizing: deployment.Sizing{RequestCPU: q("100m")}},
		Then{
			requests: kubecore.ResourceList{kubecore.ResourceCPU: resource.MustParse("100m")},
		},
	))
}

func TestTable_Validate(t *testing.T) {
	full := func() deployment.Table {
		tab := deployment.Table{}
		for k, v := range deployment.Builtin() {
			tab[k] = v
		}
		return tab
	}

	t.Run("missing segment", func(t *testing.T) {
		tab := full()
		delete(tab, segment.DEV01)
		if err := tab.Validate(); !errors.Is(err, deployment.ErrMissingConfiguration) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("no replicas", func(t *testing.T) {
		tab := full()
		c := tab[segment.CI00]
		c.APIReplicas = 0
		tab[segment.CI00] = c
		if err := tab.Validate(); !errors.Is(err, deployment.ErrInvalidConfiguration) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("limit lower than request", func(t *testing.T) {
		tab := full()
		c := tab[segment.PRO00]
		req := resource.MustParse("1Gi")
		c.API = deployment.Sizing{RequestMemory: &req, LimitMemory: c.API.LimitMemory}
		tab[segment.PRO00] = c
		if err := tab.Validate(); !errors.Is(err, deployment.ErrInvalidConfiguration) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
