package ingresscontroller_test

import (
	"errors"
	"testing"

	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/ingresscontroller"
	"github.com/google/go-cmp/cmp"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func TestNew_Malformed(t *testing.T) {
	for name, props := range map[string]ingresscontroller.Props{
		"negative replicas": {Replicas: -1},
		"bad version":       {Version: "4.4.2 beta"},
		"bad tls secret":    {TLSSecret: "Not_A_Name"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ingresscontroller.New(props); !errors.Is(err, workloads.ErrMalformed) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestChart_Build(t *testing.T) {
	type When struct {
		props        ingresscontroller.Props
		nodeSelector map[string]string
	}
	type Then struct {
		version    string
		replicas   int64
		extraArgs  map[string]interface{}
		spread     bool
		selectorOf map[string]interface{}
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			c, err := ingresscontroller.New(when.props)
			if err != nil {
				t.Fatal(err)
			}
			p, err := workloads.NewPlacement("licensing", "licensing", when.nodeSelector)
			if err != nil {
				t.Fatal(err)
			}

			objs := c.Build(p)
			if len(objs) != 2 {
				t.Fatalf("unexpected number of objects: %d", len(objs))
			}

			repo := objs[0].(*unstructured.Unstructured)
			if repo.GetKind() != "HelmRepository" || repo.GetAPIVersion() != "source.toolkit.fluxcd.io/v1" {
				t.Errorf("repository kind: %s %s", repo.GetAPIVersion(), repo.GetKind())
			}
			if url, _, _ := unstructured.NestedString(repo.Object, "spec", "url"); url != ingresscontroller.HelmRepository {
				t.Errorf("repository url: %s", url)
			}

			rel := objs[1].(*unstructured.Unstructured)
			if rel.GetKind() != "HelmRelease" || rel.GetNamespace() != "licensing" {
				t.Errorf("release: %s %s/%s", rel.GetKind(), rel.GetNamespace(), rel.GetName())
			}
			if v, _, _ := unstructured.NestedString(rel.Object, "spec", "chart", "spec", "version"); v != then.version {
				t.Errorf("(actual, expected) = (%s, %s)", v, then.version)
			}
			if ref, _, _ := unstructured.NestedString(rel.Object, "spec", "chart", "spec", "sourceRef", "name"); ref != repo.GetName() {
				t.Errorf("release refers other repository: %s", ref)
			}

			controller, _, err := unstructured.NestedMap(rel.Object, "spec", "values", "controller")
			if err != nil {
				t.Fatal(err)
			}
			if got := controller["replicaCount"]; got != then.replicas {
				t.Errorf("replicas: (actual, expected) = (%v, %v)", got, then.replicas)
			}
			if diff := cmp.Diff(then.extraArgs, controller["extraArgs"]); diff != "" {
				t.Errorf("extraArgs (-want +got):\n%s", diff)
			}
			if class, _, _ := unstructured.NestedString(controller, "ingressClassResource", "name"); class != ingresscontroller.IngressClass {
				t.Errorf("ingress class: %s", class)
			}

			_, hasSpread := controller["topologySpreadConstraints"]
			if hasSpread != then.spread {
				t.Errorf("topologySpreadConstraints: (actual, expected) = (%v, %v)", hasSpread, then.spread)
			}
			if then.selectorOf == nil {
				if _, ok := controller["nodeSelector"]; ok {
					t.Errorf("unexpected nodeSelector: %v", controller["nodeSelector"])
				}
			} else if diff := cmp.Diff(then.selectorOf, controller["nodeSelector"]); diff != "" {
				t.Errorf("nodeSelector (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("local: single replica with tls", theory(
		When{
			props: ingresscontroller.Props{Replicas: 1, TLSSecret: "loc00-tls-secret"},
		},
		Then{
			version:   ingresscontroller.DefaultVersion,
			replicas:  1,
			extraArgs: map[string]interface{}{"default-ssl-certificate": "licensing/loc00-tls-secret"},
		},
	))

	t.Run("cluster: defaults with node selector", theory(
		When{
			nodeSelector: map[string]string{"nodetype": "application"},
		},
		Then{
			version:    "4.4.2",
			replicas:   3,
			extraArgs:  map[string]interface{}{},
			spread:     true,
			selectorOf: map[string]interface{}{"nodetype": "application"},
		},
	))

	t.Run("version can be overridden", theory(
		When{props: ingresscontroller.Props{Version: "4.7.1"}},
		Then{
			version:   "4.7.1",
			replicas:  3,
			extraArgs: map[string]interface{}{},
		},
	))
}

func TestChart_Values_AreDeepCopyable(t *testing.T) {
	c, err := ingresscontroller.New(ingresscontroller.Props{TLSSecret: "tls"})
	if err != nil {
		t.Fatal(err)
	}
	p, err := workloads.NewPlacement("licensing", "licensing", map[string]string{"nodetype": "application"})
	if err != nil {
		t.Fatal(err)
	}
	rel := c.Release(p)
	if diff := cmp.Diff(rel.Object, rel.DeepCopy().Object); diff != "" {
		t.Errorf("deep copy differs (-orig +copy):\n%s", diff)
	}
}
