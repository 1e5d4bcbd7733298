package secret_test

import (
	"errors"
	"testing"

	"github.com/bettermarks/licensing-k8s/pkg/secrets"
	"github.com/bettermarks/licensing-k8s/pkg/segment"
	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/secret"
	"github.com/google/go-cmp/cmp"
	kubecore "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func placement(t *testing.T) workloads.Placement {
	t.Helper()
	p, err := workloads.NewPlacement("licensing", "licensing", nil)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestChart_Build_Local(t *testing.T) {
	set, err := secrets.Resolve(segment.LOC00)
	if err != nil {
		t.Fatal(err)
	}
	c, err := secret.New(secret.Props{Secrets: set})
	if err != nil {
		t.Fatal(err)
	}

	objs := c.Build(placement(t))
	if len(objs) != 2 {
		t.Fatalf("unexpected number of objects: %d", len(objs))
	}
	for i, name := range []string{secrets.LicensingSecret, secrets.EventExportSecret} {
		s, ok := objs[i].(*kubecore.Secret)
		if !ok {
			t.Fatalf("#%d is not a Secret: %T", i, objs[i])
		}
		if s.Name != name || s.Namespace != "licensing" {
			t.Errorf("#%d: %s/%s", i, s.Namespace, s.Name)
		}
		ref, _ := set.Get(name)
		if diff := cmp.Diff(ref.Literal, s.StringData); diff != "" {
			t.Errorf("#%d stringData (-want +got):\n%s", i, diff)
		}
	}
}

func TestChart_Build_External(t *testing.T) {
	set, err := secrets.Resolve(segment.PRO00)
	if err != nil {
		t.Fatal(err)
	}
	c, err := secret.New(secret.Props{Secrets: set})
	if err != nil {
		t.Fatal(err)
	}

	objs := c.Build(placement(t))
	if len(objs) != 2 {
		t.Fatalf("unexpected number of objects: %d", len(objs))
	}

	es := objs[0].(*unstructured.Unstructured)
	if es.GetAPIVersion() != "external-secrets.io/v1beta1" || es.GetKind() != "ExternalSecret" {
		t.Errorf("kind: %s %s", es.GetAPIVersion(), es.GetKind())
	}
	if es.GetName() != "ext-licensing-secret" || es.GetNamespace() != "licensing" {
		t.Errorf("name: %s/%s", es.GetNamespace(), es.GetName())
	}

	want := map[string]interface{}{
		"refreshInterval": "1h",
		"secretStoreRef": map[string]interface{}{
			"name": "stackit-secrets-manager",
			"kind": "ClusterSecretStore",
		},
		"target": map[string]interface{}{"name": "licensing-secret"},
		"dataFrom": []interface{}{
			map[string]interface{}{"extract": map[string]interface{}{"key": "stackit/pro00-pg-cluster-licensing/credentials"}},
			map[string]interface{}{"extract": map[string]interface{}{"key": "licensing/pro00/credentials"}},
		},
		"data": []interface{}{
			map[string]interface{}{
				"secretKey": "LICENSING_SERVICE_PRIVATE_KEY",
				"remoteRef": map[string]interface{}{
					"key":              "licensing/pro00/licensing-service-private-key",
					"property":         "LICENSING_SERVICE_PRIVATE_KEY",
					"decodingStrategy": "Base64",
				},
			},
		},
	}
	if diff := cmp.Diff(want, es.Object["spec"]); diff != "" {
		t.Errorf("spec (-want +got):\n%s", diff)
	}

	export := objs[1].(*unstructured.Unstructured)
	data, _, err := unstructured.NestedSlice(export.Object, "spec", "data")
	if err != nil {
		t.Fatal(err)
	}
	keys := []string{}
	for _, d := range data {
		keys = append(keys, d.(map[string]interface{})["secretKey"].(string))
	}
	wantKeys := []string{
		"SDWH_HOST_PRIVATE_KEY", "SDWH_POSTGRES_SECRET", "DATA_EVENT_API_KEY",
		"BM_ENCRYPTION_PASSWORD", "MONGODB_URI",
	}
	if diff := cmp.Diff(wantKeys, keys); diff != "" {
		t.Errorf("secret keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(export.Object, export.DeepCopy().Object); diff != "" {
		t.Errorf("external secret cannot be deep-copied (-orig +copy):\n%s", diff)
	}
}

func TestNew_Malformed(t *testing.T) {
	for name, set := range map[string]secrets.Set{
		"empty": {},
		"duplicated": {References: []secrets.Reference{
			{Name: "a", Literal: map[string]string{}},
			{Name: "a", Literal: map[string]string{}},
		}},
		"no source": {References: []secrets.Reference{{Name: "a"}}},
		"external without values": {References: []secrets.Reference{
			{Name: "a", External: &secrets.External{Store: "store", StoreKind: "ClusterSecretStore"}},
		}},
		"unknown decoding": {References: []secrets.Reference{
			{Name: "a", External: &secrets.External{
				Store: "store", StoreKind: "ClusterSecretStore",
				Data: []secrets.RemoteValue{{SecretKey: "K", Key: "k", Decoding: "Base32"}},
			}},
		}},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := secret.New(secret.Props{Secrets: set}); !errors.Is(err, workloads.ErrMalformed) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
