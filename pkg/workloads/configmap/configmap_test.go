package configmap_test

import (
	"errors"
	"testing"

	"github.com/bettermarks/licensing-k8s/internal/testutils/kcmp"
	"github.com/bettermarks/licensing-k8s/pkg/configs/application"
	"github.com/bettermarks/licensing-k8s/pkg/segment"
	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/configmap"
)

func TestChart_Build(t *testing.T) {
	for _, seg := range segment.All() {
		t.Run(seg.String(), func(t *testing.T) {
			conf, err := application.Lookup(seg)
			if err != nil {
				t.Fatal(err)
			}
			c, err := configmap.New(configmap.Props{Config: conf})
			if err != nil {
				t.Fatal(err)
			}
			p, err := workloads.NewPlacement("licensing", "licensing", nil)
			if err != nil {
				t.Fatal(err)
			}

			objs := c.Build(p)
			if len(objs) != 1 {
				t.Fatalf("unexpected number of objects: %d", len(objs))
			}
			cm := c.ConfigMap(p)
			if cm.Name != "licensing-config" || cm.Namespace != "licensing" {
				t.Errorf("configmap: %s/%s", cm.Namespace, cm.Name)
			}

			want, err := conf.Data()
			if err != nil {
				t.Fatal(err)
			}
			if diff := kcmp.Diff(want, cm.Data); diff != "" {
				t.Errorf("data (-want +got):\n%s", diff)
			}
			if cm.Data["SEGMENT"] != seg.String() {
				t.Errorf("SEGMENT: (actual, expected) = (%s, %s)", cm.Data["SEGMENT"], seg)
			}
		})
	}
}

func TestChart_ConfigMap_IsFresh(t *testing.T) {
	conf, err := application.Lookup(segment.LOC00)
	if err != nil {
		t.Fatal(err)
	}
	c, err := configmap.New(configmap.Props{Name: "other-config", Config: conf})
	if err != nil {
		t.Fatal(err)
	}
	p, err := workloads.NewPlacement("licensing", "licensing", nil)
	if err != nil {
		t.Fatal(err)
	}

	first := c.ConfigMap(p)
	first.Data["SEGMENT"] = "tampered"
	if second := c.ConfigMap(p); second.Data["SEGMENT"] != "loc00" || second.Name != "other-config" {
		t.Errorf("configmap is shared between builds: %v", second.Data["SEGMENT"])
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	conf, err := application.Lookup(segment.DEV00)
	if err != nil {
		t.Fatal(err)
	}
	conf.APMTransactionSampleRate = "2.0"

	if _, err := configmap.New(configmap.Props{Config: conf}); !errors.Is(err, workloads.ErrMalformed) {
		t.Errorf("unexpected error: %v", err)
	} else if !errors.Is(err, application.ErrInvalidConfiguration) {
		t.Errorf("cause is not kept: %v", err)
	}
}
