// Package ingresscontroller assembles the ingress-nginx release dedicated to Licensing.
//
// The release is described for Flux: a HelmRepository of the chart and
// a HelmRelease with values. Flux renders and installs the chart in the cluster.
package ingresscontroller

import (
	"fmt"

	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/metasource"
	"github.com/google/go-containerregistry/pkg/name"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	ChartId = "ingress-nginx"

	ReleaseName    = "ingress-nginx"
	HelmChart      = "ingress-nginx"
	HelmRepository = "https://kubernetes.github.io/ingress-nginx"

	DefaultVersion  = "4.4.2"
	DefaultReplicas = 3

	// ingress class served by this controller.
	//
	// Dedicated class keeps ingress rules of other applications out of Licensing.
	IngressClass = "licensing-nginx"

	// label put on controller pods.
	ControllerLabel = "nginx-controller"
)

var (
	HelmRepositoryKind = schema.GroupVersionKind{
		Group: "source.toolkit.fluxcd.io", Version: "v1", Kind: "HelmRepository",
	}
	HelmReleaseKind = schema.GroupVersionKind{
		Group: "helm.toolkit.fluxcd.io", Version: "v2", Kind: "HelmRelease",
	}
)

// access log format of the controller, one JSON object per line.
const LogFormatUpstream = `{ "timestamp": "$time_iso8601", "nginx": {"x_forwarded_proto": "$http_x_forwarded_proto", "x_forwarded_for": "$proxy_add_x_forwarded_for", "remote_addr": "$remote_addr", "remote_user": "$remote_user", "status": "$status", "body_bytes_sent": $body_bytes_sent, "request": "$request", "request_length": $request_length, "request_method": "$request_method", "request_time": $request_time, "http_referrer": "$http_referer", "http_user_agent": "$http_user_agent", "upstream_connect_time": $upstream_connect_time, "upstream_response_time": $upstream_response_time, "upstream_bytes_sent": $upstream_bytes_sent, "upstream_bytes_received": $upstream_bytes_received, "upstream_status": "$upstream_status", "upstream_server": "$upstream_addr", "host": "$host", "cf_ray": "$http_cf_ray", "request_id": "$request_id" } }`

type Props struct {
	// Chart version. Empty means DefaultVersion.
	Version string

	// Zero means DefaultReplicas.
	Replicas int32

	// Secret with the default TLS certificate. Empty means none.
	TLSSecret string
}

type Chart struct {
	props Props
}

var _ workloads.Chart = &Chart{}

func New(props Props) (*Chart, error) {
	if props.Version == "" {
		props.Version = DefaultVersion
	}
	// chart versions are also published as OCI tags.
	if _, err := name.NewTag(HelmChart + ":" + props.Version); err != nil {
		return nil, fmt.Errorf("ingress controller: %w: version %q: %w", workloads.ErrMalformed, props.Version, err)
	}
	if props.Replicas < 0 {
		return nil, fmt.Errorf("ingress controller: %w: replicas should not be negative: %d", workloads.ErrMalformed, props.Replicas)
	}
	if props.Replicas == 0 {
		props.Replicas = DefaultReplicas
	}
	if props.TLSSecret != "" {
		if err := workloads.ValidateName("tls secret", props.TLSSecret); err != nil {
			return nil, fmt.Errorf("ingress controller: %w", err)
		}
	}
	return &Chart{props: props}, nil
}

func (c *Chart) Id() string {
	return ChartId
}

func (c *Chart) Name() string {
	return "ingress-nginx"
}

func (c *Chart) Instance() string {
	return ReleaseName
}

func (c *Chart) Component() string {
	return "ingress-controller"
}

func (c *Chart) Build(p workloads.Placement) []runtime.Object {
	return []runtime.Object{c.Repository(p), c.Release(p)}
}

func (c *Chart) Repository(p workloads.Placement) *unstructured.Unstructured {
	u := &unstructured.Unstructured{
		Object: map[string]interface{}{
			"spec": map[string]interface{}{
				"url":      HelmRepository,
				"interval": "24h",
			},
		},
	}
	u.SetGroupVersionKind(HelmRepositoryKind)
	setMeta(u, metasource.ToObjectMeta(c, p.Namespace()).Labels, c.Instance(), p.Namespace())
	return u
}

func (c *Chart) Release(p workloads.Placement) *unstructured.Unstructured {
	u := &unstructured.Unstructured{
		Object: map[string]interface{}{
			"spec": map[string]interface{}{
				"interval":    "1h",
				"releaseName": ReleaseName,
				"chart": map[string]interface{}{
					"spec": map[string]interface{}{
						"chart":   HelmChart,
						"version": c.props.Version,
						"sourceRef": map[string]interface{}{
							"kind": HelmRepositoryKind.Kind,
							"name": c.Instance(),
						},
					},
				},
				"values": c.Values(p),
			},
		},
	}
	u.SetGroupVersionKind(HelmReleaseKind)
	setMeta(u, metasource.ToObjectMeta(c, p.Namespace()).Labels, c.Instance(), p.Namespace())
	return u
}

func setMeta(u *unstructured.Unstructured, labels map[string]string, name string, namespace string) {
	u.SetName(name)
	u.SetNamespace(namespace)
	u.SetLabels(labels)
}

// Values of the ingress-nginx chart.
//
// The default TLS certificate is set only when a TLS secret is given,
// and pods are spread over hosts only when they are pinned to nodes.
func (c *Chart) Values(p workloads.Placement) map[string]interface{} {
	controller := map[string]interface{}{
		"ingressClassResource": map[string]interface{}{
			"name":            IngressClass,
			"controllerValue": "k8s.io/" + IngressClass,
		},
		"service": map[string]interface{}{
			"type": "ClusterIP",
		},
		"config": map[string]interface{}{
			"use-forwarded-headers":  true,
			"log-format-escape-json": true,
			"log-format-upstream":    LogFormatUpstream,
			"worker-processes":       "auto",
		},
		"replicaCount": int64(c.props.Replicas),
		"labels": map[string]interface{}{
			"app": ControllerLabel,
		},
		"extraArgs": map[string]interface{}{},
	}

	if p.Pinned() {
		selector := map[string]interface{}{}
		for k, v := range p.NodeSelector() {
			selector[k] = v
		}
		controller["nodeSelector"] = selector
		controller["topologySpreadConstraints"] = []interface{}{
			map[string]interface{}{
				"maxSkew":           int64(1),
				"topologyKey":       "kubernetes.io/hostname",
				"whenUnsatisfiable": "DoNotSchedule",
				"labelSelector": map[string]interface{}{
					"matchLabels": map[string]interface{}{
						"app": ControllerLabel,
					},
				},
			},
		}
	}

	if c.props.TLSSecret != "" {
		controller["extraArgs"] = map[string]interface{}{
			"default-ssl-certificate": p.Namespace() + "/" + c.props.TLSSecret,
		}
	}

	return map[string]interface{}{"controller": controller}
}
