package metasource

import (
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// value of "app.kubernetes.io/part-of"
	PartOf = "licensing"

	// value of "app.kubernetes.io/managed-by"
	ManagedBy = "licensing-manifests"
)

type SpecBuilder[C any, D any] interface {
	// Build k8s resource descriptor(s)
	Build(conf C) D
}

// Licensing component metadata which is placed in k8s cluster.
//
// ToLabels function converts MetaSource to k8s labels.
type MetaSource interface {
	// The name of application.
	//
	// This is set as a value of k8s label "app.kubernetes.io/name".
	//
	// see: https://kubernetes.io/docs/concepts/overview/working-with-objects/common-labels/
	Name() string

	// This is set as a value of k8s label "app.kubernetes.io/instance"
	// AND ALSO `ObjectMeta.Name` .
	//
	// It is also used as the value of the "app" label selecting pods.
	Instance() string

	// Where is this positioned in system archetecture.
	//
	// example: api, database, migration, ...
	//
	// This is set as a value of k8s label "app.kubernetes.io/component".
	Component() string
}

type ResourceBuilder[C any, D any] interface {
	MetaSource
	SpecBuilder[C, D]
}

// convert MetaSource to k8s labels, including "recomended labels".
//
// https://kubernetes.io/docs/concepts/overview/working-with-objects/common-labels/
//
// - "app.kubernetes.io/name"       : s.Name()
//
// - "app.kubernetes.io/instance"   : s.Instance()
//
// - "app.kubernetes.io/component"  : s.Component()
//
// - "app.kubernetes.io/part-of"    : "licensing"
//
// - "app.kubernetes.io/managed-by" : "licensing-manifests"
//
// The build version is not put in labels,
// so that manifests depend only on their inputs.
func ToLabels(s MetaSource) map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":       s.Name(),
		"app.kubernetes.io/instance":   s.Instance(),
		"app.kubernetes.io/component":  s.Component(),
		"app.kubernetes.io/part-of":    PartOf,
		"app.kubernetes.io/managed-by": ManagedBy,
	}
}

// SelectorLabels are labels put on pods and used by selectors of
// Deployments and Services.
//
// Selectors are immutable in the cluster, so they do not follow ToLabels.
func SelectorLabels(s MetaSource) map[string]string {
	return map[string]string{"app": s.Instance()}
}

// PodLabels are labels of pod templates: ToLabels and SelectorLabels.
func PodLabels(s MetaSource) map[string]string {
	l := ToLabels(s)
	for k, v := range SelectorLabels(s) {
		l[k] = v
	}
	return l
}

// default (and reference) implimentation of ObjectMeta for MetaSource.
func ToObjectMeta(m MetaSource, namespace string) kubeapimeta.ObjectMeta {
	return kubeapimeta.ObjectMeta{
		Name:      m.Instance(),
		Namespace: namespace,
		Labels:    ToLabels(m),
	}
}

// ObjectMeta for a resource named differently from the MetaSource instance
// but belonging to it, like a ConfigMap of a Deployment.
func ToObjectMetaNamed(m MetaSource, name string, namespace string) kubeapimeta.ObjectMeta {
	meta := ToObjectMeta(m, namespace)
	meta.Name = name
	return meta
}
