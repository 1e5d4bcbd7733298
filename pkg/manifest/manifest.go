// Package manifest serializes composed k8s objects into YAML manifests.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/yaml"
)

// Suffix of manifest files.
const Suffix = ".k8s.yaml"

var ErrUnknownKind = errors.New("unknown kind")

// Source of charts to be emitted.
type Source interface {
	Charts() []workloads.Chart
	Placement() workloads.Placement
}

// File is a manifest of one chart.
type File struct {
	// Id of the chart.
	ChartId string

	Objects []*unstructured.Unstructured
}

// Name of the file: "<chart id>.k8s.yaml".
func (f File) Name() string {
	return f.ChartId + Suffix
}

// Bytes returns objects as YAML documents separated by "---".
func (f File) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	for i, o := range f.Objects {
		if i != 0 {
			buf.WriteString("---\n")
		}
		y, err := yaml.Marshal(o.Object)
		if err != nil {
			return nil, fmt.Errorf("%s: %s/%s: %w", f.ChartId, o.GetKind(), o.GetName(), err)
		}
		buf.Write(y)
	}
	return buf.Bytes(), nil
}

// Files builds every chart of the source, in order of charts.
func Files(src Source) ([]File, error) {
	p := src.Placement()
	files := []File{}
	for _, c := range src.Charts() {
		f := File{ChartId: c.Id()}
		for _, o := range c.Build(p) {
			u, err := Unstructured(o)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.Id(), err)
			}
			f.Objects = append(f.Objects, u)
		}
		files = append(files, f)
	}
	return files, nil
}

// Objects of every chart of the source, in order of charts.
func Objects(src Source) ([]*unstructured.Unstructured, error) {
	files, err := Files(src)
	if err != nil {
		return nil, err
	}
	objs := []*unstructured.Unstructured{}
	for _, f := range files {
		objs = append(objs, f.Objects...)
	}
	return objs, nil
}

// Unstructured converts an object into its unstructured form with apiVersion and kind.
//
// Fields which the API server fills, like creationTimestamp and status, are left out.
func Unstructured(obj runtime.Object) (*unstructured.Unstructured, error) {
	if u, ok := obj.(*unstructured.Unstructured); ok {
		out := u.DeepCopy()
		if out.GetKind() == "" || out.GetAPIVersion() == "" {
			return nil, fmt.Errorf("%w: unstructured object %s has no kind", ErrUnknownKind, out.GetName())
		}
		out.Object = prune(out.Object)
		return out, nil
	}

	gvks, _, err := scheme.Scheme.ObjectKinds(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %T: %w", ErrUnknownKind, obj, err)
	}
	if len(gvks) == 0 {
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, obj)
	}

	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, err
	}
	out := &unstructured.Unstructured{Object: prune(content)}
	out.SetGroupVersionKind(gvks[0])
	return out, nil
}

// prune drops null values and status.
func prune(m map[string]interface{}) map[string]interface{} {
	out := pruneMap(m)
	delete(out, "status")
	return out
}

func pruneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		out[k] = pruneValue(v)
	}
	return out
}

func pruneValue(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		return pruneMap(vv)
	case []interface{}:
		out := make([]interface{}, 0, len(vv))
		for _, e := range vv {
			out = append(out, pruneValue(e))
		}
		return out
	default:
		return v
	}
}

// WriteDir writes each file into the directory, which is created when missing.
func WriteDir(dir string, files []File) error {
	if err := os.MkdirAll(dir, os.FileMode(0o755)); err != nil {
		return err
	}
	for _, f := range files {
		content, err := f.Bytes()
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, f.Name()), content, os.FileMode(0o644)); err != nil {
			return err
		}
	}
	return nil
}

// WriteStream writes every file into w as one YAML stream.
func WriteStream(w io.Writer, files []File) error {
	first := true
	for _, f := range files {
		if len(f.Objects) == 0 {
			continue
		}
		content, err := f.Bytes()
		if err != nil {
			return err
		}
		if !first {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		first = false
		if _, err := w.Write(content); err != nil {
			return err
		}
	}
	return nil
}
