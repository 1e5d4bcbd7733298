// Package deployment holds compute sizing of Licensing workloads for each segment.
package deployment

import (
	"errors"
	"fmt"

	"github.com/bettermarks/licensing-k8s/pkg/segment"
	kubecore "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

// Kind of workload which sizing is defined for.
type Kind string

const (
	API          Kind = "api"
	Migration    Kind = "migration"
	LoadFixtures Kind = "load-fixtures"
	EventExport  Kind = "event-export"
)

// Sizing is compute resource requests and limits of a workload.
//
// Nil quantities are not requested (or not limited).
type Sizing struct {
	RequestCPU    *resource.Quantity
	RequestMemory *resource.Quantity
	LimitMemory   *resource.Quantity
}

// Requirements converts Sizing to container resource requirements.
//
// Empty Sizing yields zero value, which means "no requests, no limits".
func (s Sizing) Requirements() kubecore.ResourceRequirements {
	req := kubecore.ResourceRequirements{}

	requests := kubecore.ResourceList{}
	if s.RequestCPU != nil {
		requests[kubecore.ResourceCPU] = s.RequestCPU.DeepCopy()
	}
	if s.RequestMemory != nil {
		requests[kubecore.ResourceMemory] = s.RequestMemory.DeepCopy()
	}
	if len(requests) != 0 {
		req.Requests = requests
	}

	if s.LimitMemory != nil {
		req.Limits = kubecore.ResourceList{
			kubecore.ResourceMemory: s.LimitMemory.DeepCopy(),
		}
	}
	return req
}

// Clone returns Sizing with its own quantities.
func (s Sizing) Clone() Sizing {
	for _, q := range []**resource.Quantity{&s.RequestCPU, &s.RequestMemory, &s.LimitMemory} {
		if *q != nil {
			v := (*q).DeepCopy()
			*q = &v
		}
	}
	return s
}

func (s Sizing) IsZero() bool {
	return s.RequestCPU == nil && s.RequestMemory == nil && s.LimitMemory == nil
}

// Config is the sizing of every workload kind in a segment.
type Config struct {
	Migration    Sizing
	LoadFixtures Sizing
	API          Sizing
	EventExport  Sizing

	APIReplicas int32
}

// For returns Sizing of the workload kind.
func (c Config) For(k Kind) (Sizing, error) {
	switch k {
	case API:
		return c.API, nil
	case Migration:
		return c.Migration, nil
	case LoadFixtures:
		return c.LoadFixtures, nil
	case EventExport:
		return c.EventExport, nil
	}
	return Sizing{}, fmt.Errorf("%w: sizing for workload kind %q", ErrMissingConfiguration, k)
}

var (
	ErrMissingConfiguration = errors.New("missing configuration")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Table maps segments to their sizing.
type Table map[segment.Segment]Config

// Builtin returns a copy of the sizing table shipped with this module.
func Builtin() Table {
	return builtin.Clone()
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for s, c := range t {
		out[s] = c.Clone()
	}
	return out
}

// Clone returns a deep copy of the sizing.
func (c Config) Clone() Config {
	c.Migration = c.Migration.Clone()
	c.LoadFixtures = c.LoadFixtures.Clone()
	c.API = c.API.Clone()
	c.EventExport = c.EventExport.Clone()
	return c
}

// Lookup returns the sizing of the segment in the builtin table.
func Lookup(s segment.Segment) (Config, error) {
	return builtin.Lookup(s)
}

// Lookup returns the sizing of the segment.
//
// When the table has no entry for the segment, it returns ErrMissingConfiguration.
func (t Table) Lookup(s segment.Segment) (Config, error) {
	c, ok := t[s]
	if !ok {
		return Config{}, fmt.Errorf("%w: deployment config for segment %q", ErrMissingConfiguration, s)
	}
	return c.Clone(), nil
}

// Validate checks that every segment has a valid entry.
func (t Table) Validate() error {
	for _, s := range segment.All() {
		c, err := t.Lookup(s)
		if err != nil {
			return err
		}
		if err := c.Validate(s); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that the sizing of the segment has at least one API replica,
// and memory limits are not lower than memory requests.
func (c Config) Validate(s segment.Segment) error {
	if c.APIReplicas < 1 {
		return fmt.Errorf("%w (%s): api replicas should be positive", ErrInvalidConfiguration, s)
	}
	for _, k := range []Kind{API, Migration, LoadFixtures, EventExport} {
		sz, err := c.For(k)
		if err != nil {
			return err
		}
		if sz.RequestMemory != nil && sz.LimitMemory != nil && sz.LimitMemory.Cmp(*sz.RequestMemory) < 0 {
			return fmt.Errorf(
				"%w (%s): %s memory limit %s is lower than request %s",
				ErrInvalidConfiguration, s, k, sz.LimitMemory, sz.RequestMemory,
			)
		}
	}
	return nil
}
