// Package kcmp provides go-cmp options to compare k8s objects.
package kcmp

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"k8s.io/apimachinery/pkg/api/resource"
)

// Options compares resource.Quantity by value and treats nil and empty
// slices or maps as equal.
func Options() cmp.Options {
	return cmp.Options{
		cmp.Comparer(func(a, b resource.Quantity) bool {
			return a.Cmp(b) == 0
		}),
		cmpopts.EquateEmpty(),
	}
}

// Diff is cmp.Diff with Options.
func Diff(want, got any) string {
	return cmp.Diff(want, got, Options()...)
}
