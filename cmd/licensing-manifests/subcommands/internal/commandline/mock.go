// Package commandline provides a flarc.Commandline for subcommand tests.
package commandline

import (
	"io"
	"strings"

	"github.com/youta-t/flarc"
)

// Recorder is a commandline with fixed flags, no input and no positional
// arguments. It keeps what the task writes to stdout and stderr.
type Recorder[T any] struct {
	name  string
	flags T

	stdout strings.Builder
	stderr strings.Builder
}

var _ flarc.Commandline[struct{}] = &Recorder[struct{}]{}

func New[T any](name string, flags T) *Recorder[T] {
	return &Recorder[T]{name: name, flags: flags}
}

func (r *Recorder[T]) Fullname() string {
	return r.name
}

func (r *Recorder[T]) Stdin() io.Reader {
	return strings.NewReader("")
}

func (r *Recorder[T]) Stdout() io.Writer {
	return &r.stdout
}

func (r *Recorder[T]) Stderr() io.Writer {
	return &r.stderr
}

func (r *Recorder[T]) Flags() T {
	return r.flags
}

func (r *Recorder[T]) Args() map[string][]string {
	return map[string][]string{}
}

// Output is what has been written to stdout.
func (r *Recorder[T]) Output() string {
	return r.stdout.String()
}

// Diagnostics is what has been written to stderr.
func (r *Recorder[T]) Diagnostics() string {
	return r.stderr.String()
}
