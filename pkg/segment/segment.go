// Package segment enumerates the deployment segments of the Licensing backend.
package segment

import (
	"errors"
	"fmt"
	"strings"
)

// Segment is a named deployment environment.
//
// The set of segments is closed: use one of the constants below, or Parse.
type Segment string

const (
	LOC00 Segment = "loc00"
	DEV00 Segment = "dev00"
	DEV01 Segment = "dev01"
	CI00  Segment = "ci00"
	CI01  Segment = "ci01"
	PRO00 Segment = "pro00"
)

// Stage groups segments serving the same purpose.
type Stage string

const (
	StageLocal       Stage = "loc"
	StageDevelopment Stage = "dev"
	StageCI          Stage = "ci"
	StageProduction  Stage = "pro"
)

// Namespace where every Licensing resource is placed by default.
const Namespace = "licensing"

var ErrUnknownSegment = errors.New("unknown segment")

var all = []Segment{LOC00, DEV00, DEV01, CI00, CI01, PRO00}

// All returns every segment, in a stable order.
func All() []Segment {
	return append([]Segment{}, all...)
}

// Parse converts a segment identifier into Segment.
//
// It is case insensitive. Unknown identifiers cause ErrUnknownSegment.
func Parse(s string) (Segment, error) {
	seg := Segment(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range all {
		if seg == known {
			return seg, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSegment, s)
}

func (s Segment) String() string {
	return string(s)
}

// Stage returns the stage which the segment belongs to.
//
// The stage is the segment identifier without its trailing instance number.
func (s Segment) Stage() Stage {
	switch s {
	case LOC00:
		return StageLocal
	case DEV00, DEV01:
		return StageDevelopment
	case CI00, CI01:
		return StageCI
	case PRO00:
		return StageProduction
	}
	return Stage(strings.TrimRight(string(s), "0123456789"))
}

// IsLocal tells whether the segment runs on a developer machine.
//
// Local segments use literal secrets and run their own database.
func (s Segment) IsLocal() bool {
	return s.Stage() == StageLocal
}

// IsProduction tells whether the segment serves production traffic.
func (s Segment) IsProduction() bool {
	return s.Stage() == StageProduction
}
