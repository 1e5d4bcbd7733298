// Package logging configures the logger of licensing-manifests.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

const Prefix = "licensing-manifests"

// plain text header, since output is read by humans and CI logs.
const Header = "${time_rfc3339} ${level} ${prefix}"

var ErrUnknownLevel = errors.New("unknown loglevel")

// Levels accepted by SetLevel.
func Levels() []string {
	return []string{"debug", "info", "warn", "error", "off"}
}

// New returns a logger writing to w at the level.
//
// When the level is unknown, the logger falls back to warn and ErrUnknownLevel is returned with it.
func New(w io.Writer, loglevel string) (*log.Logger, error) {
	l := log.New(Prefix)
	l.SetOutput(w)
	l.SetHeader(Header)
	return l, SetLevel(l, loglevel)
}

func SetLevel(l *log.Logger, loglevel string) error {
	switch strings.ToLower(loglevel) {
	case "debug":
		l.SetLevel(log.DEBUG)
	case "info":
		l.SetLevel(log.INFO)
	case "warn", "":
		l.SetLevel(log.WARN)
	case "error":
		l.SetLevel(log.ERROR)
	case "off":
		l.SetLevel(log.OFF)
	default:
		l.SetLevel(log.WARN)
		return fmt.Errorf("%w: %s (choose from %s)", ErrUnknownLevel, loglevel, strings.Join(Levels(), ", "))
	}
	return nil
}
