package renderer

import (
	"github.com/golang/glog"

	"github.com/df07/go-pathtracer/pkg/core"
)

// GlogLogger implements core.Logger by writing to glog at INFO level
type GlogLogger struct{}

// Printf implements core.Logger
func (GlogLogger) Printf(format string, args ...interface{}) {
	glog.Infof(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return GlogLogger{}
}
