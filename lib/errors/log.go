package errors

import (
	"github.com/sirupsen/logrus"
)

// log is the package logger. Wrapping is logged at debug level only, so
// embedders see nothing unless they opt in to verbose logging.
var log = logrus.WithField("component", "errors")
