package logging

import (
	"maps"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// WithFields returns logger with a copy of fields attached. Loggers without
// the FieldsLogger extension, nil loggers and empty maps pass through.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return fieldsLogger.WithFields(maps.Clone(fields))
}
