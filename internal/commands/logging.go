package commands

import (
	"strings"

	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// CommandLogger returns the logger for a command module, tagged so command
// entries can be filtered from generator output.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandLogger(provider, name), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
