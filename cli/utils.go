package cli

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/rigging/logging"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// newLogger builds the command's logger from the global flags and installs it as the global logger.
func newLogger(c *cli.Context) (logging.Logger, error) {
	level, err := logging.LevelFromString(c.String(logLevelFlag))
	if err != nil {
		return nil, err
	}
	if c.Bool(debugFlag) {
		level = logging.DEBUG
	}
	logger := logging.NewLogger("rigeval")
	logger.SetLevel(level)
	logging.ReplaceGlobal(logger)
	return logger, nil
}
