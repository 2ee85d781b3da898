package logging

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// CommandLineFormatter prints only the message, as expected from an interactive tool.
// Warnings and errors keep their level as a prefix so they stand out in the output.
type CommandLineFormatter struct{}

func (f *CommandLineFormatter) Format(entry *log.Entry) ([]byte, error) {
	switch entry.Level {
	case log.PanicLevel, log.FatalLevel, log.ErrorLevel, log.WarnLevel:
		return []byte(fmt.Sprintf("%s: %s\n", entry.Level.String(), entry.Message)), nil
	default:
		return []byte(fmt.Sprintf("%s\n", entry.Message)), nil
	}
}
