package commands

import (
	"github.com/sirupsen/logrus"
)

// Executor decodes wire lines and applies them to a session
type Executor struct {
	session Session
}

// NewExecutor creates a new command executor
func NewExecutor(session Session) *Executor {
	return &Executor{session: session}
}

// Execute decodes and applies one line. Malformed lines are logged and
// skipped; the error is returned for callers that report it.
func (e *Executor) Execute(line string) error {
	cmd, err := Decode(line)
	if err != nil {
		logrus.WithError(err).Warn("commands: skipping malformed line")
		return err
	}
	e.Apply(cmd)
	return nil
}

// Apply runs an already decoded command
func (e *Executor) Apply(cmd Command) {
	logrus.WithField("verb", cmd.Verb()).Debug("commands: applying")
	cmd.Apply(e.session)
}
