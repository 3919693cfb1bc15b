package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// ConsoleHook mirrors every formatted entry to an io.Writer (stdout by default)
// while the logger's own output goes to the log file.
type ConsoleHook struct {
	out io.Writer
}

func NewConsoleHook() *ConsoleHook {
	return &ConsoleHook{out: os.Stdout}
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.out.Write(line)
	return err
}

func (h *ConsoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
