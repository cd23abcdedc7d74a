// Package unanswered appends questions the assistant could not answer to a
// flat log file, one line per entry.
package unanswered

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

type Log struct {
	path string
}

func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append writes one "YYYY-MM-DD HH:MM:SS - <question>" line. The line is
// written in a single call so concurrent processes can rely on the
// filesystem's atomic append; no locking is done here.
func (l *Log) Append(entry model.UnansweredEntry) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open unanswered log failed: %w", err)
	}
	defer f.Close()

	line := entry.AskedAt.Format(timeLayout) + " - " + flatten(entry.Question) + "\n"
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append unanswered log failed: %w", err)
	}
	return nil
}

// flatten keeps multi-line questions on one log line.
func flatten(question string) string {
	question = strings.ReplaceAll(question, "\r\n", " ")
	question = strings.ReplaceAll(question, "\n", " ")
	return strings.TrimSpace(question)
}
