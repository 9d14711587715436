// Package clipboard reads and writes text on the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/codecheck/internal/logger"
)

var (
	mu          sync.Mutex
	initialized bool
)

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()

	if initialized {
		return nil
	}

	if err := clipboard.Init(); err != nil {
		logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	initialized = true
	logger.WithComponent("clipboard").Debug("initialized")
	return nil
}

// ReadText reads text from the clipboard. An empty clipboard is not an error.
func ReadText() (string, error) {
	if err := Init(); err != nil {
		return "", err
	}

	textBytes := clipboard.Read(clipboard.FmtText)
	if textBytes == nil {
		return "", nil
	}

	logger.WithComponent("clipboard").Debug("read text", "bytes", len(textBytes))
	return string(textBytes), nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.WithComponent("clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}

// System is the system clipboard as a value, for callers that take the
// clipboard as a dependency.
type System struct{}

// ReadText reads text from the system clipboard.
func (System) ReadText() (string, error) { return ReadText() }

// WriteText writes text to the system clipboard.
func (System) WriteText(text string) error { return WriteText(text) }
