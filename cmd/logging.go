package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Mohsinsiddi/devmint/internal/gateway"
	"github.com/Mohsinsiddi/devmint/internal/ui"
	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// setupLogging installs the root logger writing to w.
func setupLogging(w io.Writer, debug bool) {
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(w, level, color)))
}

// logToFile points the root logger at path while the full-screen page
// owns the terminal. The returned func closes the file.
func logToFile(path string, debug bool) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(f, level, false)))
	return func() { f.Close() }, nil
}

// errorLine formats err for the terminal, with a hint for the common cases.
func errorLine(err error) string {
	var mismatch *gateway.ChainMismatchError
	if errors.As(err, &mismatch) {
		return ui.Err(err.Error()) + "\n" + ui.Hint("Change the network to "+mismatch.WantName())
	}
	return ui.Err(err.Error())
}
