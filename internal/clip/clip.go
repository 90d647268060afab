// Package clip copies dispatch output to the operator's clipboard,
// degrading from the native clipboard to OSC52 to a temp file.
package clip

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	atotto "github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// Method is the mechanism that ended up carrying the content.
type Method string

const (
	MethodNative Method = "native" // OS clipboard
	MethodOSC52  Method = "osc52"  // terminal escape sequence
	MethodFile   Method = "file"   // temp file fallback
)

// Result reports how the content was made copyable.
type Result struct {
	Method   Method
	FilePath string // only set when Method == MethodFile
}

// These vars exist for testability.
var (
	nativeWriteAll = func(text string) error { return atotto.WriteAll(text) }
	osc52WriteAll  = writeAllOSC52
)

// WriteAll tries each clipboard mechanism in order. Remote sessions
// rarely have a native clipboard, so OSC52 and the temp file keep the
// output reachable anyway.
func WriteAll(text string) (Result, error) {
	if err := nativeWriteAll(text); err == nil {
		return Result{Method: MethodNative}, nil
	}

	if err := osc52WriteAll(text); err == nil {
		return Result{Method: MethodOSC52}, nil
	}

	path, err := writeTempFile(text)
	if err != nil {
		return Result{}, err
	}

	return Result{Method: MethodFile, FilePath: path}, nil
}

// Conservative default; terminals can have strict OSC52 limits.
const osc52LimitBytes = 100_000

func writeAllOSC52(text string) error {
	if text == "" {
		return errors.New("empty clipboard text")
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return errors.New("stderr is not a terminal")
	}
	if len(text) > osc52LimitBytes {
		return fmt.Errorf("text too large for OSC52 (%d bytes > %d)", len(text), osc52LimitBytes)
	}

	seq := osc52.New(text).Limit(osc52LimitBytes)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if os.Getenv("STY") != "" {
		seq = seq.Screen()
	}

	// Use stderr to avoid interfering with the Bubble Tea renderer.
	_, err := seq.WriteTo(os.Stderr)
	return err
}

func writeTempFile(text string) (string, error) {
	f, err := os.CreateTemp("", fmt.Sprintf("procscope-output-%d-*.txt", time.Now().UnixNano()))
	if err != nil {
		return "", err
	}
	path := f.Name()
	defer func() {
		_ = f.Close()
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if _, err = f.WriteString(text); err != nil {
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", err
	}

	return filepath.Clean(path), nil
}
