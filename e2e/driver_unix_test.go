//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

const scrollback = 1 << 20

var binPath = "quickfind_e2e"

const (
	KeyEnter    = "\r"
	KeyEsc      = "\x1b"
	KeyCtrlC    = "\x03"
	KeyQuit     = "q"
	KeySearch   = "/"
	KeyFavorite = "f"
	KeySort     = "s"
	KeyHelp     = "?"
)

// Strips CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// screen accumulates everything the app writes, keeping the last scrollback bytes
type screen struct {
	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

func (s *screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range p {
		s.buf[s.head] = b
		s.head = (s.head + 1) % scrollback
		if s.head == 0 {
			s.full = true
		}
	}
	return len(p), nil
}

func (s *screen) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.full {
		return string(s.buf[:s.head])
	}
	out := make([]byte, 0, scrollback)
	out = append(out, s.buf[s.head:]...)
	out = append(out, s.buf[:s.head]...)
	return string(out)
}

// TUITestFramework runs the quickfind binary in a pseudo terminal
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string
	api       *CatalogServer
	out       *screen
}

func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t, out: &screen{buf: make([]byte, scrollback)}}
}

// StartApp launches quickfind against the fake catalog.
// Favorites live in the workspace so each test starts with an empty set.
func (tf *TUITestFramework) StartApp(args ...string) error {
	if tf.workspace == "" {
		tf.workspace = tf.t.TempDir()
	}
	if tf.api == nil {
		tf.api = NewCatalogServer(tf.t)
	}

	argv := append([]string{
		"--api-url", tf.api.URL(),
		"--data-dir", filepath.Join(tf.workspace, "data"),
		"--log-file", filepath.Join(tf.workspace, "quickfind.log"),
	}, args...)
	tf.cmd = exec.Command(binPath, argv...)
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+filepath.Join(tf.workspace, ".config"),
		"QUICKFIND_E2E_TEST=1",
	)

	ptmx, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 40, Cols: 120}); err != nil {
		ptmx.Close()
		tty.Close()
		return fmt.Errorf("failed to size pty: %w", err)
	}
	tf.pty, tf.tty = ptmx, tty
	tf.cmd.Stdin, tf.cmd.Stdout, tf.cmd.Stderr = tty, tty, tty

	if err := tf.cmd.Start(); err != nil {
		ptmx.Close()
		tty.Close()
		return fmt.Errorf("failed to start quickfind: %w", err)
	}

	go func() {
		chunk := make([]byte, 8192)
		for {
			n, err := ptmx.Read(chunk)
			if n > 0 {
				_, _ = tf.out.Write(chunk[:n])
			}
			if err != nil {
				return
			}
		}
	}()
	return nil
}

// SendKeys writes raw keystrokes to the terminal
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

func (tf *TUITestFramework) SendEnter() error { return tf.SendKeys(KeyEnter) }

func (tf *TUITestFramework) SendCtrlC() error { return tf.SendKeys(KeyCtrlC) }

func (tf *TUITestFramework) Quit() error { return tf.SendKeys(KeyQuit) }

// Ready waits for the marker printed before the UI starts
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.OutputContains("__READY__", 5*time.Second)
}

// SeePlain waits up to three seconds for text in the normalized output
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(text, 3*time.Second)
}

// WaitForStatusMessage waits for a status line to be drawn
func (tf *TUITestFramework) WaitForStatusMessage(message string, timeout time.Duration) bool {
	return tf.OutputContainsPlain(message, timeout)
}

func (tf *TUITestFramework) OutputContains(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool { return strings.Contains(s, text) }, timeout)
}

func (tf *TUITestFramework) OutputContainsPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, timeout)
}

// WaitFor polls the raw output until pred holds or the timeout passes
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(tf.Snapshot()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Snapshot returns everything captured so far
func (tf *TUITestFramework) Snapshot() string {
	return tf.out.String()
}

func (tf *TUITestFramework) SnapshotPlain() string {
	return ansiRe.ReplaceAllString(tf.Snapshot(), "")
}

// DumpTailOnFail writes the last n bytes of normalized output next to the test artifacts
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, name string, n int) {
	t.Helper()
	s := tf.SnapshotPlain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	p := filepath.Join(t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(s), 0o644)
	t.Logf("Saved tail to %s", p)
}

// Cleanup closes the terminal and kills the app if it is still running
func (tf *TUITestFramework) Cleanup() {
	// Closing the pty first delivers SIGHUP
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.tty != nil {
		_ = tf.tty.Close()
		tf.tty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil && tf.cmd.ProcessState == nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
	}
	tf.cmd = nil
}
