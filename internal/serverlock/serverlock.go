// Package serverlock records the running API server in a lockfile so a
// second "serve" on the same config directory can detect it.
package serverlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/mealframe/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

var (
	// ErrNotRunning is returned when no live server owns the lockfile.
	ErrNotRunning = errors.New("mealframe server is not running")
	// ErrAlreadyRunning is returned by Acquire when another live server owns the lockfile.
	ErrAlreadyRunning = errors.New("mealframe server is already running")
	// ErrMalformed is returned when the lockfile cannot be parsed.
	ErrMalformed = errors.New("lockfile is malformed")
)

// Info is the content of a server lockfile.
type Info struct {
	Port int
	PID  int
}

// Lock is a held server lockfile.
type Lock struct {
	path string
	info Info
}

// Path returns the lockfile location inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.ServerLockfileName)
}

// Acquire writes a lockfile for the current process listening on port.
// A stale lockfile left by a dead process is replaced.
func Acquire(configDir string, port int) (*Lock, error) {
	if err := validatePort(port); err != nil {
		return nil, err
	}
	path := Path(configDir)

	if info, err := Check(configDir); err == nil {
		return nil, fmt.Errorf("%w (pid %d, port %d)", ErrAlreadyRunning, info.PID, info.Port)
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	info := Info{Port: port, PID: getpidFunc()}
	content := fmt.Sprintf("%d|%d", info.Port, info.PID)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path, info: info}, nil
}

// Info returns what the lock recorded.
func (l *Lock) Info() Info {
	return l.info
}

// Release removes the lockfile if it still belongs to this lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	current, err := read(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err == nil && current.PID != l.info.PID {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Check reports the server recorded in configDir, verifying that its
// process is still alive and is a mealframe binary.
func Check(configDir string) (Info, error) {
	info, err := read(Path(configDir))
	if errors.Is(err, os.ErrNotExist) {
		return Info{}, ErrNotRunning
	}
	if err != nil {
		return Info{}, err
	}

	process, err := findProcessFunc(info.PID)
	if err != nil || process == nil {
		return Info{}, ErrNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return Info{}, fmt.Errorf("%w: process with PID %d is %s", ErrNotRunning, info.PID, process.Executable())
	}
	return info, nil
}

func read(path string) (Info, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Info{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return Info{}, ErrMalformed
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Info{}, fmt.Errorf("%w: invalid port number", ErrMalformed)
	}
	if err := validatePort(port); err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || pid <= 0 {
		return Info{}, fmt.Errorf("%w: invalid process ID", ErrMalformed)
	}
	return Info{Port: port, PID: pid}, nil
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}
	return nil
}
