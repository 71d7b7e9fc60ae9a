// Package instance tracks journeyline processes sharing one store. An
// interactive session writes a lockfile next to the store; other commands
// and doctor use it, together with the process table, to spot a concurrent
// writer.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/journeyline/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
	processesFunc   = ps.Processes
	getpidFunc      = os.Getpid
)

// ErrAlreadyRunning is returned by Acquire when a live session holds the lock
var ErrAlreadyRunning = errors.New("another journeyline session is using this store")

// Holder describes the process named in a lockfile
type Holder struct {
	PID     int
	Started time.Time
}

// Lock is a held lockfile
type Lock struct {
	path string
}

// LockPath returns the lockfile location for a store living in configDir.
func LockPath(configDir string) string {
	return filepath.Join(configDir, constants.LockfileName)
}

// Acquire writes the lockfile for the current process. A lockfile left by a
// process that is gone is replaced.
func Acquire(configDir string) (*Lock, error) {
	path := LockPath(configDir)
	if holder, live, err := Check(configDir); err == nil && live && holder.PID != getpidFunc() {
		return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, holder.PID)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	content := fmt.Sprintf("%d|%d", getpidFunc(), time.Now().Unix())
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the lockfile if it still belongs to this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := readLockfile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if holder.PID != getpidFunc() {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Check reads the lockfile in configDir and reports whether its holder is a
// running journeyline process. A missing lockfile is not an error.
func Check(configDir string) (Holder, bool, error) {
	holder, err := readLockfile(LockPath(configDir))
	if err != nil {
		if os.IsNotExist(err) {
			return Holder{}, false, nil
		}
		return Holder{}, false, err
	}

	process, err := findProcessFunc(holder.PID)
	if err != nil || process == nil {
		return holder, false, nil
	}
	return holder, isJourneyline(process), nil
}

// OtherProcesses lists running journeyline processes other than this one.
func OtherProcesses() ([]ps.Process, error) {
	procs, err := processesFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	self := getpidFunc()
	var out []ps.Process
	for _, p := range procs {
		if p.Pid() != self && isJourneyline(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func isJourneyline(p ps.Process) bool {
	return strings.HasPrefix(p.Executable(), constants.AppName)
}

func readLockfile(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return Holder{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, errors.New("invalid process ID in lockfile")
	}
	started, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Holder{}, errors.New("invalid start time in lockfile")
	}
	return Holder{PID: pid, Started: time.Unix(started, 0)}, nil
}
