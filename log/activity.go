package log

import (
	"os/exec"
	"sync"
	"time"
)

// Request describes one call to the chat backend.
type Request struct {
	Method  string
	URL     string
	Status  int
	Elapsed time.Duration
	Err     error
}

// ActivityLogger receives external commands and backend requests as they
// happen, so the UI can list them.
type ActivityLogger interface {
	LogCommand(cmd *exec.Cmd, source string)
	LogRequest(req Request, source string)
}

var (
	activityLogger ActivityLogger
	loggerMu       sync.RWMutex
)

// SetActivityLogger sets the global activity logger. Passing nil disables it.
func SetActivityLogger(logger ActivityLogger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	activityLogger = logger
}

func current() ActivityLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return activityLogger
}

// LogExecCommand logs an exec.Command call
func LogExecCommand(cmd *exec.Cmd, source string) {
	if logger := current(); logger != nil {
		logger.LogCommand(cmd, source)
	}
}

// LogBackendRequest logs a finished backend request, successful or not.
func LogBackendRequest(req Request, source string) {
	if logger := current(); logger != nil {
		logger.LogRequest(req, source)
	}
	if req.Err != nil {
		WarningLog.Printf("%s %s failed after %s: %v", req.Method, req.URL, req.Elapsed, req.Err)
	}
}
