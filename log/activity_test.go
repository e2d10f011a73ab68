package log

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	commands []string
	requests []Request
}

func (r *recordingLogger) LogCommand(cmd *exec.Cmd, source string) {
	r.commands = append(r.commands, source+":"+cmd.Args[0])
}

func (r *recordingLogger) LogRequest(req Request, source string) {
	r.requests = append(r.requests, req)
}

func TestActivityLogger(t *testing.T) {
	rec := &recordingLogger{}
	SetActivityLogger(rec)
	defer SetActivityLogger(nil)

	LogExecCommand(exec.Command("echo", "hi"), "test")
	LogBackendRequest(Request{Method: "GET", URL: "http://x", Status: 200}, "test")
	LogBackendRequest(Request{Method: "GET", URL: "http://x", Err: errors.New("boom")}, "test")

	assert.Equal(t, []string{"test:echo"}, rec.commands)
	assert.Len(t, rec.requests, 2)
	assert.Equal(t, 200, rec.requests[0].Status)
}

func TestActivityLoggerUnset(t *testing.T) {
	SetActivityLogger(nil)
	assert.NotPanics(t, func() {
		LogExecCommand(exec.Command("echo"), "test")
		LogBackendRequest(Request{Method: "GET"}, "test")
	})
}
