package util

import (
	"os/exec"
	"testing"

	"chatterm/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenerArgs(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
		wantErr  error
	}{
		{goos: "darwin", wantName: "open", wantArgs: []string{"https://go.dev"}},
		{goos: "linux", wantName: "xdg-open", wantArgs: []string{"https://go.dev"}},
		{goos: "windows", wantName: "rundll32", wantArgs: []string{"url.dll,FileProtocolHandler", "https://go.dev"}},
		{goos: "plan9", wantErr: ErrUnsupportedOS},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := openerArgs(tt.goos, "https://go.dev")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

type commandRecorder struct {
	cmds    []*exec.Cmd
	sources []string
}

func (r *commandRecorder) LogCommand(cmd *exec.Cmd, source string) {
	r.cmds = append(r.cmds, cmd)
	r.sources = append(r.sources, source)
}

func (r *commandRecorder) LogRequest(log.Request, string) {}

func TestCommandIsLogged(t *testing.T) {
	rec := &commandRecorder{}
	log.SetActivityLogger(rec)
	t.Cleanup(func() { log.SetActivityLogger(nil) })

	cmd := Command("test", "echo", "hello")
	require.Len(t, rec.cmds, 1)
	assert.Same(t, cmd, rec.cmds[0])
	assert.Equal(t, "test", rec.sources[0])
	assert.Equal(t, []string{"echo", "hello"}, cmd.Args)
}
