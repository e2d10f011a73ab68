package app

import (
	"os/exec"

	"chatterm/log"
	"chatterm/ui"
)

// ActivityAdapter feeds log.ActivityLogger events into the activity log
// shown by the activity overlay.
type ActivityAdapter struct {
	activity *ui.ActivityLog
}

func NewActivityAdapter(activity *ui.ActivityLog) *ActivityAdapter {
	return &ActivityAdapter{activity: activity}
}

// LogCommand implements log.ActivityLogger.
func (a *ActivityAdapter) LogCommand(cmd *exec.Cmd, source string) {
	if a.activity == nil || cmd == nil {
		return
	}
	var args []string
	if len(cmd.Args) > 1 {
		args = cmd.Args[1:]
	}
	a.activity.AddCommand(cmd.Path, args, cmd.Dir, source)
}

// LogRequest implements log.ActivityLogger.
func (a *ActivityAdapter) LogRequest(req log.Request, source string) {
	if a.activity == nil {
		return
	}
	a.activity.AddRequest(req, source)
}
