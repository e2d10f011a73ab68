package util

import (
	"errors"
	"os/exec"
	"runtime"

	"chatterm/log"
)

// Command creates a new exec.Cmd and logs it
func Command(source string, name string, arg ...string) *exec.Cmd {
	cmd := exec.Command(name, arg...)
	log.LogExecCommand(cmd, source)
	return cmd
}

// ErrUnsupportedOS is returned by OpenURL on platforms without a known
// opener.
var ErrUnsupportedOS = errors.New("no URL opener for this OS")

// openerArgs returns the program and arguments that open url on goos.
func openerArgs(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	}
	return "", nil, ErrUnsupportedOS
}

// OpenURL opens url in the default browser without waiting for it.
func OpenURL(url string) error {
	name, args, err := openerArgs(runtime.GOOS, url)
	if err != nil {
		return err
	}
	cmd := Command("open_link", name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.WarningLog.Printf("%s %s: %v", name, url, err)
		}
	}()
	return nil
}
