package cmd

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openPath opens a file with the platform's default viewer.
func openPath(path string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", path)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	case "linux":
		c = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("no known file opener for %s", runtime.GOOS)
	}
	return c.Start()
}
