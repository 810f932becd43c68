package render

import (
	"os"
	"os/exec"
	"runtime"
)

// ClearScreen clears the host terminal. Adapted unchanged from the
// reference render.ClearScreen; cmd/termclient clears its screen with
// asciiring's helpers.ClearScreen instead of this function.
func ClearScreen() {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "cls")
	default:
		cmd = exec.Command("clear")
	}
	cmd.Stdout = os.Stdout
	cmd.Run()
}
