package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open launches url in the user's default browser. Used for the hosted
// checkout redirect; callers treat failure as non-fatal and show the URL
// for manual copy instead.
func Open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("no browser opener for %s", runtime.GOOS)
	}
}
