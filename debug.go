package pulltorefresh

import (
	"fmt"
	"io"
	"os"
)

// debugOutput receives debug lines. Tests replace it to capture output.
var debugOutput io.Writer = os.Stderr

// debugLog prints one line to stderr when debug mode is on.
func (c *Controller) debugLog(format string, args ...any) {
	if !c.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOutput, "[pulltorefresh] "+format+"\n", args...)
}
