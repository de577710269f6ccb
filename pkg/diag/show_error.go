package diag

import (
	"fmt"
	"io"
)

// Markers used when showing an error on a terminal.
const (
	culpritStartTTY = "\033[1;4m"
	culpritEndTTY   = "\033[m"
)

// ShowError writes an error to w with an "Error: " prefix. When color is true
// and err implements Shower, the source context is also written, with the
// culprit highlighted.
func ShowError(w io.Writer, err error, color bool) {
	if shower, ok := err.(Shower); ok && color {
		fmt.Fprintf(w, "\033[31;1mError:\033[m %s\n", shower.Show(culpritStartTTY, culpritEndTTY))
		return
	}
	fmt.Fprintln(w, "Error:", err.Error())
}
