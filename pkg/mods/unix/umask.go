//go:build unix

package unix

import (
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sys/unix"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
)

const validUmaskMsg = "integer in the range [0..0o777]"

// There is no way to query the current umask without changing it, so the
// value is cached at startup and updated on every change.
//
// This assumes nothing else in the process calls unix.Umask.
var (
	umaskVal   int
	umaskMutex sync.RWMutex
)

func init() {
	// The temporary value is the most restrictive one possible.
	umaskVal = unix.Umask(0o777)
	unix.Umask(umaskVal)
}

func formatUmask(m int) vals.Value { return vals.Str(fmt.Sprintf("0o%03o", m)) }

// umask returns the current mask, or sets a new one and returns the old one.
func umask(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to umask", 0, 1, len(args)); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		umaskMutex.RLock()
		defer umaskMutex.RUnlock()
		return formatUmask(umaskVal), nil
	}
	m, err := parseUmask(args[0])
	if err != nil {
		return nil, err
	}

	umaskMutex.Lock()
	defer umaskMutex.Unlock()
	old := unix.Umask(m)
	umaskVal = m
	ctx.Debugf("umask", "changed from 0o%03o to 0o%03o", old, m)
	return formatUmask(old), nil
}

// parseUmask accepts an Int, or a Str that is octal by default unless it has
// an explicit base prefix like 0x or 0b.
func parseUmask(v vals.Value) (int, error) {
	var m int64
	switch v := v.(type) {
	case vals.Str:
		i, err := strconv.ParseInt(string(v), 8, 0)
		if err != nil {
			i, err = strconv.ParseInt(string(v), 0, 0)
			if err != nil {
				return -1, errs.BadValue{
					What: "umask", Valid: validUmaskMsg, Actual: string(v)}
			}
		}
		m = i
	case vals.Int:
		m = int64(v)
	default:
		return -1, errs.BadValue{
			What: "umask", Valid: validUmaskMsg, Actual: vals.Kind(v)}
	}
	if m < 0 || m > 0o777 {
		return -1, errs.OutOfRange{
			What: "umask", ValidLow: 0, ValidHigh: 0o777,
			Actual: fmt.Sprintf("%O", m)}
	}
	return int(m), nil
}
