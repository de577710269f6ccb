package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"src.dpm.sh/pkg/diag"
	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/parse"
	"src.dpm.sh/pkg/sys"
)

// Evaluates each argument as a separate program, stopping at the first error.
func evalArgs(fds [3]*os.File, ctx *eval.Context, args []string) int {
	for i, arg := range args {
		_, err := eval.EvalSource(argSource(i, arg), ctx)
		if err != nil {
			diag.ShowError(fds[2], err, sys.IsATTY(fds[2]))
			return 2
		}
	}
	return 0
}

// Evaluates the whole content of a file as one program.
func evalFile(fds [3]*os.File, ctx *eval.Context, fname string) int {
	src, err := fileSource(fname)
	if err != nil {
		fmt.Fprintln(fds[2], err)
		return 2
	}
	_, err = eval.EvalSource(src, ctx)
	if err != nil {
		diag.ShowError(fds[2], err, sys.IsATTY(fds[2]))
		return 2
	}
	return 0
}

// Parses the input of any of the three modes without evaluating it, and
// reports all parse errors.
func check(fds [3]*os.File, fname string, args []string, jsonOut bool) int {
	var srcs []parse.Source
	switch {
	case fname != "":
		src, err := fileSource(fname)
		if err != nil {
			fmt.Fprintln(fds[2], err)
			return 2
		}
		srcs = append(srcs, src)
	case len(args) > 0:
		for i, arg := range args {
			srcs = append(srcs, argSource(i, arg))
		}
	default:
		code, err := io.ReadAll(fds[0])
		if err != nil {
			fmt.Fprintln(fds[2], "cannot read stdin:", err)
			return 2
		}
		srcs = append(srcs, parse.Source{Name: "[stdin]", Code: string(code)})
	}

	var errs []error
	for _, src := range srcs {
		if err := parseSource(src); err != nil {
			errs = append(errs, err)
		}
	}
	if jsonOut {
		fmt.Fprintf(fds[1], "%s\n", errorsToJSON(errors.Join(errs...)))
	} else {
		for _, err := range errs {
			diag.ShowError(fds[2], err, sys.IsATTY(fds[2]))
		}
	}
	if len(errs) > 0 {
		return 2
	}
	return 0
}

// Parses src the same way eval.EvalSource does.
func parseSource(src parse.Source) error {
	_, err := parse.Parse(src)
	if err != nil {
		_, err = parse.ParseRaw(src)
	}
	return err
}

func argSource(i int, code string) parse.Source {
	return parse.Source{Name: fmt.Sprintf("[arg %d]", i+1), Code: code}
}

func fileSource(fname string) (parse.Source, error) {
	name, err := filepath.Abs(fname)
	if err != nil {
		return parse.Source{}, fmt.Errorf("cannot get full path of file %q: %v", fname, err)
	}
	code, err := readFileUTF8(name)
	if err != nil {
		return parse.Source{}, fmt.Errorf("cannot read file %q: %v", name, err)
	}
	return parse.Source{Name: name, Code: code}, nil
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

// Converts parse errors into JSON.
func errorsToJSON(err error) []byte {
	converted := []errorInJSON{}
	for _, e := range parse.UnpackErrors(err) {
		converted = append(converted,
			errorInJSON{e.Context.Name, e.Context.From, e.Context.To, e.Message})
	}

	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
