// Package logutil provides logging utilities.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out     = io.Discard
	outFile *os.File
	loggers []*log.Logger
	mu      sync.Mutex
)

// GetLogger gets a logger with the given prefix. Loggers write to nowhere
// until SetOutput or SetOutputFile is called.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile, it
// is closed.
func SetOutput(newout io.Writer) {
	setOutput(newout, nil)
}

func setOutput(newout io.Writer, file *os.File) {
	mu.Lock()
	defer mu.Unlock()
	if outFile != nil {
		outFile.Close()
	}
	out, outFile = newout, file
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger
// to the named file. If the old output was a file opened by SetOutputFile, it
// is closed. The new file is truncated. SetOutputFile("") is equivalent to
// SetOutput(io.Discard).
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	setOutput(file, file)
	return nil
}
