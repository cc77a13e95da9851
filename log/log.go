package log

import (
	"io"
	"log"
	"os"
)

const traceEnvVar = "INKTEX_TRACE"

// Leveled loggers shared across the module. Trace output is discarded
// unless INKTEX_TRACE=1 is set in the environment.
var (
	Trace   *log.Logger
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
)

func init() {
	InitLog()
}

// InitLog (re)creates the package loggers, re-reading the environment.
func InitLog() {
	traceOut := io.Writer(io.Discard)
	if os.Getenv(traceEnvVar) == "1" {
		traceOut = os.Stderr
	}

	Trace = log.New(traceOut, "TRACE: ", log.Ldate|log.Ltime|log.Lshortfile)
	Info = log.New(os.Stdout, "", 0)
	Warning = log.New(os.Stdout, "WARNING: ", 0)
	Error = log.New(os.Stderr, "ERROR: ", 0)
}
