package logging

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup sends the standard logger to a rotating file. The returned closer
// flushes and closes the file. An empty path discards log output, since
// anything on stderr would corrupt the terminal UI.
func Setup(path string) io.Closer {
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil)
	}

	logFile := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
	}
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return logFile
}
