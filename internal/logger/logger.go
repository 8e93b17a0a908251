package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

var (
	once   sync.Once
	logger *log.Logger
	debug  bool
)

func Init() {
	once.Do(func() {
		logger = log.New(os.Stdout, "COUNTRY_BROWSER: ", log.LstdFlags|log.Lshortfile)
		debug = strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug")
	})
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) {
	Init()
	logger.SetOutput(w)
}

// SetDebug toggles Debug output.
func SetDebug(enabled bool) {
	Init()
	debug = enabled
}

func Info(message string, v ...interface{}) {
	Init()
	logger.Printf("INFO: "+message, v...)
}

func Warn(message string, v ...interface{}) {
	Init()
	logger.Printf("WARN: "+message, v...)
}

func Error(message string, v ...interface{}) {
	Init()
	logger.Printf("ERROR: "+message, v...)
}

func Debug(message string, v ...interface{}) {
	Init()
	if !debug {
		return
	}
	logger.Printf("DEBUG: "+message, v...)
}
