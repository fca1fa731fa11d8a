package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(Formatter(false))
}

// Setup configura nível e destino dos logs.
// Com file preenchido, escreve no stdout e em um arquivo rotacionado diariamente.
func Setup(level, file string, maxAge int) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)

	if file == "" {
		log.SetOutput(os.Stdout)
		log.SetFormatter(Formatter(true))
		return nil
	}

	if maxAge <= 0 {
		maxAge = 7
	}
	writer, err := rotatelogs.New(
		file+".%Y%m%d",
		rotatelogs.WithLinkName(file),
		rotatelogs.WithRotationCount(uint(maxAge)),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", file, err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, writer))
	// arquivo não recebe códigos de cor
	log.SetFormatter(Formatter(false))
	return nil
}

// Logger expõe o logger global, usado pelo access log do router
func Logger() *log.Logger {
	return log.StandardLogger()
}

// getCaller pula logger.X -> addCallerField -> getCaller
func getCaller() (string, int) {
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		return "unknown", 0
	}
	return filepath.Base(file), line
}

func addCallerField() *log.Entry {
	file, line := getCaller()
	return log.WithField("caller", fmt.Sprintf("%s:%d", file, line))
}

func Info(args ...interface{}) {
	addCallerField().Info(args...)
}

func Warn(args ...interface{}) {
	addCallerField().Warn(args...)
}

func Error(args ...interface{}) {
	addCallerField().Error(args...)
}

func Infof(format string, args ...interface{}) {
	addCallerField().Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	addCallerField().Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	addCallerField().Errorf(format, args...)
}

func Debugf(format string, args ...interface{}) {
	addCallerField().Debugf(format, args...)
}

func Fatalf(format string, args ...interface{}) {
	addCallerField().Fatalf(format, args...)
}

func Formatter(colors bool) *nested.Formatter {
	return &nested.Formatter{
		FieldsOrder:      []string{"time", "level", "caller", "msg"},
		HideKeys:         true,
		TimestampFormat:  "2006-01-02 15:04:05.000",
		NoColors:         !colors,
		NoUppercaseLevel: true,
		ShowFullLevel:    true,
	}
}
