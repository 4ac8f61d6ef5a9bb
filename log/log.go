// Package log is a thin logrus facade writing rotated log files under where.Logs().
package log

import (
	"io"
	"path/filepath"

	"github.com/nrkcat/nrkcat/constant"
	"github.com/nrkcat/nrkcat/key"
	"github.com/nrkcat/nrkcat/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// enabled mirrors logs.write. While false every emission is dropped.
var enabled bool

var rotator io.Closer

// Setup configures output, formatter and level from the loaded configuration.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(where.Logs(), constant.App+".log"),
		MaxSize:    viper.GetInt(key.LogsMaxSizeMB),
		MaxBackups: 3,
		MaxAge:     28,
	}
	rotator = writer
	logrus.SetOutput(writer)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	return nil
}

// SetOutput redirects logging to w and turns it on. Used by tests.
func SetOutput(w io.Writer) {
	enabled = true
	logrus.SetOutput(w)
}

// Close releases the rotating log file, if one was opened.
func Close() error {
	if rotator == nil {
		return nil
	}
	return rotator.Close()
}

// WithFields returns an entry carrying structured fields. The entry is discarded while logging is off.
func WithFields(fields logrus.Fields) *logrus.Entry {
	if !enabled {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return logrus.NewEntry(l)
	}
	return logrus.WithFields(fields)
}

func Error(args ...interface{}) {
	if enabled {
		logrus.Error(args...)
	}
}
func Errorf(format string, args ...interface{}) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}
func Warn(args ...interface{}) {
	if enabled {
		logrus.Warn(args...)
	}
}
func Warnf(format string, args ...interface{}) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}
func Info(args ...interface{}) {
	if enabled {
		logrus.Info(args...)
	}
}
func Infof(format string, args ...interface{}) {
	if enabled {
		logrus.Infof(format, args...)
	}
}
func Debug(args ...interface{}) {
	if enabled {
		logrus.Debug(args...)
	}
}
func Debugf(format string, args ...interface{}) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
