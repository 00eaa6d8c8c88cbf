package logging

import (
	"os"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how the run logger is built.
type Options struct {
	Level   string // zap level name; verbose runs force "debug"
	Pretty  bool   // console encoding instead of JSON
	LogFile string // optional file sink, append-or-create
}

// New builds the ectologger used everywhere in the driver, backed by zap.
// Output always goes to stderr; when a log file is configured the same
// entries are teed into it. The returned closer flushes and releases the
// file sink.
func New(opts Options) (ectologger.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid log level %q", opts.Level)
	}

	var encoder zapcore.Encoder
	if opts.Pretty {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}

	var logFile *os.File
	if opts.LogFile != "" {
		logFile, err = os.OpenFile(opts.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to open log file %q", opts.LogFile)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(logFile), level))
	}

	zapLogger := zap.New(zapcore.NewTee(cores...))
	closer := func() error {
		_ = zapLogger.Sync()
		if logFile != nil {
			return logFile.Close()
		}
		return nil
	}

	return zapadapter.NewZapEctoLogger(zapLogger, nil), closer, nil
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}
