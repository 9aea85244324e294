package logging

import (
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing to w. Console output is a plain
// "LEVEL message key=value" line; jsonOutput switches to zap's JSON encoder.
func New(level string, jsonOutput bool, w io.Writer) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}

	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.NameKey = ""
		cfg.ConsoleSeparator = " "
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), lvl)
	return zap.New(core).Sugar(), nil
}

// Verbosity levels for the -q and repeated -v flags.
const (
	VerbosityQuiet = -1 // warnings and errors only
	VerbosityUser  = 0  // + skipped-file diagnostics
	VerbosityDebug = 1  // + per-file details
)

// VerbosityToLevel maps a verbosity to a zap level.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityQuiet:
		return zapcore.WarnLevel
	case verbosity == VerbosityUser:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
