package log

import "go.uber.org/zap/zapcore"

// Level mirrors zapcore.Level so callers of this package never import zap
// directly.
type Level int8

const (
	DebugLevel Level = Level(zapcore.DebugLevel)
	InfoLevel  Level = Level(zapcore.InfoLevel)
	WarnLevel  Level = Level(zapcore.WarnLevel)
	ErrorLevel Level = Level(zapcore.ErrorLevel)
	FatalLevel Level = Level(zapcore.FatalLevel)
	PanicLevel Level = Level(zapcore.PanicLevel)
)

// LevelEncoder controls how a Level is rendered in a log line.
type LevelEncoder func(Level, zapcore.PrimitiveArrayEncoder)

// CallerEncoder controls how the caller (file:line) is rendered.
type CallerEncoder func(zapcore.EntryCaller, zapcore.PrimitiveArrayEncoder)

// OutputEncoder builds the zapcore.Encoder used for both stdout and stderr
// cores.
type OutputEncoder func(zapcore.EncoderConfig) zapcore.Encoder

// BracketLevelEncoder renders a level as "[INFO]".
func BracketLevelEncoder(l Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + zapcore.Level(l).CapitalString() + "]")
}

// JsonOutputEncoder emits structured JSON lines.
func JsonOutputEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return zapcore.NewJSONEncoder(cfg)
}

// ConsoleOutputEncoder emits human-readable console lines, used by CLI
// tools such as cmd/planrun.
func ConsoleOutputEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return zapcore.NewConsoleEncoder(cfg)
}
