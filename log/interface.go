package log

// Logger is the logging surface used across this module. It is a thin,
// named-child-capable wrapper over a zap SugaredLogger so the rest of the
// module never imports zap directly.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Fatal(args ...interface{})
	Fatalf(template string, args ...interface{})
	Fatalw(msg string, keysAndValues ...interface{})

	// Named returns a child logger scoped under the given name, the way
	// every component of this module (planner, watermark) tags its log
	// lines with its own subsystem name.
	Named(name string) Logger
}
