// Package log provides the leveled logging interface used across kernelplay.
//
// The kernel, plugins, planner and scenarios all log through the Logger
// interface, so the entry point decides where output goes. Two
// implementations ship with the package:
//
//   - DefaultLogger writes through Go's standard log package.
//   - GologLogger wraps a github.com/kataras/golog logger.
//
// # Example Usage
//
//	glogger := golog.New()
//	glogger.SetPrefix("[playground] ")
//
//	logger := log.NewGologLogger(glogger)
//	logger.SetLevel(log.LogLevelDebug)
//	logger.Info("loaded %d plugins", n)
//
// # Model Callbacks
//
// CallbackHandler adapts a Logger to langchaingo's callbacks.Handler so that
// every prompt sent to a model and every response received is logged at
// debug level:
//
//	llm, _ := openai.New(openai.WithCallback(log.NewCallbackHandler(logger)))
//
// # Package-level Logger
//
// Debug, Info, Warn and Error forward to a package-level logger that can be
// replaced with SetDefaultLogger.
package log
