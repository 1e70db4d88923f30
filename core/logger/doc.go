// Package logger provides structured logging utilities built on Go's standard
// slog package: a small factory with functional options and a set of attribute
// helpers shared by the stream packages.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("pipeline"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	rx.SetLogger(log)
//
// Loading settings from the environment (RX_LOG_LEVEL, RX_LOG_FORMAT):
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil inputs, which slog drops:
//
//	log.Error("observer panicked",
//		logger.Component("rx"),
//		logger.Operator("safe"),
//		logger.Panic(r),
//		logger.Error(err), // nil-safe
//	)
//
// Stream-specific helpers: [Operator], [SubscriberID], [Signal].
// Generic helpers: [Error], [Errors], [Panic], [Component], [Count], [Key],
// [Duration], [Elapsed], [Stack].
//
// # Testing with Custom Output
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
//	log.Info("test message", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
package logger
