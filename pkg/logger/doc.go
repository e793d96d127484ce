/*
Package logger wraps uber-go/zap behind a small interface with verbosity
levels and structured fields.

	log := logger.NewLogger(logger.Config{
	    Verbosity: 0, // Info and above
	})

	log.Info("Validation started")
	log.Debug("Loading configuration") // verbosity >= 1
	log.Trace("Resolving key")         // verbosity >= 2

	log.WithFields(logger.Fields{
	    "path":          "lintconf.yml",
	    "notifications": 2,
	}).Warn("Configuration has unknown properties")

Entries are JSON encoded by default:

	{"level":"warn","ts":"2024-01-20T15:04:05.000Z","message":"Configuration has unknown properties","path":"lintconf.yml","notifications":2}

Set Config.Encoding to EncodingConsole for human readable lines.

The logger is safe for concurrent use.
*/
package logger
