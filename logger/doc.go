// Package logger provides structured logging for logmerge using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers. Logs go to stderr by default so that standard
// output stays free for merged lines and match reports.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("merge")
//	log.Info("run finished", logger.Fields(logger.FieldRecordsWritten, 42))
package logger
