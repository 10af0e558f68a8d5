// Package logger provides structured logging for restkit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers. The lro and paging packages log through a
// *Logger and fall back to NewNop when none is configured.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "billing-client").WithComponent("lro")
//	log.Debug("poll", logger.Fields(logger.FieldOperationID, id, logger.FieldStatus, status))
package logger
