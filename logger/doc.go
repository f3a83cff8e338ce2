// Package logger provides structured logging on top of zerolog.
//
// Loggers are component-scoped and take optional field maps:
//
//	log := logger.WithComponent("auth")
//	log.Info("login succeeded", logger.Fields(logger.FieldUsername, "alice"))
//
// Configuration:
//
//	logging:
//	  level: "info"
//	  format: "json"
package logger
