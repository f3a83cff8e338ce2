// Package errors provides the service error taxonomy.
//
// Every failure that reaches the transport is an *AppError carrying a
// machine-readable code, a human-readable message, a retryable flag and the
// HTTP status it maps to. Causes are kept for logging and never serialized.
package errors
