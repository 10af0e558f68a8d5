// Package errors provides the error taxonomy shared by the restkit core.
// Every error raised by the core is an *AppError carrying a machine-readable
// code; transport failures stay *httpclient.Error and are never rewrapped.
package errors
