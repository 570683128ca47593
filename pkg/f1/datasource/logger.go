/*
Package datasource contains the data sources the dashboard reads from. The relational database behind
every page lives in the sql sub-package.
*/
package datasource

// Logger is the subset of logging.Logger a datasource needs.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
}
