package core

import "log"

// Logger is the application-wide logging contract.
// Implementations may forward to an error tracking service; a user.User passed in
// the trailing args identifies the person attached to the event.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// StdLogger logs to the standard library logger only. Used by tests and the CLI.
type StdLogger struct {
	Std *log.Logger
}

var _ Logger = (*StdLogger)(nil)

func (l StdLogger) print(msg string, args []interface{}) {
	l.Std.Println(msg)
	for _, arg := range args {
		l.Std.Printf("%+v\n", arg)
	}
}

func (l StdLogger) Enable(bool)                            {}
func (l StdLogger) Debug(msg string, args ...interface{})  { l.print(msg, args) }
func (l StdLogger) Info(msg string, args ...interface{})   { l.print(msg, args) }
func (l StdLogger) Warn(msg string, args ...interface{})   { l.print(msg, args) }
func (l StdLogger) Error(msg string, args ...interface{})  { l.print(msg, args) }
func (l StdLogger) Fatal(msg string, args ...interface{})  { l.print(msg, args); l.Std.Fatal(msg) }
