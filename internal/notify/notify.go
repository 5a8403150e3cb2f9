// Package notify shows short, non-fatal messages to the user.
package notify

// Notifier presents a transient message.
type Notifier interface {
	ShowTransientMessage(text string)
}

// Func adapts a function to Notifier.
type Func func(text string)

func (f Func) ShowTransientMessage(text string) { f(text) }

// Discard drops every message.
var Discard Notifier = Func(func(string) {})
