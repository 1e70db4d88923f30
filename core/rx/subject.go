package rx

import (
	"log/slog"
	"slices"
)

// Subject is both an Observer and an Observable: signals pushed into it are
// fanned out to its current subscribers.
type Subject[T any] interface {
	Observer[T]
	Observable[T]
	// HasObservers reports whether any subscriber is attached.
	HasObservers() bool
}

// SubjectOption configures a subject.
type SubjectOption func(*subjectOptions)

type subjectOptions struct {
	logger      *slog.Logger
	replayLimit int
}

func newSubjectOptions(opts []SubjectOption) subjectOptions {
	o := subjectOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log()
	}
	return o
}

// WithSubjectLogger sets the logger used for attach and detach events and
// for signals ignored after termination.
func WithSubjectLogger(l *slog.Logger) SubjectOption {
	return func(o *subjectOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReplayLimit bounds the history a ReplaySubject keeps to the last n
// values. Zero or a negative n keeps everything.
func WithReplayLimit(n int) SubjectOption {
	return func(o *subjectOptions) {
		o.replayLimit = max(n, 0)
	}
}

// without returns a copy of list with item removed. Snapshots of list held
// by emitting goroutines are not affected.
func without[E comparable](list []E, item E) []E {
	i := slices.Index(list, item)
	if i < 0 {
		return list
	}
	out := make([]E, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
