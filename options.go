package rank9sel

import "github.com/sirupsen/logrus"

// buildOptions collects the knobs Prepare and PrepareConcurrent accept.
type buildOptions struct {
	logger      *logrus.Logger
	concurrency int
}

// Option configures Prepare/PrepareConcurrent.
type Option func(*buildOptions)

// WithLogger sets the logger construction reports its progress to. If
// nil (the default), a logger with output discarded is used, matching
// the cost of not logging at all.
func WithLogger(l *logrus.Logger) Option {
	return func(o *buildOptions) {
		if l == nil {
			l = noopLogger()
		}
		o.logger = l
	}
}

// WithConcurrency sets the stride count PrepareConcurrent fans its
// rank-table build out to. Ignored by Prepare. Values below 1 are
// clamped to 1.
func WithConcurrency(n int) Option {
	return func(o *buildOptions) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}

func defaultBuildOptions() *buildOptions {
	return &buildOptions{
		logger:      noopLogger(),
		concurrency: 1,
	}
}

func noopLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
