package jsonstat

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/robert-malhotra/go-jsonstat/internal/envelope"
)

// Option configures how a Dataset is built and rendered.
type Option func(*options)

type options struct {
	locale   language.Tag
	missing  string
	logger   *slog.Logger
	maxCells int
}

func defaultOptions() *options {
	return &options{
		locale:   language.English,
		missing:  "",
		logger:   slog.New(slog.DiscardHandler),
		maxCells: envelope.DefaultMaxCells,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLocale sets the locale used to format numbers in tables.
// The default is English.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

// WithMissing sets the text shown in tables for cells that have neither a
// value nor a status code. The default is the empty string.
func WithMissing(text string) Option {
	return func(o *options) {
		o.missing = text
	}
}

// WithLogger sets the logger receiving debug output during construction.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxCells rejects datasets whose dimension sizes declare more than n
// cells. Values below 1 are ignored.
func WithMaxCells(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxCells = n
		}
	}
}
