package printer

// Options configure how much detail a printer shows.
type Options struct {
	showSeparator bool
	showDetails   bool
}

type Option func(*Options) error

func defaultOptions() Options {
	return Options{
		showSeparator: false,
		showDetails:   true,
	}
}

func NewOptions(opts ...Option) (Options, error) {
	options := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return Options{}, err
		}
	}
	return options, nil
}

// WithSeparator prints a separator line after each item.
func WithSeparator(enabled bool) Option {
	return func(o *Options) error {
		o.showSeparator = enabled
		return nil
	}
}

// WithDetails controls whether secondary fields (tags, author, size, timestamps) are printed.
func WithDetails(enabled bool) Option {
	return func(o *Options) error {
		o.showDetails = enabled
		return nil
	}
}
