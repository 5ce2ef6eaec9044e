package options

import (
	"fmt"

	"github.com/mozilla-ai/mcpdir/internal/cmd"
	"github.com/mozilla-ai/mcpdir/internal/config"
)

type CmdOption func(*CmdOptions) error

type CmdOptions struct {
	ConfigLoader      config.Loader
	ConfigInitializer config.Initializer
	CatalogBuilder    cmd.CatalogBuilder
	ManagerBuilder    cmd.ManagerBuilder
}

func defaultOptions() CmdOptions {
	configLoader := &config.DefaultLoader{}
	builder := &cmd.BaseCmd{}
	return CmdOptions{
		ConfigLoader:      configLoader,
		ConfigInitializer: configLoader,
		CatalogBuilder:    builder,
		ManagerBuilder:    builder,
	}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithConfigLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		if l == nil {
			return fmt.Errorf("config loader cannot be nil")
		}
		o.ConfigLoader = l
		return nil
	}
}

func WithConfigInitializer(i config.Initializer) CmdOption {
	return func(o *CmdOptions) error {
		if i == nil {
			return fmt.Errorf("config initializer cannot be nil")
		}
		o.ConfigInitializer = i
		return nil
	}
}

// WithCatalogBuilder overrides how commands obtain the catalog.
func WithCatalogBuilder(b cmd.CatalogBuilder) CmdOption {
	return func(o *CmdOptions) error {
		if b == nil {
			return fmt.Errorf("catalog builder cannot be nil")
		}
		o.CatalogBuilder = b
		return nil
	}
}

// WithManagerBuilder overrides how commands obtain the package manager and its store.
func WithManagerBuilder(b cmd.ManagerBuilder) CmdOption {
	return func(o *CmdOptions) error {
		if b == nil {
			return fmt.Errorf("manager builder cannot be nil")
		}
		o.ManagerBuilder = b
		return nil
	}
}
