// Package yamlcfg loads blotter run files written in YAML. It produces the
// same config.Model as the HCL loader:
//
//	blotter:
//	  name: simulation
//	  options:
//	    slippage_bps: 5
//	orders:
//	  - name: buy_aapl
//	    asset: AAPL
//	    amount: 100
//	    limit: 191
//	prices:
//	  AAPL: 190.25
package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/blotterkit/internal/config"
	"github.com/vk/blotterkit/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

type fileRoot struct {
	Blotter *blotterDoc        `yaml:"blotter"`
	Orders  []orderDoc         `yaml:"orders"`
	Prices  map[string]float64 `yaml:"prices"`
}

type blotterDoc struct {
	Name    string         `yaml:"name"`
	Options map[string]any `yaml:"options"`
}

type orderDoc struct {
	Name   string   `yaml:"name"`
	Asset  string   `yaml:"asset"`
	Amount int64    `yaml:"amount"`
	Limit  *float64 `yaml:"limit"`
	Stop   *float64 `yaml:"stop"`
	Cancel bool     `yaml:"cancel"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML run file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load reads every file in paths and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := config.NewModel()
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
		}
		fileModel, err := l.Parse(src, path)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, fmt.Errorf("failed to merge YAML file %s: %w", path, err)
		}
		logger.Debug("Loaded YAML file.", "file", path, "orders", len(fileModel.Orders))
	}
	return model, nil
}

// Parse decodes a single YAML run file held in memory.
func (l *Loader) Parse(src []byte, filename string) (*config.Model, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var root fileRoot
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}

	model := config.NewModel()
	if root.Blotter != nil {
		opts, err := toCtyValue(root.Blotter.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: blotter %q: %w", filename, root.Blotter.Name, err)
		}
		if opts.IsNull() {
			opts = cty.EmptyObjectVal
		}
		model.Blotter = &config.Blotter{Name: root.Blotter.Name, Options: opts}
	}

	var orders []*config.Order
	for i, o := range root.Orders {
		if o.Name == "" {
			o.Name = fmt.Sprintf("order_%d", i)
		}
		if o.Asset == "" {
			return nil, fmt.Errorf("failed to decode YAML file %s: order %q is missing asset", filename, o.Name)
		}
		orders = append(orders, &config.Order{
			Name:   o.Name,
			Asset:  o.Asset,
			Amount: o.Amount,
			Limit:  o.Limit,
			Stop:   o.Stop,
			Cancel: o.Cancel,
		})
	}
	if err := model.Merge(&config.Model{Orders: orders, Prices: root.Prices}); err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}
	return model, nil
}
