package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/blotterkit/internal/config"
	"github.com/vk/blotterkit/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL run file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Load parses every file in paths and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, path := range paths {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}
		fileModel, err := l.decode(file.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, err)
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, fmt.Errorf("failed to merge HCL file %s: %w", path, err)
		}
		logger.Debug("Loaded HCL file.", "file", path, "orders", len(fileModel.Orders))
	}

	logger.Debug("HCL loading complete.", "orders", len(model.Orders), "prices", len(model.Prices))
	return model, nil
}

// Parse decodes a single run file held in memory. filename is used only in
// diagnostics.
func (l *Loader) Parse(src []byte, filename string) (*config.Model, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	model := config.NewModel()
	fileModel, err := l.decode(file.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, err)
	}
	if err := model.Merge(fileModel); err != nil {
		return nil, err
	}
	return model, nil
}

func (l *Loader) decode(body hcl.Body) (*config.Model, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, diags
	}

	model := &config.Model{Prices: root.Prices}
	for _, b := range root.Blotters {
		opts, err := optionsValue(b.Options)
		if err != nil {
			return nil, fmt.Errorf("blotter %q: %w", b.Name, err)
		}
		if err := model.Merge(&config.Model{Blotter: &config.Blotter{Name: b.Name, Options: opts}}); err != nil {
			return nil, err
		}
	}
	for _, o := range root.Orders {
		model.Orders = append(model.Orders, translateOrder(o))
	}
	return model, nil
}

// optionsValue evaluates every attribute in body into a single object value.
// Nested blocks are not allowed inside a blotter block.
func optionsValue(body hcl.Body) (cty.Value, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	vals := make(map[string]cty.Value, len(attrs))
	for _, name := range names {
		v, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return cty.NilVal, diags
		}
		vals[name] = v
	}
	return cty.ObjectVal(vals), nil
}

func translateOrder(o *orderBlock) *config.Order {
	return &config.Order{
		Name:   o.Name,
		Asset:  o.Asset,
		Amount: o.Amount,
		Limit:  o.Limit,
		Stop:   o.Stop,
		Cancel: o.Cancel,
	}
}
