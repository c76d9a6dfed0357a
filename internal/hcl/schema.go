package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top-level structure of a run file.
type fileRoot struct {
	Blotters []*blotterBlock    `hcl:"blotter,block"`
	Orders   []*orderBlock      `hcl:"order,block"`
	Prices   map[string]float64 `hcl:"prices,optional"`
}

// blotterBlock selects an implementation by its label. Everything inside the
// block is left for the implementation to interpret.
type blotterBlock struct {
	Name    string   `hcl:"name,label"`
	Options hcl.Body `hcl:",remain"`
}

type orderBlock struct {
	Name   string   `hcl:"name,label"`
	Asset  string   `hcl:"asset"`
	Amount int64    `hcl:"amount"`
	Limit  *float64 `hcl:"limit,optional"`
	Stop   *float64 `hcl:"stop,optional"`
	Cancel bool     `hcl:"cancel,optional"`
}
