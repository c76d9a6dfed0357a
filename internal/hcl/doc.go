// Package hcl loads blotter run files written in HCL and translates them
// into the format-agnostic config.Model.
//
// A run file declares one blotter block, any number of order blocks and a
// prices attribute:
//
//	blotter "simulation" {
//	  slippage_bps = 5
//	}
//
//	order "buy_aapl" {
//	  asset  = "AAPL"
//	  amount = 100
//	  limit  = 191
//	}
//
//	prices = { AAPL = 190.25 }
//
// The body of the blotter block is passed through untouched as an object
// value; the selected implementation decides which attributes it accepts.
package hcl
