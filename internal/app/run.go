package app

import (
	"context"
	"fmt"

	"github.com/vk/blotterkit/internal/blotter"
	"github.com/vk/blotterkit/internal/ctxlog"
)

// Report is the outcome of a run.
type Report struct {
	Blotter      string
	Orders       []blotter.Order
	Transactions []blotter.Transaction
}

// Run loads the configured run file, opens the blotter it names, submits its
// orders, fills them against its prices and writes a report to the output.
func (a *App) Run(ctx context.Context) (*Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	model, err := a.loadRunFile(ctx, a.config.RunPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load run file: %w", err)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run file: %w", err)
	}

	opts, err := blotter.NewOptions(model.Blotter.Options)
	if err != nil {
		return nil, fmt.Errorf("blotter %q: %w", model.Blotter.Name, err)
	}
	b, err := blotter.Open(ctx, a.catalog, model.Blotter.Name, opts)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Blotter opened.", "blotter", model.Blotter.Name)

	for _, o := range model.Orders {
		id, err := b.Order(ctx, blotter.Order{
			Asset:  o.Asset,
			Amount: o.Amount,
			Limit:  o.Limit,
			Stop:   o.Stop,
		})
		if err != nil {
			return nil, fmt.Errorf("order %q: %w", o.Name, err)
		}
		a.logger.Debug("Order submitted.", "order", o.Name, "id", id)
		if o.Cancel {
			if err := b.Cancel(ctx, id); err != nil {
				return nil, fmt.Errorf("cancel order %q: %w", o.Name, err)
			}
		}
	}

	txns, err := b.Fill(ctx, model.Prices)
	if err != nil {
		return nil, fmt.Errorf("fill failed: %w", err)
	}

	report := &Report{
		Blotter:      model.Blotter.Name,
		Orders:       b.Orders(),
		Transactions: txns,
	}
	a.logger.Info("Run finished.", "orders", len(report.Orders), "transactions", len(txns))

	if err := writeReport(a.outW, report); err != nil {
		return report, fmt.Errorf("failed to write report: %w", err)
	}
	a.logger.Debug("App.Run method finished.")
	return report, nil
}
