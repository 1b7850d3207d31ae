package aggregate

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"mv2-creator/connectors/config"
	ccsv "mv2-creator/connectors/csv"
	"mv2-creator/creator"
	"mv2-creator/domain/mv2"

	lo "github.com/samber/lo"
)

// Run executes the aggregate command: ingest one MV1 workbook and dump the
// hourly timeline and the shift values as CSV under -data.
func Run(args []string) error {
	fs := flag.NewFlagSet("aggregate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	in := fs.String("in", "", "MV1 workbook to aggregate")
	dataDir := fs.String("data", "data", "directory receiving timeline.csv and shifts.csv")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("aggregate: -in is required")
	}

	cfg, err := config.Resolve()
	if err != nil {
		return err
	}
	c, err := creator.New(cfg)
	if err != nil {
		return err
	}
	agg, err := c.Load(context.Background(), *in)
	if err != nil {
		return err
	}

	opts := c.Options()
	if err := ccsv.WriteAggregateCSVs(*dataDir, agg, opts.ChunkPattern, opts.ShiftLabels); err != nil {
		return err
	}

	slog.Info("aggregate.done", "dir", *dataDir, "secs", len(agg.Secs), "ters", terCount(agg), "hours", totalHours(agg))
	return nil
}

func terCount(agg *mv2.Aggregate) int {
	return lo.SumBy(agg.Secs, func(sg mv2.SecGroup) int { return len(sg.Ters) })
}

func totalHours(agg *mv2.Aggregate) float64 {
	return lo.SumBy(agg.Secs, func(sg mv2.SecGroup) float64 {
		return lo.SumBy(sg.Ters, func(tg mv2.TerGroup) float64 { return tg.Bucket.TotalHours })
	})
}
