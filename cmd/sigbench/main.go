// Command sigbench measures emit and deferred-evaluate latency for
// sigcore.SignalN, mirroring delaneyj-signalparty/cmd/benchmark's use of
// tachymeter percentiles rendered through a go-pretty table.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/zoobzio/sigcore"
	"github.com/zoobzio/sigcore/sigconfig"
)

var subscriberCounts = []int64{1, 10, 100, 1000}

func main() {
	cfg, err := sigconfig.Load()
	if err != nil {
		log.Fatal(err)
	}

	cmd := &cli.Command{
		Name:  "sigbench",
		Usage: "Benchmark sigcore.Signal1 emit and deferred-evaluate latency",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "iterations",
				Usage: "Samples collected per subscriber count",
				Value: int64(cfg.BenchmarkIterations),
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	iterations := int(cmd.Int("iterations"))
	counts := subscriberCounts

	tbl := table.NewWriter()
	tbl.SetTitle("sigcore.Signal1[int] emit latency")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"subscribers", "avg", "p50", "p99", "max"})

	for _, n := range counts {
		tach := tachymeter.New(&tachymeter.Config{Size: iterations})

		signal := sigcore.NewSignal1[int]()
		sum := 0
		for i := int64(0); i < n; i++ {
			signal.Connect(func(v int) { sum += v })
		}

		for i := 0; i < iterations; i++ {
			start := time.Now()
			signal.Emit(i)
			tach.AddTime(time.Since(start))
		}

		metrics := tach.Calc()
		tbl.AppendRow(table.Row{
			humanize.Comma(n),
			metrics.Time.Avg,
			metrics.Time.P50,
			metrics.Time.P99,
			metrics.Time.Max,
		})
	}
	tbl.Render()

	fmt.Println(benchDeferred(iterations))
	return nil
}

func benchDeferred(iterations int) string {
	evaluator := sigcore.NewConnectionEvaluator()
	signal := sigcore.NewSignal1[int]()
	total := 0
	signal.ConnectDeferred(evaluator, func(v int) { total += v })

	tach := tachymeter.New(&tachymeter.Config{Size: iterations})
	for i := 0; i < iterations; i++ {
		signal.Emit(i)
	}

	start := time.Now()
	if err := evaluator.EvaluateDeferredConnections(); err != nil {
		return err.Error()
	}
	tach.AddTime(time.Since(start))

	return fmt.Sprintf(
		"drained %s deferred invocations in %s",
		humanize.Comma(int64(iterations)),
		tach.Calc().Time.Avg,
	)
}
