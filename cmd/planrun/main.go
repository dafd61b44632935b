// Command planrun plans a small demo pipeline through the planner and
// drives a demo source through WatermarkSourceUtil, printing both the
// resulting DAG and the watermark stream it produces. It exists purely to
// exercise the core packages end-to-end; it is not the cluster-wide
// execution runtime (spec.md §1, out of scope).
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/TomaszGaweda/hazelcast-jet/dag"
	"github.com/TomaszGaweda/hazelcast-jet/internal/config"
	"github.com/TomaszGaweda/hazelcast-jet/log"
	"github.com/TomaszGaweda/hazelcast-jet/planner"
	"github.com/TomaszGaweda/hazelcast-jet/transform"
	"github.com/TomaszGaweda/hazelcast-jet/watermark"
)

var rootCmd = &cobra.Command{
	Use:   "planrun",
	Short: "plan a demo pipeline and print its DAG",
}

func init() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(watermarkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Global().Fatalw("planrun failed", "err", err)
	}
}

func loadApplication() config.Application {
	app := config.Default()
	if err := config.Load(&app, "PLANRUN", "planrun"); err != nil {
		log.Global().Debugw("no config file found, using defaults", "err", err)
	}
	level := log.InfoLevel
	if app.Debug {
		level = log.DebugLevel
	}
	encoder := log.ConsoleOutputEncoder
	if app.LogFormat == "json" {
		encoder = log.JsonOutputEncoder
	}
	log.Setup(log.DefaultOptions().WithOutputEncoder(encoder).WithLevel(level))
	return app
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "build a demo Source -> Map -> windowed Group -> Sink pipeline and print its DAG",
	Run: func(cmd *cobra.Command, args []string) {
		loadApplication()
		d, err := buildDemoDag()
		if err != nil {
			log.Global().Fatalw("failed to plan demo pipeline", "err", err)
		}
		fmt.Println(d)
		for _, v := range d.Vertices() {
			fmt.Printf("  vertex %-28s localParallelism=%d\n", v.Name, v.LocalParallelism)
		}
		for _, e := range d.Edges() {
			fmt.Printf("  edge   %s[%d] -> %s[%d] routing=%s\n",
				e.SourceVertex.Name, e.SourceOrdinal, e.DestVertex.Name, e.DestOrdinal, e.Routing)
		}
	},
}

// buildDemoDag wires a tiny pipeline — a source, a stateless map, a
// tumbling-windowed count, and a sink — through the planner, the
// way a real pipeline builder (out of scope, spec.md §1) would.
func buildDemoDag() (*dag.DAG, error) {
	noop := func() dag.Processor { return struct{}{} }

	src := transform.NewSource("events", noop, nil)
	mapped := transform.NewMap("parse", src, func(line string) string { return line }, noop)
	grouped := transform.NewGroup("count-by-key", mapped,
		func(item any) any { return item },
		nil,
		transform.NewTumblingWindow(int64(10*time.Second/time.Millisecond)),
		noop, noop)
	sink := transform.NewSink("print-sink", grouped, noop)

	adjacency := map[transform.Transform][]transform.Transform{
		src:     {mapped},
		mapped:  {grouped},
		grouped: {sink},
		sink:    {},
	}

	return planner.New().CreateDag(adjacency)
}

var watermarkCmd = &cobra.Command{
	Use:   "watermark",
	Short: "feed a tiny synthetic two-partition event stream through WatermarkSourceUtil",
	Run: func(cmd *cobra.Command, args []string) {
		app := loadApplication()
		runWatermarkDemo(app)
	},
}

func runWatermarkDemo(app config.Application) {
	params := watermark.NewGenerationParams[int64](
		func(ts int64) int64 { return ts },
		watermark.NewLimitingLagPolicyFn(0),
	).WithIdleTimeout(time.Duration(app.IdleTimeoutSecs) * time.Second)

	util := watermark.New(params, func(item int64, ts int64) any {
		return fmt.Sprintf("event(ts=%d)", ts)
	})
	if err := util.IncreasePartitionCount(0, app.PartitionCount); err != nil {
		log.Global().Fatalw("failed to initialize partitions", "err", err)
	}

	events := []struct {
		partition int
		ts        int64
	}{
		{0, 10}, {1, 5}, {0, 20}, {1, 25}, {0, 30},
	}

	var now int64
	for _, ev := range events {
		now += int64(time.Second)
		trav := util.HandleEvent(now, &ev.ts, ev.partition)
		for {
			item, ok := trav.Next()
			if !ok {
				break
			}
			fmt.Printf("partition=%d now=%d -> %v\n", ev.partition, now, item)
		}
	}
}
