// Package cli wires the httpbench command line: flag declarations, the
// optional plan file, and the hand-off from the plan resolver to the
// dispatch engine.
package cli

import (
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"httpbench/internal/engine"
	"httpbench/internal/metrics"
	"httpbench/internal/output"
	"httpbench/internal/plan"
)

var version = "0.1.0"

// Flag values. The positional arguments are the inline URL source.
var (
	concurrency  int
	requests     int
	orderFlag    string
	delayMs      int
	delayDist    string
	urlFile      string
	prefix       string
	method       string
	payloadsFile string
	reportSlow   float64
	configFile   string
	noColor      bool
)

// RootCmd is the single httpbench command; there are no subcommands.
var RootCmd = &cobra.Command{
	Use:     "httpbench [flags] [URL...]",
	Short:   "HTTP/S load testing tool",
	Version: version,
	Long: `httpbench issues a configurable volume of HTTP requests against a set of
target URLs and reports latency percentiles.

Targets come from a file (one URL per line) or from positional arguments,
never both. A URL prefix can be supplied to complete files that contain
bare paths and query strings, such as load-balancer logs:

  httpbench -f urls.txt -p http://localhost:8070/ -c 20 -n 1000`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		formatter := output.NewFormatter(noColor)

		result, err := resolve(cmd, args)
		if err != nil {
			formatter.Fatal(err)
			var usageErr *plan.UsageError
			if errors.As(err, &usageErr) {
				_ = cmd.Usage()
			}
			os.Exit(1)
		}

		// Unresolvable URLs stay in the set; report them before the
		// run so the warnings are not buried in progress output.
		for _, w := range result.Warnings() {
			formatter.Warn(w)
		}

		formatter.PrintPlan(result.Plan, len(result.Targets.URLs))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		collector := metrics.NewCollector()
		eng := engine.New(result.Plan, result.Targets, collector)

		start := time.Now()
		runErr := eng.Run(ctx)
		elapsed := time.Since(start)

		formatter.PrintSummary(collector.Snapshot(), elapsed)
		if result.Plan.SlowPercentile > 0 {
			threshold, slow := collector.SlowRequests(result.Plan.SlowPercentile)
			formatter.PrintSlowReport(result.Plan.SlowPercentile, threshold, slow)
		}

		if runErr != nil {
			formatter.Fatal(runErr)
			os.Exit(1)
		}
	},
}

// resolve assembles the raw options from flags, positional arguments
// and the optional plan file, then runs the resolver. Explicit flags
// always win over plan-file values.
func resolve(cmd *cobra.Command, args []string) (*plan.Result, error) {
	opts := plan.Options{
		Concurrency:    concurrency,
		Requests:       requests,
		Order:          orderFlag,
		DelayMs:        delayMs,
		DelayDist:      delayDist,
		URLFile:        urlFile,
		URLs:           args,
		Prefix:         prefix,
		Method:         method,
		PayloadsFile:   payloadsFile,
		SlowPercentile: reportSlow,
	}

	if configFile != "" {
		f, err := plan.LoadFile(configFile)
		if err != nil {
			return nil, err
		}
		f.Apply(&opts, cmd.Flags().Changed)
	}

	return plan.Resolve(opts)
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 10, "number of workers generating load")
	RootCmd.Flags().IntVarP(&requests, "requests", "n", 100, "number of requests to execute")
	RootCmd.Flags().StringVarP(&orderFlag, "order", "o", "r", "order in which to request URLs: r=random, s=sequential")
	RootCmd.Flags().IntVarP(&delayMs, "delay-time", "t", 0, "time between request dispatches in milliseconds")
	RootCmd.Flags().StringVarP(&delayDist, "delay-dist", "d", "c", "distribution of delay times: c=constant, u=uniform, ne=negative exponential (requires --delay-time)")
	RootCmd.Flags().StringVarP(&urlFile, "file", "f", "", "file containing URLs to request, one per line")
	RootCmd.Flags().StringVarP(&prefix, "prefix", "p", "", "prefix to automatically add to URLs that are bare paths and query strings")
	RootCmd.Flags().StringVarP(&method, "method", "m", "GET", "HTTP method: GET, POST or PUT; POST and PUT require --payloads")
	RootCmd.Flags().StringVar(&payloadsFile, "payloads", "", "file of request bodies for POST and PUT, one per line")
	RootCmd.Flags().Float64VarP(&reportSlow, "reportslow", "s", 0, "report requests with latency above this percentile, e.g. 0.95")
	RootCmd.Flags().StringVar(&configFile, "config", "", "plan file supplying the same options as the flags")
	RootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
}
