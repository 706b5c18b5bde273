package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"

	"github.com/mahesh-hegde/instante/app/config"
	"github.com/mahesh-hegde/instante/app/dataset"
	"github.com/mahesh-hegde/instante/app/server"
	"github.com/mahesh-hegde/instante/app/suggest"
	"github.com/mahesh-hegde/instante/app/visualizer"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "server":
		runServer()
	case "chart":
		runChart()
	case "profile":
		runProfile()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: instante <command> [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  server        Start the instante HTTP API")
	fmt.Fprintln(os.Stderr, "  chart         Compute chart data for a local file")
	fmt.Fprintln(os.Stderr, "  profile       Describe a local file and suggest charts for it")
}

func runServer() {
	flags := pflag.NewFlagSet("server", pflag.ExitOnError)
	var dataDir string
	var serverConf config.ServerRuntimeConfig
	flags.StringVarP(&serverConf.Addr, "address", "a", "localhost", "Server address to bind")
	flags.IntVarP(&serverConf.Port, "port", "p", 8080, "Server port to bind")
	flags.StringVarP(&dataDir, "data-dir", "d", "",
		"data directory to read config.json from and keep the SQLite store in")
	flags.StringVar(&serverConf.CertDir, "cert-dir", "", "directory with fullchain.pem and privkey.pem, or the ACME cache")
	flags.BoolVar(&serverConf.AcmeEnabled, "acme", false, "obtain certificates with ACME for the configured hostnames")
	flags.IntVar(&serverConf.RateLimit, "rate-limit", 0, "requests per second allowed per client, 0 to disable")
	flags.IntVar(&serverConf.GzipLevel, "gzip-level", 0, "gzip compression level for responses, 0 to disable")
	flags.BoolVar(&serverConf.BehindLoadBalancer, "behind-lb", false, "identify clients by X-Forwarded-For")

	flags.Parse(os.Args[2:])

	conf, err := config.Load(dataDir)
	if err != nil {
		slog.Error("error while loading config", "err", err)
		os.Exit(1)
	}

	store, closeStore, err := config.InitStore(conf)
	if err != nil {
		slog.Error("error while initializing dataset store", "err", err)
		os.Exit(1)
	}
	defer closeStore()

	server.StartServer(server.NewInstanteController(store, conf), conf, serverConf)
}

func readDataset(path string) *dataset.Dataset {
	content, err := os.ReadFile(path)
	if err != nil {
		slog.Error("error while reading file", "path", path, "err", err)
		os.Exit(1)
	}
	ds, err := dataset.Parse(path, content)
	if err != nil {
		slog.Error("error while parsing file", "path", path, "err", err)
		os.Exit(1)
	}
	return ds
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("error while writing output", "err", err)
		os.Exit(1)
	}
}

func runChart() {
	flags := pflag.NewFlagSet("chart", pflag.ExitOnError)
	var file, chartType, params string
	flags.StringVarP(&file, "file", "f", "", "CSV, XLSX or JSON file (required)")
	flags.StringVarP(&chartType, "type", "t", "", "chart type (required)")
	flags.StringVarP(&params, "params", "p", "{}", "chart parameters as a JSON object")

	flags.Parse(os.Args[2:])

	if file == "" || chartType == "" {
		fmt.Fprintln(os.Stderr, "Error: --file and --type are required")
		fmt.Fprintf(os.Stderr, "Chart types: %v\n", visualizer.ChartTypes())
		os.Exit(1)
	}

	var p visualizer.Parameters
	if err := json.Unmarshal([]byte(params), &p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid --params: %v\n", err)
		os.Exit(1)
	}

	ct := visualizer.ChartType(chartType)
	payload, err := visualizer.Build(ct, p, readDataset(file))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printJSON(server.ChartDataResponse{
		ChartType: ct,
		Data:      payload.Data,
		Metadata:  payload.Metadata,
		Title:     visualizer.Title(ct, p),
	})
}

func runProfile() {
	flags := pflag.NewFlagSet("profile", pflag.ExitOnError)
	var file string
	var asJSON bool
	flags.StringVarP(&file, "file", "f", "", "CSV, XLSX or JSON file (required)")
	flags.BoolVar(&asJSON, "json", false, "print the full profile as JSON")

	flags.Parse(os.Args[2:])

	if file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		os.Exit(1)
	}

	ds := readDataset(file)
	profile := dataset.Describe(ds)
	if asJSON {
		printJSON(profile)
		return
	}

	fmt.Println(suggest.Summary(profile))
	suggestions, err := suggest.HeuristicGenerator{}.Suggest(context.Background(), ds, profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Suggested charts:")
	for _, s := range suggestions {
		fmt.Printf("  [%d] %s (%s): %s\n", s.Priority, s.Title, s.ChartType, s.Insight)
	}
}
