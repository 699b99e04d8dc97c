package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ercot-lmp-viewer/internal/analysis"
	"ercot-lmp-viewer/internal/chart"
	"ercot-lmp-viewer/internal/config"
	"ercot-lmp-viewer/internal/data"
	"ercot-lmp-viewer/internal/export"
	"ercot-lmp-viewer/internal/model"
	"ercot-lmp-viewer/internal/series"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// A missing .env is fine.
	_ = godotenv.Load()

	switch os.Args[1] {
	case "series":
		cmdSeries(os.Args[2:])
	case "nodes":
		cmdNodes(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli series --node HB_HOUSTON --market Both --start 2024-01-01 --end 2024-01-07 [--out results/] [--chart results/]")
	fmt.Println("  cli nodes [--file data/nodes.json] [--out data/nodes.json]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - --market accepts DAM, RTM, Both or DAM,RTM")
	fmt.Println("  - --out and --chart take a file path, or a directory to use the default file name")
	fmt.Println("  - the price source comes from --config (source.type) or LMP_SOURCE; synthetic by default")
}

func cmdSeries(args []string) {
	fs := flag.NewFlagSet("series", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	node := fs.String("node", "", "Settlement point, e.g. HB_HOUSTON (defaults to market.default_node)")
	market := fs.String("market", "DAM", "DAM, RTM or Both")
	start := fs.String("start", "", "Start date (YYYY-MM-DD)")
	end := fs.String("end", "", "End date (YYYY-MM-DD), defaults to --start")
	outPath := fs.String("out", "", "Optional: write CSV to this file or directory")
	chartPath := fs.String("chart", "", "Optional: write PNG chart to this file or directory")
	width := fs.Int("width", chart.DefaultWidth, "Chart width in pixels")
	height := fs.Int("height", chart.DefaultHeight, "Chart height in pixels")
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fail(err)
	}
	if *node == "" {
		*node = cfg.Market.DefaultNode
	}
	if *start == "" {
		fmt.Println("--start is required")
		os.Exit(2)
	}
	if *end == "" {
		*end = *start
	}

	startDate, err := model.ParseDate(*start)
	if err != nil {
		fail(err)
	}
	endDate, err := model.ParseDate(*end)
	if err != nil {
		fail(err)
	}
	sel, err := model.ParseMarketSelection(*market)
	if err != nil {
		fail(err)
	}

	src, err := series.OpenSource(cfg.Source)
	if err != nil {
		fail(err)
	}
	builder := series.NewBuilder(src, model.ReferenceZone(cfg.Market.UTCOffsetHours))
	table, err := builder.BuildSeries(context.Background(), series.Query{
		Node:      *node,
		Selection: sel,
		Start:     startDate,
		End:       endDate,
	})
	if err != nil {
		fail(err)
	}

	fmt.Printf("%s (%s source, %s, %d rows)\n", chart.Title(table), src.Name(), builder.Location(), table.Len())
	fmt.Printf("%-4s %-8s %-10s %-10s %-10s %-10s %-10s %-10s\n", "mkt", "count", "min", "max", "mean", "p05", "p95", "p95-p05")
	for _, s := range analysis.SummarizeTable(table) {
		fmt.Printf("%-4s %-8d %-10.2f %-10.2f %-10.2f %-10.2f %-10.2f %-10.2f\n",
			s.Market, s.Count, s.Min, s.Max, s.Mean, s.P05, s.P95, s.SpreadP95P05)
	}
	cmp, ok, err := analysis.CompareTable(table)
	if err != nil {
		fail(err)
	}
	if ok {
		fmt.Printf("RTM-DAM: mean=%.2f mean|d|=%.2f max|d|=%.2f at %s, RTM above DAM %d/%d hours\n",
			cmp.MeanDiff, cmp.MeanAbsDiff, cmp.MaxAbsDiff, cmp.MaxAbsDiffAt.Format(time.RFC3339), cmp.HoursRTMAboveDA, cmp.Count)
	}

	if *outPath != "" {
		p := resolveOut(*outPath, export.FileName(table))
		if err := export.WriteCSVFile(p, table); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", table.Len(), p)
	}
	if *chartPath != "" {
		p := resolveOut(*chartPath, strings.TrimSuffix(export.FileName(table), ".csv")+".png")
		if err := writeChart(p, table, chart.Options{Width: *width, Height: *height}); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote chart to %s\n", p)
	}
}

func cmdNodes(args []string) {
	fs := flag.NewFlagSet("nodes", flag.ExitOnError)
	file := fs.String("file", "", "Node presets file (defaults to nodes_file from config)")
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	outPath := fs.String("out", "", "Optional: write the presets to this JSON file")
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fail(err)
	}
	if *file == "" {
		*file = cfg.NodesFile
	}

	list, err := data.LoadNodesOrDefault(*file)
	if err != nil {
		fail(err)
	}
	if *outPath != "" {
		list.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		if err := data.SaveNodes(list, *outPath); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote %d nodes to %s\n", len(list.Nodes), *outPath)
		return
	}

	fmt.Printf("%-14s %-10s %s\n", "id", "type", "name")
	for _, n := range list.Nodes {
		fmt.Printf("%-14s %-10s %s\n", n.ID, n.Type, n.Name)
	}
}

// resolveOut treats an existing directory or a path ending in a separator
// as a directory and joins name onto it.
func resolveOut(path, name string) string {
	if strings.HasSuffix(path, string(os.PathSeparator)) {
		return filepath.Join(path, name)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, name)
	}
	return path
}

func writeChart(path string, t *model.ResultTable, opts chart.Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := chart.RenderPNG(f, t, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
