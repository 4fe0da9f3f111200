// Command impactstats summarizes a meteorite strike dataset the way the map
// sees it: how many features are plottable, why the rest are dropped, the mass
// domain, and how markers fall into the color bands. It can also write the
// plotted markers as a JSON fixture.
//
// Usage:
//
//	go run ./cmd/impactstats \
//	  -strikes data/meteorite-strike-data.json \
//	  -out testdata/markers.json
//
// -strikes accepts a local path or an http(s) URL.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/couchcryptid/meteorite-map/internal/adapter/fetch"
	"github.com/couchcryptid/meteorite-map/internal/domain"
	"github.com/couchcryptid/meteorite-map/internal/observability"
	"github.com/jonboulle/clockwork"
	geojson "github.com/paulmach/go.geojson"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	strikes := flag.String("strikes", "", "strike GeoJSON file path or URL")
	out := flag.String("out", "", "optional output path for the plotted markers as JSON")
	flag.Parse()

	if *strikes == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -strikes")
	}

	// Set a fixed clock for reproducible PlottedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	raw, err := load(context.Background(), *strikes)
	if err != nil {
		return fmt.Errorf("loading %s: %w", *strikes, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", *strikes, err)
	}

	records, rejected := domain.ParseRecords(fc)
	plot := domain.PlotImpacts(records, domain.DefaultProjection())
	log.Printf("features: %d, plottable: %d, drawn: %d", len(fc.Features), len(records), len(plot.Markers))

	if *out != "" {
		if err := writeJSON(*out, plot.Markers); err != nil {
			return fmt.Errorf("writing markers: %w", err)
		}
		log.Printf("wrote markers: %s", *out)
	}

	printRejections(os.Stdout, rejected, plot.Unprojectable)
	printDomain(os.Stdout, plot)
	printBands(os.Stdout, plot)
	return nil
}

// load reads a local file, or fetches the dataset when given a URL.
func load(ctx context.Context, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return os.ReadFile(src)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := fetch.NewClient(logger, observability.NewMetricsForTesting())
	return fetch.Get(ctx, client, "strikes", src, fetch.Bytes).Await(ctx)
}

func printRejections(w io.Writer, rejected map[domain.Rejection]int, unprojectable int) {
	reasons := make([]string, 0, len(rejected))
	for why := range rejected {
		reasons = append(reasons, string(why))
	}
	sort.Strings(reasons)

	fmt.Fprintln(w, "\nDropped features:")
	if len(reasons) == 0 && unprojectable == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, why := range reasons {
		fmt.Fprintf(w, "  %-18s %d\n", why, rejected[domain.Rejection(why)])
	}
	if unprojectable > 0 {
		fmt.Fprintf(w, "  %-18s %d\n", "unprojectable", unprojectable)
	}
}

func printDomain(w io.Writer, plot domain.Plot) {
	if len(plot.Markers) == 0 {
		fmt.Fprintln(w, "\nNo markers drawn.")
		return
	}
	heaviest := plot.Markers[0]
	lightest := plot.Markers[len(plot.Markers)-1]

	fmt.Fprintf(w, "\nMass domain: %g g .. %g g\n", plot.Scales.Mass.Domain[0], plot.Scales.Mass.Domain[1])
	fmt.Fprintf(w, "Radius domain: %.3f .. %.3f\n", plot.Scales.Color.Domain[0], plot.Scales.Color.Domain[1])
	fmt.Fprintf(w, "Heaviest: %s (%s g, r=%.2f)\n", heaviest.Record.Name, heaviest.Record.MassText, heaviest.Radius)
	fmt.Fprintf(w, "Lightest: %s (%s g, r=%.2f)\n", lightest.Record.Name, lightest.Record.MassText, lightest.Radius)
}

func printBands(w io.Writer, plot domain.Plot) {
	if len(plot.Markers) == 0 {
		return
	}
	counts := make(map[string]int, len(plot.Scales.Color.Palette))
	for _, m := range plot.Markers {
		counts[m.Color]++
	}

	lo, hi := plot.Scales.Color.Domain[0], plot.Scales.Color.Domain[1]
	n := len(plot.Scales.Color.Palette)
	step := (hi - lo) / float64(n)

	fmt.Fprintln(w, "\nColor bands:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  band\tcolor\tradius\tmarkers")
	for i, color := range plot.Scales.Color.Palette {
		fmt.Fprintf(tw, "  %d\t%s\t%.2f-%.2f\t%d\n", i, color, lo+float64(i)*step, lo+float64(i+1)*step, counts[color])
	}
	tw.Flush() //nolint:errcheck // stdout
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644) //nolint:gosec // fixture file
}
