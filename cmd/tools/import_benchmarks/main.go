// Command import_benchmarks scrapes an HTML table of industry trading
// multiples and writes it as a config/benchmarks.yaml override file.
//
// Usage:
//
//	import_benchmarks -url https://example.com/multiples.html -out config/benchmarks.yaml
//	import_benchmarks -file multiples.html -out config/benchmarks.yaml
//
// The table is expected to carry one row per sector with columns:
// sector name, revenue multiple, EBITDA multiple, EBIT multiple, beta.
// Sector names are matched case-insensitively against the engine's codes.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v2"

	"github.com/camayank/StartupValuator-sub000/pkg/core/benchmark"
	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

var sectorAliases = map[string]models.Sector{
	"technology":     models.SectorTechnology,
	"software":       models.SectorTechnology,
	"healthcare":     models.SectorHealthcare,
	"biotech":        models.SectorBiotech,
	"biotechnology":  models.SectorBiotech,
	"fintech":        models.SectorFintech,
	"ecommerce":      models.SectorEcommerce,
	"e-commerce":     models.SectorEcommerce,
	"retail":         models.SectorEcommerce,
	"manufacturing":  models.SectorManufacturing,
	"industrials":    models.SectorManufacturing,
	"services":       models.SectorServices,
	"energy":         models.SectorEnergy,
}

func main() {
	url := flag.String("url", "", "URL of the multiples table")
	file := flag.String("file", "", "local HTML file (alternative to -url)")
	out := flag.String("out", "config/benchmarks.yaml", "output YAML path")
	flag.Parse()

	doc, err := loadDocument(*url, *file)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	overrides := map[string]benchmark.Overrides{}
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return // header or malformed row
		}

		name := strings.ToLower(strings.TrimSpace(cells.Eq(0).Text()))
		sector, ok := sectorAliases[name]
		if !ok {
			return
		}

		ov := benchmark.Overrides{
			RevenueMultiple: parseCell(cells.Eq(1).Text()),
			EBITDAMultiple:  parseCell(cells.Eq(2).Text()),
			EBITMultiple:    parseCell(cells.Eq(3).Text()),
		}
		if cells.Length() > 4 {
			ov.Beta = parseCell(cells.Eq(4).Text())
		}
		overrides[string(sector)] = ov
		fmt.Printf("[IMPORT] %s: %s\n", sector, describe(ov))
	})

	if len(overrides) == 0 {
		fmt.Println("[FATAL] No recognizable sector rows found")
		os.Exit(1)
	}

	data, err := yaml.Marshal(benchmark.OverrideFile{Overrides: overrides})
	if err != nil {
		fmt.Printf("[FATAL] Marshal failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Printf("[FATAL] Write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[IMPORT] Wrote %d sector overrides to %s\n", len(overrides), *out)
}

func loadDocument(url, file string) (*goquery.Document, error) {
	if url != "" {
		client := &http.Client{Timeout: 30 * time.Second}
		resp, err := client.Get(url)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
		}
		return goquery.NewDocumentFromReader(resp.Body)
	}
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return goquery.NewDocumentFromReader(f)
	}
	return nil, fmt.Errorf("either -url or -file is required")
}

// parseCell converts a table cell like "3.5x" or "12.0" into a float pointer,
// returning nil for anything unparseable so the engine keeps its default.
func parseCell(s string) *float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "x"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}

func describe(ov benchmark.Overrides) string {
	part := func(label string, v *float64) string {
		if v == nil {
			return label + "=-"
		}
		return fmt.Sprintf("%s=%.2f", label, *v)
	}
	return fmt.Sprintf("%s %s %s %s",
		part("rev", ov.RevenueMultiple), part("ebitda", ov.EBITDAMultiple),
		part("ebit", ov.EBITMultiple), part("beta", ov.Beta))
}
