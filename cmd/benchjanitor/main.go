// Command benchjanitor measures the cleaning pipeline on a synthetic movie table.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
	"github.com/wdm0006/moviejanitor/pkg/movies"
)

var (
	countries = []string{"USA", "UK", "France", "India", "Japan"}
	ratings   = []string{"G", "PG", "PG-13", "R"}
)

// generate builds a table in the movie_metadata layout with missing cells at
// probability missp and roughly dupp of the rows repeated.
func generate(cfg movies.Config, rows int, missp, dupp float64, rnd *rand.Rand) *j.Frame {
	cols := []j.ColumnSchema{
		{Name: cfg.TitleColumn, Type: j.KindString, Nullable: true},
		{Name: cfg.RequiredColumn, Type: j.KindFloat, Nullable: true},
		{Name: cfg.ReleaseYearColumn, Type: j.KindInt, Nullable: true},
	}
	for _, name := range cfg.NumericColumns {
		cols = append(cols, j.ColumnSchema{Name: name, Type: j.KindFloat, Nullable: true})
	}
	for _, name := range cfg.CategoricalColumns {
		cols = append(cols, j.ColumnSchema{Name: name, Type: j.KindString, Nullable: true})
	}
	f := j.NewFrame(j.Schema{Columns: cols})
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		if i > 0 && rnd.Float64() < dupp {
			src := rnd.Intn(i)
			for _, cs := range cols {
				if v, ok := f.Cell(src, cs.Name); ok {
					_ = f.SetCell(i, cs.Name, v)
				}
			}
			continue
		}
		_ = f.SetCell(i, cfg.TitleColumn, fmt.Sprintf(" Movie %d ", i))
		for _, cs := range cols[1:] {
			if rnd.Float64() < missp {
				continue
			}
			switch cs.Type {
			case j.KindFloat:
				v := rnd.Float64() * 1e8
				switch cs.Name {
				case cfg.RequiredColumn:
					v = 1 + rnd.Float64()*9
				case cfg.DurationColumn:
					v = float64(5 + rnd.Intn(330))
				}
				_ = f.SetCell(i, cs.Name, v)
			case j.KindInt:
				_ = f.SetCell(i, cs.Name, int64(1920+rnd.Intn(100)))
			case j.KindString:
				pool := countries
				if cs.Name == "content_rating" {
					pool = ratings
				}
				_ = f.SetCell(i, cs.Name, pool[rnd.Intn(len(pool))])
			}
		}
	}
	return f
}

func main() {
	var (
		rows    = flag.Int("rows", 500_000, "total rows to generate")
		missp   = flag.Float64("missing", 0.05, "probability of missing values in each cell")
		dupp    = flag.Float64("duplicates", 0.02, "probability that a row repeats an earlier one")
		jsonOut = flag.Bool("json", false, "emit JSON summary")
		seed    = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	cfg := movies.DefaultConfig()
	cfg.ReferenceYear = time.Now().Year()
	f := generate(cfg, *rows, *missp, *dupp, rand.New(rand.NewSource(*seed)))
	c := movies.New(cfg)

	// Warm up
	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	var msBefore, msAfter runtime.MemStats
	runtime.ReadMemStats(&msBefore)
	start := time.Now()
	out, err := c.Clean(context.Background(), f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&msAfter)

	// Summary
	rowsPerSec := float64(*rows) / elapsed.Seconds()
	summary := map[string]any{
		"rows":                  *rows,
		"rows_out":              out.Rows(),
		"elapsed_ms":            elapsed.Milliseconds(),
		"rows_per_sec":          rowsPerSec,
		"mem_alloc_bytes":       msAfter.Alloc,
		"mem_total_alloc_bytes": msAfter.TotalAlloc - msBefore.TotalAlloc,
		"gc_num":                msAfter.NumGC - msBefore.NumGC,
		"stages":                c.Pipeline().Steps(),
		"missing_prob":          *missp,
		"duplicate_prob":        *dupp,
	}

	if *jsonOut {
		b, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(b))
		return
	}
	fmt.Printf("Rows: %d -> %d\n", *rows, out.Rows())
	fmt.Printf("Elapsed: %s\n", elapsed)
	fmt.Printf("Throughput: %.0f rows/s\n", rowsPerSec)
	fmt.Printf("Current Alloc: %d MB\n", msAfter.Alloc/1024/1024)
	fmt.Printf("Total Alloc (delta): %d MB\n", (msAfter.TotalAlloc-msBefore.TotalAlloc)/1024/1024)
	fmt.Printf("GC cycles (delta): %d\n", msAfter.NumGC-msBefore.NumGC)
}
