package movies

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

func TestSampleDataset(t *testing.T) {
	Convey("Given the sample movie_metadata.csv", t, func() {
		cfg := DefaultConfig()
		cfg.InputPath = filepath.Join("..", "..", "examples", "data", "movie_metadata_sample.csv")
		cfg.OutputDir = t.TempDir()
		rec := &j.Recorder{}
		clock := func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
		c := New(cfg, WithObserver(rec), WithClock(clock))

		Convey("When the pipeline runs", func() {
			res, err := c.Run(context.Background())
			So(err, ShouldBeNil)
			So(res.RowsIn, ShouldEqual, 10)
			So(res.RowsOut, ShouldEqual, 6)
			So(res.Path, ShouldEqual, filepath.Join(cfg.OutputDir, "movies_cleaned.csv"))

			Convey("The duplicate and invalid rows are gone", func() {
				So(removed(rec, "drop_duplicates"), ShouldEqual, 1)
				So(removed(rec, "drop_missing"), ShouldEqual, 1)
				So(removed(rec, "filter_range"), ShouldEqual, 2)
			})

			Convey("The missing report is taken after deduplication", func() {
				summary := withMessage(rec, "missing_report", "missing value summary")
				So(len(summary), ShouldEqual, 1)
				So(summary[0].Fields["rows"], ShouldEqual, 9)
				cols := withMessage(rec, "missing_report", "missing values")
				So(len(cols), ShouldBeGreaterThan, 2)
				So(cols[0].Fields["column"], ShouldEqual, "content_rating")
				So(cols[0].Fields["missing"], ShouldEqual, 2)
				So(cols[1].Fields["column"], ShouldEqual, "aspect_ratio")
			})

			Convey("The output reloads with imputed and derived values", func() {
				back := cfg
				back.InputPath = res.Path
				f, err := Load(context.Background(), back)
				So(err, ShouldBeNil)
				So(f.Rows(), ShouldEqual, 6)

				titles := make([]string, f.Rows())
				for i := range titles {
					v, _ := f.Cell(i, "movie_title")
					titles[i] = v.(string)
				}
				So(titles, ShouldResemble, []string{
					"Avatar",
					"Pirates of the Caribbean: At World's End",
					"Spectre",
					"Star Wars: Episode VII - The Force Awakens",
					"John Carter",
					"Tangled",
				})

				// Star Wars carries nearly every gap in the sample
				sw := 3
				for name, want := range map[string]any{
					"duration":       148.0,
					"gross":          200074175.0,
					"budget":         245000000.0,
					"color":          "Color",
					"country":        "USA",
					"content_rating": "PG-13",
					"aspect_ratio":   2.35,
				} {
					v, ok := f.Cell(sw, name)
					So(ok, ShouldBeTrue)
					So(v, ShouldEqual, want)
				}
				_, ok := f.Cell(sw, "movie_age")
				So(ok, ShouldBeFalse)

				age, _ := f.Cell(0, "movie_age")
				So(age, ShouldEqual, int64(15))
				decade, _ := f.Cell(0, "decade")
				So(decade, ShouldEqual, int64(2000))
				roi, _ := f.Cell(0, "roi")
				So(roi, ShouldAlmostEqual, (760505847.0-237000000.0)/237000000.0, 1e-9)
			})
		})
	})
}

func removed(rec *j.Recorder, stage string) any {
	for _, e := range rec.ByStage(stage) {
		if v, ok := e.Fields["removed"]; ok {
			return v
		}
	}
	return nil
}

func withMessage(rec *j.Recorder, stage, msg string) []j.Event {
	var out []j.Event
	for _, e := range rec.ByStage(stage) {
		if e.Message == msg {
			out = append(out, e)
		}
	}
	return out
}
