package xlsxio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

func TestWriteAll(t *testing.T) {
	f := j.NewFrame(j.Schema{Columns: []j.ColumnSchema{
		{Name: "movie_title", Type: j.KindString, Nullable: true},
		{Name: "roi", Type: j.KindFloat, Nullable: true},
	}})
	f.AppendNullRow()
	f.AppendNullRow()
	_ = f.SetCell(0, "movie_title", "Avatar")
	_ = f.SetCell(0, "roi", 2.5)
	_ = f.SetCell(1, "movie_title", "Tangled")

	p := filepath.Join(t.TempDir(), "movies.xlsx")
	require.NoError(t, WriteAll(p, f, "movies"))

	x, err := excelize.OpenFile(p)
	require.NoError(t, err)
	defer func() { _ = x.Close() }()
	rows, err := x.GetRows("movies")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	v, err := x.GetCellValue("movies", "B3")
	require.NoError(t, err)
	assert.Empty(t, v)
	assert.Equal(t, []string{"movie_title", "roi"}, rows[0])
	assert.Equal(t, []string{"Avatar", "2.5"}, rows[1])
	assert.Equal(t, "Tangled", rows[2][0])
}
