// Package tesscut fetches TESS full-frame-image cutouts from the TESScut
// service and decodes the pixel stack.
package tesscut

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/astrogo/fitsio"
	"github.com/mjkukula/tessgraph/internal/fitsutil"
	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://mast.stsci.edu/tesscut"

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type Request struct {
	RA     float64
	Dec    float64
	Width  int // pixels
	Height int // pixels
	Sector int // 0 means all available sectors
}

// Cutouts downloads cutouts for a sky position. The service returns a zip
// with one target-pixel FITS file per sector; each becomes one Cube.
func (c *Client) Cutouts(ctx context.Context, req Request) ([]*Cube, error) {
	url := fmt.Sprintf("%s/api/v0.1/astrocut?ra=%v&dec=%v&y=%d&x=%d",
		c.baseURL, req.RA, req.Dec, req.Height, req.Width)
	if req.Sector > 0 {
		url += fmt.Sprintf("&sector=%d", req.Sector)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "get")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("tesscut: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, errors.Wrap(err, "open zip")
	}

	var cubes []*Cube
	for _, entry := range zr.File {
		if !strings.HasSuffix(entry.Name, ".fits") {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", entry.Name)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", entry.Name)
		}

		cube, err := ReadCube(bytes.NewReader(content))
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", entry.Name)
		}
		cubes = append(cubes, cube)
	}

	if len(cubes) == 0 {
		return nil, errors.New("tesscut: empty result set")
	}

	return cubes, nil
}

// ReadCube decodes a target-pixel FITS file: a binary table whose FLUX
// column holds one 2D frame per cadence, shape taken from the column's
// TDIM card. Cadences with NaN timestamps are dropped.
func ReadCube(r io.ReadSeeker) (*Cube, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return nil, errors.Wrap(err, "open fits")
	}
	defer f.Close()

	tbl, err := fitsutil.FindTable(f, "TIME", "FLUX")
	if err != nil {
		return nil, errors.Wrap(err, "find table")
	}

	fluxIdx, err := fitsutil.ColumnIndex(tbl, "FLUX")
	if err != nil {
		return nil, errors.Wrap(err, "flux column")
	}

	dims, err := fitsutil.TDIM(tbl, fluxIdx)
	if err != nil {
		return nil, errors.Wrap(err, "flux shape")
	}

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, errors.Wrap(err, "read rows")
	}
	defer rows.Close()

	cube := &Cube{}
	if card := f.HDU(0).Header().Get("SECTOR"); card != nil {
		if sector, err := fitsutil.Int32(card.Value); err == nil {
			cube.Sector = int(sector)
		}
	}

	for rows.Next() {
		cells := map[string]any{}
		if err := rows.Scan(&cells); err != nil {
			return nil, errors.Wrap(err, "scan row")
		}

		t, err := fitsutil.Float64(cells["TIME"])
		if err != nil {
			return nil, errors.Wrap(err, "column TIME")
		}
		if math.IsNaN(t) {
			continue
		}

		flat, err := fitsutil.Float64s(cells["FLUX"])
		if err != nil {
			return nil, errors.Wrap(err, "column FLUX")
		}

		if cube.Width == 0 {
			cube.Width, cube.Height, err = frameShape(dims, len(flat))
			if err != nil {
				return nil, err
			}
		}
		if len(flat) != cube.Width*cube.Height {
			return nil, errors.Errorf("frame size %d does not match %dx%d",
				len(flat), cube.Width, cube.Height)
		}

		frame := make([][]float64, cube.Height)
		for y := 0; y < cube.Height; y++ {
			frame[y] = flat[y*cube.Width : (y+1)*cube.Width]
		}

		cube.Times = append(cube.Times, t)
		cube.Frames = append(cube.Frames, frame)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows")
	}

	if cube.Len() == 0 {
		return nil, errors.New("cube has no frames")
	}

	return cube, nil
}

// frameShape resolves the frame dimensions, preferring TDIM (FITS order is
// (width, height)) and falling back to a square for cutouts without one.
func frameShape(dims []int, n int) (int, int, error) {
	if len(dims) == 2 {
		return dims[0], dims[1], nil
	}

	side := int(math.Sqrt(float64(n)))
	if side*side != n {
		return 0, 0, errors.Errorf("cannot infer frame shape for %d pixels", n)
	}
	return side, side, nil
}
