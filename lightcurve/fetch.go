package lightcurve

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// Fetch downloads a light-curve FITS file and parses it. The whole file is
// buffered in memory; archive light-curve products are a few MB. Failures
// propagate to the caller; there is no retry.
func Fetch(ctx context.Context, client *http.Client, url string, timeCol string, fluxCol string) (Curve, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Curve{}, errors.Wrap(err, "new request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return Curve{}, errors.Wrap(err, "get")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Curve{}, errors.Errorf("fetch light curve: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Curve{}, errors.Wrap(err, "read body")
	}

	curve, err := ReadFITS(bytes.NewReader(body), timeCol, fluxCol)
	if err != nil {
		return Curve{}, errors.Wrap(err, "parse fits")
	}

	return curve, nil
}
