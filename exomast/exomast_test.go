package exomast

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedClient(t *testing.T) *Client {
	t.Helper()

	c := NewClient("https://exomast.test")
	httpmock.ActivateNonDefault(c.client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestTCETable(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder("GET",
		"https://exomast.test/api/v0.1/dvdata/tess/425997655/table/",
		httpmock.NewStringResponder(200, `{
			"fields": [
				{"colname": "TIME", "datatype": "real"},
				{"colname": "LC_INIT", "datatype": "real"}
			],
			"data": [
				{"TIME": 1325.5, "LC_INIT": 0.999},
				{"TIME": 1325.6}
			]
		}`))

	tbl, err := c.TCETable(context.Background(), "425997655", "TCE_1")
	require.NoError(t, err)
	require.Len(t, tbl.Columns, 2)

	assert.Equal(t, "TIME", tbl.Columns[0].Name)
	assert.Equal(t, 1325.5, tbl.Column("TIME").Floats[0])
	assert.Equal(t, 0.999, tbl.Column("LC_INIT").Floats[0])
	assert.Equal(t, 2, tbl.NumRows())
}

func TestTCEList(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder("GET",
		"https://exomast.test/api/v0.1/dvdata/tess/425997655/tces/",
		httpmock.NewStringResponder(200, `{"TCE": ["TCE_1", "TCE_2"]}`))

	tces, err := c.TCEList(context.Background(), "425997655")
	require.NoError(t, err)
	assert.Equal(t, []string{"TCE_1", "TCE_2"}, tces)
}

func TestIdentifiers(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder("GET",
		"https://exomast.test/api/v0.1/exoplanets/identifiers/",
		httpmock.NewStringResponder(200, `{"canonicalName": "WASP-18 b", "ticID": 100100827}`))

	ids, err := c.Identifiers(context.Background(), "WASP-18b")
	require.NoError(t, err)
	assert.Equal(t, "WASP-18 b", ids["canonicalName"])
}

func TestResponsesAreCached(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder("GET",
		"https://exomast.test/api/v0.1/dvdata/tess/1/tces/",
		httpmock.NewStringResponder(200, `{"TCE": ["TCE_1"]}`))

	for i := 0; i < 3; i++ {
		_, err := c.TCEList(context.Background(), "1")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestErrorStatusPropagates(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder("GET",
		"https://exomast.test/api/v0.1/dvdata/tess/2/tces/",
		httpmock.NewStringResponder(404, `not found`))

	_, err := c.TCEList(context.Background(), "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
