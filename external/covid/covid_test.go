package covid_test

import (
	"context"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/covid-overview/external/covid"
	"github.com/bitmark-inc/covid-overview/schema"
)

const paginatedBody = `{
	"total": 3,
	"limit": 10,
	"skip": 0,
	"data": [
		{"SNo": 1, "ObservationDate": "12/06/2020", "Province/State": "Texas", "Country/Region": "US", "Confirmed": 1343.0, "Deaths": 22.0, "Recovered": 0.0},
		{"SNo": 2, "ObservationDate": "12/06/2020", "Province/State": "Ohio", "Country/Region": "US", "Confirmed": 100, "Deaths": 1, "Recovered": null},
		{"SNo": 3, "ObservationDate": "12/06/2020", "Province/State": "", "Country/Region": "Japan", "Confirmed": 160000, "Deaths": 2300, "Recovered": 130000}
	]
}`

func TestHTTPSourceFetch(t *testing.T) {
	var rawQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(paginatedBody))
	}))
	defer ts.Close()

	s := covid.NewHTTPSource(ts.URL+"/covid", nil)
	rows, err := s.Fetch(context.Background(), "ObservationDate=12/06/2020")
	assert.NoError(t, err)
	assert.Equal(t, "ObservationDate=12/06/2020", rawQuery, "filter query is passed verbatim")

	expected := []schema.RawObservation{
		{CountryRegion: "US", ObservationDate: "12/06/2020", Confirmed: 1343, Deaths: 22, Recovered: 0},
		{CountryRegion: "US", ObservationDate: "12/06/2020", Confirmed: 100, Deaths: 1, Recovered: 0},
		{CountryRegion: "Japan", ObservationDate: "12/06/2020", Confirmed: 160000, Deaths: 2300, Recovered: 130000},
	}
	assert.Equal(t, expected, rows)
}

func TestHTTPSourceFetchStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := covid.NewHTTPSource(ts.URL, nil).Fetch(context.Background(), "")
	assert.True(t, errors.Is(err, covid.ErrUpstreamStatus), "wrong error: %v", err)
}

func TestHTTPSourceFetchDecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer ts.Close()

	_, err := covid.NewHTTPSource(ts.URL, nil).Fetch(context.Background(), "")
	assert.True(t, errors.Is(err, covid.ErrUpstreamDecode), "wrong error: %v", err)
}

func TestHTTPSourceFetchTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := covid.NewHTTPSource(url, nil).Fetch(context.Background(), "")
	assert.True(t, errors.Is(err, covid.ErrUpstreamFetch), "wrong error: %v", err)
}

func TestDecodeSkipsMalformedRows(t *testing.T) {
	rows, err := covid.Decode([]byte(`[
		{"ObservationDate": "12/06/2020", "Confirmed": 1},
		{"Country/Region": "France", "Confirmed": 1},
		{"Country/Region": "France", "ObservationDate": "12/06/2020", "Confirmed": -5},
		"garbage",
		{"Country/Region": "France", "ObservationDate": "12/06/2020", "Confirmed": 7.9, "Deaths": 2}
	]`))
	assert.NoError(t, err)
	assert.Equal(t, []schema.RawObservation{
		{CountryRegion: "France", ObservationDate: "12/06/2020", Confirmed: 7, Deaths: 2},
	}, rows)
}

func TestDecodeEmpty(t *testing.T) {
	rows, err := covid.Decode([]byte(`{"total": 0, "data": []}`))
	assert.NoError(t, err)
	assert.Empty(t, rows)

	_, err = covid.Decode([]byte(``))
	assert.Equal(t, covid.ErrUpstreamDecode, err)
}

func TestFileSourceFetch(t *testing.T) {
	dir, err := ioutil.TempDir("", "covid")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "data.json")
	assert.NoError(t, ioutil.WriteFile(file, []byte(paginatedBody), 0600))

	rows, err := covid.NewFileSource(file).Fetch(context.Background(), "ignored")
	assert.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = covid.NewFileSource(filepath.Join(dir, "missing.json")).Fetch(context.Background(), "")
	assert.True(t, errors.Is(err, covid.ErrUpstreamFetch))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "12/09/2020", covid.FormatDate("2020-12-09"))
	assert.Equal(t, "12/09/2020", covid.FormatDate("12/09/2020"))
}
