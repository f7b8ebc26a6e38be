package covid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-overview/schema"
)

const (
	logPrefix      = "covid"
	defaultTimeout = 30 * time.Second
)

var (
	ErrUpstreamFetch  = fmt.Errorf("fetch covid data fail")
	ErrUpstreamStatus = fmt.Errorf("unexpected covid data response status")
	ErrUpstreamDecode = fmt.Errorf("decode covid data fail")
)

// Source - interface to fetch raw observation rows for a filter query
type Source interface {
	Fetch(ctx context.Context, filterQuery string) ([]schema.RawObservation, error)
}

type SourceType string

const (
	SourceHTTP SourceType = "http"
	SourceFile SourceType = "file"
)

// paginated response of the covid data REST service
type dataResponse struct {
	Total int               `json:"total"`
	Data  []json.RawMessage `json:"data"`
}

type httpSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource - new source reading from the covid data REST service
func NewHTTPSource(url string, client *http.Client) Source {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &httpSource{
		url:    strings.TrimRight(url, "?"),
		client: client,
	}
}

func (s *httpSource) Fetch(ctx context.Context, filterQuery string) ([]schema.RawObservation, error) {
	u := s.url
	if filterQuery != "" {
		u = u + "?" + filterQuery
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if nil != err {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamFetch, err)
	}

	resp, err := s.client.Do(req.WithContext(ctx))
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "url": u, "error": err}).Error("get covid data")
		return nil, fmt.Errorf("%w: %s", ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Error("read covid data response")
		return nil, fmt.Errorf("%w: %s", ErrUpstreamFetch, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithFields(log.Fields{"prefix": logPrefix, "url": u, "status": resp.StatusCode}).Error("get covid data")
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	return Decode(data)
}

type fileSource struct {
	path string
}

// NewFileSource - new source reading a downloaded dataset. The filter query is ignored.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Fetch(_ context.Context, _ string) ([]schema.RawObservation, error) {
	data, err := ioutil.ReadFile(s.path)
	if nil != err {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamFetch, err)
	}
	return Decode(data)
}

// Decode parses either a paginated response or a bare array of rows. Rows without
// a country or date, or with negative counts, are skipped.
func Decode(data []byte) ([]schema.RawObservation, error) {
	var rawRows []json.RawMessage

	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("[")):
		if err := json.Unmarshal(trimmed, &rawRows); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUpstreamDecode, err)
		}
	case bytes.HasPrefix(trimmed, []byte("{")):
		var resp dataResponse
		if err := json.Unmarshal(trimmed, &resp); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUpstreamDecode, err)
		}
		rawRows = resp.Data
	default:
		return nil, ErrUpstreamDecode
	}

	rows := make([]schema.RawObservation, 0, len(rawRows))
	for _, raw := range rawRows {
		object := make(map[string]interface{})
		if err := json.Unmarshal(raw, &object); err != nil {
			log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Warn("decode covid row")
			continue
		}

		row, ok := decodeRow(object)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "received": len(rawRows), "rows": len(rows)}).Debug("decode covid data")
	return rows, nil
}

func decodeRow(object map[string]interface{}) (schema.RawObservation, bool) {
	var row schema.RawObservation

	country, ok := object["Country/Region"].(string)
	if !ok || strings.TrimSpace(country) == "" {
		log.WithFields(log.Fields{"prefix": logPrefix, "row": object}).Warn("empty country")
		return row, false
	}
	row.CountryRegion = country

	date, ok := object["ObservationDate"].(string)
	if !ok || date == "" {
		log.WithFields(log.Fields{"prefix": logPrefix, "country": country}).Warn("empty observation date")
		return row, false
	}
	row.ObservationDate = date

	counts := []struct {
		key    string
		target *int64
	}{
		{"Confirmed", &row.Confirmed},
		{"Deaths", &row.Deaths},
		{"Recovered", &row.Recovered},
	}
	for _, c := range counts {
		value, _ := object[c.key].(float64)
		if value < 0 {
			log.WithFields(log.Fields{"prefix": logPrefix, "country": country, "date": date, c.key: value}).Warn("negative count")
			return row, false
		}
		*c.target = int64(value)
	}

	return row, true
}

// FormatDate converts a YYYY-MM-DD date into the MM/DD/YYYY form used by
// the ObservationDate filter
func FormatDate(date string) string {
	d := strings.Split(date, "-")
	if len(d) != 3 {
		return date
	}
	return fmt.Sprintf("%s/%s/%s", d[1], d[2], d[0])
}
