package overview

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/covid-overview/external/covid"
	"github.com/bitmark-inc/covid-overview/geo"
	"github.com/bitmark-inc/covid-overview/schema"
)

const logPrefix = "overview"

// Service fetches the rows of a query and builds their overview
type Service struct {
	source covid.Source
	lookup geo.CoordinateLookup
	scope  tally.Scope
}

func NewService(source covid.Source, lookup geo.CoordinateLookup, scope tally.Scope) *Service {
	if scope == nil {
		scope = tally.NoopScope
	}

	return &Service{
		source: source,
		lookup: lookup,
		scope:  scope,
	}
}

// Run waits for the data source, then builds the overview. A fetch failure is
// returned as is and nothing is built.
func (s *Service) Run(ctx context.Context, filterQuery string) (schema.Overview, error) {
	runID := uuid.New().String()
	l := log.WithFields(log.Fields{"prefix": logPrefix, "run": runID})

	start := time.Now()
	rows, err := s.source.Fetch(ctx, filterQuery)
	if err != nil {
		s.scope.Counter("fetch_errors").Inc(1)
		l.WithFields(log.Fields{"query": filterQuery, "error": err}).Error("fetch rows")
		return schema.Overview{}, err
	}

	m := merge(rows, s.lookup)
	o := build(m)

	droppedRows := 0
	for name, count := range m.dropped {
		droppedRows += count
		l.WithFields(log.Fields{"country": name, "rows": count}).Debug("unresolved country")
	}

	s.scope.Counter("rows").Inc(int64(len(rows)))
	s.scope.Counter("rows_dropped").Inc(int64(droppedRows))
	s.scope.Counter("countries").Inc(int64(o.Result.Countries.Len()))
	s.scope.Counter("overlays").Inc(int64(len(o.Overlays)))
	s.scope.Timer("run").Record(time.Since(start))

	l.WithFields(log.Fields{
		"query":     filterQuery,
		"rows":      len(rows),
		"dropped":   droppedRows,
		"countries": o.Result.Countries.Len(),
		"overlays":  len(o.Overlays),
	}).Info("overview built")

	return o, nil
}
