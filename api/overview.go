package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/covid-overview/external/covid"
	"github.com/bitmark-inc/covid-overview/render"
	"github.com/bitmark-inc/covid-overview/schema"
)

type overviewResponse struct {
	TotalConfirmed int64                `json:"total_confirmed"`
	TotalDeaths    int64                `json:"total_deaths"`
	TotalRecovered int64                `json:"total_recovered"`
	Countries      *schema.CountryMap   `json:"countries"`
	CountryOptions []string             `json:"country_options"`
	Charts         []render.Chart       `json:"charts"`
	Overlays       []schema.OverlaySpec `json:"overlays"`
}

// getOverview forwards the raw query string to the data source as the filter
func (s *Server) getOverview(c *gin.Context) {
	query := c.Request.URL.RawQuery
	if query == "" {
		query = s.defaultQuery
	}

	s.runLock.Lock()
	defer s.runLock.Unlock()

	o, err := s.overview.Run(c.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, covid.ErrUpstreamStatus):
			abortWithEncoding(c, http.StatusBadGateway, errorUpstreamStatus, err)
		case errors.Is(err, covid.ErrUpstreamDecode):
			abortWithEncoding(c, http.StatusBadGateway, errorUpstreamDecode, err)
		default:
			abortWithEncoding(c, http.StatusBadGateway, errorUpstreamFetch, err)
		}
		return
	}

	s.layer.Redraw(o.Overlays)

	c.JSON(http.StatusOK, overviewResponse{
		TotalConfirmed: o.Result.TotalConfirmed,
		TotalDeaths:    o.Result.TotalDeaths,
		TotalRecovered: o.Result.TotalRecovered,
		Countries:      o.Result.Countries,
		CountryOptions: o.CountryOptions,
		Charts:         s.charts.RenderAll(o.Charts, c.GetHeader("Accept-Language")),
		Overlays:       o.Overlays,
	})
}

func (s *Server) getMap(c *gin.Context) {
	c.JSON(http.StatusOK, s.layer.GeoJSON())
}
