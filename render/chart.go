package render

import (
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"github.com/bitmark-inc/covid-overview/schema"
)

const logPrefix = "render"

var (
	confirmedMessage = &i18n.Message{ID: "ChartConfirmed", Other: "Confirmed"}
	recoveredMessage = &i18n.Message{ID: "ChartRecovered", Other: "Recovered"}
	deathsMessage    = &i18n.Message{ID: "ChartDeaths", Other: "Deaths"}
)

type ChartDataset struct {
	Label string  `json:"label" yaml:"label"`
	Data  []int64 `json:"data" yaml:"data"`
}

type ChartTitle struct {
	Display bool   `json:"display" yaml:"display"`
	Text    string `json:"text" yaml:"text"`
}

type ChartOptions struct {
	Responsive bool       `json:"responsive" yaml:"responsive"`
	Title      ChartTitle `json:"title" yaml:"title"`
}

// Chart is the line chart configuration consumed by the web client
type Chart struct {
	Labels   []string       `json:"labels" yaml:"labels"`
	Datasets []ChartDataset `json:"datasets" yaml:"datasets"`
	Options  ChartOptions   `json:"options" yaml:"options"`
}

type ChartRenderer struct {
	bundle *i18n.Bundle
}

// NewChartRenderer loads the message files found in dir. An empty dir keeps the
// english labels only.
func NewChartRenderer(dir string) (*ChartRenderer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	if dir != "" {
		for _, file := range []string{"en.yaml", "zh_tw.yaml"} {
			if _, err := bundle.LoadMessageFile(path.Join(dir, file)); err != nil {
				log.WithFields(log.Fields{"prefix": logPrefix, "file": file, "error": err}).Error("load message file")
				return nil, err
			}
		}
	}

	return &ChartRenderer{bundle: bundle}, nil
}

// Render converts a series into a chart titled with the country name. langs
// are tried in order, Accept-Language values included.
func (r *ChartRenderer) Render(series schema.ChartSeries, langs ...string) Chart {
	localizer := i18n.NewLocalizer(r.bundle, langs...)

	return Chart{
		Labels: series.DateLabels,
		Datasets: []ChartDataset{
			{Label: r.localize(localizer, confirmedMessage), Data: series.ConfirmedSeries},
			{Label: r.localize(localizer, recoveredMessage), Data: series.RecoveredSeries},
			{Label: r.localize(localizer, deathsMessage), Data: series.DeathsSeries},
		},
		Options: ChartOptions{
			Responsive: true,
			Title: ChartTitle{
				Display: true,
				Text:    series.CountryLabel,
			},
		},
	}
}

// RenderAll keeps the order of series
func (r *ChartRenderer) RenderAll(series []schema.ChartSeries, langs ...string) []Chart {
	charts := make([]Chart, 0, len(series))
	for _, s := range series {
		charts = append(charts, r.Render(s, langs...))
	}
	return charts
}

func (r *ChartRenderer) localize(localizer *i18n.Localizer, message *i18n.Message) string {
	text, err := localizer.Localize(&i18n.LocalizeConfig{DefaultMessage: message})
	if err != nil {
		return message.Other
	}
	return text
}
