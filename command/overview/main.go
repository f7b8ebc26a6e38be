package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/yaml.v2"

	"github.com/bitmark-inc/covid-overview/external/covid"
	"github.com/bitmark-inc/covid-overview/geo"
	"github.com/bitmark-inc/covid-overview/overview"
	"github.com/bitmark-inc/covid-overview/schema"
)

func init() {
	viper.SetDefault("source.timeout", 30*time.Second)
	viper.SetDefault("query.default", "ObservationDate=12/06/2020")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("covid")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func loadConfig(file string) {
	viper.SetConfigType("yaml")
	if file == "" {
		return
	}

	viper.SetConfigFile(file)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file. Read config from env.")
	}
}

// filterQuery prefers an explicit query over a date
func filterQuery(query, date string) string {
	if query != "" {
		return query
	}
	if date != "" {
		return "ObservationDate=" + covid.FormatDate(date)
	}
	return viper.GetString("query.default")
}

func output(o schema.Overview, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(o, "", "  ")
	case "yaml":
		return yaml.Marshal(o)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func main() {
	var configFile, format, date, query string

	flag.StringVar(&configFile, "c", "", "[optional] path of configuration file")
	flag.StringVar(&format, "o", "yaml", "output format, yaml or json")
	flag.StringVar(&date, "date", "", "[optional] observation date, YYYY-MM-DD")
	flag.StringVar(&query, "query", "", "[optional] raw filter query, overrides -date")
	flag.Parse()

	loadConfig(configFile)

	// logs go to stderr so the report stays parsable
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
	if level, err := log.ParseLevel(viper.GetString("log.level")); err == nil {
		log.SetLevel(level)
	}
	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})

	var source covid.Source
	if file := viper.GetString("source.file"); file != "" {
		source = covid.NewFileSource(file)
	} else {
		source = covid.NewHTTPSource(viper.GetString("source.url"), &http.Client{
			Timeout: viper.GetDuration("source.timeout"),
		})
	}

	lookup := geo.NewStaticCoordinateResolver()
	if file := viper.GetString("geo.coordinates_file"); file != "" {
		var err error
		if lookup, err = geo.LoadStaticCoordinateResolver(file); err != nil {
			log.WithField("prefix", "cli").Fatal(err)
		}
	}

	o, err := overview.NewService(source, lookup, nil).Run(context.Background(), filterQuery(query, date))
	if err != nil {
		log.WithField("prefix", "cli").Fatal(err)
	}

	out, err := output(o, format)
	if err != nil {
		log.WithField("prefix", "cli").Fatal(err)
	}
	fmt.Println(string(out))
}
