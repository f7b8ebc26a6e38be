package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"googlemaps.github.io/maps"

	"github.com/bitmark-inc/covid-overview/api"
	"github.com/bitmark-inc/covid-overview/external/covid"
	"github.com/bitmark-inc/covid-overview/geo"
	"github.com/bitmark-inc/covid-overview/overview"
	"github.com/bitmark-inc/covid-overview/render"
	"github.com/bitmark-inc/covid-overview/schema"
)

const defaultQuery = "ObservationDate=12/06/2020"

var (
	server      *api.Server
	mongoClient *mongo.Client
	metricsStop func()
)

// mongoPinger checks the coordinate store for healthz
type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.client.Ping(ctx, readpref.Primary())
}

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("source.timeout", 30*time.Second)
	viper.SetDefault("query.default", defaultQuery)
	viper.SetDefault("mongo.database", "covid")
	viper.SetDefault("mongo.pool", 10)
	viper.SetDefault("i18n.dir", "./i18n")
	viper.SetDefault("metrics.prefix", "covid_overview")

	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("covid")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func newSource() covid.Source {
	if file := viper.GetString("source.file"); file != "" {
		log.WithFields(log.Fields{"prefix": "init", "file": file}).Info("Use file data source")
		return covid.NewFileSource(file)
	}

	url := viper.GetString("source.url")
	log.WithFields(log.Fields{"prefix": "init", "url": url}).Info("Use http data source")
	return covid.NewHTTPSource(url, &http.Client{
		Timeout: viper.GetDuration("source.timeout"),
	})
}

func newStaticResolver() *geo.StaticCoordinateResolver {
	file := viper.GetString("geo.coordinates_file")
	if file == "" {
		return geo.NewStaticCoordinateResolver()
	}

	r, err := geo.LoadStaticCoordinateResolver(file)
	if err != nil {
		log.Panic(err)
	}
	log.WithFields(log.Fields{"prefix": "init", "file": file}).Info("Loaded country coordinates")
	return r
}

func connectMongo(ctx context.Context) *mongo.Client {
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	client, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = client.Connect(ctx)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	return client
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown overview api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if mongoClient != nil {
			log.Info("Shutting down coordinate store")
			if err := mongoClient.Disconnect(ctx); err != nil {
				log.Error(err)
			}
		}

		if metricsStop != nil {
			metricsStop()
		}

		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	// Coordinate resolvers, tried in order
	static := newStaticResolver()
	resolvers := []geo.CoordinateLookup{static}

	var pinger api.Pinger
	if viper.GetBool("geo.mongo") {
		mongoClient = connectMongo(initialCtx)
		database := viper.GetString("mongo.database")

		if err := schema.NewMongoDBIndexer(mongoClient, database).IndexAll(); err != nil {
			log.Panic(err)
		}

		mongoResolver := geo.NewMongodbCoordinateResolver(mongoClient, database)
		if err := mongoResolver.ReplaceCoordinates(static.Records()); err != nil {
			log.Panic(err)
		}

		resolvers = append(resolvers, mongoResolver)
		pinger = mongoPinger{client: mongoClient}
		log.WithField("prefix", "init").Info("Initialized mongo coordinate resolver")
	}

	if key := viper.GetString("geo.maps_api_key"); key != "" {
		mapsClient, err := maps.NewClient(maps.WithAPIKey(key))
		if err != nil {
			log.Panic(err)
		}
		resolvers = append(resolvers, geo.NewGeocodingCoordinateResolver(mapsClient))
		log.WithField("prefix", "init").Info("Initialized geocoding coordinate resolver")
	}

	// Metrics
	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix: viper.GetString("metrics.prefix"),
	}, time.Second)
	metricsStop = func() {
		if err := closer.Close(); err != nil {
			log.Error(err)
		}
	}

	service := overview.NewService(newSource(), geo.NewMultipleCoordinateResolver(resolvers...), scope)

	charts, err := render.NewChartRenderer(viper.GetString("i18n.dir"))
	if err != nil {
		log.Panic(err)
	}

	// Init http server
	server = api.NewServer(
		service,
		charts,
		viper.GetString("query.default"),
		pinger)
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
