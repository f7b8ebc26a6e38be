package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/covid-overview/geo"
	"github.com/bitmark-inc/covid-overview/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("covid")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	var coordinatesFile string
	flag.StringVar(&coordinatesFile, "f", viper.GetString("geo.coordinates_file"), "[optional] yaml file of country coordinates")
	flag.Parse()

	ctx := context.Background()
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(1)
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}
	defer client.Disconnect(ctx)

	dbName := viper.GetString("mongo.database")

	if err := schema.NewMongoDBIndexer(client, dbName).IndexAll(); err != nil {
		panic(err)
	}

	static := geo.NewStaticCoordinateResolver()
	if coordinatesFile != "" {
		if static, err = geo.LoadStaticCoordinateResolver(coordinatesFile); err != nil {
			panic(err)
		}
	}

	records := static.Records()
	fmt.Printf("initialize %s collection with %d countries\n", schema.CountryCoordinatesCollection, len(records))
	if err := geo.NewMongodbCoordinateResolver(client, dbName).ReplaceCoordinates(records); err != nil {
		panic(err)
	}
}
