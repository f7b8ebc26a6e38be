package geo

import (
	"context"
	"fmt"
	"io/ioutil"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/text/unicode/norm"
	"googlemaps.github.io/maps"
	"gopkg.in/yaml.v2"

	"github.com/bitmark-inc/covid-overview/consts"
	"github.com/bitmark-inc/covid-overview/schema"
)

const (
	logPrefix      = "geo"
	defaultTimeout = 5 * time.Second
)

var (
	ErrUnknownCountry         = fmt.Errorf("unknown country")
	ErrResolverNotInitialized = fmt.Errorf("coordinate resolver is not initialized")
)

// CoordinateLookup - interface for resolving a country name into its coordinates
type CoordinateLookup interface {
	Lookup(name string) (schema.CountryCoordinates, error)
}

// NormalizeName returns the key used to match country spellings
func NormalizeName(name string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(name)))
}

type MultipleResolverErrors struct {
	errors []error
}

func (e *MultipleResolverErrors) Error() string {
	errorStrings := make([]string, len(e.errors))
	for i, err := range e.errors {
		errorStrings[i] = fmt.Sprintf("#%d: %s", i, err.Error())
	}
	return strings.Join(errorStrings, "\n")
}

// Is reports an unknown country only when every resolver agreed on it
func (e *MultipleResolverErrors) Is(target error) bool {
	if target != ErrUnknownCountry || len(e.errors) == 0 {
		return false
	}
	for _, err := range e.errors {
		if err != ErrUnknownCountry {
			return false
		}
	}
	return true
}

func NewMultipleResolverErrors(errors []error) *MultipleResolverErrors {
	return &MultipleResolverErrors{
		errors: errors,
	}
}

// CountryEntry is one row of a coordinates file
type CountryEntry struct {
	Name      string   `yaml:"name"`
	Latitude  float64  `yaml:"lat"`
	Longitude float64  `yaml:"lon"`
	Aliases   []string `yaml:"aliases"`
}

type coordinatesFile struct {
	Countries []CountryEntry `yaml:"countries"`
}

// StaticCoordinateResolver resolves names from an in-memory table. Every
// spelling of a country points at its canonical name, so an entry replacing
// the coordinates of a country moves all of its spellings.
type StaticCoordinateResolver struct {
	// coordinates by canonical name
	countries map[string]schema.CountryCoordinates

	// spellings of the given entries, normalized, to canonical name
	names map[string]string
}

// NewStaticCoordinateResolver returns a resolver over the built-in country table
// followed by the given entries. Later entries win.
func NewStaticCoordinateResolver(entries ...CountryEntry) *StaticCoordinateResolver {
	r := &StaticCoordinateResolver{
		countries: make(map[string]schema.CountryCoordinates),
		names:     make(map[string]string),
	}

	for name, center := range consts.CountryCenter {
		r.countries[name] = schema.CountryCoordinates{
			Name:      name,
			Latitude:  center[0],
			Longitude: center[1],
		}
	}

	for _, e := range entries {
		r.add(e)
	}

	return r
}

// LoadStaticCoordinateResolver reads additional entries from a yaml file
func LoadStaticCoordinateResolver(file string) (*StaticCoordinateResolver, error) {
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var f coordinatesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "file": file, "countries": len(f.Countries)}).Info("load coordinates file")
	return NewStaticCoordinateResolver(f.Countries...), nil
}

func (r *StaticCoordinateResolver) add(e CountryEntry) {
	r.countries[e.Name] = schema.CountryCoordinates{
		Name:      e.Name,
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
	}

	r.names[NormalizeName(e.Name)] = e.Name
	for _, alias := range e.Aliases {
		r.names[NormalizeName(alias)] = e.Name
	}
}

// canonical resolves a normalized spelling, entries first, then the built-in aliases
func (r *StaticCoordinateResolver) canonical(key string) (string, bool) {
	if name, ok := r.names[key]; ok {
		return name, true
	}

	name, err := consts.CanonicalCountry(key)
	if err != nil {
		return "", false
	}
	return name, true
}

func (r *StaticCoordinateResolver) Lookup(name string) (schema.CountryCoordinates, error) {
	if canonical, ok := r.canonical(NormalizeName(name)); ok {
		if c, ok := r.countries[canonical]; ok {
			return c, nil
		}
	}
	return schema.CountryCoordinates{}, ErrUnknownCountry
}

// Records exports the table in the stored form, one record per canonical
// country, sorted by name
func (r *StaticCoordinateResolver) Records() []schema.CountryCoordinatesRecord {
	keys := make(map[string]struct{}, len(r.names)+len(consts.CountryCenter)+len(consts.CountryAlias))
	for name := range consts.CountryCenter {
		keys[NormalizeName(name)] = struct{}{}
	}
	for alias := range consts.CountryAlias {
		keys[NormalizeName(alias)] = struct{}{}
	}
	for key := range r.names {
		keys[key] = struct{}{}
	}

	byName := make(map[string]*schema.CountryCoordinatesRecord)
	for key := range keys {
		canonical, ok := r.canonical(key)
		if !ok {
			continue
		}
		c, ok := r.countries[canonical]
		if !ok {
			continue
		}

		record, ok := byName[canonical]
		if !ok {
			record = &schema.CountryCoordinatesRecord{
				Name:     canonical,
				Location: schema.NewPoint(c.Latitude, c.Longitude),
			}
			byName[canonical] = record
		}
		record.Names = append(record.Names, key)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]schema.CountryCoordinatesRecord, 0, len(names))
	for _, name := range names {
		record := byName[name]
		sort.Strings(record.Names)
		records = append(records, *record)
	}
	return records
}

type GeocodingCoordinateResolver struct {
	client *maps.Client
}

func NewGeocodingCoordinateResolver(client *maps.Client) *GeocodingCoordinateResolver {
	return &GeocodingCoordinateResolver{
		client: client,
	}
}

func (g *GeocodingCoordinateResolver) Lookup(name string) (schema.CountryCoordinates, error) {
	if g.client == nil {
		return schema.CountryCoordinates{}, ErrResolverNotInitialized
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	geos, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  strings.TrimSpace(name),
		Language: "en",
	})
	if nil != err {
		return schema.CountryCoordinates{}, err
	}

	if len(geos) == 0 {
		return schema.CountryCoordinates{}, ErrUnknownCountry
	}

	for _, a := range geos[0].AddressComponents {
		if len(a.Types) > 0 && a.Types[0] == "country" {
			return schema.CountryCoordinates{
				Name:      a.LongName,
				Latitude:  geos[0].Geometry.Location.Lat,
				Longitude: geos[0].Geometry.Location.Lng,
			}, nil
		}
	}

	return schema.CountryCoordinates{}, ErrUnknownCountry
}

type MongodbCoordinateResolver struct {
	client   *mongo.Client
	database string
}

func NewMongodbCoordinateResolver(client *mongo.Client, database string) *MongodbCoordinateResolver {
	return &MongodbCoordinateResolver{
		client:   client,
		database: database,
	}
}

func (g *MongodbCoordinateResolver) Lookup(name string) (schema.CountryCoordinates, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var record schema.CountryCoordinatesRecord
	if err := g.client.Database(g.database).Collection(schema.CountryCoordinatesCollection).
		FindOne(ctx, bson.M{"names": NormalizeName(name)}).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return schema.CountryCoordinates{}, ErrUnknownCountry
		}
		return schema.CountryCoordinates{}, err
	}

	return record.Coordinates(), nil
}

// ReplaceCoordinates upserts records by canonical name
func (g *MongodbCoordinateResolver) ReplaceCoordinates(records []schema.CountryCoordinatesRecord) error {
	if len(records) <= 0 {
		log.WithField("prefix", logPrefix).Debug("no coordinates to update")
		return nil
	}

	c := g.client.Database(g.database).Collection(schema.CountryCoordinatesCollection)
	for _, r := range records {
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		_, err := c.ReplaceOne(ctx, bson.M{"name": r.Name}, r, options.Replace().SetUpsert(true))
		cancel()
		if err != nil {
			log.WithFields(log.Fields{"prefix": logPrefix, "name": r.Name, "error": err}).Error("replace coordinates")
			return err
		}
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "records": len(records)}).Debug("replace coordinates")
	return nil
}

type MultipleCoordinateResolver struct {
	resolvers []CoordinateLookup
}

func NewMultipleCoordinateResolver(resolvers ...CoordinateLookup) *MultipleCoordinateResolver {
	return &MultipleCoordinateResolver{
		resolvers: resolvers,
	}
}

func (r *MultipleCoordinateResolver) Lookup(name string) (schema.CountryCoordinates, error) {
	if len(r.resolvers) == 0 {
		return schema.CountryCoordinates{}, ErrResolverNotInitialized
	}

	var errors []error
	for _, resolver := range r.resolvers {
		result, err := resolver.Lookup(name)
		if err != nil {
			errors = append(errors, err)
		} else {
			return result, nil
		}
	}

	return schema.CountryCoordinates{}, NewMultipleResolverErrors(errors)
}
