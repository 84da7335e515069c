// Package iomongo implements the Record Store on a MongoDB collection.
// Documents keep occurrence values as text under their Darwin Core keys.
// Pipelines are compiled to aggregation stages.
package iomongo

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/gnames/gnmarine/pkg/config"
	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
	"github.com/gnames/gnmarine/pkg/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongostore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect creates a MongoDB client and verifies the connection.
func Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(uint64(max(cfg.MaxConnections, 1)))
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, ConnectionError(cfg.URI, err)
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, ConnectionError(cfg.URI, err)
	}
	return client, nil
}

// New connects to MongoDB and returns a store over the configured
// collection.
func New(ctx context.Context, cfg *config.DatabaseConfig) (store.Store, error) {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	return &mongostore{client: client, coll: coll}, nil
}

func (m *mongostore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *mongostore) Close() error {
	return m.client.Disconnect(context.Background())
}

func (m *mongostore) Count(
	ctx context.Context,
	f pipeline.Filter,
) (int, error) {
	n, err := m.coll.CountDocuments(ctx, filter(f))
	if err != nil {
		return 0, QueryError(m.coll.Name(), err)
	}
	return int(n), nil
}

func (m *mongostore) CountDistinct(
	ctx context.Context,
	field occurrence.Field,
	f pipeline.Filter,
) (int, error) {
	flt := filter(pipeline.AllOf(f, pipeline.Present{Field: field}))
	vals, err := m.coll.Distinct(ctx, key(field), flt)
	if err != nil {
		return 0, QueryError(m.coll.Name(), err)
	}
	seen := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		if s := stringify(v); s != "" {
			seen[s] = struct{}{}
		}
	}
	return len(seen), nil
}

func (m *mongostore) Find(
	ctx context.Context,
	p pipeline.Pipeline,
) ([]occurrence.Occurrence, error) {
	if p.Grouped() {
		return nil, store.GroupedFindError()
	}

	opts := options.Find().SetSort(compileFindSort(p))
	if p.Skip > 0 {
		opts.SetSkip(int64(p.Skip))
	}
	if p.Limit > 0 {
		opts.SetLimit(int64(p.Limit))
	}
	cur, err := m.coll.Find(ctx, filter(p.Filter), opts)
	if err != nil {
		return nil, QueryError(m.coll.Name(), err)
	}

	var docs []bson.M
	if err = cur.All(ctx, &docs); err != nil {
		return nil, DecodeError(m.coll.Name(), err)
	}

	res := make([]occurrence.Occurrence, len(docs))
	for i := range docs {
		res[i] = decode(docs[i])
	}
	return res, nil
}

func (m *mongostore) Aggregate(
	ctx context.Context,
	p pipeline.Pipeline,
) ([]pipeline.Row, error) {
	if !p.Grouped() {
		return nil, store.UngroupedAggregateError()
	}

	stages, aliases := compileAggregate(p)
	cur, err := m.coll.Aggregate(ctx, stages)
	if err != nil {
		return nil, QueryError(m.coll.Name(), err)
	}
	var docs []bson.M
	if err = cur.All(ctx, &docs); err != nil {
		return nil, DecodeError(m.coll.Name(), err)
	}

	res := make([]pipeline.Row, len(docs))
	for i, doc := range docs {
		row := pipeline.NewRow(stringify(doc["_id"]))
		for _, acc := range p.Group.Accumulators {
			val := doc[aliases[acc.Name]]
			switch acc.Op.Kind() {
			case pipeline.NumberKind:
				row.Numbers[acc.Name] = toFloat(val)
			case pipeline.TextKind:
				row.Texts[acc.Name] = stringify(val)
			case pipeline.SetKind:
				row.Sets[acc.Name] = toSet(val)
			}
		}
		res[i] = row
	}
	return res, nil
}

// Document converts an occurrence to a document without an _id.
func Document(o occurrence.Occurrence) bson.D {
	res := make(bson.D, 0, len(occurrence.Fields))
	for _, f := range occurrence.Fields {
		if f == occurrence.ID {
			continue
		}
		res = append(res, bson.E{Key: f.Key(), Value: f.Value(&o)})
	}
	return res
}

func decode(doc bson.M) occurrence.Occurrence {
	var res occurrence.Occurrence
	for _, f := range occurrence.Fields {
		f.Set(&res, stringify(doc[key(f)]))
	}
	res.FixUtf8()
	return res
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case primitive.ObjectID:
		return t.Hex()
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

func toFloat(v any) *float64 {
	var res float64
	switch t := v.(type) {
	case float64:
		res = t
	case int32:
		res = float64(t)
	case int64:
		res = float64(t)
	default:
		return nil
	}
	return &res
}

func toSet(v any) []string {
	arr, _ := v.(bson.A)
	res := make([]string, 0, len(arr))
	for _, val := range arr {
		if s := stringify(val); s != "" {
			res = append(res, s)
		}
	}
	slices.Sort(res)
	return slices.Compact(res)
}
