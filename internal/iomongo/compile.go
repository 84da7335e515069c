package iomongo

import (
	"fmt"
	"regexp"

	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// key returns the document key of a field.
func key(f occurrence.Field) string {
	if f == occurrence.ID {
		return "_id"
	}
	return f.Key()
}

// asText is the value of a field converted to a string, null if missing.
func asText(f occurrence.Field) bson.M {
	return bson.M{"$toString": "$" + key(f)}
}

func trimmedText(f occurrence.Field) bson.M {
	return bson.M{"$trim": bson.M{"input": asText(f)}}
}

// matchesRe is true when the trimmed value of a field matches the
// regular expression. Missing values never match.
func matchesRe(f occurrence.Field, re string) bson.M {
	return bson.M{"$regexMatch": bson.M{
		"input": bson.M{"$ifNull": bson.A{trimmedText(f), ""}},
		"regex": re,
	}}
}

func filter(f pipeline.Filter) bson.M {
	switch v := f.(type) {
	case nil:
		return bson.M{}
	case pipeline.Contains:
		return bson.M{key(v.Field): bson.M{
			"$regex":   regexp.QuoteMeta(v.Value),
			"$options": "i",
		}}
	case pipeline.Equals:
		return bson.M{key(v.Field): v.Value}
	case pipeline.Present:
		return bson.M{"$expr": matchesRe(v.Field, `\S`)}
	case pipeline.Numeric:
		return bson.M{"$expr": matchesRe(v.Field, occurrence.NumberPattern)}
	case pipeline.And:
		if len(v) == 0 {
			return bson.M{}
		}
		return bson.M{"$and": filters(v)}
	case pipeline.Or:
		if len(v) == 0 {
			return bson.M{"$expr": false}
		}
		return bson.M{"$or": filters(v)}
	}
	return bson.M{"$expr": false}
}

func filters(fs []pipeline.Filter) bson.A {
	res := make(bson.A, len(fs))
	for i := range fs {
		res[i] = filter(fs[i])
	}
	return res
}

// toDouble converts a text value guarded by the pattern, null otherwise.
func toDouble(f occurrence.Field, pattern string) bson.M {
	return bson.M{"$cond": bson.A{
		matchesRe(f, pattern),
		bson.M{"$toDouble": bson.M{"$ltrim": bson.M{
			"input": trimmedText(f),
			"chars": "+",
		}}},
		nil,
	}}
}

func number(f occurrence.Field) bson.M {
	return toDouble(f, occurrence.NumberPattern)
}

func count(f occurrence.Field) bson.M {
	return toDouble(f, occurrence.CountPattern)
}

// text is the value of a field, or null when it is blank.
func text(f occurrence.Field) bson.M {
	return bson.M{"$cond": bson.A{matchesRe(f, `\S`), asText(f), nil}}
}

func accumulator(acc pipeline.Accumulator) bson.M {
	switch acc.Op {
	case pipeline.Count:
		return bson.M{"$sum": 1}
	case pipeline.Sum:
		return bson.M{"$sum": number(acc.Field)}
	case pipeline.SumCounts:
		return bson.M{"$sum": count(acc.Field)}
	case pipeline.Min:
		return bson.M{"$min": number(acc.Field)}
	case pipeline.Max:
		return bson.M{"$max": number(acc.Field)}
	case pipeline.Avg:
		return bson.M{"$avg": number(acc.Field)}
	case pipeline.MinText:
		return bson.M{"$min": text(acc.Field)}
	case pipeline.MaxText:
		return bson.M{"$max": text(acc.Field)}
	case pipeline.AddToSet:
		return bson.M{"$addToSet": text(acc.Field)}
	}
	return bson.M{"$first": nil}
}

func alias(i int) string {
	return fmt.Sprintf("a%02d", i)
}

func compileFindSort(p pipeline.Pipeline) bson.D {
	res := make(bson.D, 0, len(p.Sort)+1)
	for _, v := range p.Sort {
		res = append(res, bson.E{Key: key(v.Field), Value: direction(v.Desc)})
	}
	return append(res, bson.E{Key: "_id", Value: 1})
}

func direction(desc bool) int {
	if desc {
		return -1
	}
	return 1
}

// compileAggregate translates a grouped pipeline into aggregation stages.
// Accumulator values are returned under aliases a00, a01 and so on.
func compileAggregate(p pipeline.Pipeline) (mongo.Pipeline, map[string]string) {
	g := p.Group
	var res mongo.Pipeline
	if p.Filter != nil {
		res = append(res, bson.D{{Key: "$match", Value: filter(p.Filter)}})
	}

	var id any
	if !g.Whole {
		id = bson.M{"$ifNull": bson.A{asText(g.Key), ""}}
	}
	group := bson.D{
		{Key: "_id", Value: id},
		{Key: "_first", Value: bson.M{"$min": "$_id"}},
	}
	aliases := make(map[string]string, len(g.Accumulators))
	for i, acc := range g.Accumulators {
		a := alias(i)
		aliases[acc.Name] = a
		group = append(group, bson.E{Key: a, Value: accumulator(acc)})
	}
	res = append(res, bson.D{{Key: "$group", Value: group}})

	sort := make(bson.D, 0, len(p.Sort)+1)
	for _, v := range p.Sort {
		sort = append(sort, bson.E{Key: aliases[v.Acc], Value: direction(v.Desc)})
	}
	sort = append(sort, bson.E{Key: "_first", Value: 1})
	res = append(res, bson.D{{Key: "$sort", Value: sort}})

	if p.Skip > 0 {
		res = append(res, bson.D{{Key: "$skip", Value: int64(p.Skip)}})
	}
	if p.Limit > 0 {
		res = append(res, bson.D{{Key: "$limit", Value: int64(p.Limit)}})
	}
	return res, aliases
}
