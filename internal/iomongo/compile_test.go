package iomongo

import (
	"testing"

	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		msg    string
		filter pipeline.Filter
		res    bson.M
	}{
		{"nil", nil, bson.M{}},
		{"empty and", pipeline.And{}, bson.M{}},
		{"empty or", pipeline.Or{}, bson.M{"$expr": false}},
		{
			"contains quotes the value",
			pipeline.Contains{Field: occurrence.IdentifiedBy, Value: "r. k"},
			bson.M{"identifiedBy": bson.M{"$regex": `r\. k`, "$options": "i"}},
		},
		{
			"equals",
			pipeline.Equals{Field: occurrence.ScientificName, Value: "Gadus morhua"},
			bson.M{"scientificName": "Gadus morhua"},
		},
		{
			"id",
			pipeline.Equals{Field: occurrence.ID, Value: "x"},
			bson.M{"_id": "x"},
		},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, filter(v.filter), v.msg)
	}

	res := filter(pipeline.Or{
		pipeline.Present{Field: occurrence.Habitat},
		pipeline.Numeric{Field: occurrence.MinimumDepth},
	})
	or, ok := res["$or"].(bson.A)
	require.True(t, ok)
	assert.Len(t, or, 2)
	assert.Contains(t, or[0], "$expr")
}

func TestCompileAggregate(t *testing.T) {
	assert := assert.New(t)
	p := pipeline.Must(
		pipeline.Match{Filter: pipeline.Present{Field: occurrence.ScientificName}},
		pipeline.GroupByField(occurrence.ScientificName,
			pipeline.CountAs("count"),
			pipeline.Acc("habitats", pipeline.AddToSet, occurrence.Habitat),
		),
		pipeline.Sort{Keys: []pipeline.SortKey{pipeline.ByAcc("count", true)}},
		pipeline.Skip{N: 20},
		pipeline.Limit{N: 10},
	)
	stages, aliases := compileAggregate(p)
	require.Len(t, stages, 5)
	assert.Equal(map[string]string{"count": "a00", "habitats": "a01"}, aliases)
	assert.Equal("$match", stages[0][0].Key)

	group := stages[1][0].Value.(bson.D)
	assert.Equal("_first", group[1].Key)
	assert.Equal(bson.M{"$min": "$_id"}, group[1].Value)
	assert.Equal(bson.M{"$sum": 1}, group[2].Value)

	assert.Equal(bson.D{{Key: "$sort", Value: bson.D{
		{Key: "a00", Value: -1}, {Key: "_first", Value: 1},
	}}}, stages[2])
	assert.Equal(bson.D{{Key: "$skip", Value: int64(20)}}, stages[3])
	assert.Equal(bson.D{{Key: "$limit", Value: int64(10)}}, stages[4])

	stages, _ = compileAggregate(pipeline.Must(pipeline.GroupAll(pipeline.CountAs("n"))))
	require.Len(t, stages, 2)
	group = stages[0][0].Value.(bson.D)
	assert.Nil(group[0].Value)
}

func TestCompileFindSort(t *testing.T) {
	p := pipeline.Must(pipeline.Sort{Keys: []pipeline.SortKey{
		pipeline.ByField(occurrence.EventDate, true),
	}})
	assert.Equal(t, bson.D{
		{Key: "eventDate", Value: -1}, {Key: "_id", Value: 1},
	}, compileFindSort(p))
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)
	id := primitive.NewObjectID()
	o := decode(bson.M{
		"_id":                  id,
		"scientificName":       "Gadus morhua",
		"minimumDepthInMeters": 12.5,
		"individualCount":      int32(3),
		"decimalLatitude":      nil,
	})
	assert.Equal(id.Hex(), o.ID)
	assert.Equal("Gadus morhua", o.ScientificName)
	assert.Equal("12.5", o.MinimumDepth)
	assert.Equal("3", o.IndividualCount)
	assert.Equal("", o.DecimalLatitude)

	assert.Equal([]string{"a", "b"}, toSet(bson.A{"b", nil, "a", "", "b"}))
	assert.Empty(toSet(nil))
	assert.Nil(toFloat(nil))
	assert.InDelta(2.0, *toFloat(int64(2)), 1e-9)
}

func TestDocument(t *testing.T) {
	doc := Document(occurrence.Occurrence{ID: "1", ScientificName: "Gadus morhua"})
	assert.Len(t, doc, len(occurrence.Fields)-1)
	assert.Equal(t, "scientificName", doc[0].Key)
	assert.Equal(t, "Gadus morhua", doc[0].Value)
}
