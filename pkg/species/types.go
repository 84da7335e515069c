package species

import "github.com/gnames/gnmarine/pkg/geo"

// Trend is a coarse stock trend derived from the number of occurrences.
type Trend string

const (
	Increasing Trend = "increasing"
	Decreasing Trend = "decreasing"
	Stable     Trend = "stable"
)

// Filter selects records by case-insensitive substrings. Empty values
// are ignored.
type Filter struct {
	Habitat        string
	Locality       string
	ScientificName string
}

// Card summarises one species for a paginated list.
type Card struct {
	ID              string   `json:"id"`
	UUID            string   `json:"uuid"`
	Name            string   `json:"name"`
	ScientificName  string   `json:"scientificName"`
	Description     string   `json:"description"`
	Habitat         string   `json:"habitat"`
	Population      int      `json:"population"`
	StockTrend      Trend    `json:"stockTrend"`
	ImageID         string   `json:"imageId"`
	OccurrenceCount int      `json:"occurrenceCount"`
	Locations       []string `json:"locations"`
	DepthRange      string   `json:"depthRange"`
	LastSeen        string   `json:"lastSeen"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
}

// Pagination describes the window of a list.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// List is one page of species cards.
type List struct {
	Species    []Card     `json:"species"`
	Pagination Pagination `json:"pagination"`
}

// DepthRange of a species in meters.
type DepthRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// DateRange gives the earliest and latest event dates.
type DateRange struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// Coordinate is a valid location of one occurrence.
type Coordinate struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Locality string  `json:"locality"`
	Date     string  `json:"date"`
}

// RecentOccurrence is a short view of a raw record.
type RecentOccurrence struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Locality        string `json:"locality"`
	Habitat         string `json:"habitat"`
	Depth           string `json:"depth"`
	IndividualCount string `json:"individualCount"`
	IdentifiedBy    string `json:"identifiedBy"`
}

// Detail is the full aggregation of one species.
type Detail struct {
	ID                          string             `json:"id"`
	UUID                        string             `json:"uuid"`
	ScientificName              string             `json:"scientificName"`
	CanonicalName               string             `json:"canonicalName,omitempty"`
	Name                        string             `json:"name"`
	Description                 string             `json:"description"`
	Habitat                     string             `json:"habitat"`
	Population                  int                `json:"population"`
	StockTrend                  Trend              `json:"stockTrend"`
	OccurrenceCount             int                `json:"occurrenceCount"`
	LastSeen                    string             `json:"lastSeen"`
	Latitude                    *float64           `json:"latitude,omitempty"`
	Longitude                   *float64           `json:"longitude,omitempty"`
	TotalIndividuals            int                `json:"totalIndividuals"`
	AvgIndividualsPerOccurrence float64            `json:"avgIndividualsPerOccurrence"`
	Habitats                    []string           `json:"habitats"`
	Localities                  []string           `json:"localities"`
	WaterBodies                 []string           `json:"waterBodies"`
	Countries                   []string           `json:"countries"`
	DepthRange                  DepthRange         `json:"depthRange"`
	DateRange                   DateRange          `json:"dateRange"`
	Coordinates                 []Coordinate       `json:"coordinates"`
	IdentifiedBy                []string           `json:"identifiedBy"`
	SamplingProtocols           []string           `json:"samplingProtocols"`
	LifeStages                  []string           `json:"lifeStages"`
	Sexes                       []string           `json:"sexes"`
	RecentOccurrences           []RecentOccurrence `json:"recentOccurrences"`
}

// SearchResult is one species matching a free-text query.
type SearchResult struct {
	ID              string   `json:"id"`
	ScientificName  string   `json:"scientificName"`
	Name            string   `json:"name"`
	OccurrenceCount int      `json:"occurrenceCount"`
	Localities      []string `json:"localities"`
	Habitats        []string `json:"habitats"`
}

// Search holds results of a free-text query.
type Search struct {
	Results []SearchResult `json:"results"`
}

// Overview gives totals over the whole record store.
type Overview struct {
	TotalOccurrences int `json:"totalOccurrences"`
	UniqueSpecies    int `json:"uniqueSpecies"`
	TotalLocations   int `json:"totalLocations"`
	TotalHabitats    int `json:"totalHabitats"`
}

// TopSpecies is a species with many occurrences.
type TopSpecies struct {
	ScientificName  string `json:"scientificName"`
	Name            string `json:"name"`
	OccurrenceCount int    `json:"occurrenceCount"`
	LocationCount   int    `json:"locationCount"`
}

// HabitatCount is the number of occurrences in a habitat.
type HabitatCount struct {
	Habitat string `json:"habitat"`
	Count   int    `json:"count"`
}

// LocalityCount is the number of occurrences at a locality.
type LocalityCount struct {
	Locality string `json:"locality"`
	Count    int    `json:"count"`
}

// DepthStatistics covers records with both depth values numeric.
type DepthStatistics struct {
	AverageMinDepth  float64 `json:"averageMinDepth"`
	AverageMaxDepth  float64 `json:"averageMaxDepth"`
	MinRecordedDepth float64 `json:"minRecordedDepth"`
	MaxRecordedDepth float64 `json:"maxRecordedDepth"`
}

// Activity is the number of occurrences on a calendar day.
type Activity struct {
	Date        string `json:"date"`
	Occurrences int    `json:"occurrences"`
}

// Stats are global statistics of the record store.
type Stats struct {
	Overview             Overview         `json:"overview"`
	TopSpecies           []TopSpecies     `json:"topSpecies"`
	HabitatDistribution  []HabitatCount   `json:"habitatDistribution"`
	LocalityDistribution []LocalityCount  `json:"localityDistribution"`
	DepthStatistics      *DepthStatistics `json:"depthStatistics"`
	RecentActivity       []Activity       `json:"recentActivity"`
}

// CoordinatesQuery echoes the filters of a coordinates request. Unset
// filters are null.
type CoordinatesQuery struct {
	ScientificName *string `json:"scientificName"`
	Habitat        *string `json:"habitat"`
	Locality       *string `json:"locality"`
	Limit          int     `json:"limit"`
}

// Coordinates are map points of matching records.
type Coordinates struct {
	Coordinates []geo.Point      `json:"coordinates"`
	Total       int              `json:"total"`
	Query       CoordinatesQuery `json:"query"`
}
