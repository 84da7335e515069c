package iotesting

import "github.com/gnames/gnmarine/pkg/occurrence"

// Occurrences returns a small dataset that exercises the edge cases of
// aggregation:
//   - three Thunnus albacares records, one without depth;
//   - records without scientific name, with non-numeric depth, with
//     (0,0) coordinates, without coordinates and with unparseable dates;
//   - coordinates that collide after rounding to 4 decimals.
func Occurrences() []occurrence.Occurrence {
	return []occurrence.Occurrence{
		{
			ID:               "1",
			ScientificName:   "Thunnus albacares",
			Habitat:          "Pelagic",
			Locality:         "Gulf of Mannar",
			WaterBody:        "Indian Ocean",
			Country:          "India",
			MinimumDepth:     "10",
			MaximumDepth:     "20",
			DecimalLatitude:  "9.1234",
			DecimalLongitude: "79.5678",
			EventDate:        "2021-03-04",
			IndividualCount:  "2",
			IdentifiedBy:     "R. Kumar",
			LifeStage:        "adult",
			Sex:              "female",
			SamplingProtocol: "longline",
		},
		{
			ID:               "2",
			ScientificName:   "Thunnus albacares",
			Habitat:          "Pelagic",
			Locality:         "Lakshadweep",
			WaterBody:        "Arabian Sea",
			Country:          "India",
			DecimalLatitude:  "10.5667",
			DecimalLongitude: "72.6417",
			EventDate:        "2021-05-01T06:30:00Z",
			IdentifiedBy:     "S. Nair",
			LifeStage:        "juvenile",
			SamplingProtocol: "purse seine",
		},
		{
			ID:               "3",
			ScientificName:   "Thunnus albacares",
			Habitat:          "Open ocean",
			Locality:         "Gulf of Mannar",
			WaterBody:        "Indian Ocean",
			Country:          "India",
			MinimumDepth:     "30",
			MaximumDepth:     "40",
			DecimalLatitude:  "9.12341",
			DecimalLongitude: "79.56779",
			EventDate:        "2020-12-31",
			IndividualCount:  "3",
			IdentifiedBy:     "R. Kumar",
			LifeStage:        "adult",
			Sex:              "male",
			SamplingProtocol: "longline",
		},
		{
			ID:               "4",
			ScientificName:   "Sardinella longiceps",
			Habitat:          "Coastal",
			Locality:         "Kochi",
			WaterBody:        "Arabian Sea",
			Country:          "India",
			MinimumDepth:     "5",
			MaximumDepth:     "15",
			DecimalLatitude:  "9.9312",
			DecimalLongitude: "76.2673",
			EventDate:        "2022-01-10",
			IndividualCount:  "40",
			IdentifiedBy:     "CMFRI",
			LifeStage:        "adult",
			SamplingProtocol: "gill net",
		},
		{
			ID:               "5",
			ScientificName:   "Sardinella longiceps",
			Habitat:          "Coastal",
			Locality:         "Kochi",
			WaterBody:        "Arabian Sea",
			Country:          "India",
			MinimumDepth:     "5",
			MaximumDepth:     "25",
			DecimalLatitude:  "9.9312",
			DecimalLongitude: "76.2673",
			EventDate:        "2022-01-10T08:00:00Z",
			IndividualCount:  "many",
			IdentifiedBy:     "CMFRI",
			SamplingProtocol: "gill net",
		},
		{
			ID:               "6",
			Habitat:          "Coral reef",
			Locality:         "Kochi",
			WaterBody:        "Arabian Sea",
			Country:          "India",
			DecimalLatitude:  "9.93121",
			DecimalLongitude: "76.26734",
			EventDate:        "2022-01-11",
			IndividualCount:  "1",
		},
		{
			ID:               "7",
			ScientificName:   "Gadus morhua",
			Habitat:          "Demersal reef",
			Locality:         "Lofoten",
			WaterBody:        "Norwegian Sea",
			Country:          "Norway",
			MinimumDepth:     "abc",
			MaximumDepth:     "200",
			DecimalLatitude:  "0",
			DecimalLongitude: "0",
			EventDate:        "spring 2019",
			IndividualCount:  "1",
			IdentifiedBy:     "IMR",
		},
		{
			ID:               "8",
			ScientificName:   "Rastrelliger kanagurta",
			Habitat:          "Coastal",
			Locality:         "Kochi",
			WaterBody:        "Arabian Sea",
			Country:          "India",
			MinimumDepth:     "20",
			MaximumDepth:     "50",
			EventDate:        "2019-07-15",
			IndividualCount:  "12",
			SamplingProtocol: "gill net",
		},
		{
			ID:               "9",
			ScientificName:   "Epinephelus coioides",
			Habitat:          "Coral reef",
			Locality:         "Lakshadweep",
			WaterBody:        "Arabian Sea",
			Country:          "India",
			MinimumDepth:     "8",
			MaximumDepth:     "30",
			DecimalLatitude:  "10.5667",
			DecimalLongitude: "72.6417",
			EventDate:        "2021-05-01",
			IndividualCount:  "1",
		},
	}
}

// Thunnus returns records of the depth scenario: three records of one
// species, depths [10,20], [absent,absent] and [30,40].
func Thunnus() []occurrence.Occurrence {
	return Occurrences()[:3]
}
