package scope

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// ExpressParams is the minimal description an express load works from.
type ExpressParams struct {
	BuildingType string  `json:"building_type" yaml:"building_type"`
	TotalSqft    float64 `json:"total_sqft" yaml:"total_sqft"`
	Occupancy    *int    `json:"occupancy,omitempty" yaml:"occupancy,omitempty"`
}

// GeneratedArea is an area synthesized from a facility template together
// with the share of the building it was given.
type GeneratedArea struct {
	Area
	SharePct float64 `json:"share_pct"`
}

type templateArea struct {
	name      string
	areaType  string
	floorType string
	pct       float64
}

// Shares per building type sum to 100.
var facilityTemplates = map[string][]templateArea{
	"OFFICE": {
		{"Open Office", "OFFICE_SPACE", "CARPET", 45},
		{"Private Offices", "OFFICE_SPACE", "CARPET", 15},
		{"Conference Rooms", "CONFERENCE", "CARPET", 8},
		{"Restrooms", "RESTROOM", "CERAMIC_TILE", 6},
		{"Breakroom", "BREAKROOM", "VCT", 5},
		{"Lobby", "LOBBY", "HARD_SURFACE", 6},
		{"Corridors", "CORRIDOR", "CARPET", 15},
	},
	"MEDICAL": {
		{"Exam Rooms", "EXAM_ROOM", "VCT", 35},
		{"Waiting Area", "LOBBY", "VCT", 15},
		{"Offices", "OFFICE_SPACE", "CARPET", 15},
		{"Restrooms", "RESTROOM", "CERAMIC_TILE", 10},
		{"Breakroom", "BREAKROOM", "VCT", 5},
		{"Corridors", "CORRIDOR", "VCT", 20},
	},
	"SCHOOL": {
		{"Classrooms", "CLASSROOM", "VCT", 55},
		{"Restrooms", "RESTROOM", "CERAMIC_TILE", 8},
		{"Cafeteria", "CAFETERIA", "VCT", 12},
		{"Offices", "OFFICE_SPACE", "CARPET", 7},
		{"Corridors", "CORRIDOR", "VCT", 18},
	},
	"RETAIL": {
		{"Sales Floor", "SALES_FLOOR", "VCT", 70},
		{"Stockroom", "STORAGE", "SEALED_CONCRETE", 15},
		{"Restrooms", "RESTROOM", "CERAMIC_TILE", 5},
		{"Breakroom", "BREAKROOM", "VCT", 4},
		{"Office", "OFFICE_SPACE", "CARPET", 6},
	},
	"WAREHOUSE": {
		{"Warehouse Floor", "WAREHOUSE", "SEALED_CONCRETE", 80},
		{"Offices", "OFFICE_SPACE", "CARPET", 10},
		{"Restrooms", "RESTROOM", "CERAMIC_TILE", 4},
		{"Breakroom", "BREAKROOM", "VCT", 6},
	},
	"RESTAURANT": {
		{"Dining Room", "DINING", "HARD_SURFACE", 50},
		{"Kitchen", "KITCHEN", "QUARRY_TILE", 30},
		{"Restrooms", "RESTROOM", "CERAMIC_TILE", 8},
		{"Entry", "LOBBY", "HARD_SURFACE", 5},
		{"Storage", "STORAGE", "SEALED_CONCRETE", 7},
	},
	"FITNESS": {
		{"Workout Floor", "FITNESS_FLOOR", "RUBBER", 60},
		{"Locker Rooms", "LOCKER_ROOM", "CERAMIC_TILE", 15},
		{"Restrooms", "RESTROOM", "CERAMIC_TILE", 5},
		{"Lobby", "LOBBY", "HARD_SURFACE", 10},
		{"Offices", "OFFICE_SPACE", "CARPET", 10},
	},
}

// Occupants served per fixture.
const (
	occupantsPerToilet    = 25
	occupantsPerUrinal    = 50
	occupantsPerSink      = 40
	occupantsPerAppliance = 50
)

// BuildingTypes lists the building types that have an express template.
func BuildingTypes() []string {
	return []string{"OFFICE", "MEDICAL", "SCHOOL", "RETAIL", "WAREHOUSE", "RESTAURANT", "FITNESS"}
}

// ExpressLoad synthesizes a canonical area list from a building type and
// total square footage. Areas are STANDARD difficulty, quantity one, and
// carry no tasks.
func ExpressLoad(params ExpressParams) ([]GeneratedArea, error) {
	buildingType := strings.ToUpper(strings.TrimSpace(params.BuildingType))
	tmpl, ok := facilityTemplates[buildingType]
	if !ok {
		return nil, NewCalculationError(ErrCodeUnknownBuildingType, "building_type",
			"no express template for building type %q", params.BuildingType)
	}
	if params.TotalSqft <= 0 {
		return nil, Insufficient("total square footage is required for an express load")
	}

	areas := make([]GeneratedArea, len(tmpl))
	var assigned float64
	largest := 0
	for i, t := range tmpl {
		sqft := math.Round(params.TotalSqft * t.pct / 100)
		assigned += sqft
		if t.pct > tmpl[largest].pct {
			largest = i
		}
		areas[i] = GeneratedArea{
			Area: Area{
				ID:            expressAreaID(buildingType, t.name),
				Name:          t.name,
				AreaType:      t.areaType,
				FloorType:     t.floorType,
				BuildingType:  buildingType,
				Difficulty:    DifficultyStandard,
				SquareFootage: sqft,
				Quantity:      1,
				Fixtures:      inferFixtures(t.areaType, params.Occupancy),
			},
			SharePct: t.pct,
		}
	}
	// Rounding remainder goes to the largest area so the parts add up.
	areas[largest].SquareFootage += params.TotalSqft - assigned

	return areas, nil
}

// Areas strips the template share from generated areas.
func Areas(generated []GeneratedArea) []Area {
	out := make([]Area, len(generated))
	for i, g := range generated {
		out[i] = g.Area
	}
	return out
}

func inferFixtures(areaType string, occupancy *int) map[string]int {
	if occupancy == nil || *occupancy <= 0 {
		return nil
	}
	n := *occupancy
	switch areaType {
	case "RESTROOM", "LOCKER_ROOM":
		return map[string]int{
			"toilets": ceilDiv(n, occupantsPerToilet),
			"urinals": ceilDiv(n, occupantsPerUrinal),
			"sinks":   ceilDiv(n, occupantsPerSink),
		}
	case "BREAKROOM":
		return map[string]int{
			"sinks":      1,
			"appliances": ceilDiv(n, occupantsPerAppliance),
		}
	default:
		return nil
	}
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

var expressNamespace = uuid.MustParse("6f1c51e2-41a4-4c1f-9a51-2f0d8c3b7e10")

func expressAreaID(buildingType, name string) string {
	return uuid.NewSHA1(expressNamespace, []byte(buildingType+"/"+name)).String()
}
