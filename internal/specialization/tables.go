package specialization

import (
	"fmt"
	"strings"
)

const (
	ppeSetupMinutes       = 10.0
	highTouchPointMinutes = 0.5

	bedroomMinutes  = 20.0
	bathroomMinutes = 25.0
	petHairFactor   = 1.15
	deepCleanFactor = 1.35

	stainMinutes         = 5.0
	furnitureMoveMinutes = 15.0

	interiorPaneMinutes   = 3.0
	exteriorPaneMinutes   = 5.0
	screenMinutes         = 1.0
	trackMinutes          = 1.5
	storySurchargeMinutes = 10.0
	highAccessMinutes     = 30.0

	strippingFactor = 1.4
	extraCoatFactor = 0.10

	wallWashingFactor = 1.15
	applianceMinutes  = 30.0
	cabinetMinutes    = 20.0

	dustControlMinutes      = 15.0
	stickerMinutesPerWindow = 2.0
)

// method × density
var disinfectingFactors = map[string]map[string]float64{
	"SPRAY_WIPE":    {"LOW": 1.10, "MEDIUM": 1.20, "HIGH": 1.35},
	"ELECTROSTATIC": {"LOW": 1.05, "MEDIUM": 1.10, "HIGH": 1.20},
	"FOGGING":       {"LOW": 1.02, "MEDIUM": 1.05, "HIGH": 1.10},
}

var maidConditionFactors = map[string]float64{
	"LIGHT":    0.90,
	"STANDARD": 1.00,
	"HEAVY":    1.30,
}

// method × carpet age
var carpetFactors = map[string]map[string]float64{
	"HOT_WATER_EXTRACTION": {"NEW": 1.20, "MODERATE": 1.35, "OLD": 1.55},
	"ENCAPSULATION":        {"NEW": 1.05, "MODERATE": 1.15, "OLD": 1.30},
	"BONNET":               {"NEW": 1.00, "MODERATE": 1.10, "OLD": 1.25},
	"DRY_COMPOUND":         {"NEW": 1.10, "MODERATE": 1.20, "OLD": 1.40},
}

// service type × wax condition
var tileFactors = map[string]map[string]float64{
	"SCRUB_RECOAT": {"GOOD": 1.10, "FAIR": 1.25, "POOR": 1.45},
	"STRIP_WAX":    {"GOOD": 1.50, "FAIR": 1.70, "POOR": 2.00},
	"BURNISH":      {"GOOD": 1.00, "FAIR": 1.10, "POOR": 1.20},
	"GROUT_CLEAN":  {"GOOD": 1.30, "FAIR": 1.50, "POOR": 1.80},
}

// move type × condition
var moveFactors = map[string]map[string]float64{
	"MOVE_IN":  {"LIGHT": 1.10, "STANDARD": 1.25, "HEAVY": 1.50},
	"MOVE_OUT": {"LIGHT": 1.20, "STANDARD": 1.40, "HEAVY": 1.75},
}

// phase × debris level
var postConstructionFactors = map[string]map[string]float64{
	"ROUGH":    {"LIGHT": 1.40, "MODERATE": 1.70, "HEAVY": 2.10},
	"FINAL":    {"LIGHT": 1.30, "MODERATE": 1.50, "HEAVY": 1.80},
	"TOUCH_UP": {"LIGHT": 1.05, "MODERATE": 1.15, "HEAVY": 1.30},
}

// codes resolves table factors and remembers every code it did not know.
type codes struct {
	unmatched []string
}

// lookup returns 1.0 for any key pair the table does not know.
func (c *codes) lookup(table map[string]map[string]float64, rowField, row, colField, col string) float64 {
	inner, ok := table[normalize(row)]
	if !ok {
		c.miss(rowField, row)
		return 1
	}
	return c.single(inner, colField, col)
}

func (c *codes) single(table map[string]float64, field, key string) float64 {
	if f, ok := table[normalize(key)]; ok {
		return f
	}
	c.miss(field, key)
	return 1
}

// An empty code means the field was left unset, not mistyped.
func (c *codes) miss(field, key string) {
	if normalize(key) == "" {
		return
	}
	c.unmatched = append(c.unmatched, fmt.Sprintf("%s %q", field, key))
}

func normalize(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}
