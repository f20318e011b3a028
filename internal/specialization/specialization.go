// Package specialization translates bid-type specific scope inputs into a
// workload adjustment: a scope-wide minutes multiplier and/or extra minutes
// added to every scheduled visit.
package specialization

// BidType identifies a non-default service line.
type BidType string

const (
	BidTypeDisinfecting     BidType = "DISINFECTING"
	BidTypeMaid             BidType = "MAID"
	BidTypeCarpetCare       BidType = "CARPET_CARE"
	BidTypeWindowCleaning   BidType = "WINDOW_CLEANING"
	BidTypeTileCare         BidType = "TILE_CARE"
	BidTypeMoveInOut        BidType = "MOVE_IN_OUT"
	BidTypePostConstruction BidType = "POST_CONSTRUCTION"
)

// Adjustment is the common output of every variant.
type Adjustment struct {
	Multiplier           float64 `json:"multiplier"`
	ExtraMinutesPerVisit float64 `json:"extra_minutes_per_visit"`
	// Unmatched lists codes no factor table knows, e.g. `method "UV"`.
	// Each one contributed a factor of 1.
	Unmatched []string `json:"unmatched,omitempty"`
}

// Neutral leaves the workload untouched.
var Neutral = Adjustment{Multiplier: 1}

// Specialization is implemented only by the variants in this package.
type Specialization interface {
	BidType() BidType
	sealed()
}

// Disinfecting covers electrostatic/spray/fogging disinfection work.
type Disinfecting struct {
	Method          string `json:"method" yaml:"method"`
	Density         string `json:"density" yaml:"density"`
	PPEIncluded     bool   `json:"ppe_included" yaml:"ppe_included"`
	HighTouchPoints int    `json:"high_touch_points" yaml:"high_touch_points"`
}

// Maid covers residential-style room cleaning.
type Maid struct {
	Bedrooms  int    `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms int    `json:"bathrooms" yaml:"bathrooms"`
	Condition string `json:"condition" yaml:"condition"`
	PetHair   bool   `json:"pet_hair" yaml:"pet_hair"`
	DeepClean bool   `json:"deep_clean" yaml:"deep_clean"`
}

// CarpetCare covers extraction and low-moisture carpet cleaning.
type CarpetCare struct {
	Method        string `json:"method" yaml:"method"`
	CarpetAge     string `json:"carpet_age" yaml:"carpet_age"`
	SpotTreatment bool   `json:"spot_treatment" yaml:"spot_treatment"`
	StainCount    int    `json:"stain_count" yaml:"stain_count"`
	MoveFurniture bool   `json:"move_furniture" yaml:"move_furniture"`
}

// WindowCleaning covers interior and exterior pane work.
type WindowCleaning struct {
	InteriorPanes   int  `json:"interior_panes" yaml:"interior_panes"`
	ExteriorPanes   int  `json:"exterior_panes" yaml:"exterior_panes"`
	Stories         int  `json:"stories" yaml:"stories"`
	HighAccess      bool `json:"high_access" yaml:"high_access"`
	ScreensIncluded bool `json:"screens_included" yaml:"screens_included"`
	TracksIncluded  bool `json:"tracks_included" yaml:"tracks_included"`
}

// TileCare covers hard-floor finish work.
type TileCare struct {
	ServiceType    string `json:"service_type" yaml:"service_type"`
	WaxCondition   string `json:"wax_condition" yaml:"wax_condition"`
	NeedsStripping bool   `json:"needs_stripping" yaml:"needs_stripping"`
	Coats          int    `json:"coats" yaml:"coats"`
}

// MoveInOut covers vacancy turnover cleans.
type MoveInOut struct {
	MoveType         string `json:"move_type" yaml:"move_type"`
	Condition        string `json:"condition" yaml:"condition"`
	Appliances       bool   `json:"appliances" yaml:"appliances"`
	CabinetsInterior bool   `json:"cabinets_interior" yaml:"cabinets_interior"`
	WallWashing      bool   `json:"wall_washing" yaml:"wall_washing"`
}

// PostConstruction covers rough, final and touch-up construction cleans.
type PostConstruction struct {
	Phase          string `json:"phase" yaml:"phase"`
	DebrisLevel    string `json:"debris_level" yaml:"debris_level"`
	DustControl    bool   `json:"dust_control" yaml:"dust_control"`
	StickerRemoval bool   `json:"sticker_removal" yaml:"sticker_removal"`
	WindowCount    int    `json:"window_count" yaml:"window_count"`
}

func (Disinfecting) BidType() BidType     { return BidTypeDisinfecting }
func (Maid) BidType() BidType             { return BidTypeMaid }
func (CarpetCare) BidType() BidType       { return BidTypeCarpetCare }
func (WindowCleaning) BidType() BidType   { return BidTypeWindowCleaning }
func (TileCare) BidType() BidType         { return BidTypeTileCare }
func (MoveInOut) BidType() BidType        { return BidTypeMoveInOut }
func (PostConstruction) BidType() BidType { return BidTypePostConstruction }

func (Disinfecting) sealed()     {}
func (Maid) sealed()             {}
func (CarpetCare) sealed()       {}
func (WindowCleaning) sealed()   {}
func (TileCare) sealed()         {}
func (MoveInOut) sealed()        {}
func (PostConstruction) sealed() {}

// Adjust dispatches to the rule set of the given variant. A nil
// specialization yields Neutral.
func Adjust(s Specialization) Adjustment {
	switch v := s.(type) {
	case nil:
		return Neutral
	case Disinfecting:
		return adjustDisinfecting(v)
	case Maid:
		return adjustMaid(v)
	case CarpetCare:
		return adjustCarpet(v)
	case WindowCleaning:
		return adjustWindows(v)
	case TileCare:
		return adjustTile(v)
	case MoveInOut:
		return adjustMoveInOut(v)
	case PostConstruction:
		return adjustPostConstruction(v)
	default:
		return Neutral
	}
}

func adjustDisinfecting(d Disinfecting) Adjustment {
	var c codes
	adj := Adjustment{Multiplier: c.lookup(disinfectingFactors, "method", d.Method, "density", d.Density)}
	if d.PPEIncluded {
		adj.ExtraMinutesPerVisit += ppeSetupMinutes
	}
	adj.ExtraMinutesPerVisit += float64(nonNegative(d.HighTouchPoints)) * highTouchPointMinutes
	adj.Unmatched = c.unmatched
	return adj
}

func adjustMaid(m Maid) Adjustment {
	var c codes
	multiplier := c.single(maidConditionFactors, "condition", m.Condition)
	if m.PetHair {
		multiplier *= petHairFactor
	}
	if m.DeepClean {
		multiplier *= deepCleanFactor
	}
	return Adjustment{
		Multiplier: multiplier,
		ExtraMinutesPerVisit: float64(nonNegative(m.Bedrooms))*bedroomMinutes +
			float64(nonNegative(m.Bathrooms))*bathroomMinutes,
		Unmatched: c.unmatched,
	}
}

func adjustCarpet(c CarpetCare) Adjustment {
	var k codes
	adj := Adjustment{Multiplier: k.lookup(carpetFactors, "method", c.Method, "carpet age", c.CarpetAge)}
	if c.SpotTreatment {
		adj.ExtraMinutesPerVisit += float64(nonNegative(c.StainCount)) * stainMinutes
	}
	if c.MoveFurniture {
		adj.ExtraMinutesPerVisit += furnitureMoveMinutes
	}
	adj.Unmatched = k.unmatched
	return adj
}

func adjustWindows(w WindowCleaning) Adjustment {
	panes := nonNegative(w.InteriorPanes) + nonNegative(w.ExteriorPanes)
	extra := float64(nonNegative(w.InteriorPanes))*interiorPaneMinutes +
		float64(nonNegative(w.ExteriorPanes))*exteriorPaneMinutes
	if w.ScreensIncluded {
		extra += float64(panes) * screenMinutes
	}
	if w.TracksIncluded {
		extra += float64(panes) * trackMinutes
	}
	if w.Stories > 1 {
		extra += float64(w.Stories-1) * storySurchargeMinutes
	}
	if w.HighAccess {
		extra += highAccessMinutes
	}
	return Adjustment{Multiplier: 1, ExtraMinutesPerVisit: extra}
}

func adjustTile(t TileCare) Adjustment {
	var c codes
	multiplier := c.lookup(tileFactors, "service type", t.ServiceType, "wax condition", t.WaxCondition)
	if t.NeedsStripping {
		multiplier *= strippingFactor
	}
	if t.Coats > 1 {
		multiplier *= 1 + float64(t.Coats-1)*extraCoatFactor
	}
	return Adjustment{Multiplier: multiplier, Unmatched: c.unmatched}
}

func adjustMoveInOut(m MoveInOut) Adjustment {
	var c codes
	adj := Adjustment{Multiplier: c.lookup(moveFactors, "move type", m.MoveType, "condition", m.Condition)}
	if m.WallWashing {
		adj.Multiplier *= wallWashingFactor
	}
	if m.Appliances {
		adj.ExtraMinutesPerVisit += applianceMinutes
	}
	if m.CabinetsInterior {
		adj.ExtraMinutesPerVisit += cabinetMinutes
	}
	adj.Unmatched = c.unmatched
	return adj
}

func adjustPostConstruction(p PostConstruction) Adjustment {
	var c codes
	adj := Adjustment{Multiplier: c.lookup(postConstructionFactors, "phase", p.Phase, "debris level", p.DebrisLevel)}
	if p.DustControl {
		adj.ExtraMinutesPerVisit += dustControlMinutes
	}
	if p.StickerRemoval {
		adj.ExtraMinutesPerVisit += float64(nonNegative(p.WindowCount)) * stickerMinutesPerWindow
	}
	adj.Unmatched = c.unmatched
	return adj
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
