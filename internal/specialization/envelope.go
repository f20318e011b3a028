package specialization

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Envelope carries a Specialization through JSON and YAML using a
// "bid_type" discriminator next to the variant's own fields.
type Envelope struct {
	Value Specialization
}

// Wrap returns an envelope for s, or nil when s is nil.
func Wrap(s Specialization) *Envelope {
	if s == nil {
		return nil
	}
	return &Envelope{Value: s}
}

// Specialization returns the wrapped value; safe on a nil envelope.
func (e *Envelope) Specialization() Specialization {
	if e == nil {
		return nil
	}
	return e.Value
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Value == nil {
		return []byte("null"), nil
	}
	raw, err := json.Marshal(e.Value)
	if err != nil {
		return nil, fmt.Errorf("marshal %s specialization: %w", e.Value.BidType(), err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("flatten %s specialization: %w", e.Value.BidType(), err)
	}
	fields["bid_type"] = e.Value.BidType()
	return json.Marshal(fields)
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	var head struct {
		BidType BidType `json:"bid_type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("decode specialization bid_type: %w", err)
	}
	v, err := decode(head.BidType, func(out any) error { return json.Unmarshal(data, out) })
	if err != nil {
		return err
	}
	e.Value = v
	return nil
}

func (e *Envelope) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		BidType BidType `yaml:"bid_type"`
	}
	if err := node.Decode(&head); err != nil {
		return fmt.Errorf("decode specialization bid_type: %w", err)
	}
	v, err := decode(head.BidType, node.Decode)
	if err != nil {
		return err
	}
	e.Value = v
	return nil
}

func decode(t BidType, unmarshal func(any) error) (Specialization, error) {
	switch BidType(normalize(string(t))) {
	case "":
		return nil, nil
	case BidTypeDisinfecting:
		return into[Disinfecting](unmarshal)
	case BidTypeMaid:
		return into[Maid](unmarshal)
	case BidTypeCarpetCare:
		return into[CarpetCare](unmarshal)
	case BidTypeWindowCleaning:
		return into[WindowCleaning](unmarshal)
	case BidTypeTileCare:
		return into[TileCare](unmarshal)
	case BidTypeMoveInOut:
		return into[MoveInOut](unmarshal)
	case BidTypePostConstruction:
		return into[PostConstruction](unmarshal)
	default:
		return nil, fmt.Errorf("unknown specialization bid_type %q", t)
	}
}

func into[T Specialization](unmarshal func(any) error) (Specialization, error) {
	var v T
	if err := unmarshal(&v); err != nil {
		return nil, fmt.Errorf("decode %s specialization: %w", v.BidType(), err)
	}
	return v, nil
}
