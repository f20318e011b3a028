package specialization

import validation "github.com/go-ozzo/ozzo-validation/v4"

// Validate checks the wrapped variant. Unknown codes are not errors here;
// Adjust reports them as unmatched.
func (e Envelope) Validate() error {
	if v, ok := e.Value.(validation.Validatable); ok {
		return v.Validate()
	}
	return nil
}

func (d Disinfecting) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.HighTouchPoints, validation.Min(0)),
	)
}

func (m Maid) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Bedrooms, validation.Min(0)),
		validation.Field(&m.Bathrooms, validation.Min(0)),
	)
}

func (c CarpetCare) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.StainCount, validation.Min(0)),
	)
}

func (w WindowCleaning) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.InteriorPanes, validation.Min(0)),
		validation.Field(&w.ExteriorPanes, validation.Min(0)),
		validation.Field(&w.Stories, validation.Min(0)),
	)
}

func (t TileCare) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Coats, validation.Min(0)),
	)
}

func (p PostConstruction) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.WindowCount, validation.Min(0)),
	)
}
