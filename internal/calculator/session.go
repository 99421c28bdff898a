package calculator

import "github.com/xtding233/ordercalc/internal/pricing"

// Session holds the state of one interactive calculator: the fields being
// edited, the last result and the last validation error.
// A Session is not safe for concurrent use.
type Session struct {
	Form        Form
	Result      *pricing.OrderCalculation
	Err         error
	Calculating bool
}

// NewSession returns a session in its initial state.
func NewSession() *Session {
	s := &Session{}
	s.Reset()
	return s
}

// SetNumItems updates the item count and clears any error.
func (s *Session) SetNumItems(v string) {
	s.Form.NumItems = v
	s.Err = nil
}

// SetPricePerItem updates the unit price and clears any error.
func (s *Session) SetPricePerItem(v string) {
	s.Form.PricePerItem = v
	s.Err = nil
}

// SetRegionCode updates the region and clears any error.
func (s *Session) SetRegionCode(v string) {
	s.Form.RegionCode = v
	s.Err = nil
}

// Calculate prices the current form. On success the result replaces the
// previous one; on failure the previous result is kept and Err is set.
func (s *Session) Calculate() (pricing.OrderCalculation, error) {
	s.Calculating = true
	s.Err = nil

	res, err := Calculate(s.Form)
	s.Calculating = false
	if err != nil {
		s.Err = err
		return pricing.OrderCalculation{}, err
	}
	s.Result = &res
	return res, nil
}

// Reset returns the session to its initial state.
func (s *Session) Reset() {
	*s = Session{Form: Form{RegionCode: DefaultRegion}}
}
