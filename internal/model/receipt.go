package model

// Receipt is the composed view of one visitor's reservation.  Payment is nil
// when the visitor has not paid yet; that is a valid state, not an error.
type Receipt struct {
	Visitor    Visitor     `json:"visitor"`
	Selections []Selection `json:"selections"`
	Payment    *Payment    `json:"payment,omitempty"`
}

// Paid reports whether a payment is attached.
func (r Receipt) Paid() bool { return r.Payment != nil }
