package model

// Selection links a visitor to one catalog offering.  The triple
// (VisitorID, Category, Offering) is unique; ID only records insertion
// order.
type Selection struct {
	ID        int64  `db:"id" json:"-"`                  // selections.id
	VisitorID int64  `db:"visitor_id" json:"visitor_id"` // selections.visitor_id (not enforced)
	Category  string `db:"category" json:"category"`     // selections.category
	Offering  string `db:"offering" json:"offering"`     // selections.offering
}
