package model

// Visitor represents a registered tourist as stored in the `visitors`
// table.  Dates are kept as the text the visitor typed (YYYY-MM-DD by
// convention) and are never validated or reordered.
//
// Fields:
//
//	ID            – system-assigned identity, monotonic until a reset.
//	Name          – required display name.
//	Age           – positive integer.
//	Sex           – free text.
//	Nationality   – free text.
//	ContactNumber – phone number kept as text to preserve leading zeros.
//	EntryDate     – arrival date text.
//	ExitDate      – departure date text.
type Visitor struct {
	ID            int64  `db:"id" json:"id"`                         // visitors.id
	Name          string `db:"name" json:"name"`                     // visitors.name
	Age           int    `db:"age" json:"age"`                       // visitors.age
	Sex           string `db:"sex" json:"sex"`                       // visitors.sex
	Nationality   string `db:"nationality" json:"nationality"`       // visitors.nationality
	ContactNumber string `db:"contact_number" json:"contact_number"` // visitors.contact_number
	EntryDate     string `db:"entry_date" json:"entry_date"`         // visitors.entry_date
	ExitDate      string `db:"exit_date" json:"exit_date"`           // visitors.exit_date
}

// VisitorInput carries profile fields exactly as entered at the console.
// Age is text so that a non-numeric answer can be rejected on register and
// ignored on update.  On update an empty field means "keep current".
type VisitorInput struct {
	Name          string
	Age           string
	Sex           string
	Nationality   string
	ContactNumber string
	EntryDate     string
	ExitDate      string
}

// VisitorSummary is one row of the admin directory: a visitor and every
// selection they currently hold.
type VisitorSummary struct {
	Visitor
	Selections []Selection `json:"selections"`
}
