package date

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns the range between from and to, boundaries included.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// LastYear returns the one-year window ending on the given day.
func LastYear(on Date) Range { return Range{From: on.AddYears(-1), To: on} }

// Contains returns true when the date is included in the range (boundaries included).
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// Clip bounds the range so that it never extends past max.
func (r Range) Clip(max Date) Range {
	if r.To.After(max) {
		r.To = max
	}
	if r.From.After(max) {
		r.From = max
	}
	return r
}
