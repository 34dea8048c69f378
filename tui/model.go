package tui

import "github.com/bassamadnan/vimail/mail"

// Record is one list item: two short header fields, a title and a body.
type Record struct {
	LeftHeader  string
	RightHeader string
	Header      string
	Content     string
}

// RecordFromMessage maps a mail message onto the four display fields.
func RecordFromMessage(m mail.Message) Record {
	return Record{
		LeftHeader:  m.From,
		RightHeader: m.To,
		Header:      m.Subject,
		Content:     m.Body,
	}
}

// Records is an append-only, ordered record collection. Insertion order is
// display order and the index is the only identity.
type Records struct {
	items []Record
}

// NewRecords builds a collection from messages, keeping their order.
func NewRecords(msgs []mail.Message) *Records {
	r := &Records{items: make([]Record, 0, len(msgs))}
	for _, m := range msgs {
		r.Append(RecordFromMessage(m))
	}
	return r
}

// Append adds records to the end of the collection.
func (r *Records) Append(recs ...Record) {
	r.items = append(r.items, recs...)
}

// Len returns the number of records.
func (r *Records) Len() int {
	if r == nil {
		return 0
	}
	return len(r.items)
}

// At returns a reference to record i, or nil when i is out of range.
func (r *Records) At(i int) *Record {
	if i < 0 || i >= r.Len() {
		return nil
	}
	return &r.items[i]
}

// cursor is a saturating selection index over the first shown rows.
// With shown == 0 there is nothing to select and moves are no-ops.
type cursor struct {
	pos   int
	shown int
}

func newCursor(total, visible int) cursor {
	return cursor{shown: shownCount(total, visible)}
}

func (c *cursor) up() {
	if c.pos > 0 {
		c.pos--
	}
}

func (c *cursor) down() {
	if c.pos < c.shown-1 {
		c.pos++
	}
}

func (c cursor) empty() bool { return c.shown == 0 }

// shownCount is the number of rows a list actually displays.
func shownCount(total, visible int) int {
	return max(min(total, visible), 0)
}
