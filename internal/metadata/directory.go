// Package metadata holds the directory of labeled value tokens used to
// populate condition value widgets. Entries are grouped by segment category
// (user type, client type, realtime tag, offline tag).
package metadata

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Category identifies the segment a metadata entry belongs to.
type Category string

const (
	CategoryUser     Category = "user"
	CategoryClient   Category = "client"
	CategoryRealtime Category = "realtime"
	CategoryOffline  Category = "offline"
)

// Known reports whether c is one of the four known categories.
func (c Category) Known() bool {
	switch c {
	case CategoryUser, CategoryClient, CategoryRealtime, CategoryOffline:
		return true
	}
	return false
}

// Entry is one labeled token. Value is what gets compared against real
// traffic attributes; Label is display-only.
type Entry struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Value    string   `json:"value"`
}

// Option is the (value, label) pair surfaced to selection widgets.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Directory is an in-memory, insertion-ordered collection of metadata
// entries. It is safe for concurrent use.
//
// Value uniqueness within a category is enforced on Upsert: selection
// widgets key selected tokens by value, so a duplicate would make two
// entries indistinguishable once picked.
type Directory struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]Entry // id -> Entry
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		entries: make(map[string]Entry),
	}
}

// List returns all entries in insertion order.
func (d *Directory) List() []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]Entry, 0, len(d.order))
	for _, id := range d.order {
		result = append(result, d.entries[id])
	}
	return result
}

// ListByCategory returns the entries of one category in insertion order.
func (d *Directory) ListByCategory(cat Category) []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var result []Entry
	for _, id := range d.order {
		if e := d.entries[id]; e.Category == cat {
			result = append(result, e)
		}
	}
	return result
}

// Options returns the (value, label) pairs for one category, in insertion
// order. This is what single- and multi-select widgets render.
func (d *Directory) Options(cat Category) []Option {
	entries := d.ListByCategory(cat)
	options := make([]Option, 0, len(entries))
	for _, e := range entries {
		options = append(options, Option{Value: e.Value, Label: e.Label})
	}
	return options
}

// Upsert inserts a new entry or replaces an existing one (matched by ID,
// position preserved). An empty ID gets a freshly generated one.
// Returns an error if the category is unknown or the value collides with
// a different entry in the same category.
func (d *Directory) Upsert(e Entry) (Entry, error) {
	if !e.Category.Known() {
		return Entry{}, fmt.Errorf("unknown metadata category %q", e.Category)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	for _, id := range d.order {
		other := d.entries[id]
		if other.ID != e.ID && other.Category == e.Category && other.Value == e.Value {
			return Entry{}, fmt.Errorf("duplicate value %q in category %q", e.Value, e.Category)
		}
	}

	if _, exists := d.entries[e.ID]; !exists {
		d.order = append(d.order, e.ID)
	}
	d.entries[e.ID] = e
	return e, nil
}

// Delete removes an entry by ID. Deleting a missing entry is a no-op.
func (d *Directory) Delete(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.entries[id]; !exists {
		return
	}
	delete(d.entries, id)
	for i, cur := range d.order {
		if cur == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Seed bulk-loads entries, skipping any that violate uniqueness.
// Intended for startup seeding, not request handling.
func (d *Directory) Seed(entries []Entry) {
	for _, e := range entries {
		_, _ = d.Upsert(e)
	}
}

// DefaultEntries returns the stock metadata set shipped with the
// configurator.
func DefaultEntries() []Entry {
	return []Entry{
		{ID: "rt1", Category: CategoryRealtime, Label: "High Bandwidth Usage", Value: "high_bw_usage"},
		{ID: "rt2", Category: CategoryRealtime, Label: "New Device", Value: "new_device"},

		{ID: "ot1", Category: CategoryOffline, Label: "Churn Risk: High", Value: "churn_high"},
		{ID: "ot2", Category: CategoryOffline, Label: "Loyal Customer", Value: "loyal_cust"},
		{ID: "ot3", Category: CategoryOffline, Label: "Edu Network", Value: "edu_net"},

		{ID: "u0", Category: CategoryUser, Label: "未登录", Value: "0"},
		{ID: "u1", Category: CategoryUser, Label: "普通用户", Value: "1"},
		{ID: "u2", Category: CategoryUser, Label: "老油条用户", Value: "2"},
		{ID: "u3", Category: CategoryUser, Label: "白金会员 (Platinum)", Value: "3"},
		{ID: "u4", Category: CategoryUser, Label: "超级会员 (Super)", Value: "4"},
		{ID: "u5", Category: CategoryUser, Label: "负毛利用户", Value: "5"},

		{ID: "c1", Category: CategoryClient, Label: "Android", Value: "android"},
		{ID: "c2", Category: CategoryClient, Label: "iOS", Value: "ios"},
		{ID: "c3", Category: CategoryClient, Label: "PC", Value: "pc"},
		{ID: "c4", Category: CategoryClient, Label: "Web", Value: "web"},
	}
}
