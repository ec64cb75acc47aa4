package inventory

import "snipe-netbox-sync/core/reconcile"

// Counts tallies outcomes for one object kind.
type Counts struct {
	Created   int `json:"created"`
	Linked    int `json:"linked"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

func (c *Counts) add(action reconcile.Action) {
	switch action {
	case reconcile.ActionCreated:
		c.Created++
	case reconcile.ActionLinked:
		c.Linked++
	case reconcile.ActionUpdated:
		c.Updated++
	case reconcile.ActionUnchanged:
		c.Unchanged++
	case reconcile.ActionFailed:
		c.Failed++
	default:
		c.Skipped++
	}
}

func (c *Counts) merge(other Counts) {
	c.Created += other.Created
	c.Linked += other.Linked
	c.Updated += other.Updated
	c.Unchanged += other.Unchanged
	c.Skipped += other.Skipped
	c.Failed += other.Failed
}

// Item is the outcome for one Snipe-IT item.
type Item struct {
	Kind     string           `json:"kind"`
	SourceID int              `json:"source_id"`
	Name     string           `json:"name"`
	Action   reconcile.Action `json:"action"`
	Fields   []string         `json:"fields,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Report summarizes a run. Unchanged items are only counted.
type Report struct {
	Counts map[string]*Counts `json:"counts"`
	Items  []Item             `json:"items"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{Counts: make(map[string]*Counts)}
}

// Add records one item outcome.
func (r *Report) Add(item Item) {
	c, ok := r.Counts[item.Kind]
	if !ok {
		c = &Counts{}
		r.Counts[item.Kind] = c
	}
	c.add(item.Action)

	if item.Action != reconcile.ActionUnchanged {
		r.Items = append(r.Items, item)
	}
}

// Kind returns the counts for one object kind.
func (r *Report) Kind(kind string) Counts {
	if c, ok := r.Counts[kind]; ok {
		return *c
	}
	return Counts{}
}

// Total sums the counts of every kind.
func (r *Report) Total() Counts {
	var total Counts
	for _, c := range r.Counts {
		total.merge(*c)
	}
	return total
}
