package reconcile

import (
	"fmt"
	"time"
)

// ForeignKeyField is the NetBox custom field holding the originating Snipe-IT id.
const ForeignKeyField = "snipe_object_id"

// CustomFieldsKey is the patch key under which custom field values are sent.
const CustomFieldsKey = "custom_fields"

// AuditField is the attribute that receives the audit comment on every write.
const AuditField = "description"

// Record is a NetBox object that can take part in identity resolution.
type Record interface {
	// RecordID returns the NetBox primary key.
	RecordID() int

	// ForeignID returns the value of ForeignKeyField, if set.
	ForeignID() (int, bool)

	// DisplayName returns the name used for name-based matching.
	DisplayName() string
}

// Policy holds the operator-controlled flags that change write behavior.
type Policy struct {
	// AllowUpdates enables overwriting diverged values on linked records.
	AllowUpdates bool `json:"allow_updates"`

	// AllowLinking enables attaching the foreign key to records matched by name.
	AllowLinking bool `json:"allow_linking"`

	// UpdateUniqueExisting enables matching devices by (name, tenant) when the
	// asset name is unique within the Snipe-IT batch.
	UpdateUniqueExisting bool `json:"update_unique_existing"`

	// NoAppendAssetTag suppresses the asset tag suffix on new devices whose
	// name is unique within the batch.
	NoAppendAssetTag bool `json:"no_append_assettag"`
}

// Tag labels an audit comment with the reason for a write.
type Tag string

const (
	// TagForeignID marks a write that only attached the foreign key.
	TagForeignID Tag = "Foreign ID"
	// TagValues marks a write that changed attribute values.
	TagValues Tag = "Values"
)

// Audit renders the comments attached to created and updated NetBox objects.
type Audit struct {
	// Source is the system name used in comments, e.g. "SnipeIT".
	Source string

	// At is the run timestamp.
	At time.Time
}

func (a Audit) stamp() string {
	return a.At.UTC().Format("06-01-02 15:04:05") + " (UTC)"
}

// Imported returns the comment for newly created objects.
func (a Audit) Imported() string {
	return fmt.Sprintf("Imported from %s %s", a.Source, a.stamp())
}

// Updated returns the comment for updated objects.
func (a Audit) Updated(tag Tag) string {
	return fmt.Sprintf("Updated from %s %s [%s]", a.Source, a.stamp(), tag)
}

// Run is the immutable configuration passed into every reconciliation entry point.
type Run struct {
	Policy Policy
	Audit  Audit
}

// NewRun creates a Run stamped with the given time.
func NewRun(policy Policy, at time.Time) Run {
	return Run{
		Policy: policy,
		Audit:  Audit{Source: "SnipeIT", At: at},
	}
}

// Action describes what happened to a single Snipe-IT item.
type Action string

const (
	// ActionCreated means a new NetBox object was created.
	ActionCreated Action = "created"
	// ActionLinked means the foreign key was attached to an existing object.
	ActionLinked Action = "linked"
	// ActionUpdated means diverged values were written.
	ActionUpdated Action = "updated"
	// ActionUnchanged means the object already matched.
	ActionUnchanged Action = "unchanged"
	// ActionSkippedLink means a name match was found but linking is disabled.
	ActionSkippedLink Action = "skipped_link"
	// ActionSkippedUpdate means values diverged but updating is disabled.
	ActionSkippedUpdate Action = "skipped_update"
	// ActionSkipped means the item was deliberately not written (status gate,
	// unresolvable reference).
	ActionSkipped Action = "skipped"
	// ActionFailed means processing the item returned an error.
	ActionFailed Action = "failed"
)

// Outcome is the result of resolving one Snipe-IT item.
type Outcome[T any] struct {
	// Action is the terminal state reached.
	Action Action

	// Record is the resolved NetBox object. Only valid when Found is true.
	Record T

	// Found reports whether Record holds a resolved object.
	Found bool

	// Fields lists the attributes written or that would have been written.
	Fields []string
}
