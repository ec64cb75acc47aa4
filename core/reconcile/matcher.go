package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Match describes one Snipe-IT item to resolve against a NetBox collection.
type Match[T Record] struct {
	// Kind names the NetBox object kind for logs and errors (e.g. "tenant").
	Kind string

	// SourceID is the Snipe-IT id of the item.
	SourceID int

	// Name is the Snipe-IT display name of the item.
	Name string

	// Candidates is the NetBox snapshot to search, in listing order.
	Candidates []T

	// SameName reports whether a candidate matches the item by name.
	// Defaults to EqualNames on DisplayName.
	SameName func(T) bool

	// AlwaysLink attaches the foreign key on a name match regardless of
	// Policy.AllowLinking.
	AlwaysLink bool

	// Diff returns the values that differ between a linked candidate and the item.
	// A nil Diff means linked records are never updated.
	Diff func(T) *ChangeSet

	// Create creates the NetBox object. comment is the audit text for the new object.
	Create func(ctx context.Context, comment string) (T, error)

	// Update sends a single partial update payload (including "id").
	Update func(ctx context.Context, patch map[string]any) error
}

// FindByForeignID returns the first record whose foreign key equals id.
func FindByForeignID[T Record](records []T, id int) (T, bool) {
	return FindFirst(records, func(r T) bool {
		fid, ok := r.ForeignID()
		return ok && fid == id
	})
}

// FindByID returns the record with the given NetBox id.
func FindByID[T Record](records []T, id int) (T, bool) {
	return FindFirst(records, func(r T) bool { return r.RecordID() == id })
}

// FindFirst returns the first record accepted by match.
func FindFirst[T any](records []T, match func(T) bool) (T, bool) {
	for _, r := range records {
		if match(r) {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Resolve finds or creates the NetBox object for a Snipe-IT item.
// It issues at most one write and never reports absence as an error.
func Resolve[T Record](ctx context.Context, log *zap.Logger, run Run, m Match[T]) (Outcome[T], error) {
	l := log.With(zap.String("kind", m.Kind), zap.Int("source_id", m.SourceID), zap.String("name", m.Name))

	// 1. Foreign key
	if found, ok := FindByForeignID(m.Candidates, m.SourceID); ok {
		changes := NewChangeSet()
		if m.Diff != nil {
			changes = m.Diff(found)
		}
		if changes.IsEmpty() {
			l.Debug("Object is up to date")
			return Outcome[T]{Action: ActionUnchanged, Record: found, Found: true}, nil
		}

		if !run.Policy.AllowUpdates {
			l.Info("Object has changed, skipping since updating is not enabled", zap.Strings("fields", changes.Fields()))
			return Outcome[T]{Action: ActionSkippedUpdate, Record: found, Found: true, Fields: changes.Fields()}, nil
		}

		fields := changes.Fields()
		changes.Set(AuditField, run.Audit.Updated(TagValues))
		if err := m.Update(ctx, changes.Patch(found.RecordID())); err != nil {
			return Outcome[T]{Action: ActionFailed}, fmt.Errorf("failed to update %s %q: %w", m.Kind, m.Name, err)
		}
		l.Info("Updated object", zap.Strings("fields", fields))
		return Outcome[T]{Action: ActionUpdated, Record: found, Found: true, Fields: fields}, nil
	}

	// 2. Name
	sameName := m.SameName
	if sameName == nil {
		sameName = func(r T) bool { return EqualNames(r.DisplayName(), m.Name) }
	}
	if found, ok := FindFirst(m.Candidates, sameName); ok {
		if !run.Policy.AllowLinking && !m.AlwaysLink {
			l.Info("Found object by name, skipping since linking is not enabled")
			return Outcome[T]{Action: ActionSkippedLink, Record: found, Found: true}, nil
		}

		changes := NewChangeSet().SetForeignID(m.SourceID)
		changes.Set(AuditField, run.Audit.Updated(TagForeignID))
		if err := m.Update(ctx, changes.Patch(found.RecordID())); err != nil {
			return Outcome[T]{Action: ActionFailed}, fmt.Errorf("failed to link %s %q: %w", m.Kind, m.Name, err)
		}
		l.Info("Found object by name, linked foreign id")
		return Outcome[T]{Action: ActionLinked, Record: found, Found: true, Fields: []string{CustomFieldsKey}}, nil
	}

	// 3. Create
	created, err := m.Create(ctx, run.Audit.Imported())
	if err != nil {
		return Outcome[T]{Action: ActionFailed}, fmt.Errorf("failed to create %s %q: %w", m.Kind, m.Name, err)
	}
	l.Info("Created object", zap.Int("netbox_id", created.RecordID()))
	return Outcome[T]{Action: ActionCreated, Record: created, Found: true}, nil
}
