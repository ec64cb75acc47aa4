package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testRecord is a minimal Record used to exercise Resolve.
type testRecord struct {
	id      int
	name    string
	foreign *int
}

func (r testRecord) RecordID() int { return r.id }

func (r testRecord) ForeignID() (int, bool) {
	if r.foreign == nil {
		return 0, false
	}
	return *r.foreign, true
}

func (r testRecord) DisplayName() string { return r.name }

// recorder captures the writes issued by Resolve.
type recorder struct {
	created []string
	patches []map[string]any
	err     error
}

func (rec *recorder) match(sourceID int, name string, candidates []testRecord) Match[testRecord] {
	return Match[testRecord]{
		Kind:       "tenant",
		SourceID:   sourceID,
		Name:       name,
		Candidates: candidates,
		Diff: func(r testRecord) *ChangeSet {
			return NewChangeSet().
				DiffString("name", r.name, name).
				DiffString("slug", Slugify(r.name), Slugify(name))
		},
		Create: func(ctx context.Context, comment string) (testRecord, error) {
			if rec.err != nil {
				return testRecord{}, rec.err
			}
			rec.created = append(rec.created, comment)
			return testRecord{id: 100, name: name, foreign: intPtr(sourceID)}, nil
		},
		Update: func(ctx context.Context, patch map[string]any) error {
			if rec.err != nil {
				return rec.err
			}
			rec.patches = append(rec.patches, patch)
			return nil
		},
	}
}

func testRun(policy Policy) Run {
	return NewRun(policy, time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC))
}

func TestResolve_CreatesWhenAbsent(t *testing.T) {
	rec := &recorder{}

	out, err := Resolve(context.Background(), zap.NewNop(), testRun(Policy{}), rec.match(5, "Acme", nil))
	require.NoError(t, err)

	assert.Equal(t, ActionCreated, out.Action)
	assert.True(t, out.Found)
	assert.Equal(t, 100, out.Record.RecordID())
	assert.Equal(t, []string{"Imported from SnipeIT 24-03-05 14:07:09 (UTC)"}, rec.created)
	assert.Empty(t, rec.patches)
}

func TestResolve_NameMatch(t *testing.T) {
	candidates := []testRecord{{id: 1, name: "Other"}, {id: 2, name: " ACME "}}

	t.Run("Linking disabled", func(t *testing.T) {
		rec := &recorder{}
		out, err := Resolve(context.Background(), zap.NewNop(), testRun(Policy{}), rec.match(5, "Acme", candidates))
		require.NoError(t, err)
		assert.Equal(t, ActionSkippedLink, out.Action)
		assert.Equal(t, 2, out.Record.RecordID())
		assert.Empty(t, rec.patches)
		assert.Empty(t, rec.created)
	})

	t.Run("Linking enabled", func(t *testing.T) {
		rec := &recorder{}
		out, err := Resolve(context.Background(), zap.NewNop(), testRun(Policy{AllowLinking: true}), rec.match(5, "Acme", candidates))
		require.NoError(t, err)
		assert.Equal(t, ActionLinked, out.Action)
		require.Len(t, rec.patches, 1)
		assert.Equal(t, 2, rec.patches[0]["id"])
		assert.Equal(t, map[string]any{ForeignKeyField: 5}, rec.patches[0][CustomFieldsKey])
		assert.Contains(t, rec.patches[0][AuditField], "[Foreign ID]")
		assert.NotContains(t, rec.patches[0], "name")
	})

	t.Run("Always link", func(t *testing.T) {
		rec := &recorder{}
		m := rec.match(5, "Acme", candidates)
		m.AlwaysLink = true
		out, err := Resolve(context.Background(), zap.NewNop(), testRun(Policy{}), m)
		require.NoError(t, err)
		assert.Equal(t, ActionLinked, out.Action)
		assert.Len(t, rec.patches, 1)
	})

	t.Run("Custom name key", func(t *testing.T) {
		rec := &recorder{}
		m := rec.match(5, "Acme", candidates)
		m.SameName = func(r testRecord) bool { return r.id == 1 }
		out, err := Resolve(context.Background(), zap.NewNop(), testRun(Policy{}), m)
		require.NoError(t, err)
		assert.Equal(t, 1, out.Record.RecordID())
	})
}

func TestResolve_ForeignKeyMatch(t *testing.T) {
	candidates := []testRecord{
		{id: 1, name: "Acme", foreign: intPtr(9)},
		{id: 2, name: "Acme Old", foreign: intPtr(5)},
		{id: 3, name: "Acme Duplicate", foreign: intPtr(5)},
	}

	t.Run("Unchanged", func(t *testing.T) {
		rec := &recorder{}
		out, err := Resolve(context.Background(), zap.NewNop(), testRun(Policy{AllowUpdates: true}), rec.match(5, "Acme Old", candidates))
		require.NoError(t, err)
		assert.Equal(t, ActionUnchanged, out.Action)
		assert.Equal(t, 2, out.Record.RecordID())
		assert.Empty(t, rec.patches)
	})

	t.Run("Updates disabled", func(t *testing.T) {
		rec := &recorder{}
		out, err := Resolve(context.Background(), zap.NewNop(), testRun(Policy{}), rec.match(5, "Acme New", candidates))
		require.NoError(t, err)
		assert.Equal(t, ActionSkippedUpdate, out.Action)
		assert.Equal(t, []string{"name", "slug"}, out.Fields)
		assert.Empty(t, rec.patches)
	})

	t.Run("Updates enabled", func(t *testing.T) {
		rec := &recorder{}
		out, err := Resolve(context.Background(), zap.NewNop(), testRun(Policy{AllowUpdates: true}), rec.match(5, "Acme New", candidates))
		require.NoError(t, err)
		assert.Equal(t, ActionUpdated, out.Action)
		require.Len(t, rec.patches, 1)
		assert.Equal(t, 2, rec.patches[0]["id"])
		assert.Equal(t, "Acme New", rec.patches[0]["name"])
		assert.Equal(t, "acme-new", rec.patches[0]["slug"])
		assert.Contains(t, rec.patches[0][AuditField], "[Values]")
	})

	t.Run("Foreign key wins over name", func(t *testing.T) {
		rec := &recorder{}
		out, err := Resolve(context.Background(), zap.NewNop(), testRun(Policy{AllowLinking: true}), rec.match(9, "Acme Old", candidates))
		require.NoError(t, err)
		assert.Equal(t, 1, out.Record.RecordID())
	})
}

func TestResolve_WriteErrors(t *testing.T) {
	boom := errors.New("boom")

	rec := &recorder{err: boom}
	_, err := Resolve(context.Background(), zap.NewNop(), testRun(Policy{}), rec.match(5, "Acme", nil))
	assert.ErrorIs(t, err, boom)

	rec = &recorder{err: boom}
	out, err := Resolve(context.Background(), zap.NewNop(), testRun(Policy{AllowLinking: true}), rec.match(5, "Acme", []testRecord{{id: 1, name: "Acme"}}))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, ActionFailed, out.Action)
}

func TestUnresolvedError(t *testing.T) {
	err := Unresolved("device type", 12)
	assert.ErrorIs(t, err, ErrUnresolved)
	assert.Equal(t, "no device type linked to snipe id 12", err.Error())
}
