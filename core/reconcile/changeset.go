package reconcile

// ChangeSet is the minimal set of attribute values that differ between the current
// NetBox state of an object and the state derived from Snipe-IT.
// Fields keep the order in which they were added.
type ChangeSet struct {
	values map[string]any
	order  []string
}

// NewChangeSet creates an empty ChangeSet.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{values: make(map[string]any)}
}

// Set records a desired value unconditionally.
func (c *ChangeSet) Set(field string, value any) *ChangeSet {
	if _, ok := c.values[field]; !ok {
		c.order = append(c.order, field)
	}
	c.values[field] = value
	return c
}

// DiffString records desired when it differs from current.
func (c *ChangeSet) DiffString(field, current, desired string) *ChangeSet {
	if current != desired {
		c.Set(field, desired)
	}
	return c
}

// DiffInt records desired when it differs from current.
func (c *ChangeSet) DiffInt(field string, current, desired int) *ChangeSet {
	if current != desired {
		c.Set(field, desired)
	}
	return c
}

// DiffRef compares optional references by id. A nil desired value clears the reference.
func (c *ChangeSet) DiffRef(field string, current, desired *int) *ChangeSet {
	switch {
	case current == nil && desired == nil:
	case current == nil || desired == nil:
		if desired == nil {
			c.Set(field, nil)
		} else {
			c.Set(field, *desired)
		}
	case *current != *desired:
		c.Set(field, *desired)
	}
	return c
}

// DiffOptionalString compares a nullable string against a desired value.
// An empty desired value matches a nil current value.
func (c *ChangeSet) DiffOptionalString(field string, current *string, desired string) *ChangeSet {
	var have string
	if current != nil {
		have = *current
	}
	if have != desired {
		c.Set(field, desired)
	}
	return c
}

// SetCustomField records a custom field value. Custom fields are sent as a nested
// object and only the listed keys are touched by NetBox.
func (c *ChangeSet) SetCustomField(name string, value any) *ChangeSet {
	cf, ok := c.values[CustomFieldsKey].(map[string]any)
	if !ok {
		cf = make(map[string]any)
	}
	cf[name] = value
	return c.Set(CustomFieldsKey, cf)
}

// SetForeignID records the foreign key custom field.
func (c *ChangeSet) SetForeignID(id int) *ChangeSet {
	return c.SetCustomField(ForeignKeyField, id)
}

// Has reports whether field is part of the ChangeSet.
func (c *ChangeSet) Has(field string) bool {
	_, ok := c.values[field]
	return ok
}

// Value returns the recorded value for field.
func (c *ChangeSet) Value(field string) (any, bool) {
	v, ok := c.values[field]
	return v, ok
}

// Len returns the number of changed fields.
func (c *ChangeSet) Len() int {
	return len(c.order)
}

// IsEmpty reports whether nothing changed.
func (c *ChangeSet) IsEmpty() bool {
	return c == nil || len(c.order) == 0
}

// OnlyForeignID reports whether the foreign key is the sole change.
func (c *ChangeSet) OnlyForeignID() bool {
	if c.Len() != 1 {
		return false
	}
	cf, ok := c.values[CustomFieldsKey].(map[string]any)
	if !ok || len(cf) != 1 {
		return false
	}
	_, ok = cf[ForeignKeyField]
	return ok
}

// Fields returns the changed field names in insertion order.
func (c *ChangeSet) Fields() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Merge copies every value of other into c. Values in other win.
func (c *ChangeSet) Merge(other *ChangeSet) *ChangeSet {
	if other == nil {
		return c
	}
	for _, field := range other.order {
		if field == CustomFieldsKey {
			for k, v := range other.values[field].(map[string]any) {
				c.SetCustomField(k, v)
			}
			continue
		}
		c.Set(field, other.values[field])
	}
	return c
}

// Patch renders the ChangeSet as a partial update payload for the object with id.
func (c *ChangeSet) Patch(id int) map[string]any {
	patch := make(map[string]any, len(c.values)+1)
	for k, v := range c.values {
		patch[k] = v
	}
	patch["id"] = id
	return patch
}

// Tag returns the audit tag matching the content of the ChangeSet.
func (c *ChangeSet) Tag() Tag {
	if c.OnlyForeignID() {
		return TagForeignID
	}
	return TagValues
}
