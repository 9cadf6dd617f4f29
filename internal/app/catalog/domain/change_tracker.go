package domain

// FieldChange holds the before/after values of a single field.
type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// ChangeTracker records which aggregate fields changed and their old/new
// values. Repositories use it to persist only dirty columns; the audit trail
// uses it to diff aggregates at commit time.
type ChangeTracker struct {
	changes map[string]FieldChange
}

// NewChangeTracker creates an empty tracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{
		changes: make(map[string]FieldChange),
	}
}

// Record marks a field as dirty with its old and new value. Recording the
// same field twice keeps the original old value and the latest new value, so
// the diff spans the whole load→commit cycle.
func (ct *ChangeTracker) Record(field string, oldValue, newValue interface{}) {
	if prev, ok := ct.changes[field]; ok {
		ct.changes[field] = FieldChange{Old: prev.Old, New: newValue}
		return
	}
	ct.changes[field] = FieldChange{Old: oldValue, New: newValue}
}

// Dirty reports whether a field has been modified.
func (ct *ChangeTracker) Dirty(field string) bool {
	_, ok := ct.changes[field]
	return ok
}

// HasChanges reports whether any field has been modified.
func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.changes) > 0
}

// Changes returns the full field→(old,new) map.
func (ct *ChangeTracker) Changes() map[string]FieldChange {
	out := make(map[string]FieldChange, len(ct.changes))
	for k, v := range ct.changes {
		out[k] = v
	}
	return out
}

// DirtyFields returns the names of all modified fields.
func (ct *ChangeTracker) DirtyFields() []string {
	fields := make([]string, 0, len(ct.changes))
	for field := range ct.changes {
		fields = append(fields, field)
	}
	return fields
}

// Clear resets the tracker after a successful commit.
func (ct *ChangeTracker) Clear() {
	ct.changes = make(map[string]FieldChange)
}
