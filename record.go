package penumbra

// Record is the dynamically keyed row shape the mapper consumes and, absent
// a configured factory, produces. Values are untyped; restoring host types
// is the job of factories and of typed access via GetField.
type Record map[Key]any

// RecordFromStrings lifts a plain string-keyed map, such as a decoded wire
// payload, into a Record.
func RecordFromStrings(fields map[string]any) Record {
	record := make(Record, len(fields))
	for name, value := range fields {
		record[StringKey(name)] = value
	}
	return record
}

// Strings flattens a Record back into a string-keyed map. It reports false
// when the record carries an integer or token key, which has no string
// representation to flatten to.
func (r Record) Strings() (map[string]any, bool) {
	out := make(map[string]any, len(r))
	for key, value := range r {
		name, ok := key.stringName()
		if !ok {
			return nil, false
		}
		out[name] = value
	}
	return out, true
}

// GetField reads a field from a record with a typed comma-ok result. It
// reports false when the field is absent or holds a different type.
func GetField[T any](record Record, name Key) (T, bool) {
	value, ok := record[name]
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return typed, true
}

// keyTable is a key-to-key mapping that preserves insertion order: the first
// set of a key appends it, a later set of the same key updates its target in
// place without moving it. Retargeting a mapping therefore leaves the old
// entry where it was, which is exactly the overwrite behavior the mapper's
// reverse table relies on.
type keyTable struct {
	order   []Key
	entries map[Key]Key
}

func newKeyTable() *keyTable {
	return &keyTable{entries: make(map[Key]Key)}
}

func (t *keyTable) set(key, target Key) {
	if _, ok := t.entries[key]; !ok {
		t.order = append(t.order, key)
	}
	t.entries[key] = target
}

func (t *keyTable) get(key Key) (Key, bool) {
	target, ok := t.entries[key]
	return target, ok
}

func (t *keyTable) len() int {
	return len(t.order)
}

func (t *keyTable) keys() []Key {
	out := make([]Key, len(t.order))
	copy(out, t.order)
	return out
}
