package utils

import "encoding/json"

// Optional is a JSON field that distinguishes three states a plain pointer
// collapses into two: absent, explicit null, and a value. Partial-update
// payloads need all three — an omitted field keeps its stored value, while
// an explicit null clears a nullable column.
type Optional[T any] struct {
	// Set reports that the field appeared in the payload at all.
	Set bool
	// Valid reports that the field carried a non-null value.
	Valid bool
	// Value is the decoded value; meaningful only when Valid.
	Value T
}

// Some returns an Optional carrying v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns an Optional representing an explicit JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Ptr returns &Value, or nil for an explicit null. Handing the result to a
// GORM update map writes the column or sets it to NULL accordingly.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// UnmarshalJSON records presence before decoding; it only runs when the
// field exists in the payload, so the zero Optional means "absent".
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON round-trips the three states, encoding absent and null both
// as null (JSON has no way to express "absent" for a present key).
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
