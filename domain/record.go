package domain

// ParentRecord is the owning persisted entity: named image collections plus
// a monotonically increasing version used for optimistic concurrency.
type ParentRecord struct {
	Type        string
	ID          string
	Version     int64
	Collections map[string]Images
}

// Ref returns the identity used for storage path derivation.
func (r *ParentRecord) Ref() RecordRef {
	return RecordRef{Type: r.Type, ID: r.ID}
}

// Collection returns the contents of one named collection. A missing field
// is an empty collection, not an error.
func (r *ParentRecord) Collection(field string) Images {
	if r.Collections == nil {
		return Images{}
	}
	return r.Collections[field]
}
