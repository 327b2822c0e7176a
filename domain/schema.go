package domain

import "sort"

// CollectionKind distinguishes the two collection shapes a record type can
// declare.
type CollectionKind int

const (
	// KindMap is an unordered, name-addressed collection.
	KindMap CollectionKind = iota
	// KindList is an ordered, index-addressed collection whose keys mirror
	// element positions.
	KindList
)

// Schema declares the image collections attached to one record type.
// Declaring the first collection provisions the integer version counter
// field; further declarations reuse it, so a record type carries exactly
// one version field no matter how many collections it declares.
type Schema struct {
	recordType   string
	versionField string
	collections  map[string]CollectionKind
}

// NewSchema starts a declaration for the given record type. The type name
// is the lowercased dotted form used in storage paths, e.g. "accounts.user".
func NewSchema(recordType string) *Schema {
	return &Schema{
		recordType:  recordType,
		collections: make(map[string]CollectionKind),
	}
}

// Map declares an unordered named collection.
func (s *Schema) Map(name string) *Schema {
	s.declare(name, KindMap)
	return s
}

// List declares an ordered indexed collection.
func (s *Schema) List(name string) *Schema {
	s.declare(name, KindList)
	return s
}

func (s *Schema) declare(name string, kind CollectionKind) {
	if s.versionField == "" {
		s.versionField = "version"
	}
	s.collections[name] = kind
}

// Kind looks up the declared kind of a collection by name.
func (s *Schema) Kind(name string) (CollectionKind, bool) {
	kind, ok := s.collections[name]
	return kind, ok
}

// RecordType returns the declared record type name.
func (s *Schema) RecordType() string { return s.recordType }

// VersionField returns the auto-provisioned version counter field name, or
// empty when no collection has been declared yet.
func (s *Schema) VersionField() string { return s.versionField }

// Collections returns the declared collection names, sorted for stable
// iteration.
func (s *Schema) Collections() []string {
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
