package domain

// Gravity is the crop anchor handed to the resizing proxy. Compass
// directions plus "center" and "smart" detection.
type Gravity string

const (
	GravityNorth     Gravity = "n"
	GravitySouth     Gravity = "s"
	GravityEast      Gravity = "e"
	GravityWest      Gravity = "w"
	GravityNorthEast Gravity = "ne"
	GravityNorthWest Gravity = "nw"
	GravitySouthEast Gravity = "se"
	GravitySouthWest Gravity = "sw"
	GravityCenter    Gravity = "center"
	GravitySmart     Gravity = "smart"
)

// StoredImage represents one uploaded image attached to a parent record.
// Before commit SourceLocation is a path to local temporary bytes; after
// commit it is a backend URI (s3://bucket/path or local://path).
type StoredImage struct {
	Key            string  `json:"key"`
	SourceLocation string  `json:"source_location"`
	ContentType    string  `json:"content_type"`
	Size           int64   `json:"size"`
	Gravity        Gravity `json:"gravity"`
	Committed      bool    `json:"committed"`

	// IsDefault marks synthesized display fallbacks. Never persisted.
	IsDefault bool `json:"-"`
}

// DisplayImage is a derived, non-persisted view of a StoredImage at a
// specific aspect ratio and height. Source is nil only when no image
// existed and no default was produced.
type DisplayImage struct {
	URL         string
	Width       int
	Height      int
	ContentType string
	Gravity     Gravity
	Aspect      Aspect
	IsDefault   bool
	Source      *StoredImage
}

// UploadSource is the external representation of freshly uploaded bytes
// not yet committed to a backend.
type UploadSource struct {
	TempPath    string
	ContentType string
	Filename    string
	Size        int64
}

// ToStoredImage converts an upload into an uncommitted StoredImage keyed
// for its target collection. Gravity defaults to smart.
func (u UploadSource) ToStoredImage(key string) StoredImage {
	return StoredImage{
		Key:            key,
		SourceLocation: u.TempPath,
		ContentType:    u.ContentType,
		Size:           u.Size,
		Gravity:        GravitySmart,
	}
}

// RecordRef identifies a parent record for storage path derivation.
type RecordRef struct {
	Type string
	ID   string
}
