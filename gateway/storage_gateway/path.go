package storage_gateway

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"picset/domain"
)

// UploadPrefix roots every stored object. The scheme below is shared by all
// backends so URIs are structurally comparable modulo scheme prefix.
const UploadPrefix = "images/uploads"

// objectPath derives the backend-agnostic storage path for one image:
// images/uploads/<lowercased-record-type>/<record-id>/<key>/<uuid>-<key><ext>.
func objectPath(parent domain.RecordRef, image domain.StoredImage) string {
	filename := fmt.Sprintf("%s-%s%s", uuid.NewString(), image.Key, path.Ext(image.SourceLocation))
	return path.Join(UploadPrefix, strings.ToLower(parent.Type), parent.ID, image.Key, filename)
}

// trimScheme strips a backend URI down to its object path. For s3 URIs the
// bucket segment is dropped as well.
func trimScheme(sourceLocation string) string {
	if rest, ok := strings.CutPrefix(sourceLocation, "local://"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(sourceLocation, "s3://"); ok {
		if _, objPath, found := strings.Cut(rest, "/"); found {
			return objPath
		}
		return ""
	}
	return sourceLocation
}
