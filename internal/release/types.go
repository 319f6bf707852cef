package release

import "errors"

// Asset is one downloadable file attached to a release.
type Asset struct {
	// Name is the published file name, used for platform matching.
	Name string
	// DownloadURL is the browser_download_url copied verbatim from the metadata.
	DownloadURL string
}

// Metadata is the latest-release record of a repository.
type Metadata struct {
	// TagName is the release tag, kept for logging.
	TagName string
	// Assets are in the order the publisher attached them.
	Assets []Asset
}

var (
	// ErrNoMatchingAsset is returned when no asset name contains the platform substring.
	ErrNoMatchingAsset = errors.New("no release asset matches the platform")
	// ErrMetadataFetch is returned when release metadata cannot be fetched or decoded.
	ErrMetadataFetch = errors.New("fetch release metadata")
	// ErrInvalidRepository is returned for identifiers that are not "owner/repo".
	ErrInvalidRepository = errors.New("invalid repository identifier")
)
