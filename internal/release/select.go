package release

import (
	"fmt"
	"strings"

	"github.com/oshokin/grokker-shim/internal/platform"
)

// SelectAsset returns the first asset whose name contains the platform substring.
// Matching is case-sensitive and follows the published asset order.
func SelectAsset(meta *Metadata, id platform.ID) (*Asset, error) {
	traits, err := id.RequireTraits()
	if err != nil {
		return nil, err
	}

	if meta == nil {
		return nil, fmt.Errorf("%s: empty metadata: %w", id, ErrNoMatchingAsset)
	}

	for i := range meta.Assets {
		if strings.Contains(meta.Assets[i].Name, traits.AssetSubstring) {
			asset := meta.Assets[i]

			return &asset, nil
		}
	}

	return nil, fmt.Errorf("%s (%d assets in %s): %w", id, len(meta.Assets), meta.TagName, ErrNoMatchingAsset)
}
