package service

import (
	"fmt"

	"github.com/drivevault/drivevault/pkg/apperr"
	"github.com/drivevault/drivevault/pkg/internal/pathkit"
)

// maxSuffixProbes caps the uniqueness probe loop. Termination is guaranteed
// by the monotonic counter alone, but a broken existence check would spin
// forever without the cap.
const maxSuffixProbes = 4096

// existsFn reports whether a candidate path is already taken in the scope
// the caller probes (parent + trash partition, excluding the entity itself).
type existsFn func(path string) (bool, error)

// resolveUniqueName finds a non-colliding variant of baseName under
// parentPath by appending " (n)" suffixes, recomputing the slugged path per
// probe. The base name itself is probed first, so an unoccupied name passes
// through unchanged.
func resolveUniqueName(baseName, parentPath string, exists existsFn) (name, path string, err error) {
	slug := pathkit.Slugify(baseName)
	if slug == "" {
		return "", "", apperr.New(apperr.KindValidation, "name has no path-safe characters")
	}

	for n := 0; n <= maxSuffixProbes; n++ {
		name = baseName
		if n > 0 {
			name = fmt.Sprintf("%s (%d)", baseName, n)
		}

		path = pathkit.Join(parentPath, pathkit.Slugify(name))

		taken, err := exists(path)
		if err != nil {
			return "", "", err
		}

		if !taken {
			return name, path, nil
		}
	}

	return "", "", apperr.Newf(apperr.KindInternal, "no unique name for %q after %d probes", baseName, maxSuffixProbes)
}
