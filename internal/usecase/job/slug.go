package job

import (
	"context"
	"fmt"

	domainjob "hiring-board/internal/domain/job"

	"github.com/google/uuid"
)

// maxSlugProbes bounds the suffix search so a misbehaving store cannot spin
// the loop forever.
const maxSlugProbes = 10000

type slugChecker interface {
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
}

// generateSlug returns the first free candidate for title: the normalized
// base, then base-2, base-3, ... A job passed as excludeID never collides
// with itself.
func generateSlug(ctx context.Context, repo slugChecker, title string, excludeID *uuid.UUID) (string, error) {
	base := domainjob.NormalizeSlug(title)
	for n := 1; n <= maxSlugProbes; n++ {
		candidate := domainjob.SlugCandidate(base, n)
		exists, err := repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free slug for base %q after %d probes", base, maxSlugProbes)
}
