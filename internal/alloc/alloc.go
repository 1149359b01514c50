package alloc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/imamik/pvestack/internal/platform/proxmox"
)

// SearchWindow bounds the scan above the seed. Exceeding it aborts the
// allocation rather than looping indefinitely.
const SearchWindow = 500

// ErrExhausted is returned when no free identifier exists within the
// search window.
var ErrExhausted = errors.New("no free instance id within search window")

// Allocate returns the first identifier >= startHint that is absent from
// both registries. When startHint is zero the cluster's suggested next id
// is used as the seed instead.
func Allocate(ctx context.Context, reg proxmox.RegistryQuerier, startHint int) (int, error) {
	seed := startHint
	if seed == 0 {
		next, err := reg.NextID(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to query seed id: %w", err)
		}
		seed = next
	}

	configIDs, err := reg.ExistingConfigIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list config ids: %w", err)
	}

	volumes, err := reg.ExistingVolumeNames(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list volume names: %w", err)
	}
	volumeIDs := VolumeTokens(volumes)

	for id := seed; id <= seed+SearchWindow; id++ {
		if _, taken := configIDs[id]; taken {
			continue
		}
		if _, taken := volumeIDs[id]; taken {
			continue
		}
		return id, nil
	}

	return 0, fmt.Errorf("%w: scanned [%d, %d]", ErrExhausted, seed, seed+SearchWindow)
}

// VolumeTokens extracts every separator-bounded numeric token from the
// given volume names into a set. Tokens are bounded by the string edges or
// by '-' and '_' separators.
func VolumeTokens(names []string) map[int]struct{} {
	ids := make(map[int]struct{})
	for _, name := range names {
		for _, token := range strings.FieldsFunc(name, isSeparator) {
			if id, err := strconv.Atoi(token); err == nil {
				ids[id] = struct{}{}
			}
		}
	}
	return ids
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_'
}
