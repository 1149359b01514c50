package alloc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/pvestack/internal/platform/proxmox"
)

func registryWith(configIDs []int, volumes []string, nextID int) *proxmox.MockClient {
	ids := make(map[int]struct{}, len(configIDs))
	for _, id := range configIDs {
		ids[id] = struct{}{}
	}
	return &proxmox.MockClient{
		ExistingConfigIDsFunc: func(_ context.Context) (map[int]struct{}, error) {
			return ids, nil
		},
		ExistingVolumeNamesFunc: func(_ context.Context) ([]string, error) {
			return volumes, nil
		},
		NextIDFunc: func(_ context.Context) (int, error) {
			return nextID, nil
		},
	}
}

func TestAllocate_FirstFree(t *testing.T) {
	t.Parallel()
	reg := registryWith(nil, nil, 0)

	id, err := Allocate(context.Background(), reg, 110)
	require.NoError(t, err)
	assert.Equal(t, 110, id)
}

func TestAllocate_SkipsConfigIDs(t *testing.T) {
	t.Parallel()
	reg := registryWith([]int{200, 201, 202, 203, 204, 205}, nil, 0)

	id, err := Allocate(context.Background(), reg, 200)
	require.NoError(t, err)
	assert.Equal(t, 206, id)
}

func TestAllocate_SkipsVolumeTokens(t *testing.T) {
	t.Parallel()
	reg := registryWith(nil, []string{"local-lvm:vm-110-disk-0", "local-lvm:vm-111-disk-1"}, 0)

	id, err := Allocate(context.Background(), reg, 110)
	require.NoError(t, err)
	assert.Equal(t, 112, id)
}

func TestAllocate_VolumeTokenBoundaries(t *testing.T) {
	t.Parallel()
	// vm-110-disk-0 reserves 110 and 0, not 10 or 11
	reg := registryWith(nil, []string{"local-lvm:vm-110-disk-0"}, 0)

	id, err := Allocate(context.Background(), reg, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, id)
}

func TestAllocate_ChecksBothNamespaces(t *testing.T) {
	t.Parallel()
	// 110 free in config records but reserved by a volume; 111 free in
	// volumes but reserved by a config record.
	reg := registryWith([]int{111}, []string{"local-lvm:vm-110-disk-0"}, 0)

	id, err := Allocate(context.Background(), reg, 110)
	require.NoError(t, err)
	assert.Equal(t, 112, id)
}

func TestAllocate_SeedsFromNextID(t *testing.T) {
	t.Parallel()
	reg := registryWith(nil, nil, 250)

	id, err := Allocate(context.Background(), reg, 0)
	require.NoError(t, err)
	assert.Equal(t, 250, id)
}

func TestAllocate_MonotoneFromSeed(t *testing.T) {
	t.Parallel()
	reg := registryWith([]int{100, 101}, nil, 0)

	id, err := Allocate(context.Background(), reg, 100)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, id, 100)
}

func TestAllocate_Exhausted(t *testing.T) {
	t.Parallel()
	ids := make([]int, 0, SearchWindow+1)
	for id := 300; id <= 300+SearchWindow; id++ {
		ids = append(ids, id)
	}
	reg := registryWith(ids, nil, 0)

	_, err := Allocate(context.Background(), reg, 300)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestAllocate_RegistryErrors(t *testing.T) {
	t.Parallel()
	boom := errors.New("api down")

	t.Run("config ids", func(t *testing.T) {
		t.Parallel()
		reg := registryWith(nil, nil, 0)
		reg.ExistingConfigIDsFunc = func(_ context.Context) (map[int]struct{}, error) {
			return nil, boom
		}
		_, err := Allocate(context.Background(), reg, 100)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("volume names", func(t *testing.T) {
		t.Parallel()
		reg := registryWith(nil, nil, 0)
		reg.ExistingVolumeNamesFunc = func(_ context.Context) ([]string, error) {
			return nil, boom
		}
		_, err := Allocate(context.Background(), reg, 100)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("next id", func(t *testing.T) {
		t.Parallel()
		reg := registryWith(nil, nil, 0)
		reg.NextIDFunc = func(_ context.Context) (int, error) {
			return 0, boom
		}
		_, err := Allocate(context.Background(), reg, 0)
		assert.ErrorIs(t, err, boom)
	})
}

func TestVolumeTokens(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		volumes  []string
		contains []int
		excludes []int
	}{
		{
			name:     "disk volume",
			volumes:  []string{"local-lvm:vm-110-disk-0"},
			contains: []int{110, 0},
			excludes: []int{10, 11, 1},
		},
		{
			name:     "underscore separators",
			volumes:  []string{"backup_205_old"},
			contains: []int{205},
			excludes: []int{20, 5},
		},
		{
			name:     "bare number",
			volumes:  []string{"42"},
			contains: []int{42},
		},
		{
			name:     "no numeric tokens",
			volumes:  []string{"base-image", "templates"},
			excludes: []int{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tokens := VolumeTokens(tt.volumes)
			for _, id := range tt.contains {
				assert.Contains(t, tokens, id)
			}
			for _, id := range tt.excludes {
				assert.NotContains(t, tokens, id)
			}
		})
	}
}
