package layout

import (
	"strings"
	"testing"

	"github.com/lk2023060901/xdooria-bag/pkg/config"
	"github.com/lk2023060901/xdooria-bag/pkg/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layoutYAML = `
bag:
  inventories:
    - id: hands
      kind: single
      size: 2
    - id: pack
      kind: Stack
      size: 4
      max_amount: 3
    - id: vault
      kind: lazy
      size: 2
      max_amount: 99
`

func loadYAML(t *testing.T, body string) config.Manager {
	t.Helper()
	mgr := config.NewManager()
	require.NoError(t, mgr.LoadReader(strings.NewReader(body), "yaml"))
	return mgr
}

func TestKindUnmarshalText(t *testing.T) {
	var k Kind
	require.NoError(t, k.UnmarshalText([]byte(" LAZY ")))
	assert.Equal(t, KindLazy, k)

	err := k.UnmarshalText([]byte("bucket"))
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, KindLazy, k)
}

func TestLoad(t *testing.T) {
	cfg, err := Load(loadYAML(t, layoutYAML), "bag")
	require.NoError(t, err)
	require.Len(t, cfg.Inventories, 3)

	assert.Equal(t, InventoryConfig{ID: "hands", Kind: KindSingle, Size: 2}, cfg.Inventories[0])
	assert.Equal(t, InventoryConfig{ID: "pack", Kind: KindStack, Size: 4, MaxAmount: 3}, cfg.Inventories[1])
	assert.Equal(t, KindLazy, cfg.Inventories[2].Kind)

	_, err = Load(loadYAML(t, layoutYAML), "missing")
	assert.ErrorIs(t, err, config.ErrKeyNotFound)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "valid",
			config: Config{Inventories: []InventoryConfig{{ID: "a", Kind: KindSingle, Size: 1}}},
		},
		{
			name:    "empty",
			config:  Config{},
			wantErr: "inventories",
		},
		{
			name:    "missing id",
			config:  Config{Inventories: []InventoryConfig{{Kind: KindSingle, Size: 1}}},
			wantErr: "id",
		},
		{
			name:    "zero size",
			config:  Config{Inventories: []InventoryConfig{{ID: "a", Kind: KindSingle}}},
			wantErr: "size",
		},
		{
			name: "duplicate id",
			config: Config{Inventories: []InventoryConfig{
				{ID: "a", Kind: KindSingle, Size: 1},
				{ID: "a", Kind: KindSingle, Size: 1},
			}},
			wantErr: "duplicates",
		},
		{
			name:    "stack without capacity",
			config:  Config{Inventories: []InventoryConfig{{ID: "a", Kind: KindStack, Size: 1}}},
			wantErr: "max_amount",
		},
		{
			name:    "bad kind",
			config:  Config{Inventories: []InventoryConfig{{ID: "a", Kind: "bucket", Size: 1}}},
			wantErr: "kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, config.ErrValidationFailed)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuild(t *testing.T) {
	cfg, err := Load(loadYAML(t, layoutYAML), "bag")
	require.NoError(t, err)

	set, err := Build[string](cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"hands", "pack", "vault"}, set.IDs())

	hands, err := set.Single("hands")
	require.NoError(t, err)
	assert.Equal(t, "hands", hands.ID())
	assert.Equal(t, 2, hands.Size())

	pack, err := set.Stack("pack")
	require.NoError(t, err)
	rest, err := pack.AddItems([]string{"a", "a", "a", "a"})
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, 4, pack.GetCount("a"))

	vault, err := set.Lazy("vault")
	require.NoError(t, err)
	left, err := vault.Add("gold", 150)
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	kind, ok := set.Kind("vault")
	assert.True(t, ok)
	assert.Equal(t, KindLazy, kind)

	_, err = set.Stack("hands")
	assert.ErrorIs(t, err, ErrKindMismatch)
	_, err = set.Lazy("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = set.Notifier("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotifiers(t *testing.T) {
	set, err := Build[string](&Config{Inventories: []InventoryConfig{
		{ID: "b", Kind: KindStack, Size: 1, MaxAmount: 2},
		{ID: "a", Kind: KindSingle, Size: 1},
	}})
	require.NoError(t, err)

	notifiers := set.Notifiers()
	require.Len(t, notifiers, 2)
	assert.Equal(t, "b", notifiers[0].ID())
	assert.Equal(t, "a", notifiers[1].ID())

	var seen []string
	for _, n := range notifiers {
		n.OnAdded(func(sender inventory.Container, _ inventory.AddedEvent[string]) {
			seen = append(seen, sender.ID())
		})
	}

	single, err := set.Single("a")
	require.NoError(t, err)
	single.Add("x")
	stack, err := set.Stack("b")
	require.NoError(t, err)
	stack.Add("y")
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestBuildInvalid(t *testing.T) {
	_, err := Build[string](nil)
	assert.Error(t, err)

	_, err = Build[string](&Config{Inventories: []InventoryConfig{{ID: "a", Kind: KindLazy, Size: 1}}})
	assert.ErrorIs(t, err, config.ErrValidationFailed)
}
