package scenario

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lk2023060901/xdooria-bag/pkg/config"
	"github.com/lk2023060901/xdooria-bag/pkg/inventory"
	"github.com/lk2023060901/xdooria-bag/pkg/inventory/layout"
	"github.com/lk2023060901/xdooria-bag/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const scriptYAML = `
scenario:
  name: smoke
  steps:
    - {op: add, inventory: pack, item: a, amount: 5}
    - {op: add, inventory: pack, item: a, amount: 3}
    - {op: count, inventory: pack, item: a}
    - {op: get_at, inventory: pack, index: 0}
    - {op: move, inventory: pack, index: 0, target: 2}
    - {op: add_at, inventory: hands, item: sword, index: 1}
    - {op: add_at, inventory: hands, item: axe, index: 1}
    - {op: Add-At, inventory: hands, item: axe, index: 1, replace: true}
    - {op: add, inventory: vault, item: gold, amount: 25}
    - {op: get, inventory: vault, item: gold, amount: 7}
    - {op: get_all, inventory: vault, item: gold}
    - {op: move, inventory: vault, index: 0, target: 5}
    - {op: add, inventory: nowhere, item: x}
    - {op: clear, inventory: pack}
    - {op: get_at, inventory: hands, index: 1}
`

func newSet(t *testing.T) *layout.Set[string] {
	t.Helper()
	set, err := layout.Build[string](&layout.Config{Inventories: []layout.InventoryConfig{
		{ID: "hands", Kind: layout.KindSingle, Size: 2},
		{ID: "pack", Kind: layout.KindStack, Size: 3, MaxAmount: 2},
		{ID: "vault", Kind: layout.KindLazy, Size: 2, MaxAmount: 10},
	}})
	require.NoError(t, err)
	return set
}

func loadScript(t *testing.T, body string) (*Script, error) {
	t.Helper()
	mgr := config.NewManager()
	require.NoError(t, mgr.LoadReader(strings.NewReader(body), "yaml"))
	return Load(mgr, "scenario")
}

func TestRun(t *testing.T) {
	script, err := loadScript(t, scriptYAML)
	require.NoError(t, err)
	require.Len(t, script.Steps, 15)
	assert.Equal(t, OpAddAt, script.Steps[7].Op)

	core, logs := observer.New(zapcore.DebugLevel)
	runner := NewRunner(newSet(t), logger.FromZap(zap.New(core)))

	report, err := runner.Run(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, "smoke", report.Name)
	require.Len(t, report.Results, 15)
	assert.Equal(t, 2, report.Failed)

	type outcome struct{ amount, returned int }
	want := []outcome{
		{5, 0}, {1, 2}, {6, 0}, {1, 0}, {0, 0},
		{1, 0}, {0, 1}, {1, 1},
		{20, 5}, {7, 0}, {13, 0}, {0, 0}, {0, 0},
		{5, 0}, {1, 0},
	}
	for i, w := range want {
		res := report.Results[i]
		assert.Equal(t, i, res.Step)
		assert.Equal(t, w, outcome{res.Amount, res.Returned}, "step %d", i)
	}

	assert.ErrorIs(t, report.Results[11].Err, inventory.ErrIndexOutOfRange)
	assert.ErrorIs(t, report.Results[12].Err, layout.ErrNotFound)

	assert.Equal(t, 2, logs.FilterMessage("step failed").Len())
	assert.Equal(t, 13, logs.FilterMessage("step done").Len())
	assert.Equal(t, 1, logs.FilterMessage("scenario finished").Len())
}

func TestFingerprint(t *testing.T) {
	script, err := loadScript(t, scriptYAML)
	require.NoError(t, err)

	first, err := NewRunner(newSet(t), nil).Run(context.Background(), script)
	require.NoError(t, err)
	second, err := NewRunner(newSet(t), nil).Run(context.Background(), script)
	require.NoError(t, err)
	require.Len(t, first.Fingerprints, 3)
	assert.Equal(t, first.Fingerprints, second.Fingerprints)

	// 脚本最后取空了全部库存，与新建的库存一致
	empty, err := Fingerprint(newSet(t))
	require.NoError(t, err)
	assert.Equal(t, empty, first.Fingerprints)

	set := newSet(t)
	pack, err := set.Stack("pack")
	require.NoError(t, err)
	pack.Add("a")
	moved, err := Fingerprint(set)
	require.NoError(t, err)
	assert.NotEqual(t, empty["pack"], moved["pack"])
	require.NoError(t, pack.Move(0, 1))
	after, err := Fingerprint(set)
	require.NoError(t, err)
	assert.NotEqual(t, moved["pack"], after["pack"])

	hands, err := set.Single("hands")
	require.NoError(t, err)
	_, _, err = hands.AddAt("sword", 1, false)
	require.NoError(t, err)
	held, err := Fingerprint(set)
	require.NoError(t, err)
	assert.NotEqual(t, after["hands"], held["hands"])
	assert.Equal(t, after["pack"], held["pack"])

	require.NoError(t, hands.Move(1, 0))
	swapped, err := Fingerprint(set)
	require.NoError(t, err)
	assert.NotEqual(t, held["hands"], swapped["hands"])
}

func TestRunCancelled(t *testing.T) {
	script, err := loadScript(t, scriptYAML)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewRunner(newSet(t), nil).Run(ctx, script)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Results)

	_, err = NewRunner(newSet(t), nil).Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no steps", body: "scenario:\n  name: empty\n"},
		{name: "unknown op", body: "scenario:\n  steps:\n    - {op: juggle, inventory: pack}\n"},
		{name: "missing item", body: "scenario:\n  steps:\n    - {op: add, inventory: pack}\n"},
		{name: "missing inventory", body: "scenario:\n  steps:\n    - {op: clear}\n"},
		{name: "negative amount", body: "scenario:\n  steps:\n    - {op: get, inventory: pack, item: a, amount: -1}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadScript(t, tt.body)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scriptYAML), 0o644))

	script, err := LoadFile(path, "scenario")
	require.NoError(t, err)
	assert.Len(t, script.Steps, 15)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), "scenario")
	assert.Error(t, err)
}

func TestOpUnmarshalText(t *testing.T) {
	var op Op
	require.NoError(t, op.UnmarshalText([]byte("GET-ALL")))
	assert.Equal(t, OpGetAll, op)
	assert.ErrorIs(t, op.UnmarshalText([]byte("juggle")), ErrUnknownOp)
}
