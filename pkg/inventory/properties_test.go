package inventory

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var poolItems = []string{"a", "b", "c"}

type movable interface {
	Size() int
	Move(origin, target int) error
	GetCount(item string) int
}

// movableKinds 三种库存，snapshot 以 (item, amount) 描述每个槽位
var movableKinds = []struct {
	name  string
	build func(t *testing.T, maxAmount int, fills []stackFill) (movable, func() []stackFill)
}{
	{
		name: "single",
		build: func(t *testing.T, _ int, fills []stackFill) (movable, func() []stackFill) {
			items := make([]string, len(fills))
			for i, fill := range fills {
				items[i] = fill.item
			}
			inv, _ := newTestInventory(t, items...)
			return inv, func() []stackFill {
				out := make([]stackFill, inv.Size())
				for i, item := range contents(t, inv) {
					if item != "" {
						out[i] = stackFill{item: item, amount: 1}
					}
				}
				return out
			}
		},
	},
	{
		name: "stack",
		build: func(t *testing.T, maxAmount int, fills []stackFill) (movable, func() []stackFill) {
			inv, _ := newTestStackInventory(t, maxAmount, fills...)
			return inv, func() []stackFill { return peekAll(t, inv) }
		},
	},
	{
		name: "lazy",
		build: func(t *testing.T, maxAmount int, fills []stackFill) (movable, func() []stackFill) {
			inv, _ := newTestLazyInventory(t, maxAmount, fills...)
			return inv, func() []stackFill { return peekAll(t, inv) }
		},
	},
}

func randomFills(rng *rand.Rand, size, maxAmount int) []stackFill {
	fills := make([]stackFill, size)
	for i := range fills {
		if rng.IntN(3) == 0 {
			continue
		}
		fills[i] = stackFill{
			item:   poolItems[rng.IntN(len(poolItems))],
			amount: 1 + rng.IntN(maxAmount),
		}
	}
	return fills
}

func counts(inv movable) (map[string]int, int) {
	per := make(map[string]int, len(poolItems))
	total := 0
	for _, item := range poolItems {
		per[item] = inv.GetCount(item)
		total += per[item]
	}
	return per, total
}

// TestMoveTwiceRestores 同一对槽位连续 Move 两次后回到原状态
func TestMoveTwiceRestores(t *testing.T) {
	for _, kind := range movableKinds {
		t.Run(kind.name, func(t *testing.T) {
			rng := rand.New(rand.NewPCG(3, 5))
			for round := 0; round < 200; round++ {
				fills := randomFills(rng, 1+rng.IntN(5), 4)
				inv, snapshot := kind.build(t, 4, fills)
				before := snapshot()

				a, b := rng.IntN(inv.Size()), rng.IntN(inv.Size())
				require.NoError(t, inv.Move(a, b))
				require.NoError(t, inv.Move(a, b))
				require.Equal(t, before, snapshot(), "round %d move %d %d", round, a, b)
			}
		})
	}
}

// TestMoveConservesCounts Move 前后每种物品的数量与总数不变
func TestMoveConservesCounts(t *testing.T) {
	for _, kind := range movableKinds {
		t.Run(kind.name, func(t *testing.T) {
			rng := rand.New(rand.NewPCG(19, 23))
			for round := 0; round < 50; round++ {
				inv, _ := kind.build(t, 3, randomFills(rng, 2+rng.IntN(5), 3))
				for step := 0; step < 20; step++ {
					perBefore, totalBefore := counts(inv)
					require.NoError(t, inv.Move(rng.IntN(inv.Size()), rng.IntN(inv.Size())))
					perAfter, totalAfter := counts(inv)
					require.Equal(t, totalBefore, totalAfter, "round %d step %d", round, step)
					require.Equal(t, perBefore, perAfter, "round %d step %d", round, step)
				}
			}
		})
	}

	t.Run("rejected move", func(t *testing.T) {
		big, err := NewLazyStackSlot(5, "a", 4)
		require.NoError(t, err)
		small, err := NewLazyStackSlot(2, "b", 1)
		require.NoError(t, err)
		inv, err := NewLazyStackInventory([]Stack[string]{big, small})
		require.NoError(t, err)

		perBefore, totalBefore := counts(inv)
		assert.ErrorIs(t, inv.Move(0, 1), ErrCapacityExceeded)
		perAfter, totalAfter := counts(inv)
		assert.Equal(t, totalBefore, totalAfter)
		assert.Equal(t, perBefore, perAfter)
	})
}

// TestStackInventoriesEquivalence 随机操作序列下两种堆叠库存的返回值、槽位状态与通知一致
func TestStackInventoriesEquivalence(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 17))

	for round := 0; round < 200; round++ {
		maxAmount := 1 + rng.IntN(4)
		fills := randomFills(rng, 1+rng.IntN(5), maxAmount)
		eager, re := newTestStackInventory(t, maxAmount, fills...)
		lazy, rl := newTestLazyInventory(t, maxAmount, fills...)
		size := len(fills)

		for step := 0; step < 30; step++ {
			item := poolItems[rng.IntN(len(poolItems))]

			switch rng.IntN(7) {
			case 0:
				n := 1 + rng.IntN(2*maxAmount)
				rest, err := eager.AddItems(repeat(item, n))
				require.NoError(t, err)
				left, err := lazy.Add(item, n)
				require.NoError(t, err)
				require.Equal(t, len(rest), left)
			case 1:
				index, replace := rng.IntN(size), rng.IntN(2) == 0
				out, err := eager.AddAt(item, index, replace)
				require.NoError(t, err)
				old, n, err := lazy.AddAt(item, 1, index, replace)
				require.NoError(t, err)
				require.Len(t, out, n)
				if n > 0 {
					require.Equal(t, out[0], old)
				}
			case 2:
				index, n := rng.IntN(size), 1+rng.IntN(maxAmount)
				out, err := eager.GetAt(index, n)
				require.NoError(t, err)
				got, m, err := lazy.GetAt(index, n)
				require.NoError(t, err)
				require.Len(t, out, m)
				if m > 0 {
					require.Equal(t, out[0], got)
				}
			case 3:
				n := 1 + rng.IntN(2*maxAmount)
				out, err := eager.GetItems(item, n)
				require.NoError(t, err)
				m, err := lazy.Get(item, n)
				require.NoError(t, err)
				require.Len(t, out, m)
			case 4:
				require.Len(t, eager.GetAll(item), lazy.GetAll(item))
			case 5:
				a, b := rng.IntN(size), rng.IntN(size)
				require.NoError(t, eager.Move(a, b))
				require.NoError(t, lazy.Move(a, b))
			case 6:
				if rng.IntN(4) != 0 {
					continue
				}
				require.Len(t, eager.Clear(), totalAmount(lazy.Clear()))
			}

			state := peekAll(t, eager)
			require.Equal(t, state, peekAll(t, lazy), "round %d step %d", round, step)
			for _, slot := range state {
				require.GreaterOrEqual(t, slot.amount, 0)
				require.LessOrEqual(t, slot.amount, maxAmount)
			}
		}

		assert.Equal(t, re.added, rl.added, "round %d", round)
		assert.Equal(t, re.removed, rl.removed, "round %d", round)
		assert.Equal(t, re.replaced, rl.replaced, "round %d", round)
		assert.Equal(t, re.moved, rl.moved, "round %d", round)
	}
}
