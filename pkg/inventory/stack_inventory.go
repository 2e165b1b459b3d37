// pkg/inventory/stack_inventory.go
package inventory

var _ Notifier[int] = (*StackInventory[int])(nil)

// StackInventory 堆叠库存，以物品数组为单位存取
type StackInventory[T comparable] struct {
	stacks[T]
}

// NewStackInventory 使用调用方提供的堆叠槽位创建库存
func NewStackInventory[T comparable](slots []Stack[T], opts ...Option) (*StackInventory[T], error) {
	base, err := newStacks(slots, opts)
	if err != nil {
		return nil, err
	}
	inv := &StackInventory[T]{stacks: base}
	inv.sender = inv
	return inv, nil
}

// ===== 添加物品 =====

// Add 放入一个物品：优先放入已有同类且未满的堆叠，其次第一个空槽位
func (inv *StackInventory[T]) Add(item T) bool {
	left, changes := inv.fill(item, 1, func(slot Stack[T], left int) int {
		if slot.Add(item) {
			return left - 1
		}
		return left
	})
	inv.emitAdded(changes)
	return left == 0
}

// AddItems 把一批相同物品分配到多个槽位，返回放不下的部分
func (inv *StackInventory[T]) AddItems(items []T) ([]T, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if err := checkBatch(items); err != nil {
		return nil, err
	}

	left, changes := inv.fill(items[0], len(items), func(slot Stack[T], left int) int {
		rest, err := slot.AddItems(items[len(items)-left:])
		if err != nil {
			return left
		}
		return len(rest)
	})
	inv.emitAdded(changes)
	return suffix(items, len(items)-left), nil
}

// AddAt 放入指定槽位
// replace=true：替换槽位内容，返回被替换出的物品
// replace=false：仅在槽位能接收时放入，否则返回 [item]
func (inv *StackInventory[T]) AddAt(item T, index int, replace bool) ([]T, error) {
	if err := inv.checkIndex(index); err != nil {
		return nil, err
	}
	if isAbsent(item) {
		return nil, ErrNilItem
	}

	if replace {
		old, n, err := inv.replaceAt(index, item, 1)
		if err != nil {
			return nil, err
		}
		return repeat(old, n), nil
	}

	if !inv.slots[index].Add(item) {
		return []T{item}, nil
	}
	inv.emitAdded([]Change[T]{{Item: item, Index: index, Amount: 1}})
	return nil, nil
}

// ===== 取出物品 =====

// GetAt 从指定槽位取出最多 amount 个物品
func (inv *StackInventory[T]) GetAt(index, amount int) ([]T, error) {
	if err := inv.checkIndex(index); err != nil {
		return nil, err
	}
	out, err := inv.slots[index].GetItems(amount)
	if err != nil {
		return nil, err
	}
	if len(out) > 0 {
		inv.emitRemoved([]Change[T]{{Item: out[0], Index: index, Amount: len(out)}})
	}
	return out, nil
}

// GetItems 从所有槽位中取出最多 amount 个 item
func (inv *StackInventory[T]) GetItems(item T, amount int) ([]T, error) {
	if amount <= 0 {
		return nil, amountError(amount)
	}
	return inv.take(func(slot Stack[T]) bool { return slot.Contains(item) }, amount), nil
}

// GetAll 取出所有 item
func (inv *StackInventory[T]) GetAll(item T) []T {
	return inv.take(func(slot Stack[T]) bool { return slot.Contains(item) }, -1)
}

// Clear 清空所有槽位
func (inv *StackInventory[T]) Clear() []T {
	return inv.take(func(slot Stack[T]) bool { return !slot.IsEmpty() }, -1)
}

// take limit < 0 表示不限数量
func (inv *StackInventory[T]) take(match func(Stack[T]) bool, limit int) []T {
	var (
		out     []T
		changes []Change[T]
	)
	for i, slot := range inv.slots {
		if limit >= 0 && len(out) == limit {
			break
		}
		if !match(slot) {
			continue
		}

		var got []T
		if limit < 0 {
			got = slot.GetAll()
		} else {
			got, _ = slot.GetItems(limit - len(out))
		}
		if len(got) == 0 {
			continue
		}
		out = append(out, got...)
		changes = append(changes, Change[T]{Item: got[0], Index: i, Amount: len(got)})
	}

	inv.emitRemoved(changes)
	return out
}
