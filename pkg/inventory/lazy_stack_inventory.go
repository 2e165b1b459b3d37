// pkg/inventory/lazy_stack_inventory.go
package inventory

var _ Notifier[int] = (*LazyStackInventory[int])(nil)

// LazyStackInventory 堆叠库存，以 (物品, 数量) 为单位存取
type LazyStackInventory[T comparable] struct {
	stacks[T]
}

// NewLazyStackInventory 使用调用方提供的堆叠槽位创建库存
func NewLazyStackInventory[T comparable](slots []Stack[T], opts ...Option) (*LazyStackInventory[T], error) {
	base, err := newStacks(slots, opts)
	if err != nil {
		return nil, err
	}
	inv := &LazyStackInventory[T]{stacks: base}
	inv.sender = inv
	return inv, nil
}

// Add 放入 amount 个 item，返回放不下的数量
func (inv *LazyStackInventory[T]) Add(item T, amount int) (int, error) {
	if isAbsent(item) {
		return 0, ErrNilItem
	}
	if amount <= 0 {
		return 0, amountError(amount)
	}

	left, changes := inv.fill(item, amount, func(slot Stack[T], left int) int {
		rest, err := slot.AddAmount(item, left)
		if err != nil {
			return left
		}
		return rest
	})
	inv.emitAdded(changes)
	return left, nil
}

// AddAt 放入指定槽位
// replace=true：替换槽位内容，返回被替换出的物品和数量
// replace=false：尽量放入，返回放不下的 item 和数量
func (inv *LazyStackInventory[T]) AddAt(item T, amount, index int, replace bool) (T, int, error) {
	var zero T
	if err := inv.checkIndex(index); err != nil {
		return zero, 0, err
	}
	if isAbsent(item) {
		return zero, 0, ErrNilItem
	}
	if amount <= 0 {
		return zero, 0, amountError(amount)
	}

	if replace {
		return inv.replaceAt(index, item, amount)
	}

	slot := inv.slots[index]
	if !slot.CanAdd(item) {
		return item, amount, nil
	}
	left, err := slot.AddAmount(item, amount)
	if err != nil {
		return zero, 0, err
	}
	inv.emitAdded([]Change[T]{{Item: item, Index: index, Amount: amount - left}})
	if left == 0 {
		return zero, 0, nil
	}
	return item, left, nil
}

// GetAt 从指定槽位取出最多 amount 个
func (inv *LazyStackInventory[T]) GetAt(index, amount int) (T, int, error) {
	var zero T
	if err := inv.checkIndex(index); err != nil {
		return zero, 0, err
	}
	item, n, err := inv.slots[index].GetAmount(amount)
	if err != nil {
		return zero, 0, err
	}
	if n > 0 {
		inv.emitRemoved([]Change[T]{{Item: item, Index: index, Amount: n}})
	}
	return item, n, nil
}

// Get 从所有槽位中取出最多 amount 个 item，返回实际取出的数量
func (inv *LazyStackInventory[T]) Get(item T, amount int) (int, error) {
	if amount <= 0 {
		return 0, amountError(amount)
	}
	changes := inv.drain(func(slot Stack[T]) bool { return slot.Contains(item) }, amount)
	inv.emitRemoved(changes)
	return totalAmount(changes), nil
}

// GetAll 取出所有 item，返回数量
func (inv *LazyStackInventory[T]) GetAll(item T) int {
	changes := inv.clearWhere(func(slot Stack[T]) bool { return slot.Contains(item) })
	return totalAmount(changes)
}

// Clear 清空所有槽位，返回每个槽位取出的内容
func (inv *LazyStackInventory[T]) Clear() []Change[T] {
	return inv.clearWhere(func(slot Stack[T]) bool { return !slot.IsEmpty() })
}

func (inv *LazyStackInventory[T]) clearWhere(match func(Stack[T]) bool) []Change[T] {
	var changes []Change[T]
	for i, slot := range inv.slots {
		if !match(slot) {
			continue
		}
		item, n := slot.GetAllAmount()
		if n == 0 {
			continue
		}
		changes = append(changes, Change[T]{Item: item, Index: i, Amount: n})
	}

	inv.emitRemoved(changes)
	return append([]Change[T](nil), changes...)
}
