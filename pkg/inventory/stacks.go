// pkg/inventory/stacks.go
package inventory

import "github.com/cockroachdb/errors"

// stacks StackInventory 与 LazyStackInventory 共用的槽位集合
type stacks[T comparable] struct {
	Events[T]
	id    string
	slots []Stack[T]
}

func newStacks[T comparable](slots []Stack[T], opts []Option) (stacks[T], error) {
	if err := checkSlots(slots); err != nil {
		return stacks[T]{}, err
	}
	o := applyOptions(opts)
	return stacks[T]{
		id:    o.id,
		slots: append([]Stack[T](nil), slots...),
	}, nil
}

func (s *stacks[T]) ID() string { return s.id }
func (s *stacks[T]) Size() int  { return len(s.slots) }

// Peek 查看槽位的物品和数量
func (s *stacks[T]) Peek(index int) (T, int, error) {
	var zero T
	if err := s.checkIndex(index); err != nil {
		return zero, 0, err
	}
	item, ok := s.slots[index].Item()
	if !ok {
		return zero, 0, nil
	}
	return item, s.slots[index].Amount(), nil
}

// GetCount 所有槽位中 item 的总数量
func (s *stacks[T]) GetCount(item T) int {
	count := 0
	for _, slot := range s.slots {
		if slot.Contains(item) {
			count += slot.Amount()
		}
	}
	return count
}

// Move 整堆交换两个槽位的内容；origin == target 时不做任何事
// 任一堆叠超过对方槽位上限或槽位拒收时返回错误，不做任何修改
func (s *stacks[T]) Move(origin, target int) error {
	if err := s.checkIndex(origin); err != nil {
		return err
	}
	if err := s.checkIndex(target); err != nil {
		return err
	}
	if origin == target {
		return nil
	}

	from, to := s.slots[origin], s.slots[target]
	if from.Amount() > to.MaxAmount() {
		return errors.Wrapf(ErrCapacityExceeded, "slot %d holds %d, slot %d max %d",
			origin, from.Amount(), target, to.MaxAmount())
	}
	if to.Amount() > from.MaxAmount() {
		return errors.Wrapf(ErrCapacityExceeded, "slot %d holds %d, slot %d max %d",
			target, to.Amount(), origin, from.MaxAmount())
	}

	movingItem, movingAmount := from.GetAllAmount()
	displacedItem, displacedAmount := to.GetAllAmount()
	err := putAmount(to, movingItem, movingAmount)
	if err == nil {
		err = putAmount(from, displacedItem, displacedAmount)
	}
	if err != nil {
		// 槽位拒收时还原两个槽位
		from.GetAllAmount()
		to.GetAllAmount()
		_ = putAmount(from, movingItem, movingAmount)
		_ = putAmount(to, displacedItem, displacedAmount)
		return errors.Wrapf(err, "move slot %d to %d", origin, target)
	}

	var transfers []Transfer[T]
	if movingAmount > 0 {
		transfers = append(transfers, Transfer[T]{Item: movingItem, Amount: movingAmount, From: origin, To: target})
	}
	if displacedAmount > 0 {
		transfers = append(transfers, Transfer[T]{Item: displacedItem, Amount: displacedAmount, From: target, To: origin})
	}
	s.emitMoved(transfers)
	return nil
}

// fill 把 amount 个 item 分配到槽位：先补已有同类堆叠，再占用空槽位
// add 返回放入后的剩余数量
func (s *stacks[T]) fill(item T, amount int, add func(slot Stack[T], left int) int) (int, []Change[T]) {
	var changes []Change[T]
	left := amount

	for pass := 0; pass < 2 && left > 0; pass++ {
		for i, slot := range s.slots {
			if left == 0 {
				break
			}
			stacked := slot.Contains(item)
			if (pass == 0) != stacked || !slot.CanAdd(item) {
				continue
			}
			rest := add(slot, left)
			if placed := left - rest; placed > 0 {
				changes = append(changes, Change[T]{Item: item, Index: i, Amount: placed})
			}
			left = rest
		}
	}
	return left, changes
}

// drain 从匹配的槽位依次取出，直到满足 amount
func (s *stacks[T]) drain(match func(Stack[T]) bool, amount int) []Change[T] {
	var changes []Change[T]
	left := amount

	for i, slot := range s.slots {
		if left == 0 {
			break
		}
		if !match(slot) {
			continue
		}
		item, n, _ := slot.GetAmount(left)
		if n == 0 {
			continue
		}
		changes = append(changes, Change[T]{Item: item, Index: i, Amount: n})
		left -= n
	}
	return changes
}

// replaceAt 替换指定槽位，返回原内容
func (s *stacks[T]) replaceAt(index int, item T, amount int) (T, int, error) {
	slot := s.slots[index]
	old, oldAmount, err := slot.ReplaceAmount(item, amount)
	if err != nil {
		return old, oldAmount, err
	}
	// 槽位拒绝时原样返回 (item, amount)，内容不变
	if cur, ok := slot.Item(); !ok || cur != item || slot.Amount() != amount {
		return old, oldAmount, nil
	}
	s.emitReplaced([]Replacement[T]{{
		Item:      item,
		Index:     index,
		Amount:    amount,
		OldItem:   old,
		OldAmount: oldAmount,
	}})
	return old, oldAmount, nil
}

// putAmount 把 amount 个 item 整体放入槽位，放不下时返回错误
func putAmount[T comparable](slot Stack[T], item T, amount int) error {
	if amount == 0 {
		return nil
	}
	left, err := slot.AddAmount(item, amount)
	if err != nil {
		return err
	}
	if left > 0 {
		return errors.Wrapf(ErrCapacityExceeded, "%d of %d left over", left, amount)
	}
	return nil
}

func (s *stacks[T]) checkIndex(index int) error {
	if index < 0 || index >= len(s.slots) {
		return indexError(index, len(s.slots))
	}
	return nil
}
