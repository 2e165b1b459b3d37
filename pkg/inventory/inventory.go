// pkg/inventory/inventory.go
package inventory

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

var _ Notifier[int] = (*Inventory[int])(nil)

// Inventory 单物品库存：每个槽位最多一个物品
// 槽位数量在构造时确定，之后不再改变
type Inventory[T comparable] struct {
	Events[T]
	id    string
	slots []ItemSlot[T]
}

// NewInventory 使用调用方提供的槽位创建库存
func NewInventory[T comparable](slots []ItemSlot[T], opts ...Option) (*Inventory[T], error) {
	if err := checkSlots(slots); err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	inv := &Inventory[T]{
		id:    o.id,
		slots: append([]ItemSlot[T](nil), slots...),
	}
	inv.sender = inv
	return inv, nil
}

// ===== 基础信息 =====

func (inv *Inventory[T]) ID() string { return inv.id }
func (inv *Inventory[T]) Size() int  { return len(inv.slots) }

// Peek 查看槽位内容，不修改也不通知
func (inv *Inventory[T]) Peek(index int) (T, bool, error) {
	if err := inv.checkIndex(index); err != nil {
		var zero T
		return zero, false, err
	}
	item, ok := inv.slots[index].Item()
	return item, ok, nil
}

// GetCount 内容等于 item 的槽位数
func (inv *Inventory[T]) GetCount(item T) int {
	count := 0
	for _, slot := range inv.slots {
		if slot.Contains(item) {
			count++
		}
	}
	return count
}

// ===== 添加物品 =====

// Add 放入第一个能接收该物品的槽位
func (inv *Inventory[T]) Add(item T) bool {
	for i, slot := range inv.slots {
		if slot.Add(item) {
			inv.emitAdded([]Change[T]{{Item: item, Index: i, Amount: 1}})
			return true
		}
	}
	return false
}

// AddItems 按顺序把物品放入后续的空槽位，返回没有放下的部分
// 空值占位会被跳过，不占用槽位，也不出现在通知中
func (inv *Inventory[T]) AddItems(items []T) []T {
	var changes []Change[T]
	slotIndex := 0
	placed := 0

	for ; placed < len(items); placed++ {
		item := items[placed]
		if isAbsent(item) {
			continue
		}
		for slotIndex < len(inv.slots) && !inv.slots[slotIndex].CanAdd(item) {
			slotIndex++
		}
		if slotIndex == len(inv.slots) {
			break
		}
		inv.slots[slotIndex].Add(item)
		changes = append(changes, Change[T]{Item: item, Index: slotIndex, Amount: 1})
		slotIndex++
	}

	inv.emitAdded(changes)
	return suffix(items, placed)
}

// AddAt 放入指定槽位
// replace=true：无条件替换，返回原内容，并且总是通知
// replace=false：仅当槽位为空时放入；放不下时原样返回 item
func (inv *Inventory[T]) AddAt(item T, index int, replace bool) (T, bool, error) {
	var zero T
	if err := inv.checkIndex(index); err != nil {
		return zero, false, err
	}
	if isAbsent(item) {
		return zero, false, ErrNilItem
	}

	slot := inv.slots[index]
	if replace {
		old, ok := slot.Replace(item)
		r := Replacement[T]{Item: item, Index: index, Amount: 1}
		if ok {
			r.OldItem, r.OldAmount = old, 1
		}
		inv.emitReplaced([]Replacement[T]{r})
		return old, ok, nil
	}

	if !slot.IsEmpty() || !slot.Add(item) {
		return item, true, nil
	}
	inv.emitAdded([]Change[T]{{Item: item, Index: index, Amount: 1}})
	return zero, false, nil
}

// ===== 取出物品 =====

// Get 取出指定槽位的物品
func (inv *Inventory[T]) Get(index int) (T, bool, error) {
	if err := inv.checkIndex(index); err != nil {
		var zero T
		return zero, false, err
	}
	item, ok := inv.slots[index].Get()
	if ok {
		inv.emitRemoved([]Change[T]{{Item: item, Index: index, Amount: 1}})
	}
	return item, ok, nil
}

// GetItem 取出第一个等于 item 的物品
func (inv *Inventory[T]) GetItem(item T) (T, bool) {
	for i, slot := range inv.slots {
		if !slot.Contains(item) {
			continue
		}
		got, ok := slot.Get()
		if ok {
			inv.emitRemoved([]Change[T]{{Item: got, Index: i, Amount: 1}})
		}
		return got, ok
	}
	var zero T
	return zero, false
}

// GetItems 最多取出 amount 个等于 item 的物品
func (inv *Inventory[T]) GetItems(item T, amount int) ([]T, error) {
	if amount <= 0 {
		return nil, amountError(amount)
	}
	return inv.take(func(slot ItemSlot[T]) bool { return slot.Contains(item) }, amount), nil
}

// GetAll 取出所有等于 item 的物品
func (inv *Inventory[T]) GetAll(item T) []T {
	return inv.take(func(slot ItemSlot[T]) bool { return slot.Contains(item) }, len(inv.slots))
}

// Clear 清空所有槽位，返回取出的物品
func (inv *Inventory[T]) Clear() []T {
	return inv.take(func(slot ItemSlot[T]) bool { return !slot.IsEmpty() }, len(inv.slots))
}

func (inv *Inventory[T]) take(match func(ItemSlot[T]) bool, limit int) []T {
	var (
		out     []T
		changes []Change[T]
	)
	for i, slot := range inv.slots {
		if len(out) == limit {
			break
		}
		if !match(slot) {
			continue
		}
		got, ok := slot.Get()
		if !ok {
			continue
		}
		out = append(out, got)
		changes = append(changes, Change[T]{Item: got, Index: i, Amount: 1})
	}

	inv.emitRemoved(changes)
	return out
}

// ===== 移动物品 =====

// Move 交换两个槽位的内容；origin == target 时不做任何事
func (inv *Inventory[T]) Move(origin, target int) error {
	if err := inv.checkIndex(origin); err != nil {
		return err
	}
	if err := inv.checkIndex(target); err != nil {
		return err
	}
	if origin == target {
		return nil
	}

	from, to := inv.slots[origin], inv.slots[target]
	var zero T

	moving, hasMoving := from.Replace(zero)
	var displaced T
	var hasDisplaced bool
	if hasMoving {
		displaced, hasDisplaced = to.Replace(moving)
	} else {
		displaced, hasDisplaced = to.Replace(zero)
	}
	if hasDisplaced {
		from.Replace(displaced)
	}

	var transfers []Transfer[T]
	if hasMoving {
		transfers = append(transfers, Transfer[T]{Item: moving, Amount: 1, From: origin, To: target})
	}
	if hasDisplaced {
		transfers = append(transfers, Transfer[T]{Item: displaced, Amount: 1, From: target, To: origin})
	}
	inv.emitMoved(transfers)
	return nil
}

func (inv *Inventory[T]) checkIndex(index int) error {
	if index < 0 || index >= len(inv.slots) {
		return indexError(index, len(inv.slots))
	}
	return nil
}

// checkSlots 校验槽位：非空、无 nil、同一实例不能出现两次
func checkSlots[S any](slots []S) error {
	if len(slots) == 0 {
		return ErrNoSlots
	}
	seen := make(map[any]int, len(slots))
	for i, slot := range slots {
		v := any(slot)
		if v == nil {
			return errors.Wrapf(ErrNilSlot, "slots[%d]", i)
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return errors.Wrapf(ErrNilSlot, "slots[%d]", i)
		}
		if !rv.Type().Comparable() {
			continue
		}
		if j, ok := seen[v]; ok {
			return errors.Wrapf(ErrSharedSlot, "slots[%d] and slots[%d]", j, i)
		}
		seen[v] = i
	}
	return nil
}
