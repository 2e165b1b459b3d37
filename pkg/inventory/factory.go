// pkg/inventory/factory.go
package inventory

import "github.com/cockroachdb/errors"

// SlotFactory 按索引创建槽位
type SlotFactory[S any] func(index int) (S, error)

// BuildSlots 用 factory 创建 size 个槽位
func BuildSlots[S any](size int, factory SlotFactory[S]) ([]S, error) {
	if size <= 0 {
		return nil, ErrNoSlots
	}
	slots := make([]S, size)
	for i := range slots {
		slot, err := factory(i)
		if err != nil {
			return nil, errors.Wrapf(err, "build slot %d", i)
		}
		slots[i] = slot
	}
	return slots, nil
}

// NewSlotInventory 创建 size 个空 Slot 组成的单物品库存
func NewSlotInventory[T comparable](size int, opts ...Option) (*Inventory[T], error) {
	slots, err := BuildSlots[ItemSlot[T]](size, func(int) (ItemSlot[T], error) {
		var zero T
		return NewSlot(zero), nil
	})
	if err != nil {
		return nil, err
	}
	return NewInventory(slots, opts...)
}

// NewStackSlotInventory 创建 size 个空 StackSlot 组成的堆叠库存
func NewStackSlotInventory[T comparable](size, maxAmount int, opts ...Option) (*StackInventory[T], error) {
	slots, err := BuildSlots(size, StackSlotFactory[T](maxAmount))
	if err != nil {
		return nil, err
	}
	return NewStackInventory(slots, opts...)
}

// NewLazySlotInventory 创建 size 个空 LazyStackSlot 组成的数量寻址库存
func NewLazySlotInventory[T comparable](size, maxAmount int, opts ...Option) (*LazyStackInventory[T], error) {
	slots, err := BuildSlots(size, LazyStackSlotFactory[T](maxAmount))
	if err != nil {
		return nil, err
	}
	return NewLazyStackInventory(slots, opts...)
}

// StackSlotFactory 空 StackSlot 工厂
func StackSlotFactory[T comparable](maxAmount int) SlotFactory[Stack[T]] {
	return func(int) (Stack[T], error) {
		slot, err := NewStackSlot[T](maxAmount)
		if err != nil {
			return nil, err
		}
		return slot, nil
	}
}

// LazyStackSlotFactory 空 LazyStackSlot 工厂
func LazyStackSlotFactory[T comparable](maxAmount int) SlotFactory[Stack[T]] {
	return func(int) (Stack[T], error) {
		var zero T
		slot, err := NewLazyStackSlot(maxAmount, zero, 0)
		if err != nil {
			return nil, err
		}
		return slot, nil
	}
}
