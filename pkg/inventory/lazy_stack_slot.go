// pkg/inventory/lazy_stack_slot.go
package inventory

import "github.com/cockroachdb/errors"

var _ Stack[int] = (*LazyStackSlot[int])(nil)

// LazyStackSlot 以 (物品, 数量) 保存堆叠的槽位
// 对外行为与 StackSlot 完全一致，内部不展开物品数组
type LazyStackSlot[T comparable] struct {
	item   T
	amount int
	max    int
}

// NewLazyStackSlot 创建数量寻址的堆叠槽位
func NewLazyStackSlot[T comparable](maxAmount int, item T, amount int) (*LazyStackSlot[T], error) {
	if maxAmount < 1 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "max amount %d", maxAmount)
	}
	s := &LazyStackSlot[T]{max: maxAmount}
	if amount == 0 {
		return s, nil
	}
	if isAbsent(item) {
		return nil, ErrNilItem
	}
	if amount < 0 {
		return nil, amountError(amount)
	}
	if amount > maxAmount {
		return nil, errors.Wrapf(ErrAmountOutOfRange, "amount %d, max %d", amount, maxAmount)
	}
	s.item = item
	s.amount = amount
	return s, nil
}

func (s *LazyStackSlot[T]) IsEmpty() bool  { return s.amount == 0 }
func (s *LazyStackSlot[T]) IsFull() bool   { return s.amount == s.max }
func (s *LazyStackSlot[T]) Amount() int    { return s.amount }
func (s *LazyStackSlot[T]) MaxAmount() int { return s.max }

func (s *LazyStackSlot[T]) Item() (T, bool) {
	return s.item, s.amount > 0
}

func (s *LazyStackSlot[T]) Contains(item T) bool {
	return s.amount > 0 && s.item == item
}

// ===== 数量寻址 =====

func (s *LazyStackSlot[T]) CanAddAmount(item T, amount int) bool {
	if amount <= 0 || amount > s.max {
		return false
	}
	return s.CanAdd(item)
}

// AddAmount 放入 amount 个物品，返回剩余数量（全部放入时为 0）
func (s *LazyStackSlot[T]) AddAmount(item T, amount int) (int, error) {
	if isAbsent(item) {
		return 0, ErrNilItem
	}
	if amount <= 0 {
		return 0, amountError(amount)
	}
	if s.amount > 0 && s.item != item {
		return 0, ErrItemMismatch
	}

	n := min(amount, s.max-s.amount)
	if n > 0 {
		s.item = item
		s.amount += n
	}
	return amount - n, nil
}

func (s *LazyStackSlot[T]) GetAmount(amount int) (T, int, error) {
	var zero T
	if amount <= 0 {
		return zero, 0, amountError(amount)
	}
	if s.amount == 0 {
		return zero, 0, nil
	}

	item := s.item
	n := min(amount, s.amount)
	s.amount -= n
	if s.amount == 0 {
		s.item = zero
	}
	return item, n, nil
}

func (s *LazyStackSlot[T]) GetAllAmount() (T, int) {
	var zero T
	item, n := s.item, s.amount
	s.item, s.amount = zero, 0
	return item, n
}

// ReplaceAmount 超过槽位上限时返回 ErrCapacityExceeded
func (s *LazyStackSlot[T]) ReplaceAmount(item T, amount int) (T, int, error) {
	var zero T
	if isAbsent(item) {
		return zero, 0, ErrNilItem
	}
	if amount <= 0 {
		return zero, 0, amountError(amount)
	}
	if amount > s.max {
		return zero, 0, errors.Wrapf(ErrCapacityExceeded, "amount %d, max %d", amount, s.max)
	}
	if s.amount == 0 {
		s.item, s.amount = item, amount
		return zero, 0, nil
	}

	old, n := s.GetAllAmount()
	if left, err := s.AddAmount(item, amount); err == nil && left == 0 {
		return old, n, nil
	}
	s.item, s.amount = old, n
	return item, amount, nil
}

// ===== 物品数组寻址 =====

func (s *LazyStackSlot[T]) CanAdd(item T) bool {
	if isAbsent(item) || s.IsFull() {
		return false
	}
	return s.amount == 0 || s.item == item
}

func (s *LazyStackSlot[T]) Add(item T) bool {
	if !s.CanAdd(item) {
		return false
	}
	s.item = item
	s.amount++
	return true
}

func (s *LazyStackSlot[T]) CanAddItems(items []T) bool {
	if len(items) == 0 || s.IsFull() {
		return false
	}
	for _, item := range items {
		if !s.CanAdd(item) || item != items[0] {
			return false
		}
	}
	return true
}

func (s *LazyStackSlot[T]) AddItems(items []T) ([]T, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if err := checkBatch(items); err != nil {
		return nil, err
	}
	left, err := s.AddAmount(items[0], len(items))
	if err != nil {
		return nil, err
	}
	return suffix(items, len(items)-left), nil
}

func (s *LazyStackSlot[T]) Get() (T, bool) {
	item, n, _ := s.GetAmount(1)
	return item, n == 1
}

func (s *LazyStackSlot[T]) GetItems(amount int) ([]T, error) {
	item, n, err := s.GetAmount(amount)
	if err != nil {
		return nil, err
	}
	return repeat(item, n), nil
}

func (s *LazyStackSlot[T]) GetAll() []T {
	item, n := s.GetAllAmount()
	return repeat(item, n)
}

func (s *LazyStackSlot[T]) Replace(item T) ([]T, error) {
	old, n, err := s.ReplaceAmount(item, 1)
	if err != nil {
		return nil, err
	}
	return repeat(old, n), nil
}

func (s *LazyStackSlot[T]) ReplaceItems(items []T) ([]T, error) {
	if err := checkBatch(items); err != nil {
		return nil, err
	}
	if len(items) > s.max {
		return nil, errors.Wrapf(ErrAmountOutOfRange, "amount %d, max %d", len(items), s.max)
	}
	old, n, err := s.ReplaceAmount(items[0], len(items))
	if err != nil {
		return nil, err
	}
	return repeat(old, n), nil
}
