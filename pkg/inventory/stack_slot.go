// pkg/inventory/stack_slot.go
package inventory

import "github.com/cockroachdb/errors"

// Stack 堆叠槽位接口
// StackInventory 和 LazyStackInventory 都基于此接口工作，
// StackSlot 与 LazyStackSlot 对同一输入必须给出完全一致的结果
type Stack[T comparable] interface {
	// ===== 状态查询 =====
	IsEmpty() bool
	IsFull() bool
	Amount() int
	MaxAmount() int
	Item() (T, bool)
	Contains(item T) bool

	// ===== 物品数组寻址 =====
	CanAdd(item T) bool
	Add(item T) bool
	CanAddItems(items []T) bool
	AddItems(items []T) ([]T, error)
	Get() (T, bool)
	GetItems(amount int) ([]T, error)
	GetAll() []T
	Replace(item T) ([]T, error)
	ReplaceItems(items []T) ([]T, error)

	// ===== 数量寻址 =====
	CanAddAmount(item T, amount int) bool
	AddAmount(item T, amount int) (int, error)
	GetAmount(amount int) (T, int, error)
	GetAllAmount() (T, int)
	ReplaceAmount(item T, amount int) (T, int, error)
}

var _ Stack[int] = (*StackSlot[int])(nil)

// StackSlot 以物品数组保存堆叠的槽位
type StackSlot[T comparable] struct {
	items []T
	max   int
}

// NewStackSlot 创建堆叠槽位，items 为初始内容
func NewStackSlot[T comparable](maxAmount int, items ...T) (*StackSlot[T], error) {
	if maxAmount < 1 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "max amount %d", maxAmount)
	}
	s := &StackSlot[T]{
		items: make([]T, 0, min(maxAmount, 64)),
		max:   maxAmount,
	}
	if len(items) == 0 {
		return s, nil
	}
	if err := checkBatch(items); err != nil {
		return nil, err
	}
	if len(items) > maxAmount {
		return nil, errors.Wrapf(ErrAmountOutOfRange, "amount %d, max %d", len(items), maxAmount)
	}
	s.items = append(s.items, items...)
	return s, nil
}

func (s *StackSlot[T]) IsEmpty() bool  { return len(s.items) == 0 }
func (s *StackSlot[T]) IsFull() bool   { return len(s.items) == s.max }
func (s *StackSlot[T]) Amount() int    { return len(s.items) }
func (s *StackSlot[T]) MaxAmount() int { return s.max }

func (s *StackSlot[T]) Item() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[0], true
}

func (s *StackSlot[T]) Contains(item T) bool {
	return len(s.items) > 0 && s.items[0] == item
}

// ===== 物品数组寻址 =====

func (s *StackSlot[T]) CanAdd(item T) bool {
	if isAbsent(item) || s.IsFull() {
		return false
	}
	return s.IsEmpty() || s.items[0] == item
}

func (s *StackSlot[T]) Add(item T) bool {
	if !s.CanAdd(item) {
		return false
	}
	s.items = append(s.items, item)
	return true
}

func (s *StackSlot[T]) CanAddItems(items []T) bool {
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

// AddItems 尽可能多地放入物品，返回放不下的部分
func (s *StackSlot[T]) AddItems(items []T) ([]T, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if err := s.checkIncoming(items); err != nil {
		return nil, err
	}

	n := min(len(items), s.max-len(s.items))
	s.items = append(s.items, items[:n]...)
	return suffix(items, n), nil
}

func (s *StackSlot[T]) Get() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	out, _ := s.GetItems(1)
	return out[0], true
}

// GetItems 从堆叠前端取出最多 amount 个物品
func (s *StackSlot[T]) GetItems(amount int) ([]T, error) {
	if amount <= 0 {
		return nil, amountError(amount)
	}
	n := min(amount, len(s.items))
	if n == 0 {
		return nil, nil
	}

	out := make([]T, n)
	copy(out, s.items[:n])
	s.items = append(s.items[:0], s.items[n:]...)
	return out, nil
}

func (s *StackSlot[T]) GetAll() []T {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	s.items = s.items[:0]
	return out
}

// Replace 用单个物品替换槽位内容
// 槽位为空时直接放入并返回空；否则返回被替换出的内容，放不下时恢复原内容并返回 [item]
func (s *StackSlot[T]) Replace(item T) ([]T, error) {
	if isAbsent(item) {
		return nil, ErrNilItem
	}
	if s.IsEmpty() {
		s.items = append(s.items, item)
		return nil, nil
	}

	captured := s.GetAll()
	if s.Add(item) {
		return captured, nil
	}
	s.items = append(s.items[:0], captured...)
	return []T{item}, nil
}

func (s *StackSlot[T]) ReplaceItems(items []T) ([]T, error) {
	if err := checkBatch(items); err != nil {
		return nil, err
	}
	if len(items) > s.max {
		return nil, errors.Wrapf(ErrAmountOutOfRange, "amount %d, max %d", len(items), s.max)
	}
	if s.IsEmpty() {
		s.items = append(s.items, items...)
		return nil, nil
	}

	captured := s.GetAll()
	if rest, err := s.AddItems(items); err == nil && len(rest) == 0 {
		return captured, nil
	}
	s.items = append(s.items[:0], captured...)
	return suffix(items, 0), nil
}

// ===== 数量寻址 =====

func (s *StackSlot[T]) CanAddAmount(item T, amount int) bool {
	if amount <= 0 || amount > s.max {
		return false
	}
	return s.CanAdd(item)
}

// AddAmount 放入 amount 个物品，返回剩余数量
func (s *StackSlot[T]) AddAmount(item T, amount int) (int, error) {
	if isAbsent(item) {
		return 0, ErrNilItem
	}
	if amount <= 0 {
		return 0, amountError(amount)
	}
	if !s.IsEmpty() && s.items[0] != item {
		return 0, ErrItemMismatch
	}

	n := min(amount, s.max-len(s.items))
	s.items = append(s.items, repeat(item, n)...)
	return amount - n, nil
}

func (s *StackSlot[T]) GetAmount(amount int) (T, int, error) {
	var zero T
	out, err := s.GetItems(amount)
	if err != nil || len(out) == 0 {
		return zero, 0, err
	}
	return out[0], len(out), nil
}

func (s *StackSlot[T]) GetAllAmount() (T, int) {
	item, ok := s.Item()
	if !ok {
		return item, 0
	}
	n := len(s.items)
	s.items = s.items[:0]
	return item, n
}

// ReplaceAmount 用 amount 个 item 替换槽位内容，返回被替换出的物品和数量
func (s *StackSlot[T]) ReplaceAmount(item T, amount int) (T, int, error) {
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
	if s.IsEmpty() {
		s.items = append(s.items, repeat(item, amount)...)
		return zero, 0, nil
	}

	old, n := s.GetAllAmount()
	if left, err := s.AddAmount(item, amount); err == nil && left == 0 {
		return old, n, nil
	}
	s.items = append(s.items[:0], repeat(old, n)...)
	return item, amount, nil
}

// checkIncoming 校验待放入的批次与槽位内容一致
func (s *StackSlot[T]) checkIncoming(items []T) error {
	if err := checkBatch(items); err != nil {
		return err
	}
	if !s.IsEmpty() && s.items[0] != items[0] {
		return ErrItemMismatch
	}
	return nil
}
