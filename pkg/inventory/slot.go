// pkg/inventory/slot.go
package inventory

import "github.com/cockroachdb/errors"

// ItemSlot 单物品槽位接口（Inventory 使用）
type ItemSlot[T comparable] interface {
	IsEmpty() bool
	IsFull() bool
	Amount() int
	MaxAmount() int

	// Item 查看槽位内容，不修改
	Item() (T, bool)
	Contains(item T) bool

	CanAdd(item T) bool
	Add(item T) bool
	Get() (T, bool)
	// Replace 无条件替换，返回原内容；传入空值等同于清空
	Replace(item T) (T, bool)
}

var _ ItemSlot[int] = (*Slot[int])(nil)

// Slot 最多容纳一个物品的槽位
type Slot[T comparable] struct {
	item     T
	occupied bool
}

// NewSlot 创建槽位，item 为空值时槽位为空
func NewSlot[T comparable](item T) *Slot[T] {
	s := &Slot[T]{}
	if !isAbsent(item) {
		s.item = item
		s.occupied = true
	}
	return s
}

func (s *Slot[T]) IsEmpty() bool  { return !s.occupied }
func (s *Slot[T]) IsFull() bool   { return s.occupied }
func (s *Slot[T]) MaxAmount() int { return 1 }

func (s *Slot[T]) Amount() int {
	if s.occupied {
		return 1
	}
	return 0
}

func (s *Slot[T]) Item() (T, bool) {
	return s.item, s.occupied
}

func (s *Slot[T]) Contains(item T) bool {
	return s.occupied && s.item == item
}

func (s *Slot[T]) CanAdd(item T) bool {
	return !s.occupied && !isAbsent(item)
}

// Add 槽位已满或物品为空值时返回 false
func (s *Slot[T]) Add(item T) bool {
	if !s.CanAdd(item) {
		return false
	}
	s.item = item
	s.occupied = true
	return true
}

func (s *Slot[T]) Get() (T, bool) {
	item, ok := s.item, s.occupied
	s.clear()
	return item, ok
}

func (s *Slot[T]) Replace(item T) (T, bool) {
	old, ok := s.item, s.occupied
	s.clear()
	if !isAbsent(item) {
		s.item = item
		s.occupied = true
	}
	return old, ok
}

func (s *Slot[T]) clear() {
	var zero T
	s.item = zero
	s.occupied = false
}

// ===== 辅助函数 =====

// isAbsent T 的零值表示"没有物品"
func isAbsent[T comparable](item T) bool {
	var zero T
	return item == zero
}

// checkBatch 校验批次：非空、无空值、物品完全相同
func checkBatch[T comparable](items []T) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	first := items[0]
	for i, item := range items {
		if isAbsent(item) {
			return errors.Wrapf(ErrNilItem, "items[%d]", i)
		}
		if item != first {
			return errors.Wrapf(ErrMixedItems, "items[%d]", i)
		}
	}
	return nil
}

// repeat 生成 n 个相同物品
func repeat[T comparable](item T, n int) []T {
	if n <= 0 {
		return nil
	}
	out := make([]T, n)
	for i := range out {
		out[i] = item
	}
	return out
}

// suffix 返回 items[n:] 的副本，避免与调用方的切片共享底层数组
func suffix[T comparable](items []T, n int) []T {
	if n >= len(items) {
		return nil
	}
	out := make([]T, len(items)-n)
	copy(out, items[n:])
	return out
}
