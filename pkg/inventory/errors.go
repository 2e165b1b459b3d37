// pkg/inventory/errors.go
package inventory

import "github.com/cockroachdb/errors"

// 参数错误：调用方传入了无效的参数，不会发生任何修改
var (
	// ErrNilItem 物品为空值（T 的零值）
	ErrNilItem = errors.New("inventory: item is absent")

	// ErrEmptyItems 需要非空的物品批次
	ErrEmptyItems = errors.New("inventory: items are empty")

	// ErrInvalidAmount 数量必须大于 0
	ErrInvalidAmount = errors.New("inventory: amount must be positive")

	// ErrMixedItems 批次中的物品不完全相同
	ErrMixedItems = errors.New("inventory: items are not homogeneous")

	// ErrItemMismatch 物品与槽位当前持有的物品不同
	ErrItemMismatch = errors.New("inventory: item differs from slot content")
)

// 范围错误
var (
	// ErrIndexOutOfRange 槽位索引越界
	ErrIndexOutOfRange = errors.New("inventory: slot index out of range")

	// ErrAmountOutOfRange 替换数量超过槽位容量
	ErrAmountOutOfRange = errors.New("inventory: amount exceeds slot capacity")
)

// ErrCapacityExceeded 堆叠超过槽位上限（数量寻址的替换、整堆交换）
var ErrCapacityExceeded = errors.New("inventory: stack exceeds slot capacity")

// 构造错误
var (
	ErrNoSlots         = errors.New("inventory: at least one slot is required")
	ErrNilSlot         = errors.New("inventory: slot is nil")
	ErrSharedSlot      = errors.New("inventory: slot instance is used more than once")
	ErrInvalidCapacity = errors.New("inventory: max amount must be positive")
)

// IsArgumentError 判断是否为参数错误
func IsArgumentError(err error) bool {
	return errors.IsAny(err, ErrNilItem, ErrEmptyItems, ErrInvalidAmount, ErrMixedItems, ErrItemMismatch)
}

// IsRangeError 判断是否为范围错误
func IsRangeError(err error) bool {
	return errors.IsAny(err, ErrIndexOutOfRange, ErrAmountOutOfRange)
}

func indexError(index, size int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "index %d, size %d", index, size)
}

func amountError(amount int) error {
	return errors.Wrapf(ErrInvalidAmount, "amount %d", amount)
}
