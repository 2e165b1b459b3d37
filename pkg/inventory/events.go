// pkg/inventory/events.go
package inventory

// Container 事件发送者
type Container interface {
	ID() string
	Size() int
}

// Change 单个槽位的变化：放入或取出 Amount 个 Item
type Change[T comparable] struct {
	Item   T
	Index  int
	Amount int
}

// Replacement 槽位内容被替换；OldAmount 为 0 表示原槽位为空
type Replacement[T comparable] struct {
	Item      T
	Index     int
	Amount    int
	OldItem   T
	OldAmount int
}

// Transfer 一次移动中某个堆叠从 From 移到 To
type Transfer[T comparable] struct {
	Item   T
	Amount int
	From   int
	To     int
}

// AddedEvent 物品放入
type AddedEvent[T comparable] struct {
	Changes []Change[T]
}

// RemovedEvent 物品取出
type RemovedEvent[T comparable] struct {
	Changes []Change[T]
}

// ReplacedEvent 槽位内容被替换
type ReplacedEvent[T comparable] struct {
	Replacements []Replacement[T]
}

// MovedEvent 两个槽位交换内容
type MovedEvent[T comparable] struct {
	Transfers []Transfer[T]
}

// Total 本次变化的物品总数
func (e AddedEvent[T]) Total() int { return totalAmount(e.Changes) }

// Total 本次变化的物品总数
func (e RemovedEvent[T]) Total() int { return totalAmount(e.Changes) }

func totalAmount[T comparable](changes []Change[T]) int {
	total := 0
	for _, c := range changes {
		total += c.Amount
	}
	return total
}

// Notifier 所有库存类型都实现的监听注册接口
// 注册函数返回的 remove 用于取消监听
type Notifier[T comparable] interface {
	Container
	OnAdded(fn func(sender Container, e AddedEvent[T])) (remove func())
	OnRemoved(fn func(sender Container, e RemovedEvent[T])) (remove func())
	OnReplaced(fn func(sender Container, e ReplacedEvent[T])) (remove func())
	OnMoved(fn func(sender Container, e MovedEvent[T])) (remove func())
}
