// pkg/inventory/listener.go
package inventory

// listeners 按注册顺序同步调用的监听列表
type listeners[E any] struct {
	fns    map[uint64]func(Container, E)
	orders []uint64
	serial uint64
}

func (l *listeners[E]) add(fn func(Container, E)) func() {
	if fn == nil {
		return func() {}
	}
	if l.fns == nil {
		l.fns = make(map[uint64]func(Container, E))
	}

	l.serial++
	id := l.serial
	l.fns[id] = fn
	l.orders = append(l.orders, id)

	return func() {
		if _, ok := l.fns[id]; !ok {
			return
		}
		delete(l.fns, id)
		for i, order := range l.orders {
			if order == id {
				l.orders = append(l.orders[:i:i], l.orders[i+1:]...)
				break
			}
		}
	}
}

// call 遍历快照，回调中增删监听不影响本次派发
func (l *listeners[E]) call(sender Container, e E) {
	if len(l.orders) == 0 {
		return
	}
	orders := make([]uint64, len(l.orders))
	copy(orders, l.orders)

	for _, id := range orders {
		fn, ok := l.fns[id]
		if !ok {
			continue
		}
		fn(sender, e)
	}
}

// Events 库存的事件注册表，嵌入到各库存类型中
type Events[T comparable] struct {
	sender   Container
	added    listeners[AddedEvent[T]]
	removed  listeners[RemovedEvent[T]]
	replaced listeners[ReplacedEvent[T]]
	moved    listeners[MovedEvent[T]]
}

func (ev *Events[T]) OnAdded(fn func(sender Container, e AddedEvent[T])) func() {
	return ev.added.add(fn)
}

func (ev *Events[T]) OnRemoved(fn func(sender Container, e RemovedEvent[T])) func() {
	return ev.removed.add(fn)
}

func (ev *Events[T]) OnReplaced(fn func(sender Container, e ReplacedEvent[T])) func() {
	return ev.replaced.add(fn)
}

func (ev *Events[T]) OnMoved(fn func(sender Container, e MovedEvent[T])) func() {
	return ev.moved.add(fn)
}

// ===== 派发：没有变化时不通知 =====

func (ev *Events[T]) emitAdded(changes []Change[T]) {
	if len(changes) > 0 {
		ev.added.call(ev.sender, AddedEvent[T]{Changes: changes})
	}
}

func (ev *Events[T]) emitRemoved(changes []Change[T]) {
	if len(changes) > 0 {
		ev.removed.call(ev.sender, RemovedEvent[T]{Changes: changes})
	}
}

func (ev *Events[T]) emitReplaced(replacements []Replacement[T]) {
	if len(replacements) > 0 {
		ev.replaced.call(ev.sender, ReplacedEvent[T]{Replacements: replacements})
	}
}

func (ev *Events[T]) emitMoved(transfers []Transfer[T]) {
	if len(transfers) > 0 {
		ev.moved.call(ev.sender, MovedEvent[T]{Transfers: transfers})
	}
}
