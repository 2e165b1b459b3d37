package inventory

// recorder 记录库存发出的所有事件
type recorder[T comparable] struct {
	senders  []Container
	added    []AddedEvent[T]
	removed  []RemovedEvent[T]
	replaced []ReplacedEvent[T]
	moved    []MovedEvent[T]
}

func record[T comparable](n Notifier[T]) *recorder[T] {
	r := &recorder[T]{}
	n.OnAdded(func(sender Container, e AddedEvent[T]) {
		r.senders = append(r.senders, sender)
		r.added = append(r.added, e)
	})
	n.OnRemoved(func(sender Container, e RemovedEvent[T]) {
		r.senders = append(r.senders, sender)
		r.removed = append(r.removed, e)
	})
	n.OnReplaced(func(sender Container, e ReplacedEvent[T]) {
		r.senders = append(r.senders, sender)
		r.replaced = append(r.replaced, e)
	})
	n.OnMoved(func(sender Container, e MovedEvent[T]) {
		r.senders = append(r.senders, sender)
		r.moved = append(r.moved, e)
	})
	return r
}

// total 事件总数
func (r *recorder[T]) total() int {
	return len(r.added) + len(r.removed) + len(r.replaced) + len(r.moved)
}

func (r *recorder[T]) reset() {
	r.senders = nil
	r.added = nil
	r.removed = nil
	r.replaced = nil
	r.moved = nil
}

func change[T comparable](item T, index, amount int) Change[T] {
	return Change[T]{Item: item, Index: index, Amount: amount}
}
