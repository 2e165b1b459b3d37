package scenario

import (
	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria-bag/pkg/inventory"
	"github.com/lk2023060901/xdooria-bag/pkg/inventory/layout"
)

// target 三种库存在脚本语义下的统一视图
// placed 为放入数量，returned 为放不下或被替换出的数量
type target interface {
	add(item string, amount int) (placed, returned int, err error)
	addAt(item string, amount, index int, replace bool) (placed, returned int, err error)
	get(item string, amount int) (int, error)
	getAt(index, amount int) (int, error)
	getAll(item string) int
	clear() int
	count(item string) int
	move(origin, target int) error
	size() int
	peek(index int) (item string, amount int, err error)
}

func resolve(set *layout.Set[string], id string) (target, error) {
	kind, ok := set.Kind(id)
	if !ok {
		return nil, errors.Wrapf(layout.ErrNotFound, "%q", id)
	}
	switch kind {
	case layout.KindSingle:
		inv, err := set.Single(id)
		return singleTarget{inv}, err
	case layout.KindStack:
		inv, err := set.Stack(id)
		return stackTarget{inv}, err
	default:
		inv, err := set.Lazy(id)
		return lazyTarget{inv}, err
	}
}

func repeat(item string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = item
	}
	return out
}

type singleTarget struct{ inv *inventory.Inventory[string] }

func (t singleTarget) add(item string, amount int) (int, int, error) {
	rest := t.inv.AddItems(repeat(item, amount))
	return amount - len(rest), len(rest), nil
}

func (t singleTarget) addAt(item string, _ int, index int, replace bool) (int, int, error) {
	_, ok, err := t.inv.AddAt(item, index, replace)
	if err != nil {
		return 0, 0, err
	}
	switch {
	case replace && ok:
		return 1, 1, nil
	case replace:
		return 1, 0, nil
	case ok:
		return 0, 1, nil
	}
	return 1, 0, nil
}

func (t singleTarget) get(item string, amount int) (int, error) {
	out, err := t.inv.GetItems(item, amount)
	return len(out), err
}

func (t singleTarget) getAt(index, _ int) (int, error) {
	_, ok, err := t.inv.Get(index)
	if !ok {
		return 0, err
	}
	return 1, err
}

func (t singleTarget) getAll(item string) int    { return len(t.inv.GetAll(item)) }
func (t singleTarget) clear() int                { return len(t.inv.Clear()) }
func (t singleTarget) count(item string) int     { return t.inv.GetCount(item) }
func (t singleTarget) move(origin, to int) error { return t.inv.Move(origin, to) }
func (t singleTarget) size() int                 { return t.inv.Size() }
func (t singleTarget) peek(index int) (string, int, error) {
	item, ok, err := t.inv.Peek(index)
	if !ok {
		return item, 0, err
	}
	return item, 1, err
}

type stackTarget struct {
	inv *inventory.StackInventory[string]
}

func (t stackTarget) add(item string, amount int) (int, int, error) {
	rest, err := t.inv.AddItems(repeat(item, amount))
	if err != nil {
		return 0, 0, err
	}
	return amount - len(rest), len(rest), nil
}

func (t stackTarget) addAt(item string, _ int, index int, replace bool) (int, int, error) {
	out, err := t.inv.AddAt(item, index, replace)
	if err != nil {
		return 0, 0, err
	}
	if replace {
		return 1, len(out), nil
	}
	return 1 - len(out), len(out), nil
}

func (t stackTarget) get(item string, amount int) (int, error) {
	out, err := t.inv.GetItems(item, amount)
	return len(out), err
}

func (t stackTarget) getAt(index, amount int) (int, error) {
	out, err := t.inv.GetAt(index, amount)
	return len(out), err
}

func (t stackTarget) getAll(item string) int    { return len(t.inv.GetAll(item)) }
func (t stackTarget) clear() int                { return len(t.inv.Clear()) }
func (t stackTarget) count(item string) int     { return t.inv.GetCount(item) }
func (t stackTarget) move(origin, to int) error { return t.inv.Move(origin, to) }
func (t stackTarget) size() int                 { return t.inv.Size() }
func (t stackTarget) peek(index int) (string, int, error) {
	return t.inv.Peek(index)
}

type lazyTarget struct {
	inv *inventory.LazyStackInventory[string]
}

func (t lazyTarget) add(item string, amount int) (int, int, error) {
	left, err := t.inv.Add(item, amount)
	if err != nil {
		return 0, 0, err
	}
	return amount - left, left, nil
}

func (t lazyTarget) addAt(item string, amount, index int, replace bool) (int, int, error) {
	_, n, err := t.inv.AddAt(item, amount, index, replace)
	if err != nil {
		return 0, 0, err
	}
	if replace {
		return amount, n, nil
	}
	return amount - n, n, nil
}

func (t lazyTarget) get(item string, amount int) (int, error) {
	return t.inv.Get(item, amount)
}

func (t lazyTarget) getAt(index, amount int) (int, error) {
	_, n, err := t.inv.GetAt(index, amount)
	return n, err
}

func (t lazyTarget) getAll(item string) int { return t.inv.GetAll(item) }

func (t lazyTarget) clear() int {
	total := 0
	for _, c := range t.inv.Clear() {
		total += c.Amount
	}
	return total
}

func (t lazyTarget) count(item string) int     { return t.inv.GetCount(item) }
func (t lazyTarget) move(origin, to int) error { return t.inv.Move(origin, to) }
func (t lazyTarget) size() int                 { return t.inv.Size() }
func (t lazyTarget) peek(index int) (string, int, error) {
	return t.inv.Peek(index)
}
