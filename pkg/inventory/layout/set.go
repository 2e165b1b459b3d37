// Package layout 按配置构建一组具名库存
package layout

import (
	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria-bag/pkg/inventory"
)

// Set 按配置顺序保存的具名库存
type Set[T comparable] struct {
	order     []string
	kinds     map[string]Kind
	singles   map[string]*inventory.Inventory[T]
	stacks    map[string]*inventory.StackInventory[T]
	lazies    map[string]*inventory.LazyStackInventory[T]
	notifiers map[string]inventory.Notifier[T]
}

// Build 验证 cfg 并创建其中的全部库存
func Build[T comparable](cfg *Config) (*Set[T], error) {
	if cfg == nil {
		return nil, errors.New("layout: config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Set[T]{
		kinds:     make(map[string]Kind, len(cfg.Inventories)),
		singles:   make(map[string]*inventory.Inventory[T]),
		stacks:    make(map[string]*inventory.StackInventory[T]),
		lazies:    make(map[string]*inventory.LazyStackInventory[T]),
		notifiers: make(map[string]inventory.Notifier[T], len(cfg.Inventories)),
	}
	for _, ic := range cfg.Inventories {
		if err := s.add(ic); err != nil {
			return nil, errors.Wrapf(err, "build inventory %q", ic.ID)
		}
	}
	return s, nil
}

func (s *Set[T]) add(ic InventoryConfig) error {
	id := inventory.WithID(ic.ID)

	switch ic.Kind {
	case KindSingle:
		inv, err := inventory.NewSlotInventory[T](ic.Size, id)
		if err != nil {
			return err
		}
		s.singles[ic.ID] = inv
		s.notifiers[ic.ID] = inv
	case KindStack:
		inv, err := inventory.NewStackSlotInventory[T](ic.Size, ic.MaxAmount, id)
		if err != nil {
			return err
		}
		s.stacks[ic.ID] = inv
		s.notifiers[ic.ID] = inv
	case KindLazy:
		inv, err := inventory.NewLazySlotInventory[T](ic.Size, ic.MaxAmount, id)
		if err != nil {
			return err
		}
		s.lazies[ic.ID] = inv
		s.notifiers[ic.ID] = inv
	default:
		return errors.Wrapf(ErrUnknownKind, "%q", ic.Kind)
	}

	s.kinds[ic.ID] = ic.Kind
	s.order = append(s.order, ic.ID)
	return nil
}

// IDs 按配置顺序返回库存 ID
func (s *Set[T]) IDs() []string {
	return append([]string(nil), s.order...)
}

// Kind 查询库存类型
func (s *Set[T]) Kind(id string) (Kind, bool) {
	k, ok := s.kinds[id]
	return k, ok
}

// Single 获取 single 类型的库存
func (s *Set[T]) Single(id string) (*inventory.Inventory[T], error) {
	if err := s.expect(id, KindSingle); err != nil {
		return nil, err
	}
	return s.singles[id], nil
}

// Stack 获取 stack 类型的库存
func (s *Set[T]) Stack(id string) (*inventory.StackInventory[T], error) {
	if err := s.expect(id, KindStack); err != nil {
		return nil, err
	}
	return s.stacks[id], nil
}

// Lazy 获取 lazy 类型的库存
func (s *Set[T]) Lazy(id string) (*inventory.LazyStackInventory[T], error) {
	if err := s.expect(id, KindLazy); err != nil {
		return nil, err
	}
	return s.lazies[id], nil
}

// Notifier 获取任意类型库存的通知接口
func (s *Set[T]) Notifier(id string) (inventory.Notifier[T], error) {
	n, ok := s.notifiers[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q", id)
	}
	return n, nil
}

// Notifiers 按配置顺序返回全部库存的通知接口，用于挂载 audit、metrics
func (s *Set[T]) Notifiers() []inventory.Notifier[T] {
	out := make([]inventory.Notifier[T], len(s.order))
	for i, id := range s.order {
		out[i] = s.notifiers[id]
	}
	return out
}

func (s *Set[T]) expect(id string, kind Kind) error {
	k, ok := s.kinds[id]
	if !ok {
		return errors.Wrapf(ErrNotFound, "%q", id)
	}
	if k != kind {
		return errors.Wrapf(ErrKindMismatch, "%q is %s, want %s", id, k, kind)
	}
	return nil
}
