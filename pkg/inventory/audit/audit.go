// Package audit 把库存通知写入结构化日志
package audit

import (
	"github.com/lk2023060901/xdooria-bag/pkg/inventory"
	"github.com/lk2023060901/xdooria-bag/pkg/logger"
)

// Attach 在 n 上注册四类监听，每条通知记录一行 Info 日志
// 返回的 detach 移除全部监听，可重复调用
func Attach[T comparable](n inventory.Notifier[T], l logger.Logger) (detach func()) {
	log := l.Named("audit").WithFields("inventory", n.ID())

	removes := []func(){
		n.OnAdded(func(_ inventory.Container, e inventory.AddedEvent[T]) {
			log.Info("items added", "changes", changeFields(e.Changes), "total", e.Total())
		}),
		n.OnRemoved(func(_ inventory.Container, e inventory.RemovedEvent[T]) {
			log.Info("items removed", "changes", changeFields(e.Changes), "total", e.Total())
		}),
		n.OnReplaced(func(_ inventory.Container, e inventory.ReplacedEvent[T]) {
			log.Info("items replaced", "replacements", replacementFields(e.Replacements))
		}),
		n.OnMoved(func(_ inventory.Container, e inventory.MovedEvent[T]) {
			log.Info("items moved", "transfers", transferFields(e.Transfers))
		}),
	}

	return func() {
		for _, remove := range removes {
			remove()
		}
	}
}

func changeFields[T comparable](changes []inventory.Change[T]) []map[string]any {
	out := make([]map[string]any, len(changes))
	for i, c := range changes {
		out[i] = map[string]any{"item": c.Item, "index": c.Index, "amount": c.Amount}
	}
	return out
}

func replacementFields[T comparable](replacements []inventory.Replacement[T]) []map[string]any {
	out := make([]map[string]any, len(replacements))
	for i, r := range replacements {
		out[i] = map[string]any{
			"item":       r.Item,
			"index":      r.Index,
			"amount":     r.Amount,
			"old_item":   r.OldItem,
			"old_amount": r.OldAmount,
		}
	}
	return out
}

func transferFields[T comparable](transfers []inventory.Transfer[T]) []map[string]any {
	out := make([]map[string]any, len(transfers))
	for i, t := range transfers {
		out[i] = map[string]any{"item": t.Item, "amount": t.Amount, "from": t.From, "to": t.To}
	}
	return out
}
