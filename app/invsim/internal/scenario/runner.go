// Package scenario 按脚本对一组库存执行操作
package scenario

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria-bag/pkg/inventory/layout"
	"github.com/lk2023060901/xdooria-bag/pkg/logger"
)

// Result 单步执行结果
type Result struct {
	Step int
	Op   Op
	// Inventory 库存 ID
	Inventory string
	// Amount 放入、取出或统计到的数量，move 为 0
	Amount int
	// Returned 放不下或被替换出、退回给调用方的数量
	Returned int
	Err      error
}

// Report 脚本执行汇总
type Report struct {
	Name    string
	Results []Result
	Failed  int
	// Fingerprints 执行结束后各库存内容的摘要
	Fingerprints map[string]uint64
}

// Runner 脚本执行器，不支持并发调用
type Runner struct {
	set *layout.Set[string]
	log logger.Logger
}

// NewRunner 创建执行器；l 为 nil 时不记录日志
func NewRunner(set *layout.Set[string], l logger.Logger) *Runner {
	if l == nil {
		l = logger.NewNoop()
	}
	return &Runner{set: set, log: l.Named("scenario")}
}

// Run 依次执行全部步骤；单步失败记录在结果中并继续
// ctx 取消时停止并返回已执行部分
func (r *Runner) Run(ctx context.Context, script *Script) (*Report, error) {
	if script == nil {
		return nil, errors.New("scenario: script is nil")
	}
	report := &Report{Name: script.Name, Results: make([]Result, 0, len(script.Steps))}

	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := r.exec(i, step)
		report.Results = append(report.Results, res)
		if res.Err != nil {
			report.Failed++
			r.log.WarnContext(ctx, "step failed",
				"step", i, "op", step.Op, "inventory", step.Inventory, "error", res.Err)
			continue
		}
		r.log.DebugContext(ctx, "step done",
			"step", i, "op", step.Op, "inventory", step.Inventory,
			"amount", res.Amount, "returned", res.Returned)
	}

	fingerprints, err := Fingerprint(r.set)
	if err != nil {
		return report, err
	}
	report.Fingerprints = fingerprints

	r.log.Info("scenario finished", "name", script.Name, "steps", len(report.Results), "failed", report.Failed)
	return report, nil
}

func (r *Runner) exec(i int, step Step) Result {
	res := Result{Step: i, Op: step.Op, Inventory: step.Inventory}

	t, err := resolve(r.set, step.Inventory)
	if err != nil {
		res.Err = err
		return res
	}

	switch step.Op {
	case OpAdd:
		res.Amount, res.Returned, res.Err = t.add(step.Item, step.amount())
	case OpAddAt:
		res.Amount, res.Returned, res.Err = t.addAt(step.Item, step.amount(), step.Index, step.Replace)
	case OpGet:
		res.Amount, res.Err = t.get(step.Item, step.amount())
	case OpGetAt:
		res.Amount, res.Err = t.getAt(step.Index, step.amount())
	case OpGetAll:
		res.Amount = t.getAll(step.Item)
	case OpClear:
		res.Amount = t.clear()
	case OpCount:
		res.Amount = t.count(step.Item)
	case OpMove:
		res.Err = t.move(step.Index, step.Target)
	default:
		res.Err = errors.Wrapf(ErrUnknownOp, "%q", step.Op)
	}
	return res
}
