package scenario

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/lk2023060901/xdooria-bag/pkg/config"
)

// Op 步骤操作
type Op string

const (
	OpAdd    Op = "add"
	OpAddAt  Op = "add_at"
	OpGet    Op = "get"
	OpGetAt  Op = "get_at"
	OpGetAll Op = "get_all"
	OpClear  Op = "clear"
	OpCount  Op = "count"
	OpMove   Op = "move"
)

var ErrUnknownOp = errors.New("scenario: unknown op")

// UnmarshalText 大小写不敏感，"add-at" 与 "add_at" 等价
func (o *Op) UnmarshalText(text []byte) error {
	v := Op(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(string(text))), "-", "_"))
	switch v {
	case OpAdd, OpAddAt, OpGet, OpGetAt, OpGetAll, OpClear, OpCount, OpMove:
		*o = v
		return nil
	}
	return errors.Wrapf(ErrUnknownOp, "%q", string(text))
}

// Step 一步库存操作；未用到的字段被忽略
type Step struct {
	Op        Op     `mapstructure:"op" validate:"required"`
	Inventory string `mapstructure:"inventory" validate:"required"`
	Item      string `mapstructure:"item"`
	// Amount 为 0 时按 1 处理（count、get_all、clear、move 不使用）
	Amount  int  `mapstructure:"amount" validate:"gte=0"`
	Index   int  `mapstructure:"index" validate:"gte=0"`
	Target  int  `mapstructure:"target" validate:"gte=0"`
	Replace bool `mapstructure:"replace"`
}

func (s Step) amount() int {
	if s.Amount == 0 {
		return 1
	}
	return s.Amount
}

// Script 按顺序执行的步骤
type Script struct {
	Name  string `mapstructure:"name"`
	Steps []Step `mapstructure:"steps" validate:"required,min=1,dive"`
}

var validate = newValidator()

func newValidator() *config.Validator {
	v := config.NewValidator()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		s := sl.Current().Interface().(Step)
		switch s.Op {
		case OpAdd, OpAddAt, OpGet, OpGetAll, OpCount:
			if s.Item == "" {
				sl.ReportError(s.Item, "item", "Item", "required", "")
			}
		}
	}, Step{})
	return v
}

// Validate 验证脚本
func (s *Script) Validate() error {
	return validate.Validate(s)
}

// Load 从配置管理器的 key 路径读取脚本并验证
func Load(mgr config.Manager, key string) (*Script, error) {
	var s Script
	if err := mgr.UnmarshalKey(key, &s); err != nil {
		return nil, errors.Wrapf(err, "load scenario %q", key)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile 从单独的脚本文件读取，文件顶层为 key
func LoadFile(path, key string) (*Script, error) {
	mgr := config.NewManager()
	if err := mgr.LoadFile(path); err != nil {
		return nil, err
	}
	return Load(mgr, key)
}
