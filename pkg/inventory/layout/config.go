package layout

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/lk2023060901/xdooria-bag/pkg/config"
)

// Kind 库存类型
type Kind string

const (
	KindSingle Kind = "single" // 每个槽位一个物品
	KindStack  Kind = "stack"  // 逐个物品堆叠
	KindLazy   Kind = "lazy"   // 按数量堆叠
)

// UnmarshalText 大小写不敏感，未知类型返回 ErrUnknownKind
func (k *Kind) UnmarshalText(text []byte) error {
	v := Kind(strings.ToLower(strings.TrimSpace(string(text))))
	switch v {
	case KindSingle, KindStack, KindLazy:
		*k = v
		return nil
	}
	return errors.Wrapf(ErrUnknownKind, "%q", string(text))
}

func (k Kind) String() string { return string(k) }

// InventoryConfig 单个库存的布局
type InventoryConfig struct {
	ID   string `mapstructure:"id" validate:"required"`
	Kind Kind   `mapstructure:"kind" validate:"required,oneof=single stack lazy"`
	Size int    `mapstructure:"size" validate:"min=1,max=4096"`
	// MaxAmount 每个槽位的堆叠上限，single 类型忽略
	MaxAmount int `mapstructure:"max_amount" validate:"gte=0"`
}

// Config 一组库存的布局
type Config struct {
	Inventories []InventoryConfig `mapstructure:"inventories" validate:"required,min=1,unique=ID,dive"`
}

var validate = newValidator()

func newValidator() *config.Validator {
	v := config.NewValidator()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		ic := sl.Current().Interface().(InventoryConfig)
		if ic.Kind != KindSingle && ic.MaxAmount < 1 {
			sl.ReportError(ic.MaxAmount, "max_amount", "MaxAmount", "stack_capacity", "")
		}
	}, InventoryConfig{})
	return v
}

// Validate 验证布局
func (c *Config) Validate() error {
	return validate.Validate(c)
}

// Load 从配置管理器的 key 路径读取布局并验证
func Load(mgr config.Manager, key string) (*Config, error) {
	var cfg Config
	if err := mgr.UnmarshalKey(key, &cfg); err != nil {
		return nil, errors.Wrapf(err, "load layout %q", key)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
