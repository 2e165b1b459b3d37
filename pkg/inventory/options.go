// pkg/inventory/options.go
package inventory

import "github.com/google/uuid"

// Option 库存构造选项
type Option func(*options)

type options struct {
	id string
}

// WithID 指定库存 ID，默认生成 UUID
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	return o
}
