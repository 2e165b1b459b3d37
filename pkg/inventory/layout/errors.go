package layout

import "github.com/cockroachdb/errors"

var (
	// ErrUnknownKind 不支持的库存类型
	ErrUnknownKind = errors.New("layout: unknown inventory kind")

	// ErrNotFound 没有该 ID 的库存
	ErrNotFound = errors.New("layout: inventory not found")

	// ErrKindMismatch 库存存在但类型不同
	ErrKindMismatch = errors.New("layout: inventory kind mismatch")
)
