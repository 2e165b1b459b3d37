// pkg/config/decode.go
package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeHook 配置解析使用的类型转换
// "30s" -> time.Duration，"a,b" -> []string，实现了 encoding.TextUnmarshaler 的类型用 UnmarshalText 解析
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
}

// Decode 把 map 等松散结构解析到 out，规则与 Manager.Unmarshal 一致
func Decode(input, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       DecodeHook(),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}
