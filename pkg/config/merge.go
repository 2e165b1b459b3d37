package config

import (
	"fmt"
	"reflect"
)

// MergeConfig 把 src 中的非零值覆盖到 dst 上，返回 dst
// - dst 和 src 都为 nil 时返回错误
// - 任一为 nil 时返回另一个
// - 结构体与 map 递归合并，切片整体覆盖
func MergeConfig[T any](dst, src *T) (*T, error) {
	switch {
	case dst == nil && src == nil:
		return nil, fmt.Errorf("%w: both dst and src are nil", ErrMergeFailed)
	case dst == nil:
		return src, nil
	case src == nil:
		return dst, nil
	}

	if err := merge(reflect.ValueOf(dst).Elem(), reflect.ValueOf(src).Elem()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMergeFailed, err)
	}
	return dst, nil
}

func merge(dst, src reflect.Value) error {
	if !src.IsValid() || src.IsZero() {
		return nil
	}
	if dst.Kind() != src.Kind() {
		return fmt.Errorf("kind mismatch: %s vs %s", dst.Kind(), src.Kind())
	}

	switch dst.Kind() {
	case reflect.Struct:
		for i := 0; i < src.NumField(); i++ {
			field := src.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			if err := merge(dst.Field(i), src.Field(i)); err != nil {
				return fmt.Errorf("field %s: %w", field.Name, err)
			}
		}
	case reflect.Map:
		if src.Len() == 0 {
			return nil
		}
		if dst.IsNil() {
			dst.Set(reflect.MakeMapWithSize(dst.Type(), src.Len()))
		}
		iter := src.MapRange()
		for iter.Next() {
			value := reflect.New(dst.Type().Elem()).Elem()
			if existing := dst.MapIndex(iter.Key()); existing.IsValid() {
				value.Set(existing)
			}
			if err := merge(value, iter.Value()); err != nil {
				return err
			}
			dst.SetMapIndex(iter.Key(), value)
		}
	case reflect.Pointer:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return merge(dst.Elem(), src.Elem())
	case reflect.Slice:
		if src.Len() > 0 && dst.CanSet() {
			dst.Set(src)
		}
	default:
		if dst.CanSet() {
			dst.Set(src)
		}
	}
	return nil
}
