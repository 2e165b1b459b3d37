package scenario

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/lk2023060901/xdooria-bag/pkg/inventory/layout"
)

// Fingerprint 每个库存当前内容的 xxhash 摘要，内容相同则摘要相同
func Fingerprint(set *layout.Set[string]) (map[string]uint64, error) {
	out := make(map[string]uint64, len(set.IDs()))
	for _, id := range set.IDs() {
		t, err := resolve(set, id)
		if err != nil {
			return nil, err
		}
		sum, err := digest(t)
		if err != nil {
			return nil, err
		}
		out[id] = sum
	}
	return out, nil
}

// digest 按 "index\x00item\x00amount\n" 逐槽位写入，空槽位也参与
func digest(t target) (uint64, error) {
	d := xxhash.New()
	buf := make([]byte, 0, 64)
	for i := 0; i < t.size(); i++ {
		item, amount, err := t.peek(i)
		if err != nil {
			return 0, err
		}
		buf = strconv.AppendInt(buf[:0], int64(i), 10)
		buf = append(buf, 0)
		buf = append(buf, item...)
		buf = append(buf, 0)
		buf = strconv.AppendInt(buf, int64(amount), 10)
		buf = append(buf, '\n')
		_, _ = d.Write(buf)
	}
	return d.Sum64(), nil
}
