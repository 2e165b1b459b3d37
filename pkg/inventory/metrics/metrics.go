// Package metrics 把库存通知转换为 Prometheus 指标
package metrics

import (
	"fmt"

	"github.com/lk2023060901/xdooria-bag/pkg/config"
	"github.com/lk2023060901/xdooria-bag/pkg/inventory"
	"github.com/prometheus/client_golang/prometheus"
)

// 通知类型标签
const (
	KindAdded    = "added"
	KindRemoved  = "removed"
	KindReplaced = "replaced"
	KindMoved    = "moved"
)

// Config 指标配置
type Config struct {
	// Namespace 指标命名空间
	Namespace string `mapstructure:"namespace"`
	// Subsystem 指标子系统
	Subsystem string `mapstructure:"subsystem"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Namespace: "bag",
		Subsystem: "inventory",
	}
}

// InventoryMetrics 库存指标
type InventoryMetrics struct {
	config *Config

	EventTotal *prometheus.CounterVec   // 通知总数（按库存、类型）
	UnitTotal  *prometheus.CounterVec   // 通知涉及的物品数量（按库存、类型）
	EventSlots *prometheus.HistogramVec // 单次通知涉及的槽位数
	UnitsHeld  *prometheus.GaugeVec     // 当前持有的物品数量（按库存）
}

// New 创建库存指标
func New(cfg *Config) (*InventoryMetrics, error) {
	newCfg, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to merge metrics config: %w", err)
	}

	return &InventoryMetrics{
		config: newCfg,

		EventTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: newCfg.Namespace,
				Subsystem: newCfg.Subsystem,
				Name:      "events_total",
				Help:      "库存通知总数",
			},
			[]string{"inventory", "kind"},
		),
		UnitTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: newCfg.Namespace,
				Subsystem: newCfg.Subsystem,
				Name:      "units_total",
				Help:      "库存通知涉及的物品数量",
			},
			[]string{"inventory", "kind"},
		),
		EventSlots: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: newCfg.Namespace,
				Subsystem: newCfg.Subsystem,
				Name:      "event_slots",
				Help:      "单次通知涉及的槽位数",
				Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
			},
			[]string{"kind"},
		),
		UnitsHeld: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: newCfg.Namespace,
				Subsystem: newCfg.Subsystem,
				Name:      "units_held",
				Help:      "库存当前持有的物品数量",
			},
			[]string{"inventory"},
		),
	}, nil
}

// Register 注册指标到 Prometheus Registry
func (m *InventoryMetrics) Register(registerer prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.EventTotal,
		m.UnitTotal,
		m.EventSlots,
		m.UnitsHeld,
	}

	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return err
		}
	}

	return nil
}

func (m *InventoryMetrics) record(id, kind string, slots, units int) {
	m.EventTotal.WithLabelValues(id, kind).Inc()
	m.UnitTotal.WithLabelValues(id, kind).Add(float64(units))
	m.EventSlots.WithLabelValues(kind).Observe(float64(slots))
}

// Observe 监听 n 的所有通知并更新指标，返回的 detach 移除监听
// units_held 只统计注册之后的变化
func Observe[T comparable](m *InventoryMetrics, n inventory.Notifier[T]) (detach func()) {
	id := n.ID()
	held := m.UnitsHeld.WithLabelValues(id)

	removes := []func(){
		n.OnAdded(func(_ inventory.Container, e inventory.AddedEvent[T]) {
			total := e.Total()
			m.record(id, KindAdded, len(e.Changes), total)
			held.Add(float64(total))
		}),
		n.OnRemoved(func(_ inventory.Container, e inventory.RemovedEvent[T]) {
			total := e.Total()
			m.record(id, KindRemoved, len(e.Changes), total)
			held.Sub(float64(total))
		}),
		n.OnReplaced(func(_ inventory.Container, e inventory.ReplacedEvent[T]) {
			units, delta := 0, 0
			for _, r := range e.Replacements {
				units += r.Amount
				delta += r.Amount - r.OldAmount
			}
			m.record(id, KindReplaced, len(e.Replacements), units)
			held.Add(float64(delta))
		}),
		n.OnMoved(func(_ inventory.Container, e inventory.MovedEvent[T]) {
			units := 0
			for _, t := range e.Transfers {
				units += t.Amount
			}
			m.record(id, KindMoved, len(e.Transfers), units)
		}),
	}

	return func() {
		for _, remove := range removes {
			remove()
		}
	}
}
