// Package system 通过 gopsutil 暴露进程与主机资源指标
package system

import (
	"os"
	"runtime"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats 一次采样的结果
type Stats struct {
	// CPU 使用率 (0-100)
	CPUPercent float64
	// 内存使用率 (0-100)，相对主机总内存
	MemoryPercent float64
	// 常驻内存字节数
	MemoryBytes uint64
	Goroutines  int
}

// Collector 在每次抓取时采样的 prometheus.Collector
type Collector struct {
	proc *process.Process
	mu   sync.Mutex

	cpuPercent    *prometheus.Desc
	memoryPercent *prometheus.Desc
	memoryBytes   *prometheus.Desc
	goroutines    *prometheus.Desc
	hostCPU       *prometheus.Desc
	hostMemory    *prometheus.Desc
}

// New 创建当前进程的收集器
func New(namespace string) (*Collector, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}

	name := func(n string) string { return prometheus.BuildFQName(namespace, "system", n) }
	return &Collector{
		proc:          proc,
		cpuPercent:    prometheus.NewDesc(name("cpu_percent"), "进程 CPU 使用率", nil, nil),
		memoryPercent: prometheus.NewDesc(name("memory_percent"), "进程内存占主机内存的比例", nil, nil),
		memoryBytes:   prometheus.NewDesc(name("memory_bytes"), "进程常驻内存字节数", nil, nil),
		goroutines:    prometheus.NewDesc(name("goroutines"), "Goroutine 数量", nil, nil),
		hostCPU:       prometheus.NewDesc(name("host_cpu_percent"), "主机整体 CPU 使用率", nil, nil),
		hostMemory:    prometheus.NewDesc(name("host_memory_percent"), "主机整体内存使用率", nil, nil),
	}, nil
}

// Sample 执行一次采样，取不到的项保持为 0
func (c *Collector) Sample() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stats Stats
	if cpuPercent, err := c.proc.CPUPercent(); err == nil {
		stats.CPUPercent = cpuPercent
	}
	if memInfo, err := c.proc.MemoryInfo(); err == nil {
		stats.MemoryBytes = memInfo.RSS
		if vm, err := mem.VirtualMemory(); err == nil && vm.Total > 0 {
			stats.MemoryPercent = float64(memInfo.RSS) / float64(vm.Total) * 100
		}
	}
	stats.Goroutines = runtime.NumGoroutine()
	return stats
}

// Describe 实现 prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cpuPercent
	ch <- c.memoryPercent
	ch <- c.memoryBytes
	ch <- c.goroutines
	ch <- c.hostCPU
	ch <- c.hostMemory
}

// Collect 实现 prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.Sample()
	ch <- prometheus.MustNewConstMetric(c.cpuPercent, prometheus.GaugeValue, stats.CPUPercent)
	ch <- prometheus.MustNewConstMetric(c.memoryPercent, prometheus.GaugeValue, stats.MemoryPercent)
	ch <- prometheus.MustNewConstMetric(c.memoryBytes, prometheus.GaugeValue, float64(stats.MemoryBytes))
	ch <- prometheus.MustNewConstMetric(c.goroutines, prometheus.GaugeValue, float64(stats.Goroutines))

	if v, err := HostCPUPercent(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.hostCPU, prometheus.GaugeValue, v)
	}
	if v, err := HostMemoryPercent(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.hostMemory, prometheus.GaugeValue, v)
	}
}

// HostCPUPercent 主机整体 CPU 使用率
func HostCPUPercent() (float64, error) {
	percentages, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(percentages) > 0 {
		return percentages[0], nil
	}
	return 0, nil
}

// HostMemoryPercent 主机整体内存使用率
func HostMemoryPercent() (float64, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return v.UsedPercent, nil
}
