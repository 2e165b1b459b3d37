package main

import (
	"fmt"
	"os"

	"github.com/lk2023060901/xdooria-bag/app/invsim/internal/scenario"
	"github.com/lk2023060901/xdooria-bag/pkg/app"
	"github.com/lk2023060901/xdooria-bag/pkg/inventory/audit"
	"github.com/lk2023060901/xdooria-bag/pkg/inventory/layout"
	"github.com/lk2023060901/xdooria-bag/pkg/inventory/metrics"
	"github.com/lk2023060901/xdooria-bag/pkg/logger"
	"github.com/lk2023060901/xdooria-bag/pkg/prometheus"
	"github.com/spf13/pflag"
)

// Config 定义 invsim 的完整配置结构
type Config struct {
	Log logger.Config `mapstructure:"log"`

	// Prometheus 暴露端配置
	Prometheus prometheus.Config `mapstructure:"prometheus"`

	// 库存指标配置
	Metrics metrics.Config `mapstructure:"metrics"`

	// 库存布局
	Layout layout.Config `mapstructure:"layout"`

	// 内联脚本，--script 指定文件时忽略
	Scenario scenario.Script `mapstructure:"scenario"`

	// Serve 脚本执行完后继续提供指标，直到收到退出信号
	Serve bool `mapstructure:"serve"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("invsim", pflag.ContinueOnError)
	scriptPath := fs.String("script", "", "path to a scenario file (top level key: scenario)")

	// 1. 加载配置
	var cfg Config
	mgr, paths, err := app.LoadConfig(fs, args, &cfg)
	if err != nil {
		return err
	}

	// 2. 初始化主日志
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return err
	}
	l.Info("config loaded", "config", paths.Config, "log", paths.Log)

	application := app.NewBaseApp(app.WithName("invsim"), app.WithLogger(l))

	// 3. 库存与观察者
	set, err := layout.Build[string](&cfg.Layout)
	if err != nil {
		l.Error("failed to build layout", "error", err)
		return err
	}

	promClient, err := prometheus.New(&cfg.Prometheus)
	if err != nil {
		return err
	}
	invMetrics, err := metrics.New(&cfg.Metrics)
	if err != nil {
		return err
	}
	if err := invMetrics.Register(promClient.Registry()); err != nil {
		return err
	}

	for _, n := range set.Notifiers() {
		detachAudit := audit.Attach(n, l)
		detachMetrics := metrics.Observe(invMetrics, n)
		application.AppendCloser(app.CloserFunc(func() error {
			detachMetrics()
			detachAudit()
			return nil
		}))
	}

	// 4. 执行脚本
	script := &cfg.Scenario
	if *scriptPath != "" {
		if script, err = scenario.LoadFile(*scriptPath, "scenario"); err != nil {
			return err
		}
	} else if err := script.Validate(); err != nil {
		return err
	}

	report, err := scenario.NewRunner(set, l).Run(application.Context(), script)
	if err != nil {
		_ = application.Shutdown()
		return err
	}
	for _, res := range report.Results {
		if res.Err != nil {
			fmt.Printf("step %d %s %s: error: %v\n", res.Step, res.Op, res.Inventory, res.Err)
			continue
		}
		fmt.Printf("step %d %s %s: amount=%d returned=%d\n", res.Step, res.Op, res.Inventory, res.Amount, res.Returned)
	}
	for _, id := range set.IDs() {
		fmt.Printf("inventory %s: fingerprint=%016x\n", id, report.Fingerprints[id])
	}

	if !cfg.Serve {
		return application.Shutdown()
	}

	// 5. 提供指标直到退出
	if cfg.Prometheus.HTTPServer.Addr != "" {
		application.AppendServer(promClient)
	}
	if err := mgr.Watch(func() {
		l.Warn("config file changed, restart to apply", "config", mgr.ConfigFile())
	}); err != nil {
		l.Warn("config watch disabled", "error", err)
	}
	return application.Run()
}
