package prometheus

import "time"

// Config Prometheus 暴露端配置
type Config struct {
	HTTPServer HTTPServerConfig `mapstructure:"http_server"`

	// 是否注册默认 Go 采集器
	EnableGoCollector bool `mapstructure:"enable_go_collector"`

	// 是否注册默认进程采集器
	EnableProcessCollector bool `mapstructure:"enable_process_collector"`

	// 是否注册 gopsutil 进程与主机资源采集器
	EnableSystemCollector bool `mapstructure:"enable_system_collector"`
}

// HTTPServerConfig HTTP 服务器配置
type HTTPServerConfig struct {
	// Addr 为空时不启动 HTTP 服务器，只能通过 Handler 集成
	Addr    string        `mapstructure:"addr"`
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		HTTPServer: HTTPServerConfig{
			Path:    "/metrics",
			Timeout: 10 * time.Second,
		},
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.HTTPServer.Addr != "" && (c.HTTPServer.Path == "" || c.HTTPServer.Path[0] != '/') {
		return ErrInvalidConfig
	}
	if c.HTTPServer.Timeout < 0 {
		return ErrInvalidConfig
	}
	return nil
}
