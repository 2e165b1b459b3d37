package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lk2023060901/xdooria-bag/pkg/config"
	"github.com/spf13/pflag"
)

// EnvPrefix 环境变量前缀，XBAG_LOG_LEVEL 对应 log.level
const EnvPrefix = "XBAG"

// Paths 最终生效的配置文件与日志路径
type Paths struct {
	Config string
	Log    string
}

// LoadConfig 集成 pkg/config 提供统一加载能力
// 优先级：1. 命令行显式参数 > 2. 环境变量 > 3. 配置文件 > 4. 默认值
// fs 可以预先注册业务参数，LoadConfig 只补充 config 与 log.path 两个参数
func LoadConfig(fs *pflag.FlagSet, args []string, target any, opts ...config.Option) (config.Manager, Paths, error) {
	var paths Paths

	execDir, err := GetExecDir()
	if err != nil {
		return nil, paths, fmt.Errorf("failed to get executable directory: %w", err)
	}
	defaultConfig := filepath.Join(execDir, "config.yaml")
	defaultLog := filepath.Join(execDir, "logs", "app.log")

	if fs.Lookup("config") == nil {
		fs.StringP("config", "c", defaultConfig, "path to config file")
	}
	if fs.Lookup("log.path") == nil {
		fs.String("log.path", defaultLog, "output path for logs")
	}
	if !fs.Parsed() {
		if err := fs.Parse(args); err != nil {
			return nil, paths, err
		}
	}

	// Flag 显式指定 > 环境变量 XBAG_CONFIG > 默认路径
	paths.Config, _ = fs.GetString("config")
	if !fs.Changed("config") {
		if envConfig := os.Getenv(EnvPrefix + "_CONFIG"); envConfig != "" {
			paths.Config = envConfig
		}
	}
	if _, err := os.Stat(paths.Config); err != nil {
		return nil, paths, fmt.Errorf("config file not found at %s: %w", paths.Config, err)
	}

	defaults := config.WithDefaults(map[string]any{
		"log.output_path": defaultLog,
	})
	mgr := config.NewManager(append([]config.Option{defaults, config.WithEnvPrefix(EnvPrefix)}, opts...)...)

	if err := mgr.LoadFile(paths.Config); err != nil {
		return nil, paths, err
	}
	if err := mgr.BindFlags(fs); err != nil {
		return nil, paths, err
	}
	if fs.Changed("log.path") {
		logPath, _ := fs.GetString("log.path")
		mgr.Set("log.output_path", logPath)
	}

	if target != nil {
		if err := mgr.Unmarshal(target); err != nil {
			return nil, paths, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	paths.Log = mgr.GetString("log.output_path")
	if err := os.MkdirAll(filepath.Dir(paths.Log), 0o755); err != nil {
		return nil, paths, fmt.Errorf("failed to create log directory: %w", err)
	}

	return mgr, paths, nil
}

// GetExecDir 获取可执行文件所在目录（处理符号链接）
func GetExecDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	realPath, err := filepath.EvalSymlinks(execPath)
	if err != nil {
		return filepath.Dir(execPath), nil
	}
	return filepath.Dir(realPath), nil
}
