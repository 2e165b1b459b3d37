package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upper 测试用的 TextUnmarshaler
type upper string

func (u *upper) UnmarshalText(b []byte) error {
	*u = upper(strings.ToUpper(string(b)))
	return nil
}

type managerTestConfig struct {
	Server struct {
		Port    int           `mapstructure:"port"`
		Host    string        `mapstructure:"host"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"server"`
	Mode upper    `mapstructure:"mode"`
	Tags []string `mapstructure:"tags"`
}

const managerTestYAML = `
server:
  port: 8080
  host: "localhost"
  timeout: 30s
mode: lazy
tags: "a,b,c"
`

// createTestConfigFile 创建测试配置文件
func createTestConfigFile(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

// TestManagerLoadFile 测试加载配置文件
func TestManagerLoadFile(t *testing.T) {
	path := createTestConfigFile(t, managerTestYAML)

	mgr := NewManager()
	require.NoError(t, mgr.LoadFile(path))
	assert.Equal(t, path, mgr.ConfigFile())

	var cfg managerTestConfig
	require.NoError(t, mgr.Unmarshal(&cfg))
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, upper("LAZY"), cfg.Mode)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)

	assert.Equal(t, 8080, mgr.GetInt("server.port"))
	assert.Equal(t, "localhost", mgr.GetString("server.host"))
	assert.True(t, mgr.IsSet("server.timeout"))
	assert.False(t, mgr.GetBool("server.missing"))
	assert.Nil(t, mgr.Get("missing"))
}

func TestManagerLoadFileMissing(t *testing.T) {
	mgr := NewManager()
	err := mgr.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestManagerLoadReader(t *testing.T) {
	mgr := NewManager()
	require.NoError(t, mgr.LoadReader(strings.NewReader(managerTestYAML), "yaml"))

	var server struct {
		Port    int           `mapstructure:"port"`
		Timeout time.Duration `mapstructure:"timeout"`
	}
	require.NoError(t, mgr.UnmarshalKey("server", &server))
	assert.Equal(t, 8080, server.Port)
	assert.Equal(t, 30*time.Second, server.Timeout)

	var mode upper
	require.NoError(t, mgr.UnmarshalKey("mode", &mode))
	assert.Equal(t, upper("LAZY"), mode)

	err := mgr.UnmarshalKey("database", &server)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.Error(t, NewManager().LoadReader(strings.NewReader("server: [unclosed"), "yaml"))
}

// TestManagerBindEnv 环境变量覆盖配置文件
func TestManagerBindEnv(t *testing.T) {
	t.Setenv("XBAGTEST_SERVER_PORT", "9090")

	mgr := NewManager(WithEnvPrefix("XBAGTEST"))
	require.NoError(t, mgr.LoadReader(strings.NewReader(managerTestYAML), "yaml"))

	assert.Equal(t, 9090, mgr.GetInt("server.port"))

	var cfg managerTestConfig
	require.NoError(t, mgr.Unmarshal(&cfg))
	assert.Equal(t, 9090, cfg.Server.Port)
}

// TestManagerPrecedence Set > flag > 配置文件 > 默认值
func TestManagerPrecedence(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("server.host", "flag-default", "")
	fs.Int("server.port", 1, "")
	require.NoError(t, fs.Parse([]string{"--server.host=flag"}))

	mgr := NewManager(WithDefaults(map[string]any{
		"server.host": "default",
		"server.name": "default",
	}))
	require.NoError(t, mgr.LoadReader(strings.NewReader(managerTestYAML), "yaml"))
	require.NoError(t, mgr.BindFlags(fs))

	assert.Equal(t, "flag", mgr.GetString("server.host"))
	assert.Equal(t, 8080, mgr.GetInt("server.port"))
	assert.Equal(t, "default", mgr.GetString("server.name"))

	mgr.Set("server.host", "override")
	assert.Equal(t, "override", mgr.GetString("server.host"))
}

func TestManagerWatchRequiresFile(t *testing.T) {
	mgr := NewManager()
	require.NoError(t, mgr.LoadReader(strings.NewReader(managerTestYAML), "yaml"))
	assert.Error(t, mgr.Watch(func() {}))
}

func TestManagerWatch(t *testing.T) {
	path := createTestConfigFile(t, managerTestYAML)

	mgr := NewManager()
	require.NoError(t, mgr.LoadFile(path))

	changed := make(chan struct{}, 8)
	require.NoError(t, mgr.Watch(func() { changed <- struct{}{} }))

	updated := strings.Replace(managerTestYAML, "8080", "8081", 1)
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(updated), 0644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-changed:
		assert.Equal(t, 8081, mgr.GetInt("server.port"))
	case <-time.After(5 * time.Second):
		t.Skip("file change notification not delivered on this platform")
	}
}

func TestDecode(t *testing.T) {
	var out struct {
		Size    int           `mapstructure:"size"`
		Timeout time.Duration `mapstructure:"timeout"`
		Mode    upper         `mapstructure:"mode"`
	}
	err := Decode(map[string]any{"size": "3", "timeout": "1m", "mode": "stack"}, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Size)
	assert.Equal(t, time.Minute, out.Timeout)
	assert.Equal(t, upper("STACK"), out.Mode)

	assert.Error(t, Decode(map[string]any{"size": "many"}, &out))
}
