package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var valid = validator.New()

// Config 全局配置结构体（聚合所有核心模块）
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server" comment:"HTTP服务配置"`
	Monitor MonitorConfig `yaml:"monitor" mapstructure:"monitor" comment:"监控采集配置"`
	Log     ZapLogConfig  `yaml:"log" mapstructure:"log" comment:"日志配置"`
}

// ServerConfig HTTP服务配置（超时统一为time.Duration，支持"30s"解析）
type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr" env:"SERVER_ADDR" validate:"required,hostname_port" comment:"HTTP监听地址（格式：ip:port）"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout" env:"SERVER_READ_TIMEOUT" validate:"required,gt=0" comment:"读取超时时间（如30s）"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout" env:"SERVER_WRITE_TIMEOUT" validate:"required,gt=0" comment:"写入超时时间（如30s）"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" validate:"required,gt=0" comment:"空闲连接超时时间（如60s）"`
}

// MonitorConfig 监控采集全局配置
type MonitorConfig struct {
	MinRefreshInterval time.Duration   `yaml:"min_refresh_interval" mapstructure:"min_refresh_interval" env:"MONITOR_MIN_REFRESH_INTERVAL" validate:"gt=0" comment:"CPU快照两次刷新的最小间隔（如200ms），必须大于0"`
	Workers            int             `yaml:"workers" mapstructure:"workers" env:"MONITOR_WORKERS" validate:"required,gte=1,lte=64" comment:"阻塞型采集器的工作协程数"`
	FailFast           bool            `yaml:"fail_fast" mapstructure:"fail_fast" env:"MONITOR_FAIL_FAST" comment:"任一采集器失败时整个 scrape 失败"`
	Collectors         CollectorConfig `yaml:"collectors" mapstructure:"collectors" comment:"各指标族采集配置"`
}

// CollectorConfig 各指标族的开关与过滤配置
type CollectorConfig struct {
	CPUUsage     MetricConfig  `yaml:"cpu_usage" mapstructure:"cpu_usage"`
	CPUMode      MetricConfig  `yaml:"cpu_mode" mapstructure:"cpu_mode"`
	CPUFrequency MetricConfig  `yaml:"cpu_frequency" mapstructure:"cpu_frequency"`
	CPULoad      MetricConfig  `yaml:"cpu_load" mapstructure:"cpu_load"`
	Memory       MetricConfig  `yaml:"memory" mapstructure:"memory"`
	Swap         MetricConfig  `yaml:"swap" mapstructure:"swap"`
	DiskIO       MetricConfig  `yaml:"disk_io" mapstructure:"disk_io"`
	NetworkIO    NetworkConfig `yaml:"network_io" mapstructure:"network_io"`
	Agent        MetricConfig  `yaml:"agent" mapstructure:"agent" comment:"exporter 自身指标（采集耗时/错误/HTTP耗时）"`
	Process      MetricConfig  `yaml:"process" mapstructure:"process" comment:"进程指标（prometheus ProcessCollector）"`
}

// MetricConfig 单个指标族的通用配置
type MetricConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled" comment:"是否启用" default:"true"`
}

// NetworkConfig 网络指标族配置
// WatchInterfaces 非空时只采集列出的网卡，IgnoreInterfaces 不再生效
type NetworkConfig struct {
	Enabled          bool     `yaml:"enabled" mapstructure:"enabled" comment:"是否启用" default:"true"`
	WatchInterfaces  []string `yaml:"watch_interfaces" mapstructure:"watch_interfaces" comment:"只采集的网卡列表（如eth0）"`
	IgnoreInterfaces []string `yaml:"ignore_interfaces" mapstructure:"ignore_interfaces" comment:"忽略的网卡列表（如lo）"`
}

// ZapLogConfig 日志配置
type ZapLogConfig struct {
	Level     string `yaml:"level" mapstructure:"level" env:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal" comment:"日志级别" default:"info"`
	Format    string `yaml:"format" mapstructure:"format" env:"LOG_FORMAT" validate:"required,oneof=json console" comment:"日志格式（json/console）" default:"json"`
	Path      string `yaml:"path" mapstructure:"path" env:"LOG_PATH" validate:"required" comment:"日志存储路径" default:"./logs"`
	MaxSize   int    `yaml:"max_size" mapstructure:"max_size" env:"LOG_MAX_SIZE" validate:"required,gt=0" comment:"单个日志文件最大大小（MB）" default:"100"`
	MaxBackup int    `yaml:"max_backup" mapstructure:"max_backup" env:"LOG_MAX_BACKUP" validate:"gte=0" comment:"日志文件最大备份数" default:"30"`
	MaxAge    int    `yaml:"max_age" mapstructure:"max_age" env:"LOG_MAX_AGE" validate:"gte=0" comment:"日志文件最大保存天数" default:"7"`
	Compress  bool   `yaml:"compress" mapstructure:"compress" env:"LOG_COMPRESS" comment:"是否压缩过期日志" default:"true"`
}

// NewDefaultConfig 创建默认配置（所有字段兜底，避免空指针/非法值）
func NewDefaultConfig() *Config {
	enabled := MetricConfig{Enabled: true}
	return &Config{
		Server: ServerConfig{
			Addr:         "0.0.0.0:9100",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Monitor: MonitorConfig{
			MinRefreshInterval: 200 * time.Millisecond,
			Workers:            4,
			FailFast:           false,
			Collectors: CollectorConfig{
				CPUUsage:     enabled,
				CPUMode:      enabled,
				CPUFrequency: enabled,
				CPULoad:      enabled,
				Memory:       enabled,
				Swap:         enabled,
				DiskIO:       enabled,
				NetworkIO: NetworkConfig{
					Enabled:          true,
					WatchInterfaces:  []string{},
					IgnoreInterfaces: []string{},
				},
				Agent:   enabled,
				Process: MetricConfig{Enabled: false},
			},
		},
		Log: ZapLogConfig{
			Level:     "info",
			Format:    "json",
			Path:      "./logs",
			MaxSize:   100,
			MaxBackup: 30,
			MaxAge:    7,
			Compress:  true,
		},
	}
}

// LoadConfigWithCli 支持 time.Duration，(Flags + YAML + ENV)
func LoadConfigWithCli(cmd *cobra.Command) (*Config, error) {
	cfg := NewDefaultConfig()
	v := viper.New()

	// 1. 绑定 Cobra Flags → Viper
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	// 2. 解析配置文件 (--config)
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	// 3. 绑定环境变量 ENV -> Viper （SERVER_ADDR -> server.addr）
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. 解码反序列化到结构体（支持 time.Duration）
	if err := decode(v.AllSettings(), cfg); err != nil {
		return nil, err
	}

	// 5. 校验配置
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func decode(settings map[string]any, cfg *Config) error {
	decoderConfig := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}
	if err := decoder.Decode(settings); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Validate 配置校验
func (c *Config) Validate() error {
	if err := valid.Struct(c); err != nil {
		return err
	}
	// 	1,校验Server服务配置
	if err := c.Server.Validate(); err != nil {
		return err
	}
	// 	2，校验采集配置
	if err := c.Monitor.Validate(); err != nil {
		return err
	}
	// 	3，校验日志配置
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}
