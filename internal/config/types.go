package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// Config 聚合了系统运行所需的全部配置项。
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Sellers   []SellerSeed    `mapstructure:"sellers"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Transport TransportConfig `mapstructure:"transport"`
	Monitor   MonitorConfig   `mapstructure:"monitor"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// AppConfig 控制应用级参数。
type AppConfig struct {
	Environment string `mapstructure:"environment"`
}

// SellerSeed 描述启动时预注册的卖家端点。
type SellerSeed struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

// SchedulerConfig 控制各促销档期的派单间隔。
type SchedulerConfig struct {
	StandardInterval    time.Duration `mapstructure:"standard_interval"`
	HalfPriceInterval   time.Duration `mapstructure:"half_price_interval"`
	PayThePriceInterval time.Duration `mapstructure:"pay_the_price_interval"`
}

// TransportConfig 控制向卖家发送请求的行为。
type TransportConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// MonitorConfig 控制监控与注册接口。
type MonitorConfig struct {
	Port int `mapstructure:"port"`
}

// DatabaseConfig 管理数据库连接。
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	BusyTimeout     time.Duration `mapstructure:"busy_timeout"`
	Synchronous     string        `mapstructure:"synchronous"`
	InMemory        bool          `mapstructure:"in_memory"`
}

// LoggingConfig 控制日志输出。
type LoggingConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	Development      bool     `mapstructure:"development"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// Validate 对配置进行基本校验。
func (c *Config) Validate() error {
	var err error

	if c.App.Environment == "" {
		err = multierr.Append(err, errors.New("app.environment 不能为空"))
	}
	for i, seed := range c.Sellers {
		if seed.Name == "" {
			err = multierr.Append(err, fmt.Errorf("sellers[%d].name 不能为空", i))
		}
		if seed.URL == "" {
			err = multierr.Append(err, fmt.Errorf("sellers[%d].url 不能为空", i))
		} else if _, parseErr := url.Parse(seed.URL); parseErr != nil {
			err = multierr.Append(err, fmt.Errorf("sellers[%d].url 非法: %v", i, parseErr))
		}
	}
	if c.Scheduler.StandardInterval <= 0 {
		err = multierr.Append(err, errors.New("scheduler.standard_interval 必须大于0"))
	}
	if c.Scheduler.HalfPriceInterval <= 0 {
		err = multierr.Append(err, errors.New("scheduler.half_price_interval 必须大于0"))
	}
	if c.Scheduler.PayThePriceInterval <= 0 {
		err = multierr.Append(err, errors.New("scheduler.pay_the_price_interval 必须大于0"))
	}
	if c.Transport.Timeout <= 0 {
		err = multierr.Append(err, errors.New("transport.timeout 必须大于0"))
	}
	if c.Monitor.Port <= 0 || c.Monitor.Port > 65535 {
		err = multierr.Append(err, errors.New("monitor.port 必须位于[1,65535]"))
	}
	if c.Database.Path == "" && !c.Database.InMemory {
		err = multierr.Append(err, errors.New("database.path 不能为空"))
	}
	if c.Database.MaxOpenConns <= 0 {
		err = multierr.Append(err, errors.New("database.max_open_conns 必须大于0"))
	}
	if c.Database.MaxIdleConns < 0 {
		err = multierr.Append(err, errors.New("database.max_idle_conns 不能为负"))
	}
	if c.Database.ConnMaxLifetime < 0 {
		err = multierr.Append(err, errors.New("database.conn_max_lifetime 不能为负"))
	}
	if c.Database.BusyTimeout < 0 {
		err = multierr.Append(err, errors.New("database.busy_timeout 不能为负"))
	}
	switch strings.ToUpper(c.Database.Synchronous) {
	case "", "OFF", "NORMAL", "FULL":
	default:
		err = multierr.Append(err, errors.New("database.synchronous 只支持 OFF/NORMAL/FULL"))
	}
	if c.Logging.Level == "" {
		err = multierr.Append(err, errors.New("logging.level 不能为空"))
	}
	if c.Logging.Encoding == "" {
		err = multierr.Append(err, errors.New("logging.encoding 不能为空"))
	}
	if len(c.Logging.OutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.output_paths 至少包含一个输出目标"))
	}
	if len(c.Logging.ErrorOutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.error_output_paths 至少包含一个输出目标"))
	}

	if err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}

	return nil
}
