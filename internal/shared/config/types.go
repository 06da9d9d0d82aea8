// Package config defines the configuration section structs shared by the
// infrastructure config loader and the packages that consume them.
package config

import "fmt"

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// TicketCacheTTLSeconds bounds the GetByCode read-through cache.
	TicketCacheTTLSeconds int `mapstructure:"ticket_cache_ttl_seconds"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type StorageConfig struct {
	// AttachmentDir is the root directory for persisted reply attachments.
	AttachmentDir string `mapstructure:"attachment_dir"`
}

// TicketConfig carries ticket-engine settings.
type TicketConfig struct {
	// CodeLength is the number of digits in generated ticket codes.
	CodeLength int `mapstructure:"code_length"`
	// ReplySecret keys the HMAC used to derive and verify the reply code
	// embedded in outbound email subjects.
	ReplySecret string `mapstructure:"reply_secret"`
	// SystemStaffID is the sentinel actor recorded on automated replies
	// (auto-close canned replies, merge notices).
	SystemStaffID uint `mapstructure:"system_staff_id"`
	// SweepIntervalMinutes is how often the inactivity auto-close sweep runs.
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
}
