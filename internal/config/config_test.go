package config

import (
	"os"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	required := map[string]string{
		"DATABASE_DSN":           "postgres://localhost:5432/campus",
		"INITIAL_ADMIN_PASSWORD": "admin-password",
		"INITIAL_ADMIN_EMAIL":    "admin@example.com",
		"JWT_SECRET":             "secret",
		"SEED_USER_PASSWORD":     "seed-password",
		"EMAIL_USER_DOMAIN":      "example.com",
		"EMAIL_SMTP_USERNAME":    "mailer@example.com",
		"EMAIL_SMTP_PASSWORD":    "smtp-password",
		"EMAIL_SMTP_HOST":        "smtp.example.com",
		"RABBITMQ_DSN":           "amqp://localhost:5672",
		"REDIS_PASSWORD":         "redis-password",
	}
	for key, value := range required {
		t.Setenv(key, value)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("读取配置失败: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("Server.Port = %s，期望 3000", cfg.Server.Port)
	}
	if cfg.JWT.Expiration != 1209600 {
		t.Errorf("JWT.Expiration = %d，期望 1209600", cfg.JWT.Expiration)
	}
	// Redis 操作超时和其他超时字段一样以秒为单位
	if cfg.Redis.OperationTimeout != 10 {
		t.Errorf("Redis.OperationTimeout = %d，期望 10", cfg.Redis.OperationTimeout)
	}
	if cfg.Razorpay.LinkExpiry != 7 {
		t.Errorf("Razorpay.LinkExpiry = %d，期望 7", cfg.Razorpay.LinkExpiry)
	}
	if cfg.NewUser.PasswordLength != 12 {
		t.Errorf("NewUser.PasswordLength = %d，期望 12", cfg.NewUser.PasswordLength)
	}
}

// 缺少必需的环境变量必须返回错误，不能吞掉错误返回空配置
func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)

	// t.Setenv 已登记恢复，这里再取消设置使得变量在测试期间缺失
	t.Setenv("JWT_SECRET", "")
	_ = os.Unsetenv("JWT_SECRET")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("缺少 JWT_SECRET 时期望返回错误")
	}
}
