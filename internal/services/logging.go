package services

import "log/slog"

// serviceLogger 每次调用时取默认 logger，main 中替换默认 handler 后同样生效
func serviceLogger(name string) *slog.Logger {
	return slog.Default().With("service", name)
}
