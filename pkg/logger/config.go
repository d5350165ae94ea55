package logger

import "log/slog"

type Backend string

const (
	BackendStd Backend = "std" // текстовый вывод для dev
	BackendZap Backend = "zap" // JSON через slog-zap, с сэмплированием
)

type Config struct {
	// Метаданные
	Service    string
	Version    string
	InstanceID string

	// Управление выводом
	Level   slog.Level
	Env     Env
	Backend Backend // default: zap для stage/prod, std для dev
	Debug   bool

	// Zap sampling
	SampleInitial    int
	SampleThereafter int

	AddSource bool
}
