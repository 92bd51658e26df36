package app

import (
	"os"
	"time"

	"github.com/sellstat-next/internal/config"
	"github.com/sellstat-next/internal/logger"

	"go.uber.org/zap"
)

// Options 애플리케이션 시작 옵션
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
}

// normalizeOptions 기본값 보정
func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return opts
}
