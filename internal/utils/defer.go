package utils

import "github.com/MrSnakeDoc/navsync/internal/logger"

func Try(f func() error) {
	if err := f(); err != nil {
		logger.LogError("deferred cleanup failed: %v", err)
	}
}
