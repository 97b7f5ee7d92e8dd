package main

import (
	"errors"
	"os"

	cmd "github.com/MrSnakeDoc/navsync/internal"
	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/middleware"
)

func main() {
	err := cmd.Execute()
	if err != nil && !errors.Is(err, middleware.ErrLogged) {
		logger.LogError("%s", err.Error())
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
