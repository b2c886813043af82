package main

import (
	"github.com/vigil-mini/backend/internal/server"
	"github.com/vigil-mini/backend/internal/util"
	"github.com/vigil-mini/backend/pkg/logger"
	"github.com/vigil-mini/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  debug,
		Format: util.GetEnvString("LOG_FORMAT", "text"),
	})
	logger.Init(consoleLogger)

	server.Init()
}
