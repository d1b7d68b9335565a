package main

import (
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"liardeck.com/client/cmd/server/app"
	"liardeck.com/client/internal/logging"
	"liardeck.com/client/internal/util"
)

var (
	cmdArgs    arg
	mainLogger = logging.GetZeroLogger("main::main", nil)
)

type arg struct {
	port uint
}

func init() {
	flag.UintVar(&cmdArgs.port, "port", 8081, "Listen port")
	flag.Parse()
}

func main() {
	godotenv.Load()
	logLevel := util.Env.GetZeroLogLogLevel()
	fmt.Printf("Setting log level to %s\n", logLevel)
	zerolog.SetGlobalLevel(logLevel)
	mainLogger.Info().Msgf("Game server URL: %s", util.Env.GetAPIServerURL())
	app.RunRestServer(cmdArgs.port)
}
