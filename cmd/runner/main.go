package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"liardeck.com/client/internal/driver"
	"liardeck.com/client/internal/gamescript"
	"liardeck.com/client/internal/util"
)

var (
	cmdArgs    arg
	mainLogger = log.With().Str("logger_name", "main::main").Logger()
)

type arg struct {
	playersFile string
	scriptFile  string
}

func init() {
	flag.StringVar(&cmdArgs.scriptFile, "script", "", "Game script YAML file")
	flag.StringVar(&cmdArgs.playersFile, "players", "runner_scripts/players/default.yaml", "Players YAML file")
	flag.Parse()
}

func main() {
	os.Exit(runner())
}

func runner() int {
	godotenv.Load()
	zerolog.SetGlobalLevel(util.Env.GetZeroLogLogLevel())
	mainLogger.Info().Msgf("Game server URL: %s", util.Env.GetAPIServerURL())
	mainLogger.Info().Msgf("Players Config File: %s", cmdArgs.playersFile)
	mainLogger.Info().Msgf("Game Script File: %s", cmdArgs.scriptFile)
	if cmdArgs.playersFile == "" {
		mainLogger.Error().Msg("No players config file is provided.")
		return 1
	}
	if cmdArgs.scriptFile == "" {
		mainLogger.Error().Msg("No script file is provided.")
		return 1
	}
	players, err := gamescript.ReadPlayersConfig(cmdArgs.playersFile)
	if err != nil {
		mainLogger.Error().Msgf("Error while parsing players file: %+v", err)
		return 1
	}
	script, err := gamescript.ReadGameScript(cmdArgs.scriptFile)
	if err != nil {
		mainLogger.Error().Msgf("Error while parsing script file: %+v", err)
		return 1
	}
	runnerLogger := log.With().Str("logger_name", "GameRunner").Logger()
	playerLogger := log.With().Str("logger_name", "Player").Logger()
	gameRunner, err := driver.NewGameRunner(util.Env.GetAPIServerURL(), players, script, &runnerLogger, &playerLogger)
	if err != nil {
		mainLogger.Error().Msgf("Error while creating a game runner %+v", err)
		return 1
	}
	err = gameRunner.Run(context.Background())
	if err != nil {
		mainLogger.Error().Msgf("Unhandled error from game runner: %s", err)
		return 1
	}

	return 0
}
