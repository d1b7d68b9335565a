package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type environment struct {
	APIServerURL   string
	PollIntervalMs string
	RedisHost      string
	RedisPort      string
	RedisPW        string
	RedisDB        string
	AuthKeyFile    string
	LogLevel       string
}

// Env is a helper object for accessing environment variables.
var Env = &environment{
	APIServerURL:   "API_SERVER_URL",
	PollIntervalMs: "POLL_INTERVAL_MS",
	RedisHost:      "REDIS_HOST",
	RedisPort:      "REDIS_PORT",
	RedisPW:        "REDIS_PW",
	RedisDB:        "REDIS_DB",
	AuthKeyFile:    "AUTH_KEY_FILE",
	LogLevel:       "LOG_LEVEL",
}

func (e *environment) GetAPIServerURL() string {
	url := os.Getenv(e.APIServerURL)
	if url == "" {
		// The default address used by the game server.
		return "http://localhost:8181"
	}
	return url
}

func (e *environment) GetPollIntervalMs() int {
	v := os.Getenv(e.PollIntervalMs)
	if v == "" {
		return 2000
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		msg := fmt.Sprintf("Invalid poll interval %s", v)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return ms
}

func (e *environment) GetRedisHost() string {
	host := os.Getenv(e.RedisHost)
	if host == "" {
		msg := fmt.Sprintf("%s is not defined", e.RedisHost)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return host
}

func (e *environment) GetRedisPort() int {
	portStr := os.Getenv(e.RedisPort)
	if portStr == "" {
		msg := fmt.Sprintf("%s is not defined", e.RedisPort)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (e *environment) GetRedisPW() string {
	return os.Getenv(e.RedisPW)
}

func (e *environment) GetRedisDB() int {
	dbStr := os.Getenv(e.RedisDB)
	if dbStr == "" {
		return 0
	}
	dbNum, err := strconv.Atoi(dbStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis db %s", dbStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return dbNum
}

func (e *environment) GetAuthKeyFile() string {
	v := os.Getenv(e.AuthKeyFile)
	if v == "" {
		return ".liardeck_auth_key"
	}
	return v
}

func (e *environment) GetLogLevel() string {
	v := os.Getenv(e.LogLevel)
	if v == "" {
		return "info"
	}
	return v
}

func (e *environment) GetZeroLogLogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(e.GetLogLevel()))
	if err != nil {
		environmentLogger.Warn().Msgf("Invalid log level %s, using info", e.GetLogLevel())
		return zerolog.InfoLevel
	}
	return level
}

func (e *environment) IsRedisConfigured() bool {
	return os.Getenv(e.RedisHost) != ""
}
