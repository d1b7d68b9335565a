package app

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"liardeck.com/client/internal/gamescript"
	"liardeck.com/client/internal/logging"
)

var (
	restLogger    = logging.GetZeroLogger("app::rest", nil)
	playersConfig = "runner_scripts/players/default.yaml"
)

// RunRestServer registers http endpoints and handlers and runs the server.
func RunRestServer(portNo uint) {
	r := gin.Default()

	r.POST("/apply", apply)
	r.POST("/delete", deleteBatch)
	r.POST("/delete-all", deleteAll)
	r.GET("/batches", listBatches)
	r.GET("/sessions/:sessionId", sessionStatus)
	r.Run(fmt.Sprintf(":%d", portNo))
}

// BatchConf is the payload for the '/apply' and '/delete' endpoints.
// '/delete' only takes BatchID and ignores the other fields.
type BatchConf struct {
	// BatchID is the unique name given to a group of GameRunners.
	BatchID string `json:"batchId"`

	// Script is the game script YAML file used by the runners in this batch.
	Script string `json:"script"`

	// Players is the players YAML file. Defaults to the stock config.
	Players string `json:"players"`

	// NumGames is the number of desired concurrent games in this batch.
	NumGames *uint32 `json:"numGames"`

	// Number of seconds (in float) to pause between launching runners.
	LaunchInterval *float32 `json:"launchInterval"`
}

func apply(c *gin.Context) {
	var payload BatchConf
	err := c.BindJSON(&payload)
	if err != nil {
		errMsg := fmt.Sprintf("Failed to parse payload. Error: %s", err)
		restLogger.Error().Msg(errMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errMsg})
		return
	}

	if payload.NumGames == nil {
		errMsg := "numGames is required"
		restLogger.Error().Msg(errMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errMsg})
		return
	}
	if payload.BatchID == "" {
		payload.BatchID = "default_group"
	}

	launcher := GetLauncher()

	var script *gamescript.Script
	var players *gamescript.Players
	if !launcher.BatchExists(payload.BatchID) {
		if payload.Script == "" {
			errMsg := "A game script must be provided to start a new batch."
			restLogger.Error().Msg(errMsg)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errMsg})
			return
		}
		script, err = gamescript.ReadGameScript(payload.Script)
		if err != nil {
			errMsg := fmt.Sprintf("Error while parsing script file. Error: %s", err)
			restLogger.Error().Msg(errMsg)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errMsg})
			return
		}
		playersFile := payload.Players
		if playersFile == "" {
			playersFile = playersConfig
		}
		players, err = gamescript.ReadPlayersConfig(playersFile)
		if err != nil {
			errMsg := fmt.Sprintf("Error while parsing players file. Error: %s", err)
			restLogger.Error().Msg(errMsg)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errMsg})
			return
		}
	}

	err = launcher.ApplyToBatch(payload.BatchID, players, script, *payload.NumGames, payload.LaunchInterval)
	if err != nil {
		errMsg := fmt.Sprintf("Error while applying config. Error: %s", err)
		restLogger.Error().Msg(errMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errMsg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Accepted"})
}

func deleteBatch(c *gin.Context) {
	var batchConf BatchConf
	err := c.BindJSON(&batchConf)
	if err != nil {
		errMsg := fmt.Sprintf("Failed to parse payload. Error: %s", err)
		restLogger.Error().Msg(errMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errMsg})
		return
	}
	restLogger.Info().Msgf("/delete batch ID: [%s]", batchConf.BatchID)
	launcher := GetLauncher()
	err = launcher.StopBatch(batchConf.BatchID)
	if err != nil {
		errMsg := fmt.Sprintf("Error while stopping batch. Error: %s", err)
		restLogger.Error().Msg(errMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errMsg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Stopped"})
}

func deleteAll(c *gin.Context) {
	restLogger.Info().Msg("/delete-all")
	GetLauncher().StopAll()
	c.JSON(http.StatusOK, gin.H{"status": "Stopped"})
}

func listBatches(c *gin.Context) {
	c.JSON(http.StatusOK, GetLauncher().ListBatches())
}

func sessionStatus(c *gin.Context) {
	sessionID := c.Param("sessionId")
	status, exists := GetLauncher().SessionStatus(sessionID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Session [%s] not found", sessionID)})
		return
	}
	c.JSON(http.StatusOK, status)
}
