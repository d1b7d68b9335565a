package gamescript

import (
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Players contains the players config YAML content.
type Players struct {
	Players []PlayerConfig `yaml:"players"`
}

// PlayerConfig is one entry in the players config.
type PlayerConfig struct {
	Name     string `yaml:"name"`
	DeviceID string `yaml:"device-id"`

	// ResumeID resumes an existing seat instead of joining as a new player.
	ResumeID string `yaml:"resume-id"`
}

// Script contains game script YAML content. A script drives a full table of
// bot players through one game: who pauses how long, what each player does
// on its turns, and optionally the expected outcome.
type Script struct {
	Label     string     `yaml:"label"`
	BotConfig BotConfig  `yaml:"bot-config"`
	Turns     []Turn     `yaml:"turns"`
	AfterGame AfterGame  `yaml:"after-game"`
}

// BotConfig holds the knobs shared by all bots in the script.
type BotConfig struct {
	MinActionPauseTime uint32 `yaml:"min-action-pause-time"`
	MaxActionPauseTime uint32 `yaml:"max-action-pause-time"`

	// PollIntervalMs overrides the state poll cadence. Zero means the
	// environment default.
	PollIntervalMs uint32 `yaml:"poll-interval-ms"`

	// RequireAuth makes the bots track and send the auth credential.
	RequireAuth bool `yaml:"require-auth"`
}

// Turn is a scripted decision for one player's turn. Turns are consumed in
// order per player; when a player runs out of scripted turns, the default
// policy applies (play one card, honest when possible).
type Turn struct {
	Player string `yaml:"player"`
	Action string `yaml:"action"` // "play" or "challenge"
	Cards  int    `yaml:"cards"`  // number of cards for a play action
	Bluff  bool   `yaml:"bluff"`  // prefer cards that do not match the reference card
}

// AfterGame describes post-game verification.
type AfterGame struct {
	VerifyWinner string `yaml:"verify-winner"`
}

const (
	ActionPlay      = "play"
	ActionChallenge = "challenge"
)

// ReadGameScript reads game script yaml file.
func ReadGameScript(fileName string) (*Script, error) {
	bytes, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "Error reading game script file [%s]", fileName)
	}
	var script Script
	err = yaml.Unmarshal(bytes, &script)
	if err != nil {
		return nil, errors.Wrapf(err, "Error parsing YAML file [%s]", fileName)
	}
	err = script.Validate()
	if err != nil {
		return nil, errors.Wrapf(err, "Error validating script [%s]", fileName)
	}
	return &script, nil
}

// ReadPlayersConfig reads players config yaml file.
func ReadPlayersConfig(fileName string) (*Players, error) {
	bytes, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "Error reading players config file [%s]", fileName)
	}
	var players Players
	err = yaml.Unmarshal(bytes, &players)
	if err != nil {
		return nil, errors.Wrapf(err, "Error parsing YAML file [%s]", fileName)
	}
	if len(players.Players) == 0 {
		return nil, fmt.Errorf("Players config [%s] contains no players", fileName)
	}
	return &players, nil
}

// Validate checks the script for errors.
func (s *Script) Validate() error {
	for i, turn := range s.Turns {
		if turn.Player == "" {
			return fmt.Errorf("Turn %d has no player", i+1)
		}
		switch turn.Action {
		case ActionPlay:
			if turn.Cards <= 0 {
				return fmt.Errorf("Turn %d (%s) plays %d cards", i+1, turn.Player, turn.Cards)
			}
		case ActionChallenge:
			if turn.Cards != 0 {
				return fmt.Errorf("Turn %d (%s) is a challenge but specifies cards", i+1, turn.Player)
			}
		default:
			return fmt.Errorf("Turn %d (%s) has invalid action [%s]", i+1, turn.Player, turn.Action)
		}
	}
	return nil
}

// TurnsForPlayer returns the scripted turns belonging to the named player,
// preserving script order.
func (s *Script) TurnsForPlayer(name string) []Turn {
	var turns []Turn
	for _, t := range s.Turns {
		if t.Player == name {
			turns = append(turns, t)
		}
	}
	return turns
}
