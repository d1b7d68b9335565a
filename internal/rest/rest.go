package rest

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"liardeck.com/client/internal/game"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const authKeyHeader = "auth-key"

// RestClient talks to the game server's HTTP JSON API.
type RestClient struct {
	url        string
	httpClient *http.Client

	mu      sync.RWMutex
	authKey string
}

func NewRestClient(url string, timeoutSec uint32, authKey string) *RestClient {
	return &RestClient{
		url: url,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		authKey: authKey,
	}
}

// SetAuthKey stores the credential to be sent with subsequent requests.
// Write-once in practice; the server never rotates keys.
func (rc *RestClient) SetAuthKey(key string) {
	rc.mu.Lock()
	rc.authKey = key
	rc.mu.Unlock()
}

func (rc *RestClient) AuthKey() string {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.authKey
}

// Join requests a new seat in the game. The server issues a player ID and,
// depending on the deployment, an auth key.
func (rc *RestClient) Join(ctx context.Context) (*game.JoinResponse, error) {
	body, status, err := rc.post(ctx, "/game/join", nil)
	if err != nil {
		return nil, errors.Wrap(err, "Error from join request")
	}
	var resp game.JoinResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "Unable to parse join response")
	}
	if status != http.StatusOK || resp.PlayerID == "" {
		msg := resp.Message
		if msg == "" {
			msg = "Unknown error"
		}
		return nil, fmt.Errorf("Failed to join game: %s", msg)
	}
	return &resp, nil
}

// GetState fetches the full game state snapshot scoped to the player.
func (rc *RestClient) GetState(ctx context.Context, playerID string) (*game.GameState, error) {
	u := fmt.Sprintf("%s/game/state?player_id=%s", rc.url, url.QueryEscape(playerID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to create state request")
	}
	req.Header.Set("Content-Type", "application/json")
	rc.setAuthHeader(req)

	resp, err := rc.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "Error fetching game state")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Failed to get game state, status: %d", resp.StatusCode)
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading game state response")
	}
	var state game.GameState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, errors.Wrap(err, "Unable to parse game state")
	}
	return &state, nil
}

// Start asks the server to start a new game.
func (rc *RestClient) Start(ctx context.Context) (*game.CommandResponse, error) {
	return rc.command(ctx, "/game/start", game.StartRequest{Key: rc.AuthKey()})
}

// Play submits the ordered set of cards the player chose to play.
func (rc *RestClient) Play(ctx context.Context, playerID string, cards []string) (*game.CommandResponse, error) {
	return rc.command(ctx, "/game/play", game.PlayRequest{
		PlayerID: playerID,
		Cards:    cards,
		Key:      rc.AuthKey(),
	})
}

// Challenge challenges the previous play.
func (rc *RestClient) Challenge(ctx context.Context, playerID string) (*game.CommandResponse, error) {
	return rc.command(ctx, "/game/challenge", game.ChallengeRequest{
		PlayerID: playerID,
		Key:      rc.AuthKey(),
	})
}

func (rc *RestClient) command(ctx context.Context, path string, payload interface{}) (*game.CommandResponse, error) {
	body, status, err := rc.post(ctx, path, payload)
	if err != nil {
		return nil, errors.Wrapf(err, "Error from %s request", path)
	}
	var resp game.CommandResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, errors.Wrapf(err, "Unable to parse %s response", path)
		}
	}
	if status != http.StatusOK && resp.Message == "" {
		resp.Status = "ERROR"
		resp.Message = fmt.Sprintf("Server returned status %d", status)
	}
	return &resp, nil
}

func (rc *RestClient) post(ctx context.Context, path string, payload interface{}) ([]byte, int, error) {
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		reqData, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewBuffer(reqData)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rc.url+path, reqBody)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	rc.setAuthHeader(req)

	resp, err := rc.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func (rc *RestClient) setAuthHeader(req *http.Request) {
	if key := rc.AuthKey(); key != "" {
		req.Header.Set(authKeyHeader, key)
	}
}
