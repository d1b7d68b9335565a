package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"liardeck.com/client/internal/logging"
	"liardeck.com/client/internal/player"
	"liardeck.com/client/internal/store"
	"liardeck.com/client/internal/util"
	"liardeck.com/client/internal/view"
)

var (
	cmdArgs    arg
	mainLogger = logging.GetZeroLogger("main::main", nil)
)

type arg struct {
	name       string
	playerID   string
	serverURL  string
	auth       bool
	progress   bool
	deviceID   string
	credential string
}

func init() {
	flag.StringVar(&cmdArgs.name, "name", "player", "Display name for this session")
	flag.StringVar(&cmdArgs.playerID, "player", "", "Player ID to resume. If not provided, a new seat is requested from the server.")
	flag.StringVar(&cmdArgs.serverURL, "server", "", "Game server URL. Defaults to API_SERVER_URL.")
	flag.BoolVar(&cmdArgs.auth, "auth", true, "Track and send the server-issued auth credential")
	flag.BoolVar(&cmdArgs.progress, "progress", true, "Show a loading indicator during network calls")
	flag.StringVar(&cmdArgs.deviceID, "device-id", "", "Stable device ID used to key the stored credential")
	flag.StringVar(&cmdArgs.credential, "credential-file", "", "Credential file path. Defaults to AUTH_KEY_FILE.")
	flag.Parse()
}

func main() {
	os.Exit(run())
}

func run() int {
	godotenv.Load()
	zerolog.SetGlobalLevel(util.Env.GetZeroLogLogLevel())

	serverURL := cmdArgs.serverURL
	if serverURL == "" {
		serverURL = util.Env.GetAPIServerURL()
	}
	deviceID := cmdArgs.deviceID
	if deviceID == "" {
		deviceID = uuid.New().String()
	}

	var credStore store.CredentialStore
	if util.Env.IsRedisConfigured() {
		credStore = store.NewRedisCredentialStore(
			fmt.Sprintf("%s:%d", util.Env.GetRedisHost(), util.Env.GetRedisPort()),
			util.Env.GetRedisPW(),
			util.Env.GetRedisDB(),
			deviceID,
		)
	} else {
		credentialFile := cmdArgs.credential
		if credentialFile == "" {
			credentialFile = util.Env.GetAuthKeyFile()
		}
		credStore = store.NewFileCredentialStore(credentialFile)
	}

	printer := view.NewTerminalPrinter(os.Stdout, cmdArgs.progress)
	p, err := player.NewPlayer(player.Config{
		Name:         cmdArgs.name,
		DeviceID:     deviceID,
		PlayerID:     cmdArgs.playerID,
		APIServerURL: serverURL,
		RequireAuth:  cmdArgs.auth,
	}, credStore, printer, mainLogger)
	if err != nil {
		mainLogger.Error().Msgf("Error while creating player: %+v", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := p.JoinOrResume(ctx); err != nil {
		mainLogger.Error().Msgf("Unable to join the game: %+v", err)
		return 1
	}
	fmt.Printf("Your player ID is %s. Resume with -player %s\n", p.PlayerID, p.PlayerID)

	p.RefreshOnce(ctx)
	go p.PollUntilMyTurn(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "start":
			p.SubmitStart(ctx)
		case "play":
			toggleByIndex(p, fields[1:])
			p.SubmitPlay(ctx)
		case "select":
			toggleByIndex(p, fields[1:])
		case "challenge":
			p.SubmitChallenge(ctx)
		case "refresh":
			p.RefreshOnce(ctx)
			go p.PollUntilMyTurn(ctx)
		case "quit", "exit":
			return 0
		default:
			fmt.Println("Commands: start, select <n> [n...], play <n> [n...], challenge, refresh, quit")
		}
	}
	return 0
}

// toggleByIndex toggles hand cards by their 1-based position as shown by the
// terminal printer.
func toggleByIndex(p *player.Player, args []string) {
	state := p.LastState()
	if state == nil {
		return
	}
	for _, a := range args {
		idx, err := strconv.Atoi(a)
		if err != nil || idx < 1 || idx > len(state.YourHand) {
			fmt.Printf("Invalid card number: %s\n", a)
			continue
		}
		p.ToggleCard(state.YourHand[idx-1])
	}
}
