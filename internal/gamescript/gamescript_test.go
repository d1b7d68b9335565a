package gamescript

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadGameScript(t *testing.T) {
	script, err := ReadGameScript("test_scripts/script1.yaml")
	if err != nil {
		t.Fatalf("ReadGameScript returned error [%s]", err)
	}
	if script == nil {
		t.Fatal("ReadGameScript returned nil data")
	}

	expectedScript := Script{
		Label: "two player opener",
		BotConfig: BotConfig{
			MinActionPauseTime: 100,
			MaxActionPauseTime: 300,
			RequireAuth:        true,
		},
		Turns: []Turn{
			{
				Player: "host",
				Action: "play",
				Cards:  2,
			},
			{
				Player: "north",
				Action: "challenge",
			},
			{
				Player: "host",
				Action: "play",
				Cards:  1,
				Bluff:  true,
			},
		},
		AfterGame: AfterGame{
			VerifyWinner: "player1",
		},
	}

	if !cmp.Equal(*script, expectedScript) {
		t.Errorf("Parsed script does not match the expected script.\nDiff: %s", cmp.Diff(expectedScript, *script))
	}
}

func TestReadPlayersConfig(t *testing.T) {
	players, err := ReadPlayersConfig("test_scripts/players.yaml")
	if err != nil {
		t.Fatalf("ReadPlayersConfig returned error [%s]", err)
	}
	expected := Players{
		Players: []PlayerConfig{
			{Name: "host", DeviceID: "f1a2b3c4-0000-0000-0000-000000000001"},
			{Name: "north", DeviceID: "f1a2b3c4-0000-0000-0000-000000000002"},
		},
	}
	if !cmp.Equal(*players, expected) {
		t.Errorf("Parsed players config does not match.\nDiff: %s", cmp.Diff(expected, *players))
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		script    Script
		expectErr bool
	}{
		{
			name:   "empty script",
			script: Script{},
		},
		{
			name: "valid turns",
			script: Script{Turns: []Turn{
				{Player: "a", Action: ActionPlay, Cards: 1},
				{Player: "b", Action: ActionChallenge},
			}},
		},
		{
			name:      "missing player",
			script:    Script{Turns: []Turn{{Action: ActionPlay, Cards: 1}}},
			expectErr: true,
		},
		{
			name:      "play with no cards",
			script:    Script{Turns: []Turn{{Player: "a", Action: ActionPlay}}},
			expectErr: true,
		},
		{
			name:      "challenge with cards",
			script:    Script{Turns: []Turn{{Player: "a", Action: ActionChallenge, Cards: 2}}},
			expectErr: true,
		},
		{
			name:      "unknown action",
			script:    Script{Turns: []Turn{{Player: "a", Action: "fold"}}},
			expectErr: true,
		},
	}
	for _, tc := range testCases {
		err := tc.script.Validate()
		if tc.expectErr && err == nil {
			t.Errorf("%s: expected validation error, got nil", tc.name)
		}
		if !tc.expectErr && err != nil {
			t.Errorf("%s: unexpected validation error [%s]", tc.name, err)
		}
	}
}

func TestTurnsForPlayer(t *testing.T) {
	script := Script{Turns: []Turn{
		{Player: "a", Action: ActionPlay, Cards: 1},
		{Player: "b", Action: ActionChallenge},
		{Player: "a", Action: ActionPlay, Cards: 2},
	}}
	turns := script.TurnsForPlayer("a")
	if len(turns) != 2 {
		t.Fatalf("Expected 2 turns for player a, got %d", len(turns))
	}
	if turns[0].Cards != 1 || turns[1].Cards != 2 {
		t.Error("Turns for player a are out of script order")
	}
}
