package player

const (
	SessionState__JOINING             string = "JOINING"
	SessionState__IN_LOBBY            string = "IN_LOBBY"
	SessionState__WAITING_FOR_MY_TURN string = "WAITING_FOR_MY_TURN"
	SessionState__MY_TURN             string = "MY_TURN"
	SessionState__ELIMINATED          string = "ELIMINATED"
	SessionState__GAME_OVER           string = "GAME_OVER"

	SessionEvent__JOINED          string = "JOINED"
	SessionEvent__GAME_STARTED    string = "GAME_STARTED"
	SessionEvent__RECEIVE_MY_TURN string = "RECEIVE_MY_TURN"
	SessionEvent__SENT_MY_ACTION  string = "SENT_MY_ACTION"
	SessionEvent__GOT_ELIMINATED  string = "GOT_ELIMINATED"
	SessionEvent__GAME_ENDED      string = "GAME_ENDED"
	SessionEvent__NEW_LOBBY       string = "NEW_LOBBY"
)
