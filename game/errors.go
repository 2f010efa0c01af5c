package game

type GameError struct {
	Code string
	Msg  string
}

func (e *GameError) ErrorCode() string { return e.Code }
func (e *GameError) Error() string     { return e.Msg }

var (
	// ErrNotConnected means the channel to the server is down
	ErrNotConnected = &GameError{"NOTCONNECTED", "not connected"}
	// ErrNoState means no snapshot has arrived yet
	ErrNoState = &GameError{"NOSTATE", "no game state yet"}
	// ErrNotYourTurn means another player holds the turn
	ErrNotYourTurn = &GameError{"NOTYOURTURN", "it's not your turn"}
	// ErrInDebt means only mortgaging is allowed until the debt clears
	ErrInDebt = &GameError{"INDEBT", "in debt, mortgage something first"}
	// ErrNotNow is for maybe valid moves that are not allowed now
	ErrNotNow = &GameError{"NOTNOW", "you cannot do that now"}
	// ErrBadRequest is for bad requests
	ErrBadRequest = &GameError{"BADREQUEST", "bad request"}
)
