package request

// CreatePlayerRequest is the request body for creating a player
type CreatePlayerRequest struct {
	Name string `json:"name"`
}

// AddComponentRequest is the request body for entering a player into a match
type AddComponentRequest struct {
	PlayerID *uint32 `json:"player_id"`
}

// DeclareWinnerRequest is the request body for deciding a match
type DeclareWinnerRequest struct {
	PlayerID *uint32 `json:"player_id"`
}
