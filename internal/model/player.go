package model

// PlayerID identifies one of the two seats in a game
type PlayerID int

const (
	NoPlayer  PlayerID = 0
	PlayerOne PlayerID = 1
	PlayerTwo PlayerID = 2
)

// IsValid returns true for player 1 and player 2
func (p PlayerID) IsValid() bool {
	return p == PlayerOne || p == PlayerTwo
}

// Other returns the opposing player
func (p PlayerID) Other() PlayerID {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// Occupant returns the cell value this player's queens occupy
func (p PlayerID) Occupant() Occupant {
	return Occupant(p)
}

// Default player presentation values
const (
	DefaultPlayer1Name  = "Player 1"
	DefaultPlayer2Name  = "Player 2"
	DefaultBotName      = "Clara"
	DefaultPlayer1Color = "blue"
	DefaultPlayer2Color = "pink"
)

// Player describes how a seat is presented to the outside world.
// The rules never look at these fields.
type Player struct {
	Name  string
	Color string // queen icon colour
	IsBot bool
}
