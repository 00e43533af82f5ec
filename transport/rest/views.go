package rest

import (
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository"
)

// waitingGameView - the list projection of a game that waits for an opponent.
type waitingGameView struct {
	Name   string        `json:"name"`
	Status entity.Status `json:"status"`
}

// finishedGameView - returned by the move that ended the game.
type finishedGameView struct {
	Name   string        `json:"name"`
	Status entity.Status `json:"status"`
	Winner string        `json:"winner,omitempty"`
}

// playView - the full game plus the mark expected to move next.
type playView struct {
	*entity.Game
	ActualMark entity.Mark `json:"actual_mark,omitempty"`
}

type playerView struct {
	User  *entity.Player `json:"user"`
	Games []*entity.Game `json:"games"`
}

type historyView struct {
	User  string                  `json:"user"`
	Games []repository.GameRecord `json:"games"`
}

type errorView struct {
	Detail string `json:"detail"`
}

func newPlayView(game *entity.Game) playView {
	return playView{
		Game:       game,
		ActualMark: game.TurnMark(),
	}
}

func newWaitingGameViews(games []*entity.Game) []waitingGameView {
	views := make([]waitingGameView, 0, len(games))
	for _, game := range games {
		views = append(views, waitingGameView{Name: game.Name, Status: game.Status})
	}

	return views
}

func nonNilGames(games []*entity.Game) []*entity.Game {
	if games == nil {
		return []*entity.Game{}
	}

	return games
}
