package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"gorm.io/gorm"
)

const defaultHistoryLimit = 50

// GameRecord - an archived game that reached a terminal state.
type GameRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"index;not null" json:"name"`
	Status     string    `gorm:"not null" json:"status"`
	PlayerX    string    `gorm:"index;not null" json:"player_x"`
	PlayerO    string    `gorm:"index;not null" json:"player_o"`
	Winner     string    `json:"winner,omitempty"`
	Board      string    `gorm:"type:text;not null" json:"board"`
	FinishedAt time.Time `gorm:"index;not null" json:"finished_at"`
}

type ArchiveRepository interface {
	Save(ctx context.Context, game *entity.Game) error
	ListByPlayer(ctx context.Context, playerName string, limit int) ([]GameRecord, error)
}

type dbArchive struct {
	db *gorm.DB
}

// NewArchiveRepository - migrates the records table and returns the archive.
func NewArchiveRepository(db *gorm.DB) (ArchiveRepository, error) {
	if err := db.AutoMigrate(&GameRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate game records: %w", err)
	}

	return &dbArchive{db: db}, nil
}

func newGameRecord(game *entity.Game) (*GameRecord, error) {
	board, err := json.Marshal(game.Board)
	if err != nil {
		return nil, fmt.Errorf("could not marshal board: %w", err)
	}

	record := &GameRecord{
		ID:         uuid.New(),
		Name:       game.Name,
		Status:     string(game.Status),
		Winner:     game.Winner,
		Board:      string(board),
		FinishedAt: time.Now().UTC(),
	}

	for _, seat := range game.Players {
		switch seat.Mark {
		case entity.MarkX:
			record.PlayerX = seat.Player
		case entity.MarkO:
			record.PlayerO = seat.Player
		}
	}

	return record, nil
}

func (that *dbArchive) Save(ctx context.Context, game *entity.Game) error {
	record, err := newGameRecord(game)
	if err != nil {
		return err
	}

	if err = that.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to archive game: %w", err)
	}

	return nil
}

// ListByPlayer - the player's archived games, latest first.
func (that *dbArchive) ListByPlayer(ctx context.Context, playerName string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	var records []GameRecord

	err := that.db.WithContext(ctx).
		Where("player_x = ? OR player_o = ?", playerName, playerName).
		Order("finished_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list archived games: %w", err)
	}

	return records, nil
}

type nopArchive struct{}

// NewNopArchiveRepository - archive used when postgres is disabled.
func NewNopArchiveRepository() ArchiveRepository {
	return nopArchive{}
}

func (nopArchive) Save(context.Context, *entity.Game) error {
	return nil
}

func (nopArchive) ListByPlayer(context.Context, string, int) ([]GameRecord, error) {
	return []GameRecord{}, nil
}
