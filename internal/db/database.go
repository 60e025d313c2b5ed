package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arvindmenon/literature-be/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

// Database persists player and game records plus chat history. The engine
// never waits on it: all writes happen after the in-memory mutation.
type Database struct {
	db *sql.DB
}

// ChatMessage is one line of a game's chat side-channel.
type ChatMessage struct {
	ID         int64     `json:"id"`
	GameCode   string    `json:"gameCode"`
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewDatabase opens (or creates) the SQLite database at path.
func NewDatabase(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// initTables creates the necessary tables if they don't exist
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			hand TEXT NOT NULL DEFAULT '[]',
			game_code TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_seen TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating players table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			code TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			state TEXT NOT NULL,
			owner_id TEXT NOT NULL,
			current_turn INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating games table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS chat_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_code TEXT NOT NULL,
			player_id TEXT NOT NULL,
			player_name TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating chat_messages table: %w", err)
	}

	return nil
}

// SavePlayer upserts a player record, including the serialized hand and the
// game it belongs to.
func (d *Database) SavePlayer(p *game.Player, gameCode string) error {
	hand, err := json.Marshal(p.Hand)
	if err != nil {
		return fmt.Errorf("error encoding hand: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT INTO players (id, name, position, score, hand, game_code, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			position = excluded.position,
			score = excluded.score,
			hand = excluded.hand,
			game_code = excluded.game_code,
			last_seen = CURRENT_TIMESTAMP
	`, p.ID, p.Name, p.Position, p.Score, string(hand), gameCode)
	if err != nil {
		return fmt.Errorf("error saving player: %w", err)
	}
	return nil
}

// GetPlayerByID loads a player record and the code of the game it references.
func (d *Database) GetPlayerByID(id string) (*game.Player, string, error) {
	var (
		p        game.Player
		hand     string
		gameCode sql.NullString
	)

	err := d.db.QueryRow(`
		SELECT id, name, position, score, hand, game_code
		FROM players WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Position, &p.Score, &hand, &gameCode)
	if err == sql.ErrNoRows {
		return nil, "", game.ErrPlayerNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("error loading player: %w", err)
	}

	if err := json.Unmarshal([]byte(hand), &p.Hand); err != nil {
		return nil, "", fmt.Errorf("error decoding hand: %w", err)
	}
	return &p, gameCode.String, nil
}

// DeletePlayer removes a player record.
func (d *Database) DeletePlayer(id string) error {
	_, err := d.db.Exec(`DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting player: %w", err)
	}
	return nil
}

// SaveGame upserts the durable game record.
func (d *Database) SaveGame(g *game.Game) error {
	_, err := d.db.Exec(`
		INSERT INTO games (code, variant, state, owner_id, current_turn, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(code) DO UPDATE SET
			state = excluded.state,
			current_turn = excluded.current_turn,
			updated_at = CURRENT_TIMESTAMP
	`, g.Code, string(g.Variant), string(g.State), g.OwnerID, g.CurrentTurn)
	if err != nil {
		return fmt.Errorf("error saving game: %w", err)
	}
	return nil
}

// DeleteGame removes a game record together with its chat history.
func (d *Database) DeleteGame(code string) error {
	if _, err := d.db.Exec(`DELETE FROM chat_messages WHERE game_code = ?`, code); err != nil {
		return fmt.Errorf("error deleting chat history: %w", err)
	}
	if _, err := d.db.Exec(`DELETE FROM games WHERE code = ?`, code); err != nil {
		return fmt.Errorf("error deleting game: %w", err)
	}
	return nil
}

// SaveChatMessage appends one chat line for a game.
func (d *Database) SaveChatMessage(gameCode, playerID, playerName, message string) error {
	_, err := d.db.Exec(`
		INSERT INTO chat_messages (game_code, player_id, player_name, message)
		VALUES (?, ?, ?, ?)
	`, gameCode, playerID, playerName, message)
	if err != nil {
		return fmt.Errorf("error saving chat message: %w", err)
	}
	return nil
}

// GetChatHistory returns a game's chat lines in chronological order.
func (d *Database) GetChatHistory(gameCode string) ([]ChatMessage, error) {
	rows, err := d.db.Query(`
		SELECT id, game_code, player_id, player_name, message, created_at
		FROM chat_messages
		WHERE game_code = ?
		ORDER BY id ASC
	`, gameCode)
	if err != nil {
		return nil, fmt.Errorf("error loading chat history: %w", err)
	}
	defer rows.Close()

	messages := []ChatMessage{}
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.GameCode, &m.PlayerID, &m.PlayerName, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning chat message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Close closes the underlying connection.
func (d *Database) Close() error {
	return d.db.Close()
}
