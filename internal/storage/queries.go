package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
)

// Account is a cached account-v1 lookup.
type Account struct {
	PUUID     string
	GameName  string
	TagLine   string
	FetchedAt time.Time
}

// AccountSummary is an account with the number of cached matches linked to it.
type AccountSummary struct {
	Account
	Matches int
	Latest  time.Time // most recent cached game start; zero when none
}

// MatchRef is the indexed part of a cached match, without the body.
type MatchRef struct {
	MatchID   string
	GameStart time.Time
	QueueID   int
	GameMode  string
}

// UpsertAccount inserts or refreshes an account keyed on puuid.
func (db *DB) UpsertAccount(a Account) error {
	if a.FetchedAt.IsZero() {
		a.FetchedAt = time.Now()
	}
	_, err := db.conn.Exec(`
		INSERT INTO accounts(puuid, game_name, tag_line, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(puuid) DO UPDATE SET
			game_name = excluded.game_name,
			tag_line = excluded.tag_line,
			fetched_at = excluded.fetched_at`,
		a.PUUID, a.GameName, a.TagLine, a.FetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}
	return nil
}

// GetAccount finds an account by Riot ID, case-insensitively. Returns nil when absent.
func (db *DB) GetAccount(gameName, tagLine string) (*Account, error) {
	var a Account
	var fetched int64
	err := db.conn.QueryRow(`
		SELECT puuid, game_name, tag_line, fetched_at FROM accounts
		WHERE game_name = ? COLLATE NOCASE AND tag_line = ? COLLATE NOCASE`, gameName, tagLine).
		Scan(&a.PUUID, &a.GameName, &a.TagLine, &fetched)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.FetchedAt = time.Unix(fetched, 0)
	return &a, nil
}

// FindAccount resolves a puuid, a puuid prefix, or a "name#tag" Riot ID.
// Returns nil when nothing matches.
func (db *DB) FindAccount(ref string) (*Account, error) {
	if name, tag, ok := strings.Cut(ref, "#"); ok {
		return db.GetAccount(name, tag)
	}
	var a Account
	var fetched int64
	err := db.conn.QueryRow(`
		SELECT puuid, game_name, tag_line, fetched_at FROM accounts
		WHERE puuid LIKE ? ORDER BY puuid LIMIT 1`, ref+"%").
		Scan(&a.PUUID, &a.GameName, &a.TagLine, &fetched)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.FetchedAt = time.Unix(fetched, 0)
	return &a, nil
}

// ListAccounts returns every cached account with its match count, most
// recently played first.
func (db *DB) ListAccounts() ([]AccountSummary, error) {
	rows, err := db.conn.Query(`
		SELECT a.puuid, a.game_name, a.tag_line, a.fetched_at,
		       COUNT(pm.match_id), COALESCE(MAX(m.game_start), 0)
		FROM accounts a
		LEFT JOIN player_matches pm ON pm.puuid = a.puuid
		LEFT JOIN matches m ON m.match_id = pm.match_id
		GROUP BY a.puuid
		ORDER BY MAX(m.game_start) DESC, a.game_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AccountSummary
	for rows.Next() {
		var s AccountSummary
		var fetched, latest int64
		if err := rows.Scan(&s.PUUID, &s.GameName, &s.TagLine, &fetched, &s.Matches, &latest); err != nil {
			return nil, err
		}
		s.FetchedAt = time.Unix(fetched, 0)
		if latest > 0 {
			s.Latest = time.UnixMilli(latest)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Updated in place rather than INSERT OR REPLACE, which would cascade-delete
// every player link to the match.
const upsertMatchSQL = `
	INSERT INTO matches(match_id, game_start, queue_id, game_mode, body)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(match_id) DO UPDATE SET
		game_start = excluded.game_start,
		queue_id = excluded.queue_id,
		game_mode = excluded.game_mode,
		body = excluded.body`

// UpsertMatch stores a match record, compressed. Re-storing an id replaces it.
func (db *DB) UpsertMatch(m model.MatchRecord) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match %s: %w", m.MatchID, err)
	}
	body := db.enc.EncodeAll(raw, nil)
	_, err = db.conn.Exec(upsertMatchSQL,
		m.MatchID, m.GameStartTimestamp, m.QueueID, m.GameMode, body)
	if err != nil {
		return fmt.Errorf("insert match %s: %w", m.MatchID, err)
	}
	return nil
}

// UpsertMatches stores matches and links each to puuid in one transaction.
func (db *DB) UpsertMatches(puuid string, matches []model.MatchRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insMatch, err := tx.Prepare(upsertMatchSQL)
	if err != nil {
		return err
	}
	defer insMatch.Close()

	link, err := tx.Prepare(`INSERT OR IGNORE INTO player_matches(puuid, match_id) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer link.Close()

	for _, m := range matches {
		raw, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode match %s: %w", m.MatchID, err)
		}
		if _, err := insMatch.Exec(m.MatchID, m.GameStartTimestamp, m.QueueID, m.GameMode, db.enc.EncodeAll(raw, nil)); err != nil {
			return fmt.Errorf("insert match %s: %w", m.MatchID, err)
		}
		if _, err := link.Exec(puuid, m.MatchID); err != nil {
			return fmt.Errorf("link match %s: %w", m.MatchID, err)
		}
	}
	return tx.Commit()
}

// GetMatch returns a cached match, or nil when absent.
func (db *DB) GetMatch(matchID string) (*model.MatchRecord, error) {
	var body []byte
	err := db.conn.QueryRow(`SELECT body FROM matches WHERE match_id = ?`, matchID).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m, err := db.decodeMatch(body)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", matchID, err)
	}
	return &m, nil
}

// GetMatches returns the cached subset of ids, keyed by match id.
func (db *DB) GetMatches(ids []string) (map[string]model.MatchRecord, error) {
	out := make(map[string]model.MatchRecord, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := db.conn.Query(
		`SELECT match_id, body FROM matches WHERE match_id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		m, err := db.decodeMatch(body)
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", id, err)
		}
		out[id] = m
	}
	return out, rows.Err()
}

// LinkPlayerMatch records that puuid played in matchID. Idempotent.
func (db *DB) LinkPlayerMatch(puuid, matchID string) error {
	_, err := db.conn.Exec(`INSERT OR IGNORE INTO player_matches(puuid, match_id) VALUES (?, ?)`, puuid, matchID)
	if err != nil {
		return fmt.Errorf("link match %s: %w", matchID, err)
	}
	return nil
}

// ListPlayerMatches returns the cached matches linked to puuid, newest first.
func (db *DB) ListPlayerMatches(puuid string) ([]MatchRef, error) {
	rows, err := db.conn.Query(`
		SELECT m.match_id, m.game_start, m.queue_id, m.game_mode
		FROM player_matches pm JOIN matches m ON m.match_id = pm.match_id
		WHERE pm.puuid = ?
		ORDER BY m.game_start DESC`, puuid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchRef
	for rows.Next() {
		var r MatchRef
		var start int64
		if err := rows.Scan(&r.MatchID, &start, &r.QueueID, &r.GameMode); err != nil {
			return nil, err
		}
		r.GameStart = time.UnixMilli(start)
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetPlayerMatches returns up to limit full cached matches for puuid, newest
// first. limit <= 0 returns all of them.
func (db *DB) GetPlayerMatches(puuid string, limit int) ([]model.MatchRecord, error) {
	q := `
		SELECT m.body
		FROM player_matches pm JOIN matches m ON m.match_id = pm.match_id
		WHERE pm.puuid = ?
		ORDER BY m.game_start DESC`
	args := []any{puuid}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchRecord
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		m, err := db.decodeMatch(body)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeletePlayer removes an account, its links, and any match no other cached
// account references. Returns the number of matches removed.
func (db *DB) DeletePlayer(puuid string) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM accounts WHERE puuid = ?`, puuid); err != nil {
		return 0, fmt.Errorf("delete account: %w", err)
	}
	// Links go with the account via ON DELETE CASCADE; this covers links
	// stored without an account row.
	if _, err := tx.Exec(`DELETE FROM player_matches WHERE puuid = ?`, puuid); err != nil {
		return 0, fmt.Errorf("delete links: %w", err)
	}
	res, err := tx.Exec(`
		DELETE FROM matches
		WHERE match_id NOT IN (SELECT match_id FROM player_matches)`)
	if err != nil {
		return 0, fmt.Errorf("delete orphaned matches: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, tx.Commit()
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = fmt.Sprintf("<%d bytes>", len(x))
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func (db *DB) decodeMatch(body []byte) (model.MatchRecord, error) {
	var m model.MatchRecord
	raw, err := db.dec.DecodeAll(body, nil)
	if err != nil {
		return m, fmt.Errorf("decompress: %w", err)
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("decode: %w", err)
	}
	return m, nil
}

// placeholders returns a comma-separated string of n "?" for SQL IN clauses,
// e.g. placeholders(3) → "?,?,?".
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
