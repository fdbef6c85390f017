package dmadump

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // register sqlite3 driver
)

// Catalog is a sqlite database recording every decoded channel.
type Catalog struct {
	db *sql.DB
}

// NewCatalog opens, creating if necessary, the catalog in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS dump (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, words INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS run (id INTEGER PRIMARY KEY NOT NULL, channel INTEGER NOT NULL, state INTEGER NOT NULL, output TEXT, reason TEXT, dump_id INTEGER, FOREIGN KEY(dump_id) REFERENCES dump(id))"); err != nil {
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) addDump(sha string, width, height, words int) (int64, error) {
	var id int64
	switch err := c.db.QueryRow("SELECT id FROM dump WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := c.db.Exec("INSERT INTO dump (sha1, width, height, words) VALUES (?, ?, ?, ?)", sha, width, height, words)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// Record stores the outcome of a channel.
func (c *Catalog) Record(r Result) error {
	var dump sql.NullInt64
	if r.SHA1 != "" {
		id, err := c.addDump(r.SHA1, r.Width, r.Height, r.Words)
		if err != nil {
			return err
		}
		dump.Int64, dump.Valid = id, true
	}

	var output, reason sql.NullString
	if r.Output != "" {
		output.String, output.Valid = r.Output, true
	}
	if r.Err != nil {
		reason.String, reason.Valid = r.Err.Error(), true
	}

	_, err := c.db.Exec("INSERT INTO run (channel, state, output, reason, dump_id) VALUES (?, ?, ?, ?, ?)", r.Channel, int(r.State), output, reason, dump)
	return err
}

// Runs returns every recorded outcome for channel, oldest first.
func (c *Catalog) Runs(channel int) ([]Result, error) {
	rows, err := c.db.Query("SELECT r.state, r.output, r.reason, d.sha1, d.width, d.height, d.words FROM run AS r LEFT JOIN dump AS d ON r.dump_id = d.id WHERE r.channel = ? ORDER BY r.id", channel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var state int
		var output, reason, sha sql.NullString
		var width, height, words sql.NullInt64
		if err := rows.Scan(&state, &output, &reason, &sha, &width, &height, &words); err != nil {
			return nil, err
		}

		r := Result{
			Channel: channel,
			State:   State(state),
			Output:  output.String,
			SHA1:    sha.String,
			Width:   int(width.Int64),
			Height:  int(height.Int64),
			Words:   int(words.Int64),
		}
		if reason.Valid {
			r.Err = errors.New(reason.String)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}
