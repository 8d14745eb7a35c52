package transform

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	yaml "gopkg.in/yaml.v3"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"cssc/config"
)

// resultCache remembers which inputs were already transformed with the
// current settings so unchanged stylesheets can be skipped on repeated
// runs over large trees.
type resultCache struct {
	conn    *sqlite.Conn
	cfgHash string
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS results (
	src        TEXT NOT NULL,
	input_hash TEXT NOT NULL,
	cfg_hash   TEXT NOT NULL,
	output     TEXT NOT NULL,
	PRIMARY KEY (src, cfg_hash)
);`

// openCache opens or creates the cache database and fixes the settings
// hash all lookups run against.
func openCache(path string, tc *config.TransformConfig) (*resultCache, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("unable to open transform cache: %w", err)
	}
	if err := sqlitex.ExecuteScript(conn, cacheSchema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare transform cache: %w", err)
	}

	// Any settings change invalidates every cached result.
	data, err := yaml.Marshal(tc)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &resultCache{conn: conn, cfgHash: hashBytes(data)}, nil
}

func (c *resultCache) Close() error {
	if c == nil {
		return nil
	}
	return c.conn.Close()
}

// lookup returns the recorded output path when src with the same content
// was already processed under the current settings.
func (c *resultCache) lookup(src, inputHash string) (string, bool) {
	if c == nil {
		return "", false
	}
	var output string
	found := false
	err := sqlitex.Execute(c.conn, `SELECT output FROM results WHERE src = ? AND cfg_hash = ? AND input_hash = ?`,
		&sqlitex.ExecOptions{
			Args: []any{src, c.cfgHash, inputHash},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				output = stmt.ColumnText(0)
				found = true
				return nil
			},
		})
	if err != nil {
		return "", false
	}
	return output, found
}

// store records a finished transformation.
func (c *resultCache) store(src, inputHash, output string) error {
	if c == nil {
		return nil
	}
	return sqlitex.Execute(c.conn, `INSERT OR REPLACE INTO results (src, input_hash, cfg_hash, output) VALUES (?, ?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{src, inputHash, c.cfgHash, output}})
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
