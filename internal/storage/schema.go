package storage

const schemaSQL = `
-- Traversal metadata as key-value pairs. The checkpoint lives under a single
-- key as a JSON blob, replaced wholesale on every state change.
CREATE TABLE IF NOT EXISTS traversal_meta (
    key TEXT PRIMARY KEY NOT NULL,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- One row per visited URL, written as fetches resolve.
CREATE TABLE IF NOT EXISTS page_outcomes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT UNIQUE NOT NULL,
    parent_url TEXT,
    depth INTEGER NOT NULL,
    score REAL,
    scored INTEGER NOT NULL DEFAULT 0,
    success INTEGER NOT NULL,
    error TEXT,
    title TEXT,
    meta_description TEXT,
    content_type TEXT,
    visited_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_outcomes_depth ON page_outcomes(depth);
CREATE INDEX IF NOT EXISTS idx_outcomes_success ON page_outcomes(success);
`
