package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
    key                  TEXT PRIMARY KEY,
    value                BLOB NOT NULL,
    updated_at           TEXT NOT NULL
);
`
