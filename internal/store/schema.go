package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS reports (
    file_path    TEXT PRIMARY KEY,
    report_date  TEXT,
    mtime_ns     INTEGER NOT NULL,
    size_bytes   INTEGER NOT NULL,
    parsed_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS project_records (
    file_path    TEXT NOT NULL REFERENCES reports(file_path) ON DELETE CASCADE,
    position     INTEGER NOT NULL,
    name         TEXT NOT NULL,
    expenses     REAL NOT NULL DEFAULT 0,
    salary       REAL NOT NULL DEFAULT 0,
    travel       REAL NOT NULL DEFAULT 0,
    supplies     REAL NOT NULL DEFAULT 0,
    fringe       REAL NOT NULL DEFAULT 0,
    fellowship   REAL NOT NULL DEFAULT 0,
    indirect     REAL NOT NULL DEFAULT 0,
    balance      REAL NOT NULL DEFAULT 0,
    budget       REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (file_path, position)
);

CREATE INDEX IF NOT EXISTS idx_reports_date ON reports(report_date);
`
