package storage

const schema = `
CREATE TABLE IF NOT EXISTS fencers (
	id       INTEGER PRIMARY KEY,
	forename TEXT NOT NULL,
	surname  TEXT NOT NULL,
	UNIQUE (forename, surname)
);

CREATE TABLE IF NOT EXISTS clubs (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS club_aliases (
	alias   TEXT PRIMARY KEY,
	club_id INTEGER NOT NULL REFERENCES clubs (id)
);

CREATE TABLE IF NOT EXISTS event_dates (
	id        INTEGER PRIMARY KEY,
	event_id  INTEGER NOT NULL,
	year      INTEGER NOT NULL,
	full_date TEXT NOT NULL,
	UNIQUE (event_id, full_date)
);

CREATE TABLE IF NOT EXISTS event_entries (
	date_id     INTEGER NOT NULL REFERENCES event_dates (id),
	event_id    INTEGER NOT NULL,
	category_id INTEGER NOT NULL,
	entries     INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (date_id, event_id, category_id)
);

CREATE TABLE IF NOT EXISTS holding (
	id          INTEGER PRIMARY KEY,
	batch_id    TEXT NOT NULL,
	source      TEXT NOT NULL,
	event_id    INTEGER NOT NULL,
	event_year  INTEGER NOT NULL,
	category_id INTEGER NOT NULL,
	forename    TEXT NOT NULL,
	surname     TEXT NOT NULL,
	club        TEXT NOT NULL,
	position    INTEGER NOT NULL,
	points      INTEGER NOT NULL,
	birth_year  INTEGER NOT NULL DEFAULT 0,
	fencer_id   INTEGER,
	club_id     INTEGER,
	imported_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS holding_batch ON holding (batch_id);

CREATE TABLE IF NOT EXISTS results (
	id          INTEGER PRIMARY KEY,
	event_id    INTEGER NOT NULL,
	date_id     INTEGER NOT NULL REFERENCES event_dates (id),
	category_id INTEGER NOT NULL,
	fencer_id   INTEGER NOT NULL REFERENCES fencers (id),
	club_id     INTEGER REFERENCES clubs (id),
	position    INTEGER NOT NULL,
	points      INTEGER NOT NULL,
	UNIQUE (date_id, category_id, fencer_id)
);
`
