package sqlitestore

const schema = `
CREATE TABLE IF NOT EXISTS venues (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	cuisines    TEXT NOT NULL, -- JSON array
	rating      REAL NOT NULL DEFAULT 0,
	capacity    INTEGER NOT NULL,
	price_tier  INTEGER NOT NULL DEFAULT 2, -- 1-4 scale
	city        TEXT NOT NULL,
	address     TEXT,
	image       TEXT,
	tags        TEXT, -- JSON array
	phone       TEXT,
	description TEXT,
	is_active   INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS reservations (
	id            TEXT PRIMARY KEY,
	booking_id    TEXT NOT NULL UNIQUE,
	venue_id      TEXT NOT NULL,
	venue_name    TEXT NOT NULL,
	session_id    TEXT NOT NULL,
	datetime      TEXT NOT NULL, -- RFC 3339
	party_size    INTEGER NOT NULL,
	status        TEXT NOT NULL DEFAULT 'confirmed',
	contact_name  TEXT NOT NULL,
	contact_phone TEXT NOT NULL,
	contact_email TEXT NOT NULL,
	notes         TEXT,
	created_at    TEXT NOT NULL DEFAULT (datetime('now')),
	updated_at    TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_reservations_session ON reservations(session_id);
CREATE INDEX IF NOT EXISTS idx_reservations_venue ON reservations(venue_id);
`
