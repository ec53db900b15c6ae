package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sources (
	id          TEXT PRIMARY KEY,
	type        TEXT NOT NULL,
	name        TEXT NOT NULL,
	base_url    TEXT NOT NULL DEFAULT '',
	enabled     INTEGER NOT NULL DEFAULT 1,
	poll_interval_sec INTEGER NOT NULL DEFAULT 120,
	config      TEXT NOT NULL DEFAULT '{}',
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS events (
	id             TEXT PRIMARY KEY,
	source_type    TEXT NOT NULL,
	source_item_id TEXT NOT NULL,
	source_id      TEXT NOT NULL,
	category       TEXT NOT NULL DEFAULT 'appointment',
	title          TEXT NOT NULL,
	body           TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT 'scheduled',
	severity       TEXT NOT NULL DEFAULT 'info',
	patient        TEXT NOT NULL DEFAULT '',
	practitioner   TEXT NOT NULL DEFAULT '',
	occurs_at      DATETIME,
	created_at     DATETIME NOT NULL,
	updated_at     DATETIME NOT NULL,
	fetched_at     DATETIME NOT NULL,
	raw_data       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS notifications (
	id          TEXT PRIMARY KEY,
	event_id    TEXT NOT NULL,
	source_type TEXT NOT NULL,
	message     TEXT NOT NULL,
	severity    TEXT NOT NULL DEFAULT 'info',
	read        INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS reminders (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	notes       TEXT NOT NULL DEFAULT '',
	patient     TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'open',
	due_at      DATETIME,
	sort_order  INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL,
	done_at     DATETIME,
	updated_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_source_id ON events(source_id);
CREATE INDEX IF NOT EXISTS idx_events_source_type ON events(source_type);
CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
CREATE INDEX IF NOT EXISTS idx_events_status ON events(status);
CREATE INDEX IF NOT EXISTS idx_events_occurs_at ON events(occurs_at);
CREATE INDEX IF NOT EXISTS idx_events_updated_at ON events(updated_at);
CREATE INDEX IF NOT EXISTS idx_notifications_read ON notifications(read);
CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at);
CREATE INDEX IF NOT EXISTS idx_reminders_status ON reminders(status);
CREATE INDEX IF NOT EXISTS idx_reminders_due_at ON reminders(due_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_events_source_type_updated
	ON events(source_type, updated_at);

CREATE INDEX IF NOT EXISTS idx_notifications_event_id
	ON notifications(event_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
