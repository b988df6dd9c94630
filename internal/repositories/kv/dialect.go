package kv

// Dialect holds the statements a SQL backend needs. All dialects share the
// same table layout: local_storage(item_key, item_value).
type Dialect struct {
	Name        string
	DriverName  string
	GooseName   string
	SelectQuery string
	UpsertQuery string
	DeleteQuery string
	ListQuery   string
	ClearQuery  string
}

var SQLiteDialect = Dialect{
	Name:        "sqlite",
	DriverName:  "sqlite",
	GooseName:   "sqlite3",
	SelectQuery: `SELECT item_value FROM local_storage WHERE item_key = ?`,
	UpsertQuery: `INSERT INTO local_storage (item_key, item_value) VALUES (?, ?)
		ON CONFLICT(item_key) DO UPDATE SET item_value = excluded.item_value`,
	DeleteQuery: `DELETE FROM local_storage WHERE item_key = ?`,
	ListQuery:   `SELECT item_key, item_value FROM local_storage`,
	ClearQuery:  `DELETE FROM local_storage`,
}

var PostgresDialect = Dialect{
	Name:        "postgres",
	DriverName:  "pgx",
	GooseName:   "postgres",
	SelectQuery: `SELECT item_value FROM local_storage WHERE item_key = $1`,
	UpsertQuery: `INSERT INTO local_storage (item_key, item_value) VALUES ($1, $2)
		ON CONFLICT (item_key) DO UPDATE SET item_value = EXCLUDED.item_value`,
	DeleteQuery: `DELETE FROM local_storage WHERE item_key = $1`,
	ListQuery:   `SELECT item_key, item_value FROM local_storage`,
	ClearQuery:  `DELETE FROM local_storage`,
}

var MySQLDialect = Dialect{
	Name:        "mysql",
	DriverName:  "mysql",
	GooseName:   "mysql",
	SelectQuery: `SELECT item_value FROM local_storage WHERE item_key = ?`,
	UpsertQuery: `INSERT INTO local_storage (item_key, item_value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE item_value = VALUES(item_value)`,
	DeleteQuery: `DELETE FROM local_storage WHERE item_key = ?`,
	ListQuery:   `SELECT item_key, item_value FROM local_storage`,
	ClearQuery:  `DELETE FROM local_storage`,
}
