package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"student-registry/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // драйвер PostgreSQL
	_ "modernc.org/sqlite" // драйвер SQLite без cgo
)

// InitDB открывает sqlx-подключение для выбранного драйвера и создаёт таблицу
func InitDB(cfg *config.Config) (*sqlx.DB, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case config.DriverPostgres:
		return OpenPostgres(cfg.PostgresDSN())
	default:
		return nil, fmt.Errorf("driver %q is not served by sqlx", cfg.StoreDriver)
	}
}

// OpenSQLite создаёт или открывает файл базы данных
func OpenSQLite(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// SQLite допускает только одного писателя
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("error executing %q: %w", pragma, err)
		}
	}

	if err := createTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating table: %w", err)
	}

	log.Printf("✅ Connected to SQLite at %s", path)
	return db, nil
}

func OpenPostgres(dsn string) (*sqlx.DB, error) {
	// Сначала используем стандартный database/sql
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Затем оборачиваем в sqlx
	db := sqlx.NewDb(sqlDB, "postgres")

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	if err := createTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating table: %w", err)
	}

	log.Println("✅ Successfully connected to PostgreSQL!")
	return db, nil
}

// AUTOINCREMENT и BIGSERIAL не выдают повторно id удалённых записей
var schemas = map[string]string{
	"sqlite": `
    CREATE TABLE IF NOT EXISTS students (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        email TEXT NOT NULL,
        course TEXT NOT NULL
    );`,
	"postgres": `
    CREATE TABLE IF NOT EXISTS students (
        id BIGSERIAL PRIMARY KEY,
        name TEXT NOT NULL,
        email TEXT NOT NULL,
        course TEXT NOT NULL
    );`,
}

func createTable(db *sqlx.DB) error {
	createTableSQL, ok := schemas[db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("error creating students table: %w", err)
	}

	if db.DriverName() == "postgres" {
		// Исправляем последовательность, если она отстала от данных
		if err := fixSequence(db); err != nil {
			log.Printf("⚠️ Warning: could not fix sequence: %v", err)
		}
	}

	log.Println("✅ Students table verified (id, name, email, course)")
	return nil
}

// fixSequence только продвигает последовательность вперёд, назад - никогда
func fixSequence(db *sqlx.DB) error {
	fixSeqSQL := `
    SELECT setval('students_id_seq', m)
    FROM (SELECT MAX(id) AS m FROM students) t
    WHERE m IS NOT NULL AND m >= (SELECT last_value FROM students_id_seq)`

	var result int64
	err := db.QueryRow(fixSeqSQL).Scan(&result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error fixing sequence: %w", err)
	}

	log.Printf("✅ Sequence fixed, next ID will be: %d", result+1)
	return nil
}

// Reset удаляет все записи и сбрасывает счётчик id
func Reset(db *sqlx.DB) error {
	log.Println("🗑️ Resetting students table...")

	var stmts []string
	switch db.DriverName() {
	case "sqlite":
		stmts = []string{
			"DELETE FROM students",
			"DELETE FROM sqlite_sequence WHERE name = 'students'",
		}
	case "postgres":
		stmts = []string{"TRUNCATE TABLE students RESTART IDENTITY"}
	default:
		return fmt.Errorf("reset is not supported for driver %q", db.DriverName())
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("error starting reset: %w", err)
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("error executing %q: %w", stmt, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing reset: %w", err)
	}

	log.Println("✅ Students table reset")
	return nil
}
