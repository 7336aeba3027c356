package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"nutrition-tracker/internal/pkg/common"
)

// Entry 營養日誌的一筆紀錄（追加寫入，不更新）
type Entry struct {
	ID           string
	Name         string
	ServingGrams float64
	Macros       common.MacroProfile
	Source       string
	LoggedAt     time.Time
}

// DaySummary 單日彙總
type DaySummary struct {
	Entries       int     `json:"entries"`
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbohydrates"`
	TotalFat      float64 `json:"total_fats"`
}

// SQLiteStore sqlite 營養日誌
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore 開啟資料庫並初始化結構
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close 關閉資料庫
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS entries (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        serving_grams REAL NOT NULL,
        calories REAL NOT NULL,
        protein REAL NOT NULL,
        carbohydrates REAL NOT NULL,
        fats REAL NOT NULL,
        source TEXT NOT NULL,
        logged_at DATETIME NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_entries_logged_at ON entries(logged_at);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Record 追加一筆紀錄
func (s *SQLiteStore) Record(ctx context.Context, entry Entry) error {
	query := `
        INSERT INTO entries (id, name, serving_grams, calories, protein, carbohydrates, fats, source, logged_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.Name, entry.ServingGrams,
		entry.Macros.Calories, entry.Macros.Protein, entry.Macros.Carbs, entry.Macros.Fat,
		entry.Source, entry.LoggedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	return nil
}

// TodaySummary 彙總今天的紀錄
func (s *SQLiteStore) TodaySummary(ctx context.Context) (DaySummary, error) {
	return s.SummaryForDate(ctx, time.Now())
}

// SummaryForDate 彙總指定日期的紀錄
func (s *SQLiteStore) SummaryForDate(ctx context.Context, date time.Time) (DaySummary, error) {
	query := `
        SELECT COUNT(*),
               COALESCE(SUM(calories), 0),
               COALESCE(SUM(protein), 0),
               COALESCE(SUM(carbohydrates), 0),
               COALESCE(SUM(fats), 0)
        FROM entries
        WHERE DATE(logged_at) = ?
    `

	var summary DaySummary
	err := s.db.QueryRowContext(ctx, query, date.UTC().Format("2006-01-02")).Scan(
		&summary.Entries, &summary.TotalCalories,
		&summary.TotalProtein, &summary.TotalCarbs, &summary.TotalFat)
	if err != nil {
		return DaySummary{}, fmt.Errorf("failed to query summary: %w", err)
	}

	return summary, nil
}

// EntriesForDate 取得指定日期的所有紀錄，依時間排序
func (s *SQLiteStore) EntriesForDate(ctx context.Context, date time.Time) ([]Entry, error) {
	query := `
        SELECT id, name, serving_grams, calories, protein, carbohydrates, fats, source, logged_at
        FROM entries
        WHERE DATE(logged_at) = ?
        ORDER BY logged_at
    `

	rows, err := s.db.QueryContext(ctx, query, date.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var loggedAtStr string

		err := rows.Scan(
			&entry.ID, &entry.Name, &entry.ServingGrams,
			&entry.Macros.Calories, &entry.Macros.Protein, &entry.Macros.Carbs, &entry.Macros.Fat,
			&entry.Source, &loggedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		if entry.LoggedAt, err = time.Parse(time.RFC3339, loggedAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse logged_at: %w", err)
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
