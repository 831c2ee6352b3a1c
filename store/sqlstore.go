package store

import (
	"context"
	"fmt"

	"student-registry/models"

	"github.com/jmoiron/sqlx"
)

// SQLStore работает поверх соединения sqlx из пакета database (sqlite или postgres).
// Запросы пишутся с ? и переписываются под драйвер через Rebind
type SQLStore struct {
	db *sqlx.DB

	insertSQL string
	selectSQL string
	updateSQL string
	deleteSQL string
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{
		db:        db,
		insertSQL: db.Rebind(`INSERT INTO students (name, email, course) VALUES (?, ?, ?) RETURNING id`),
		selectSQL: `SELECT id, name, email, course FROM students ORDER BY id ASC`,
		updateSQL: db.Rebind(`UPDATE students SET name = ?, email = ?, course = ? WHERE id = ?`),
		deleteSQL: db.Rebind(`DELETE FROM students WHERE id = ?`),
	}
}

func (s *SQLStore) Add(ctx context.Context, name, email, course string) (int64, error) {
	if err := validate(name, email, course); err != nil {
		return 0, err
	}

	var id int64
	if err := s.db.QueryRowxContext(ctx, s.insertSQL, name, email, course).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert student: %w", err)
	}
	return id, nil
}

func (s *SQLStore) GetAll(ctx context.Context) ([]models.Student, error) {
	students := []models.Student{}
	if err := s.db.SelectContext(ctx, &students, s.selectSQL); err != nil {
		return nil, fmt.Errorf("select students: %w", err)
	}
	return students, nil
}

func (s *SQLStore) Update(ctx context.Context, id int64, name, email, course string) error {
	if err := validate(name, email, course); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, s.updateSQL, name, email, course, id)
	if err != nil {
		return fmt.Errorf("update student %d: %w", id, err)
	}
	return checkAffected(res.RowsAffected, id)
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.deleteSQL, id)
	if err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	return checkAffected(res.RowsAffected, id)
}

func checkAffected(rowsAffected func() (int64, error), id int64) error {
	n, err := rowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for student %d: %w", id, err)
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}
