// Package store - долговременная таблица студентов, единственный источник
// истины для записей. Id выдаёт база, повторно они не выдаются до сброса таблицы.
package store

import (
	"context"
	"errors"
	"fmt"

	"student-registry/models"
)

var (
	ErrNotFound       = errors.New("student not found")
	ErrInvalidStudent = errors.New("invalid student")
)

// RecordStore передаётся слою представления.
// Update и Delete на отсутствующий id возвращают ErrNotFound и ничего не меняют.
// Пустые поля (в том числе из одних пробелов) отклоняются с ErrInvalidStudent,
// принятые значения сохраняются как есть.
type RecordStore interface {
	Add(ctx context.Context, name, email, course string) (int64, error)
	GetAll(ctx context.Context) ([]models.Student, error)
	Update(ctx context.Context, id int64, name, email, course string) error
	Delete(ctx context.Context, id int64) error
}

func validate(name, email, course string) error {
	d := models.Draft{Name: name, Email: email, Course: course}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStudent, err)
	}
	return nil
}

func notFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}
