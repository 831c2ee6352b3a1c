package store

import (
	"context"
	"fmt"

	"student-registry/models"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Add(ctx context.Context, name, email, course string) (int64, error) {
	if err := validate(name, email, course); err != nil {
		return 0, err
	}

	student := models.Student{Name: name, Email: email, Course: course}
	if err := s.db.WithContext(ctx).Create(&student).Error; err != nil {
		return 0, fmt.Errorf("insert student: %w", err)
	}
	return student.ID, nil
}

func (s *GormStore) GetAll(ctx context.Context) ([]models.Student, error) {
	students := []models.Student{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("select students: %w", err)
	}
	return students, nil
}

func (s *GormStore) Update(ctx context.Context, id int64, name, email, course string) error {
	if err := validate(name, email, course); err != nil {
		return err
	}

	// map, а не структура: Updates со структурой пропускает нулевые поля
	result := s.db.WithContext(ctx).Model(&models.Student{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":   name,
		"email":  email,
		"course": course,
	})
	if result.Error != nil {
		return fmt.Errorf("update student %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(id)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&models.Student{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete student %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(id)
	}
	return nil
}
