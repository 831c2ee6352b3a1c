package models

import (
	"fmt"
	"strings"
)

type Student struct {
	ID     int64  `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name   string `json:"name" db:"name" gorm:"not null"`
	Email  string `json:"email" db:"email" gorm:"not null"`
	Course string `json:"course" db:"course" gorm:"not null"`
}

func (Student) TableName() string {
	return "students"
}

// Draft - значения формы, ещё не сохранённые в хранилище
type Draft struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Course string `json:"course"`
}

// DraftOf загружает значения записи в черновик
func DraftOf(s Student) Draft {
	return Draft{Name: s.Name, Email: s.Email, Course: s.Course}
}

// Validate сообщает о первом пустом поле
func (d Draft) Validate() error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return fmt.Errorf("name is required")
	case strings.TrimSpace(d.Email) == "":
		return fmt.Errorf("email is required")
	case strings.TrimSpace(d.Course) == "":
		return fmt.Errorf("course is required")
	}
	return nil
}

type ListResponse struct {
	Count int       `json:"count"`
	Items []Student `json:"items"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
