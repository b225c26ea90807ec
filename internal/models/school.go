// Package models содержит доменные структуры школьного учета:
// классы, ученики и складской учет формы.
// Все даты хранятся в формате time.Time, в базе — как календарные даты.
package models

import "time"

// Class представляет учебный класс, название уникально.
type Class struct {
	ID   int    `json:"id"`   // Уникальный идентификатор класса
	Name string `json:"name"` // Название класса (уникальное)
}

// Student представляет ученика школы.
// Поле ClassID может быть nil — ученик еще не распределен по классам.
type Student struct {
	ID             int       `json:"id"`                 // Уникальный идентификатор ученика
	Name           string    `json:"name"`               // Полное имя
	Age            int       `json:"age"`                // Возраст
	EnrollmentDate time.Time `json:"enrollment_date"`    // Дата зачисления
	ClassID        *int      `json:"class_id,omitempty"` // Ссылка на класс, nil если класс не назначен
}

// Uniform представляет позицию складского учета школьной формы.
type Uniform struct {
	ID       int     `json:"id"`        // Уникальный идентификатор позиции
	Type     string  `json:"type"`      // Тип формы (рубашка, шорты и т.д.)
	Size     string  `json:"size"`      // Размер
	Stock    int     `json:"stock"`     // Остаток на складе, неотрицательный
	UnitCost float64 `json:"unit_cost"` // Закупочная цена за единицу, неотрицательная
}

// DummyStudent используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Student.
// Дата приходит в виде строки, чтобы её можно было валидировать и парсить вручную.
type DummyStudent struct {
	Name           string `json:"name" validate:"required"`                             // Полное имя
	Age            int    `json:"age" validate:"required,gt=0"`                         // Возраст (>0)
	EnrollmentDate string `json:"enrollment_date" validate:"required,datetime=2006-01-02"` // Дата зачисления в формате 2006-01-02
	ClassID        *int   `json:"class_id,omitempty"`                                   // Идентификатор класса, опционально
}

// DummyUniform используется для приёма данных из JSON-запроса при создании позиции формы.
type DummyUniform struct {
	Type     string  `json:"type" validate:"required"`         // Тип формы
	Size     string  `json:"size" validate:"required"`         // Размер
	Stock    int     `json:"stock" validate:"gte=0"`           // Начальный остаток (>=0)
	UnitCost float64 `json:"unit_cost" validate:"gte=0"`       // Цена за единицу (>=0)
}
