// Package models содержит доменные структуры финансового учета:
// записи кассовой книги (доходы и расходы) и агрегированный отчет.
package models

import "time"

// Income представляет запись о доходе. Журнал только пополняется.
type Income struct {
	ID     int       `json:"id"`     // Уникальный идентификатор записи
	Date   time.Time `json:"date"`   // Дата операции
	Amount float64   `json:"amount"` // Сумма, неотрицательная
	Source string    `json:"source"` // Источник дохода (свободный текст)
}

// Expense представляет запись о расходе. Журнал только пополняется.
type Expense struct {
	ID       int       `json:"id"`       // Уникальный идентификатор записи
	Date     time.Time `json:"date"`     // Дата операции
	Amount   float64   `json:"amount"`   // Сумма, неотрицательная
	Category string    `json:"category"` // Категория расхода (свободный текст)
}

// DummyLedgerEntry используется для приёма данных из JSON-запроса
// при записи дохода или расхода. Дата приходит строкой для ручного парсинга.
type DummyLedgerEntry struct {
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"` // Дата в формате 2006-01-02
	Amount   float64 `json:"amount" validate:"required,gte=0"`             // Сумма (>=0)
	Category string  `json:"category" validate:"required"`                 // Источник дохода либо категория расхода
}

// ReportBundle представляет результат одного формирования финансового отчета.
// Все три представления отчета (таблица, xlsx, pdf) строятся только из него,
// без повторных обращений к хранилищу.
type ReportBundle struct {
	StartDate    time.Time // Начало периода, включительно
	EndDate      time.Time // Конец периода, включительно
	Incomes      []Income  // Доходы периода, упорядочены по дате
	Expenses     []Expense // Расходы периода, упорядочены по дате
	TotalIncome  float64   // Сумма доходов
	TotalExpense float64   // Сумма расходов
	Balance      float64   // TotalIncome - TotalExpense
}
