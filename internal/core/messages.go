package core

import (
	"errors"
	"fmt"
)

// Console messages.
const (
	MsgPrompt          = "Введите текст для поиска или 'exit' для выхода: "
	MsgGoodbye         = "Работа завершена."
	MsgNothingFound    = "Ничего не найдено."
	MsgNothingToExport = "Нет данных для экспорта."
	MsgResultHeader    = "№  Наименование                Цена    Вес    Файл             Цена за кг."
)

// MissingColumnsMessage is printed when a file lacks a canonical column.
func MissingColumnsMessage(file string) string {
	return fmt.Sprintf("Не удалось найти нужные столбцы в файле %s", file)
}

// FileErrorMessage is printed when a file could not be processed.
func FileErrorMessage(file string, err error) string {
	return fmt.Sprintf("Ошибка при обработке файла %s: %v", file, err)
}

// ExportedMessage is printed after a successful export.
func ExportedMessage(target string) string {
	return fmt.Sprintf("Данные успешно экспортированы в %s.", target)
}

// DiagnosticFor returns the console message for a failed file result,
// or "" for a successful one.
func DiagnosticFor(r FileResult) string {
	if r.Err == nil {
		return ""
	}
	if IsMissingColumn(r.Err) {
		return MissingColumnsMessage(r.File)
	}
	var fe *FileError
	if errors.As(r.Err, &fe) {
		if fe.Line > 0 {
			return FileErrorMessage(r.File, fmt.Errorf("строка %d: %w", fe.Line, fe.Err))
		}
		return FileErrorMessage(r.File, fe.Err)
	}
	return FileErrorMessage(r.File, r.Err)
}
