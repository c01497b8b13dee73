// Package core provides the business logic for price list aggregation.
//
// # Error Codes Reference
//
// This file defines user-facing messages with codes for support reference.
// Messages are in Russian, matching the console the price lists come from.
//
// # Column Errors (PL001-PL009)
//
//	PL001 - Missing column: a file lacks a name, price or weight column
//	        Patterns: "missing required column"
//
//	PL002 - Row shape: a data row has a different field count than the header
//	        Patterns: "fields, header has"
//
//	PL003 - Quoting: the csv parser rejected the file
//	        Patterns: "invalid csv"
//
// # File Errors (PL010-PL019)
//
//	PL010 - Read failure: the file could not be opened or read
//	        Patterns: "no such file", "permission denied", "read file"
//
//	PL011 - Encoding: the file is not valid UTF-8
//	        Patterns: "encoding error"
//
//	PL012 - Number: a price or weight is not a number
//	        Patterns: "invalid syntax", "invalid number"
//
//	PL013 - Zero weight: price per kg cannot be computed
//	        Patterns: "zero weight"
//
//	PL014 - Size: the file exceeds CATALOG_MAX_FILE_SIZE
//	        Patterns: "file too large"
//
// # Informational (PL020-PL029)
//
//	PL020 - Nothing found for the search query
//	PL021 - Nothing to export
//
// # Export Errors (PL030-PL039)
//
//	PL030 - Unknown export target
//	PL031 - Database export failure
//
// # Server Errors (PL040-PL049)
//
//	PL040 - Busy: too many parallel snapshot downloads
//	PL041 - Unknown page or API route
package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage is a user-facing description of an error.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// Column Errors
	// =========================================================================
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Не удалось найти нужные столбцы",
			Action:  "Проверьте заголовки: название, цена и вес",
			Code:    "PL001",
		},
	},
	{
		pattern: "fields, header has",
		msg: UserMessage{
			Message: "Число полей в строке не совпадает с заголовком",
			Action:  "Уберите лишние разделители в строках",
			Code:    "PL002",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "Не удалось разобрать строки файла",
			Action:  "Проверьте кавычки или используйте CSV_PARSER=naive",
			Code:    "PL003",
		},
	},

	// =========================================================================
	// File Errors
	// =========================================================================
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "Файл не найден",
			Action:  "Проверьте путь к каталогу",
			Code:    "PL010",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "Нет доступа к файлу",
			Action:  "Проверьте права на чтение",
			Code:    "PL010",
		},
	},
	{
		pattern: "read file",
		msg: UserMessage{
			Message: "Не удалось прочитать файл",
			Action:  "Проверьте, что файл доступен",
			Code:    "PL010",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "Файл содержит недопустимые символы",
			Action:  "Сохраните файл в кодировке UTF-8",
			Code:    "PL011",
		},
	},
	{
		pattern: "invalid syntax",
		msg: UserMessage{
			Message: "Цена или вес не являются числом",
			Action:  "Используйте точку как десятичный разделитель",
			Code:    "PL012",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Цена или вес не являются числом",
			Action:  "Используйте точку как десятичный разделитель",
			Code:    "PL012",
		},
	},
	{
		pattern: "zero weight",
		msg: UserMessage{
			Message: "Вес равен нулю",
			Action:  "Укажите вес больше нуля",
			Code:    "PL013",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "Файл слишком большой",
			Action:  "Разделите прайс-лист или увеличьте CATALOG_MAX_FILE_SIZE",
			Code:    "PL014",
		},
	},

	// =========================================================================
	// Informational
	// =========================================================================
	{
		pattern: "empty search result",
		msg: UserMessage{
			Message: MsgNothingFound,
			Code:    "PL020",
		},
	},
	{
		pattern: "empty export",
		msg: UserMessage{
			Message: MsgNothingToExport,
			Code:    "PL021",
		},
	},

	// =========================================================================
	// Export Errors
	// =========================================================================
	{
		pattern: "unsupported export target",
		msg: UserMessage{
			Message: "Неизвестный формат экспорта",
			Action:  "Используйте .html, .msgpack, .db или postgres:// адрес",
			Code:    "PL030",
		},
	},
	{
		pattern: "database export",
		msg: UserMessage{
			Message: "Не удалось записать данные в базу",
			Action:  "Проверьте адрес и доступность базы данных",
			Code:    "PL031",
		},
	},

	// =========================================================================
	// Server Errors
	// =========================================================================
	{
		pattern: "too many concurrent",
		msg: UserMessage{
			Message: "Сервер занят",
			Action:  "Повторите запрос через несколько секунд",
			Code:    "PL040",
		},
	},
	{
		pattern: "route not found",
		msg: UserMessage{
			Message: "Страница не найдена",
			Action:  "Проверьте адрес",
			Code:    "PL041",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "Непредвиденная ошибка",
	Action:  "Повторите попытку",
	Code:    "PL000",
}

// MapError converts an error to a user-facing message.
// Typed errors are recognized first, then the error text is matched against
// known patterns. Unknown errors map to the PL000 fallback.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if IsMissingColumn(err) {
		return lookupPattern("missing required column")
	}
	if errors.Is(err, ErrZeroWeight) {
		return lookupPattern("zero weight")
	}
	if errors.Is(err, ErrInvalidEncoding) {
		return lookupPattern("encoding error")
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

func lookupPattern(pattern string) UserMessage {
	for _, ep := range errorPatterns {
		if ep.pattern == pattern {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Код: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	if msg.Action == "" {
		return fmt.Sprintf("%s (Код: %s)", msg.Message, msg.Code)
	}
	return fmt.Sprintf("%s (Код: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
