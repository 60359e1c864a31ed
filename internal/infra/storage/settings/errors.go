package settings

import "errors"

var (
	// ErrSettingNotFound настройка с указанным ключом не найдена
	ErrSettingNotFound = errors.New("settings.repository: setting not found")

	// ErrInvalidValue значение настройки не приводится к ожидаемому типу
	ErrInvalidValue = errors.New("settings.repository: invalid setting value")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")
)
