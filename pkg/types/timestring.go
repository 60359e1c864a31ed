package types

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// timeStringPattern допустимый формат времени: "00:00" - "23:59"
var timeStringPattern = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

// TimeString время суток в формате "HH:MM" (например, "09:30").
// Хранится и передаётся как строка, сравнение лексикографическое
// (корректно благодаря ведущим нулям).
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	t := TimeString(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// FromMinutes создает TimeString из количества минут с полуночи.
// Обратная операция к Minutes для 0 <= m < 1440.
func FromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d", ErrMinutesOutOfRange, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate проверяет, что значение соответствует формату "HH:MM"
func (t TimeString) Validate() error {
	if !timeStringPattern.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes возвращает количество минут с полуночи
func (t TimeString) Minutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins, nil
}

// AddMinutes возвращает время, смещённое на m минут вперёд.
// Выход за пределы суток считается ошибкой: слоты не пересекают полночь.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(current + m)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// String реализует fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД.
// Поддерживает VARCHAR ("10:00") и TIME ("10:00:00") представления.
func (t *TimeString) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		s = v.Format("15:04")
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeFormat, src)
	}

	// Отбрасываем секунды, если колонка имеет тип TIME
	if len(s) > 5 {
		s = s[:5]
	}

	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и
// [bStart, bEnd), заданных в минутах с полуночи. Интервалы, граничащие по
// концам (aEnd == bStart), пересечением не считаются.
func Overlaps(aStart, aEnd, bStart, bEnd int) (bool, error) {
	if aStart >= aEnd {
		return false, fmt.Errorf("%w: [%d, %d)", ErrInvalidInterval, aStart, aEnd)
	}
	if bStart >= bEnd {
		return false, fmt.Errorf("%w: [%d, %d)", ErrInvalidInterval, bStart, bEnd)
	}
	return aStart < bEnd && bStart < aEnd, nil
}

// OverlapsTime проверяет пересечение интервалов, заданных временем начала и конца
func OverlapsTime(aStart, aEnd, bStart, bEnd TimeString) (bool, error) {
	as, err := aStart.Minutes()
	if err != nil {
		return false, err
	}
	ae, err := aEnd.Minutes()
	if err != nil {
		return false, err
	}
	bs, err := bStart.Minutes()
	if err != nil {
		return false, err
	}
	be, err := bEnd.Minutes()
	if err != nil {
		return false, err
	}
	return Overlaps(as, ae, bs, be)
}
