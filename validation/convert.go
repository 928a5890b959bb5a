package validation

import (
	"database/sql"
	"strconv"
)

func ParseStringToInt64(str string) (int64, error) {
	if str == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func ParseStringToFloat(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}

func GetStringFromNull(nullString sql.NullString) string {
	if nullString.Valid {
		return nullString.String
	}
	return ""
}
