package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/pkg/calendar"
)

// PathInt64 читает числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// QueryInt64 читает необязательный числовой параметр запроса
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// QueryDate читает необязательную дату YYYY-MM-DD
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := calendar.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// QueryDateRange читает обязательный период from/to
func QueryDateRange(r *http.Request) (from, to time.Time, err error) {
	f, err := calendar.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := calendar.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return f, t, nil
}

// QueryYear читает год, по умолчанию текущий
func QueryYear(r *http.Request, now time.Time) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return now.Year(), nil
	}
	return strconv.Atoi(raw)
}
