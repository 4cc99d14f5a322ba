package handler

// TimeFormat is the time format used in API responses.
const TimeFormat = "2006-01-02T15:04:05Z07:00"
