package domain

const DefaultSlotStepMinutes = 30

const (
	TimeFormat = "15:04"
	DateFormat = "2006-01-02"
)
