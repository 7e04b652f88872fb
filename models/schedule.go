package models

import (
	"fmt"

	"clinicpro-backend/utils"

	"github.com/google/uuid"
)

// Doctor availability is stored as passive validated data. Nothing here
// computes slots or detects booking overlaps; enforcement is field-level only.

var WeekDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

type WorkingDay struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	DoctorID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Day       string    `gorm:"type:varchar(10);not null"`
	StartTime string    `gorm:"type:varchar(5);not null"` // HH:MM
	EndTime   string    `gorm:"type:varchar(5);not null"` // HH:MM
}

type BreakTime struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	DoctorID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Day       string    `gorm:"type:varchar(10);not null"`
	StartTime string    `gorm:"type:varchar(5);not null"`
	EndTime   string    `gorm:"type:varchar(5);not null"`
}

type UnavailableDate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	DoctorID uuid.UUID `gorm:"type:uuid;index;not null"`
	Date     string    `gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	Reason   string
}

func IsWeekDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}

// ScheduleInput is the full-replace payload for a doctor's availability
type ScheduleInput struct {
	WorkingDays      []WorkingDayInput      `json:"workingDays"`
	BreakTimes       []BreakTimeInput       `json:"breakTimes"`
	UnavailableDates []UnavailableDateInput `json:"unavailableDates"`
}

type WorkingDayInput struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type BreakTimeInput struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type UnavailableDateInput struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// ValidateSchedule collects every field error instead of stopping at the first
func ValidateSchedule(input ScheduleInput) []utils.FieldError {
	var errs []utils.FieldError

	seenDays := map[string]bool{}
	for i, wd := range input.WorkingDays {
		field := fmt.Sprintf("workingDays[%d]", i)
		if !IsWeekDay(wd.Day) {
			errs = append(errs, utils.FieldError{Field: field + ".day", Message: "must be a lowercase weekday name"})
		} else if seenDays[wd.Day] {
			errs = append(errs, utils.FieldError{Field: field + ".day", Message: "duplicate working day"})
		} else {
			seenDays[wd.Day] = true
		}

		startOK := utils.ValidateClockTime(wd.StartTime)
		endOK := utils.ValidateClockTime(wd.EndTime)
		if !startOK {
			errs = append(errs, utils.FieldError{Field: field + ".startTime", Message: "must be in HH:MM format"})
		}
		if !endOK {
			errs = append(errs, utils.FieldError{Field: field + ".endTime", Message: "must be in HH:MM format"})
		}
		if startOK && endOK && !utils.ClockTimeBefore(wd.StartTime, wd.EndTime) {
			errs = append(errs, utils.FieldError{Field: field + ".endTime", Message: "must be after startTime"})
		}
	}

	for i, bt := range input.BreakTimes {
		field := fmt.Sprintf("breakTimes[%d]", i)
		if !IsWeekDay(bt.Day) {
			errs = append(errs, utils.FieldError{Field: field + ".day", Message: "must be a lowercase weekday name"})
		}

		startOK := utils.ValidateClockTime(bt.StartTime)
		endOK := utils.ValidateClockTime(bt.EndTime)
		if !startOK {
			errs = append(errs, utils.FieldError{Field: field + ".startTime", Message: "must be in HH:MM format"})
		}
		if !endOK {
			errs = append(errs, utils.FieldError{Field: field + ".endTime", Message: "must be in HH:MM format"})
		}
		if startOK && endOK && !utils.ClockTimeBefore(bt.StartTime, bt.EndTime) {
			errs = append(errs, utils.FieldError{Field: field + ".endTime", Message: "must be after startTime"})
		}
	}

	seenDates := map[string]bool{}
	for i, ud := range input.UnavailableDates {
		field := fmt.Sprintf("unavailableDates[%d]", i)
		if !utils.ValidateDate(ud.Date) {
			errs = append(errs, utils.FieldError{Field: field + ".date", Message: "must be in YYYY-MM-DD format"})
			continue
		}
		if seenDates[ud.Date] {
			errs = append(errs, utils.FieldError{Field: field + ".date", Message: "duplicate unavailable date"})
		}
		seenDates[ud.Date] = true
	}

	return errs
}
