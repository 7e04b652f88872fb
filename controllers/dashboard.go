package controllers

import (
	"fmt"
	"net/http"
	"time"

	"clinicpro-backend/config"
	"clinicpro-backend/models"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TodayAppointment struct {
	BookingNumber string    `json:"bookingNumber"`
	PatientName   string    `json:"patientName"`
	DoctorName    string    `json:"doctorName"`
	StartsAt      time.Time `json:"startsAt"`
	Status        string    `json:"status"`
}

type UpcomingBirthday struct {
	Name string `json:"name"`
	Date string `json:"date"` // e.g. "Today", "Tomorrow", "3 days"
}

// GetDashboardOverview aggregates the clinic's day at a glance
func GetDashboardOverview(c *gin.Context) {
	clinicID, exists := c.Get("clinicId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Clinic ID not found in context")
		return
	}
	clinicUUID, err := uuid.Parse(clinicID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid clinic ID format")
		return
	}

	now := time.Now()
	dayStart := utils.BeginningOfDay(now)
	dayEnd := utils.EndOfDay(now)

	// Total patients
	var totalPatients int64
	config.DB.Model(&models.Patient{}).
		Where("clinic_id = ? AND deleted_at IS NULL", clinicUUID).Count(&totalPatients)

	// Today's appointments
	var todayCount int64
	config.DB.Model(&models.Appointment{}).
		Where("clinic_id = ? AND starts_at BETWEEN ? AND ? AND deleted_at IS NULL", clinicUUID, dayStart, dayEnd).
		Count(&todayCount)

	var todayAppointments []TodayAppointment
	config.DB.Raw(`
        SELECT a.booking_number, p.name AS patient_name, u.name AS doctor_name, a.starts_at, a.status
        FROM appointments a
        JOIN patients p ON p.id = a.patient_id
        JOIN users u ON u.id = a.doctor_id
        WHERE a.clinic_id = ? AND a.starts_at BETWEEN ? AND ? AND a.deleted_at IS NULL
        ORDER BY a.starts_at
        LIMIT 10
    `, clinicUUID, dayStart, dayEnd).Scan(&todayAppointments)

	// This month's revenue from completed appointments
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyRevenue float64
	config.DB.Model(&models.Appointment{}).
		Where("clinic_id = ? AND status = ? AND starts_at >= ? AND deleted_at IS NULL",
			clinicUUID, models.StatusCompleted, firstOfMonth).
		Select("COALESCE(SUM(total_cost), 0)").Scan(&monthlyRevenue)

	// Low stock alerts
	var lowStockCount int64
	config.DB.Model(&models.Medicine{}).
		Where("clinic_id = ? AND is_active = ? AND stock <= reorder_level AND deleted_at IS NULL", clinicUUID, true).
		Count(&lowStockCount)

	// Upcoming patient birthdays (next 7 days)
	type birthdayRow struct {
		Name string
		Date time.Time
	}
	var rows []birthdayRow
	config.DB.Raw(`
        SELECT name, birthday AS date FROM patients
        WHERE clinic_id = ? AND deleted_at IS NULL AND birthday IS NOT NULL
    `, clinicUUID).Scan(&rows)

	var upcomingBirthdays []UpcomingBirthday
	for _, r := range rows {
		eventDate := time.Date(now.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, now.Location())
		daysUntil := utils.DaysBetween(now, eventDate)
		if daysUntil < 0 || daysUntil > 6 {
			continue
		}
		var label string
		switch daysUntil {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		default:
			label = fmt.Sprintf("%d days", daysUntil)
		}
		upcomingBirthdays = append(upcomingBirthdays, UpcomingBirthday{Name: r.Name, Date: label})
		if len(upcomingBirthdays) >= 7 {
			break
		}
	}

	utils.RespondWithData(c, http.StatusOK, "OK", gin.H{
		"totalPatients":  totalPatients,
		"monthlyRevenue": monthlyRevenue,
		"todayAppointments": gin.H{
			"count": todayCount,
			"list":  todayAppointments,
		},
		"lowStockCount":     lowStockCount,
		"upcomingBirthdays": upcomingBirthdays,
	})
}
