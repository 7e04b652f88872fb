// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"clinicpro-backend/config"
	"clinicpro-backend/models"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64          `json:"currentMonthRevenue"`
	MonthGrowth           float64          `json:"monthGrowth"`
	CurrentQuarterRevenue float64          `json:"currentQuarterRevenue"`
	QuarterGrowth         float64          `json:"quarterGrowth"`
	CurrentYearRevenue    float64          `json:"currentYearRevenue"`
	YearGrowth            float64          `json:"yearGrowth"`
	TopServices           []ServiceSummary `json:"topServices"`
	TopDoctors            []DoctorSummary  `json:"topDoctors"`
	QuickStats            QuickStatistics  `json:"quickStats"`
}

type ServiceSummary struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type DoctorSummary struct {
	Name         string  `json:"name"`
	Appointments int     `json:"appointments"`
	Revenue      float64 `json:"revenue"`
}

type QuickStatistics struct {
	TotalPatients        int     `json:"totalPatients"`
	TotalAppointments    int     `json:"totalAppointments"`
	CompletionRate       float64 `json:"completionRate"`
	AvgAppointmentValue  float64 `json:"avgAppointmentValue"`
}

// GetReportAnalytics returns the complete analytics summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
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

	// Get current time
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	// Calculate date ranges
	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	currentMonthRevenue, err := rc.getRevenue(clinicUUID, firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}

	lastMonthRevenue, err := rc.getRevenue(clinicUUID,
		firstOfMonth.AddDate(0, -1, 0),
		lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	currentQuarterRevenue, err := rc.getRevenue(clinicUUID,
		rc.getQuarterStart(now),
		rc.getQuarterEnd(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}

	lastQuarterRevenue, err := rc.getRevenue(clinicUUID,
		rc.getQuarterStart(now).AddDate(0, -3, 0),
		rc.getQuarterEnd(now).AddDate(0, -3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	currentYearRevenue, err := rc.getRevenue(clinicUUID,
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}

	lastYearRevenue, err := rc.getRevenue(clinicUUID,
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear-1, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	// Calculate growth percentages
	monthGrowth := rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue)
	quarterGrowth := rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue)
	yearGrowth := rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue)

	topServices, err := rc.getTopServices(clinicUUID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top services")
		return
	}

	topDoctors, err := rc.getTopDoctors(clinicUUID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top doctors")
		return
	}

	quickStats, err := rc.getQuickStatistics(clinicUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           monthGrowth,
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         quarterGrowth,
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            yearGrowth,
		TopServices:           topServices,
		TopDoctors:            topDoctors,
		QuickStats:            quickStats,
	}

	utils.RespondWithData(c, http.StatusOK, "OK", summary)
}

// Helper functions for reports

func (rc *ReportController) getRevenue(clinicID uuid.UUID, start, end time.Time) (float64, error) {
	var total float64
	err := config.DB.Model(&models.Appointment{}).
		Where("clinic_id = ? AND status = ? AND starts_at BETWEEN ? AND ?", clinicID, models.StatusCompleted, start, end).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&total).Error
	return total, err
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

func (rc *ReportController) getTopServices(clinicID uuid.UUID, start, end time.Time, limit int) ([]ServiceSummary, error) {
	var services []ServiceSummary

	// Appointment reasons reference services by name when booked from the
	// service picker; group by reason for the service breakdown.
	err := config.DB.Table("appointments").
		Select("reason AS name, COUNT(*) AS count, SUM(total_cost) AS revenue").
		Where("clinic_id = ? AND status = ? AND starts_at BETWEEN ? AND ? AND deleted_at IS NULL AND reason <> ''",
			clinicID, models.StatusCompleted, start, end).
		Group("reason").
		Order("revenue DESC").
		Limit(limit).
		Scan(&services).Error

	return services, err
}

func (rc *ReportController) getTopDoctors(clinicID uuid.UUID, start, end time.Time, limit int) ([]DoctorSummary, error) {
	var doctors []DoctorSummary

	err := config.DB.Table("appointments").
		Select("users.name, COUNT(appointments.id) AS appointments, SUM(appointments.total_cost) AS revenue").
		Joins("JOIN users ON users.id = appointments.doctor_id").
		Where("appointments.clinic_id = ? AND appointments.status = ? AND appointments.starts_at BETWEEN ? AND ? AND appointments.deleted_at IS NULL AND users.deleted_at IS NULL",
			clinicID, models.StatusCompleted, start, end).
		Group("users.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&doctors).Error

	return doctors, err
}

func (rc *ReportController) getQuickStatistics(clinicID uuid.UUID) (QuickStatistics, error) {
	var stats QuickStatistics

	var totalPatients int64
	if err := config.DB.Model(&models.Patient{}).
		Where("clinic_id = ? AND deleted_at IS NULL", clinicID).
		Count(&totalPatients).Error; err != nil {
		return stats, err
	}
	stats.TotalPatients = int(totalPatients)

	var totalAppointments int64
	if err := config.DB.Model(&models.Appointment{}).
		Where("clinic_id = ? AND deleted_at IS NULL", clinicID).
		Count(&totalAppointments).Error; err != nil {
		return stats, err
	}
	stats.TotalAppointments = int(totalAppointments)

	var completed int64
	if err := config.DB.Model(&models.Appointment{}).
		Where("clinic_id = ? AND status = ? AND deleted_at IS NULL", clinicID, models.StatusCompleted).
		Count(&completed).Error; err != nil {
		return stats, err
	}
	if stats.TotalAppointments > 0 {
		stats.CompletionRate = float64(completed) / float64(stats.TotalAppointments) * 100
	}

	var totalRevenue float64
	if err := config.DB.Model(&models.Appointment{}).
		Where("clinic_id = ? AND status = ? AND deleted_at IS NULL", clinicID, models.StatusCompleted).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return stats, err
	}
	if completed > 0 {
		stats.AvgAppointmentValue = totalRevenue / float64(completed)
	}

	return stats, nil
}
