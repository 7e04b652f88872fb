// controllers/appointment.go
package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"clinicpro-backend/config"
	"clinicpro-backend/models"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAppointmentInput defines the expected JSON structure for creating an appointment
type CreateAppointmentInput struct {
	PatientID     uuid.UUID `json:"patientId" binding:"required"`
	DoctorID      uuid.UUID `json:"doctorId" binding:"required"`
	StartsAt      time.Time `json:"startsAt" binding:"required"`
	DurationMins  int       `json:"durationMins" binding:"omitempty,min=5,max=480"`
	Type          string    `json:"type" binding:"required,oneof=consultation follow_up procedure emergency"`
	Reason        string    `json:"reason"`
	Notes         string    `json:"notes"`
	TotalCost     float64   `json:"totalCost" binding:"min=0"`
	AmountPaid    float64   `json:"amountPaid" binding:"min=0"`
	AmountPending float64   `json:"amountPending" binding:"min=0"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an appointment
type UpdateAppointmentInput struct {
	StartsAt      *time.Time `json:"startsAt"`
	DurationMins  *int       `json:"durationMins" binding:"omitempty,min=5,max=480"`
	Type          *string    `json:"type" binding:"omitempty,oneof=consultation follow_up procedure emergency"`
	Reason        *string    `json:"reason"`
	Notes         *string    `json:"notes"`
	TotalCost     *float64   `json:"totalCost" binding:"omitempty,min=0"`
	AmountPaid    *float64   `json:"amountPaid" binding:"omitempty,min=0"`
	AmountPending *float64   `json:"amountPending" binding:"omitempty,min=0"`
}

type AppointmentStatusInput struct {
	Status string `json:"status" binding:"required,oneof=scheduled confirmed completed cancelled no_show"`
}

// paymentFieldErrors enforces amountPaid + amountPending == totalCost.
// Amounts are decimal(10,2) columns, so comparison uses a cent epsilon.
func paymentFieldErrors(totalCost, amountPaid, amountPending float64) []utils.FieldError {
	var errs []utils.FieldError
	if amountPaid > totalCost {
		errs = append(errs, utils.FieldError{Field: "amountPaid", Message: "must not exceed totalCost"})
	}
	if math.Abs(amountPaid+amountPending-totalCost) > 0.01 {
		errs = append(errs, utils.FieldError{Field: "amountPending", Message: "amountPaid + amountPending must equal totalCost"})
	}
	return errs
}

// CreateAppointment books an appointment for a patient with a doctor
func CreateAppointment(c *gin.Context) {
	clinicID, exists := c.Get("clinicId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Clinic ID not found in context")
		return
	}
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	clinicUUID, err := uuid.Parse(clinicID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid clinic ID format")
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	if errs := paymentFieldErrors(input.TotalCost, input.AmountPaid, input.AmountPending); len(errs) > 0 {
		utils.RespondWithFieldErrors(c, errs)
		return
	}

	// Validate patient belongs to the clinic
	var patient models.Patient
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, input.PatientID).
		First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Validate doctor belongs to the clinic
	var doctor models.User
	if err := config.DB.Where("clinic_id = ? AND id = ? AND role = ?", clinicUUID, input.DoctorID, models.RoleDoctor).
		First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Doctor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	durationMins := input.DurationMins
	if durationMins == 0 {
		durationMins = 30
	}

	appointment := models.Appointment{
		ID:              uuid.New(),
		ClinicID:        clinicUUID,
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		PatientID:       input.PatientID,
		DoctorID:        input.DoctorID,
		StartsAt:        input.StartsAt,
		DurationMins:    durationMins,
		Type:            models.AppointmentType(input.Type),
		Status:          models.StatusScheduled,
		Reason:          input.Reason,
		Notes:           input.Notes,
		TotalCost:       input.TotalCost,
		AmountPaid:      input.AmountPaid,
		AmountPending:   input.AmountPending,
	}
	appointment.BookingNumber = "APT-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6)

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, "Appointment created", appointment)
}

// GetAppointments retrieves appointments with optional filters, paginated
func GetAppointments(c *gin.Context) {
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

	page, limit, offset := utils.ParsePagination(c)

	query := config.DB.Model(&models.Appointment{}).Where("clinic_id = ?", clinicUUID)

	if doctorID := c.Query("doctorId"); doctorID != "" {
		doctorUUID, err := uuid.Parse(doctorID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
			return
		}
		query = query.Where("doctor_id = ?", doctorUUID)
	}
	if patientID := c.Query("patientId"); patientID != "" {
		patientUUID, err := uuid.Parse(patientID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
			return
		}
		query = query.Where("patient_id = ?", patientUUID)
	}
	if status := c.Query("status"); status != "" {
		if !models.AppointmentStatus(status).IsValid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		fromDate, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("starts_at >= ?", utils.BeginningOfDay(fromDate))
	}
	if to := c.Query("to"); to != "" {
		toDate, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("starts_at <= ?", utils.EndOfDay(toDate))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count appointments")
		return
	}

	var appointments []models.Appointment
	if err := query.Order("starts_at").Limit(limit).Offset(offset).Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	utils.RespondWithPagination(c, "OK", appointments, utils.NewPagination(page, limit, total))
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
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

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, appointmentUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, "OK", appointment)
}

// UpdateAppointment updates an existing appointment
func UpdateAppointment(c *gin.Context) {
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

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, appointmentUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.StartsAt != nil {
		appointment.StartsAt = *input.StartsAt
	}
	if input.DurationMins != nil {
		appointment.DurationMins = *input.DurationMins
	}
	if input.Type != nil {
		appointment.Type = models.AppointmentType(*input.Type)
	}
	if input.Reason != nil {
		appointment.Reason = *input.Reason
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}
	if input.TotalCost != nil {
		appointment.TotalCost = *input.TotalCost
	}
	if input.AmountPaid != nil {
		appointment.AmountPaid = *input.AmountPaid
	}
	if input.AmountPending != nil {
		appointment.AmountPending = *input.AmountPending
	}

	// Re-check the payment breakdown with the merged values
	if errs := paymentFieldErrors(appointment.TotalCost, appointment.AmountPaid, appointment.AmountPending); len(errs) > 0 {
		utils.RespondWithFieldErrors(c, errs)
		return
	}

	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Appointment updated", appointment)
}

// UpdateAppointmentStatus changes an appointment's status. Completing an
// appointment bumps the patient's visit and spend counters.
func UpdateAppointmentStatus(c *gin.Context) {
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

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input AppointmentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, appointmentUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	newStatus := models.AppointmentStatus(input.Status)
	completing := newStatus == models.StatusCompleted && appointment.Status != models.StatusCompleted

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&appointment).Update("status", newStatus).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment status")
		return
	}

	if completing {
		if err := tx.Model(&models.Patient{}).Where("id = ?", appointment.PatientID).
			Updates(map[string]interface{}{
				"total_visits": gorm.Expr("total_visits + ?", 1),
				"total_spent":  gorm.Expr("total_spent + ?", appointment.TotalCost),
				"last_visit":   appointment.StartsAt,
			}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update patient stats")
			return
		}
	}

	tx.Commit()

	utils.RespondWithData(c, http.StatusOK, "Appointment status updated", gin.H{"status": newStatus})
}

// DeleteAppointment soft deletes an appointment
func DeleteAppointment(c *gin.Context) {
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

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	result := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, appointmentUUID).
		Delete(&models.Appointment{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Appointment deleted successfully", nil)
}

// ExportAppointments streams appointments in a date range as a CSV attachment
func ExportAppointments(c *gin.Context) {
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

	query := config.DB.Where("clinic_id = ?", clinicUUID)
	if from := c.Query("from"); from != "" {
		fromDate, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("starts_at >= ?", utils.BeginningOfDay(fromDate))
	}
	if to := c.Query("to"); to != "" {
		toDate, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("starts_at <= ?", utils.EndOfDay(toDate))
	}

	var appointments []models.Appointment
	if err := query.Order("starts_at").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	filename := fmt.Sprintf("appointments-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"BookingNumber", "StartsAt", "DurationMins", "Type", "Status", "TotalCost", "AmountPaid", "AmountPending"})

	for _, a := range appointments {
		w.Write([]string{
			a.BookingNumber,
			a.StartsAt.Format(time.RFC3339),
			fmt.Sprintf("%d", a.DurationMins),
			string(a.Type),
			string(a.Status),
			fmt.Sprintf("%.2f", a.TotalCost),
			fmt.Sprintf("%.2f", a.AmountPaid),
			fmt.Sprintf("%.2f", a.AmountPending),
		})
	}

	w.Flush()
}
