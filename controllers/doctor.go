package controllers

import (
	"errors"
	"net/http"

	"clinicpro-backend/config"
	"clinicpro-backend/models"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateDoctorInput defines the expected JSON structure for creating a doctor
type CreateDoctorInput struct {
	Name            string  `json:"name" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Phone           string  `json:"phone" binding:"required"`
	Password        string  `json:"password" binding:"required,min=8"`
	Specialization  string  `json:"specialization"`
	Qualification   string  `json:"qualification"`
	ConsultationFee float64 `json:"consultationFee" binding:"min=0"`
}

// UpdateDoctorInput defines the expected JSON structure for updating a doctor
type UpdateDoctorInput struct {
	Name            *string  `json:"name"`
	Phone           *string  `json:"phone"`
	Specialization  *string  `json:"specialization"`
	Qualification   *string  `json:"qualification"`
	ConsultationFee *float64 `json:"consultationFee"`
}

type DoctorStatusInput struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// CreateDoctor adds a doctor user to the clinic (admin only)
func CreateDoctor(c *gin.Context) {
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

	var input CreateDoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithFieldErrors(c, []utils.FieldError{{Field: "phone", Message: "must be a valid phone number"}})
		return
	}

	// Check if email or phone already exists
	var existingUser models.User
	if err := config.DB.Where("email = ? OR phone = ?", input.Email, input.Phone).
		First(&existingUser).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	doctor := models.User{
		Email:           input.Email,
		Phone:           input.Phone,
		Name:            input.Name,
		Password:        input.Password, // Hashed in BeforeCreate hook
		Role:            models.RoleDoctor,
		ClinicID:        clinicUUID,
		Specialization:  input.Specialization,
		Qualification:   input.Qualification,
		ConsultationFee: input.ConsultationFee,
	}

	if err := config.DB.Create(&doctor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create doctor")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, "Doctor created", doctor)
}

// GetDoctors retrieves all doctors for the clinic, paginated
func GetDoctors(c *gin.Context) {
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

	query := config.DB.Model(&models.User{}).
		Where("clinic_id = ? AND role = ?", clinicUUID, models.RoleDoctor)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count doctors")
		return
	}

	var doctors []models.User
	if err := query.Order("name").Limit(limit).Offset(offset).Find(&doctors).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve doctors")
		return
	}

	utils.RespondWithPagination(c, "OK", doctors, utils.NewPagination(page, limit, total))
}

// GetDoctor retrieves a specific doctor by ID
func GetDoctor(c *gin.Context) {
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

	doctorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	var doctor models.User
	if err := config.DB.
		Preload("WorkingDays").Preload("BreakTimes").Preload("UnavailableDates").
		Where("clinic_id = ? AND id = ? AND role = ?", clinicUUID, doctorUUID, models.RoleDoctor).
		First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Doctor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, "OK", doctor)
}

// UpdateDoctor updates an existing doctor
func UpdateDoctor(c *gin.Context) {
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

	doctorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	var input UpdateDoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	var doctor models.User
	if err := config.DB.Where("clinic_id = ? AND id = ? AND role = ?", clinicUUID, doctorUUID, models.RoleDoctor).
		First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Doctor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		doctor.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithFieldErrors(c, []utils.FieldError{{Field: "phone", Message: "must be a valid phone number"}})
			return
		}
		doctor.Phone = *input.Phone
	}
	if input.Specialization != nil {
		doctor.Specialization = *input.Specialization
	}
	if input.Qualification != nil {
		doctor.Qualification = *input.Qualification
	}
	if input.ConsultationFee != nil {
		if *input.ConsultationFee < 0 {
			utils.RespondWithFieldErrors(c, []utils.FieldError{{Field: "consultationFee", Message: "must be at least 0"}})
			return
		}
		doctor.ConsultationFee = *input.ConsultationFee
	}

	if err := config.DB.Save(&doctor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update doctor")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Doctor updated", doctor)
}

// UpdateDoctorStatus activates or deactivates a doctor (admin only)
func UpdateDoctorStatus(c *gin.Context) {
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

	doctorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	var input DoctorStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	result := config.DB.Model(&models.User{}).
		Where("clinic_id = ? AND id = ? AND role = ?", clinicUUID, doctorUUID, models.RoleDoctor).
		Update("is_active", *input.IsActive)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update doctor status")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Doctor not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Doctor status updated", gin.H{"isActive": *input.IsActive})
}

// DeleteDoctor soft deletes a doctor (admin only)
func DeleteDoctor(c *gin.Context) {
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

	doctorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	result := config.DB.Where("clinic_id = ? AND id = ? AND role = ?", clinicUUID, doctorUUID, models.RoleDoctor).
		Delete(&models.User{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete doctor")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Doctor not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Doctor deleted successfully", nil)
}

// SearchDoctors searches doctors by name, specialization or phone
func SearchDoctors(c *gin.Context) {
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

	q := c.Query("q")
	if q == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	page, limit, offset := utils.ParsePagination(c)
	pattern := "%" + q + "%"

	query := config.DB.Model(&models.User{}).
		Where("clinic_id = ? AND role = ?", clinicUUID, models.RoleDoctor).
		Where("name ILIKE ? OR specialization ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count doctors")
		return
	}

	var doctors []models.User
	if err := query.Order("name").Limit(limit).Offset(offset).Find(&doctors).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to search doctors")
		return
	}

	utils.RespondWithPagination(c, "OK", doctors, utils.NewPagination(page, limit, total))
}

// GetDoctorSchedule returns the doctor's working days, breaks and unavailable dates
func GetDoctorSchedule(c *gin.Context) {
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

	doctorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	var doctor models.User
	if err := config.DB.
		Preload("WorkingDays").Preload("BreakTimes").Preload("UnavailableDates").
		Where("clinic_id = ? AND id = ? AND role = ?", clinicUUID, doctorUUID, models.RoleDoctor).
		First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Doctor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, "OK", gin.H{
		"workingDays":      doctor.WorkingDays,
		"breakTimes":       doctor.BreakTimes,
		"unavailableDates": doctor.UnavailableDates,
	})
}

// UpdateDoctorSchedule replaces the doctor's availability data transactionally
func UpdateDoctorSchedule(c *gin.Context) {
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

	doctorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	if errs := models.ValidateSchedule(input); len(errs) > 0 {
		utils.RespondWithFieldErrors(c, errs)
		return
	}

	var doctor models.User
	if err := config.DB.Where("clinic_id = ? AND id = ? AND role = ?", clinicUUID, doctorUUID, models.RoleDoctor).
		First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Doctor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Full replace: clear then recreate
	if err := tx.Where("doctor_id = ?", doctorUUID).Delete(&models.WorkingDay{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update schedule")
		return
	}
	if err := tx.Where("doctor_id = ?", doctorUUID).Delete(&models.BreakTime{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update schedule")
		return
	}
	if err := tx.Where("doctor_id = ?", doctorUUID).Delete(&models.UnavailableDate{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update schedule")
		return
	}

	for _, wd := range input.WorkingDays {
		row := models.WorkingDay{ID: uuid.New(), DoctorID: doctorUUID, Day: wd.Day, StartTime: wd.StartTime, EndTime: wd.EndTime}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update schedule")
			return
		}
	}
	for _, bt := range input.BreakTimes {
		row := models.BreakTime{ID: uuid.New(), DoctorID: doctorUUID, Day: bt.Day, StartTime: bt.StartTime, EndTime: bt.EndTime}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update schedule")
			return
		}
	}
	for _, ud := range input.UnavailableDates {
		row := models.UnavailableDate{ID: uuid.New(), DoctorID: doctorUUID, Date: ud.Date, Reason: ud.Reason}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update schedule")
			return
		}
	}

	tx.Commit()

	utils.RespondWithData(c, http.StatusOK, "Schedule updated", gin.H{
		"workingDays":      len(input.WorkingDays),
		"breakTimes":       len(input.BreakTimes),
		"unavailableDates": len(input.UnavailableDates),
	})
}
