package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"clinicpro-backend/config"
	"clinicpro-backend/models"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePatientInput defines the expected JSON structure for creating a patient
type CreatePatientInput struct {
	Name           string     `json:"name" binding:"required,min=2"`
	Phone          string     `json:"phone" binding:"required"`
	Email          *string    `json:"email" binding:"omitempty,email"`
	Gender         string     `json:"gender" binding:"omitempty,oneof=male female other"`
	Birthday       *time.Time `json:"birthday"`
	BloodGroup     string     `json:"bloodGroup" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Allergies      string     `json:"allergies"`
	MedicalHistory string     `json:"medicalHistory"`
	Notes          string     `json:"notes"`
}

// UpdatePatientInput defines the expected JSON structure for updating a patient
type UpdatePatientInput struct {
	Name           *string    `json:"name" binding:"omitempty,min=2"`
	Phone          *string    `json:"phone"`
	Email          *string    `json:"email" binding:"omitempty,email"`
	Gender         *string    `json:"gender" binding:"omitempty,oneof=male female other"`
	Birthday       *time.Time `json:"birthday"`
	BloodGroup     *string    `json:"bloodGroup" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Allergies      *string    `json:"allergies"`
	MedicalHistory *string    `json:"medicalHistory"`
	Notes          *string    `json:"notes"`
	IsActive       *bool      `json:"isActive"`
}

// CreatePatient creates a new patient for the clinic
func CreatePatient(c *gin.Context) {
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

	var input CreatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	// Validate phone format
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithFieldErrors(c, []utils.FieldError{{Field: "phone", Message: "must be a valid phone number"}})
		return
	}

	// Check if phone already exists for this clinic
	var existingPatient models.Patient
	if err := config.DB.Where("clinic_id = ? AND phone = ?", clinicUUID, input.Phone).
		First(&existingPatient).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Patient with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	patient := models.Patient{
		ID:              uuid.New(),
		ClinicID:        clinicUUID,
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		Name:            input.Name,
		Phone:           input.Phone,
		Gender:          input.Gender,
		Birthday:        input.Birthday,
		BloodGroup:      input.BloodGroup,
		Allergies:       input.Allergies,
		MedicalHistory:  input.MedicalHistory,
		Notes:           input.Notes,
		IsActive:        true,
	}

	if input.Email != nil {
		patient.Email = *input.Email
	}

	if err := config.DB.Create(&patient).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create patient")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, "Patient created", patient)
}

// GetPatients retrieves all patients for the clinic, paginated
func GetPatients(c *gin.Context) {
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

	query := config.DB.Model(&models.Patient{}).Where("clinic_id = ?", clinicUUID)

	if active := c.Query("isActive"); active == "true" {
		query = query.Where("is_active = ?", true)
	} else if active == "false" {
		query = query.Where("is_active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count patients")
		return
	}

	var patients []models.Patient
	if err := query.Order("name").Limit(limit).Offset(offset).Find(&patients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve patients")
		return
	}

	utils.RespondWithPagination(c, "OK", patients, utils.NewPagination(page, limit, total))
}

// GetPatient retrieves a specific patient by ID
func GetPatient(c *gin.Context) {
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

	patientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}

	var patient models.Patient
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, patientUUID).
		First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, "OK", patient)
}

// UpdatePatient updates an existing patient
func UpdatePatient(c *gin.Context) {
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

	patientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}

	var input UpdatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	var patient models.Patient
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, patientUUID).
		First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		patient.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithFieldErrors(c, []utils.FieldError{{Field: "phone", Message: "must be a valid phone number"}})
			return
		}

		// Check if phone is being changed to another existing patient
		if patient.Phone != *input.Phone {
			var existingPatient models.Patient
			if err := config.DB.Where("clinic_id = ? AND phone = ?", clinicUUID, *input.Phone).
				First(&existingPatient).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another patient with this phone number already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		patient.Phone = *input.Phone
	}
	if input.Email != nil {
		patient.Email = *input.Email
	}
	if input.Gender != nil {
		patient.Gender = *input.Gender
	}
	if input.Birthday != nil {
		patient.Birthday = input.Birthday
	}
	if input.BloodGroup != nil {
		patient.BloodGroup = *input.BloodGroup
	}
	if input.Allergies != nil {
		patient.Allergies = *input.Allergies
	}
	if input.MedicalHistory != nil {
		patient.MedicalHistory = *input.MedicalHistory
	}
	if input.Notes != nil {
		patient.Notes = *input.Notes
	}
	if input.IsActive != nil {
		patient.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&patient).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update patient")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Patient updated", patient)
}

// DeletePatient soft deletes a patient
func DeletePatient(c *gin.Context) {
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

	patientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}

	result := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, patientUUID).
		Delete(&models.Patient{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete patient")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Patient deleted successfully", nil)
}

// SearchPatients searches patients by name, phone or email
func SearchPatients(c *gin.Context) {
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

	query := config.DB.Model(&models.Patient{}).
		Where("clinic_id = ?", clinicUUID).
		Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count patients")
		return
	}

	var patients []models.Patient
	if err := query.Order("name").Limit(limit).Offset(offset).Find(&patients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to search patients")
		return
	}

	utils.RespondWithPagination(c, "OK", patients, utils.NewPagination(page, limit, total))
}

// ExportPatients streams the clinic's patients as a CSV attachment
func ExportPatients(c *gin.Context) {
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

	var patients []models.Patient
	if err := config.DB.Where("clinic_id = ?", clinicUUID).Order("name").Find(&patients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve patients")
		return
	}

	filename := fmt.Sprintf("patients-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"Name", "Phone", "Email", "Gender", "Birthday", "BloodGroup", "TotalVisits", "TotalSpent", "LastVisit", "Active"})

	for _, p := range patients {
		birthday := ""
		if p.Birthday != nil {
			birthday = p.Birthday.Format("2006-01-02")
		}
		lastVisit := ""
		if p.LastVisit != nil {
			lastVisit = p.LastVisit.Format("2006-01-02")
		}
		w.Write([]string{
			p.Name,
			p.Phone,
			p.Email,
			p.Gender,
			birthday,
			p.BloodGroup,
			fmt.Sprintf("%d", p.TotalVisits),
			fmt.Sprintf("%.2f", p.TotalSpent),
			lastVisit,
			fmt.Sprintf("%t", p.IsActive),
		})
	}

	w.Flush()
}
