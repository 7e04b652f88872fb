package controllers

import (
	"net/http"

	"clinicpro-backend/config"
	"clinicpro-backend/models"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateClinicInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
}

// GetProfile returns the clinic profile for the acting user
func GetProfile(c *gin.Context) {
	clinicID, exists := c.Get("clinicId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Clinic ID not found in context")
		return
	}

	var clinic models.Clinic
	if err := config.DB.First(&clinic, "id = ?", clinicID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Clinic not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "OK", gin.H{
		"name":                  clinic.Name,
		"address":               clinic.Address,
		"phone":                 clinic.Phone,
		"email":                 clinic.Email,
		"workingHours":          clinic.WorkingHours,
		"birthdayReminders":     clinic.BirthdayReminders,
		"appointmentReminders":  clinic.AppointmentReminders,
		"whatsAppNotifications": clinic.WhatsAppNotifications,
		"smsNotifications":      clinic.SMSNotifications,
	})
}

// UpdateClinicProfile updates clinic contact details
func UpdateClinicProfile(c *gin.Context) {
	clinicID, exists := c.Get("clinicId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Clinic ID not found in context")
		return
	}

	var input UpdateClinicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	var clinic models.Clinic
	if err := config.DB.First(&clinic, "id = ?", clinicID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Clinic not found")
		return
	}

	clinic.Name = input.Name
	clinic.Address = input.Address
	clinic.Phone = input.Phone
	clinic.Email = input.Email

	if err := config.DB.Save(&clinic).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update clinic profile")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Clinic profile updated", nil)
}

// UpdateWorkingHours replaces the clinic's opening hours blob
func UpdateWorkingHours(c *gin.Context) {
	clinicID, exists := c.Get("clinicId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Clinic ID not found in context")
		return
	}

	var input struct {
		WorkingHours models.JSONB `json:"workingHours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	if err := config.DB.Model(&models.Clinic{}).Where("id = ?", clinicID).
		Update("working_hours", input.WorkingHours).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update working hours")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Working hours updated", nil)
}

// UpdateNotificationSettings flips the clinic's reminder/notification toggles
func UpdateNotificationSettings(c *gin.Context) {
	clinicID, exists := c.Get("clinicId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Clinic ID not found in context")
		return
	}

	var input struct {
		BirthdayReminders     bool `json:"birthdayReminders"`
		AppointmentReminders  bool `json:"appointmentReminders"`
		WhatsAppNotifications bool `json:"whatsAppNotifications"`
		SMSNotifications      bool `json:"smsNotifications"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	if err := config.DB.Model(&models.Clinic{}).Where("id = ?", clinicID).
		Updates(map[string]interface{}{
			"birthday_reminders":      input.BirthdayReminders,
			"appointment_reminders":   input.AppointmentReminders,
			"whats_app_notifications": input.WhatsAppNotifications,
			"sms_notifications":       input.SMSNotifications,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Notification settings updated", nil)
}

type UpdateReminderTemplateInput struct {
	Type     string  `json:"type" binding:"required,oneof=birthday appointment"`
	IsActive *bool   `json:"isActive"`
	Message  *string `json:"message"`
}

// UpdateReminderTemplate edits a clinic reminder template
func UpdateReminderTemplate(c *gin.Context) {
	clinicID, exists := c.Get("clinicId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Clinic ID not found in context")
		return
	}

	var input UpdateReminderTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	var template models.ReminderTemplate
	if err := config.DB.Where("clinic_id = ? AND type = ?", clinicID, input.Type).First(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Reminder template not found")
		return
	}

	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}
	if input.Message != nil {
		template.Message = *input.Message
	}

	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reminder template")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Reminder template updated", template)
}

// GetReminderTemplates lists the clinic's reminder templates
func GetReminderTemplates(c *gin.Context) {
	clinicID, exists := c.Get("clinicId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Clinic ID not found in context")
		return
	}

	var templates []models.ReminderTemplate
	if err := config.DB.Where("clinic_id = ?", clinicID).Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch reminder templates")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "OK", templates)
}
