// services/reminder_service.go
package services

import (
	"log"
	"os"
	"strings"
	"time"

	"clinicpro-backend/models"
	"clinicpro-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	if _, err := c.AddFunc("0 9 * * *", s.SendDailyReminders); err != nil {
		log.Printf("Failed to schedule reminder job: %v", err)
		return
	}

	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	var clinics []models.Clinic
	if err := s.db.Find(&clinics).Error; err != nil {
		log.Printf("Failed to fetch clinics: %v", err)
		return
	}

	for _, clinic := range clinics {
		s.ProcessClinicReminders(clinic)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) ProcessClinicReminders(clinic models.Clinic) {
	if clinic.AppointmentReminders {
		appointments, err := s.getTomorrowsAppointments(clinic.ID)
		if err != nil {
			log.Printf("Clinic %s: Failed to get tomorrow's appointments: %v", clinic.ID, err)
		} else {
			s.sendAppointmentReminders(clinic, appointments)
		}
	}

	if clinic.BirthdayReminders {
		patients, err := s.getBirthdayPatients(clinic.ID)
		if err != nil {
			log.Printf("Clinic %s: Failed to get birthday patients: %v", clinic.ID, err)
		} else {
			s.sendBirthdayWishes(clinic, patients)
		}
	}
}

func (s *ReminderService) getTomorrowsAppointments(clinicID uuid.UUID) ([]models.Appointment, error) {
	tomorrow := time.Now().AddDate(0, 0, 1)
	start := utils.BeginningOfDay(tomorrow)
	end := utils.EndOfDay(tomorrow)

	var appointments []models.Appointment
	err := s.db.Where("clinic_id = ? AND starts_at BETWEEN ? AND ? AND status IN ?",
		clinicID, start, end, []models.AppointmentStatus{models.StatusScheduled, models.StatusConfirmed}).
		Find(&appointments).Error
	return appointments, err
}

func (s *ReminderService) getBirthdayPatients(clinicID uuid.UUID) ([]models.Patient, error) {
	today := time.Now()

	var patients []models.Patient
	err := s.db.Raw(`
		SELECT * FROM patients
		WHERE clinic_id = ?
		AND is_active = true
		AND deleted_at IS NULL
		AND birthday IS NOT NULL
		AND EXTRACT(MONTH FROM birthday) = ?
		AND EXTRACT(DAY FROM birthday) = ?
	`, clinicID, int(today.Month()), today.Day()).Scan(&patients).Error
	return patients, err
}

func (s *ReminderService) sendAppointmentReminders(clinic models.Clinic, appointments []models.Appointment) {
	var template models.ReminderTemplate
	if err := s.db.Where("clinic_id = ? AND type = ? AND is_active = true", clinic.ID, "appointment").
		First(&template).Error; err != nil {
		log.Printf("Clinic %s: No active appointment template: %v", clinic.ID, err)
		return
	}

	for _, appointment := range appointments {
		var patient models.Patient
		if err := s.db.First(&patient, "id = ?", appointment.PatientID).Error; err != nil {
			log.Printf("Failed to load patient %s: %v", appointment.PatientID, err)
			continue
		}

		message := strings.ReplaceAll(template.Message, "[PatientName]", patient.Name)
		message = strings.ReplaceAll(message, "[ClinicName]", clinic.Name)
		message = strings.ReplaceAll(message, "[Time]", appointment.StartsAt.Format("15:04"))

		s.deliver(clinic, patient, template, "appointment", message)
	}
}

func (s *ReminderService) sendBirthdayWishes(clinic models.Clinic, patients []models.Patient) {
	var template models.ReminderTemplate
	if err := s.db.Where("clinic_id = ? AND type = ? AND is_active = true", clinic.ID, "birthday").
		First(&template).Error; err != nil {
		log.Printf("Clinic %s: No active birthday template: %v", clinic.ID, err)
		return
	}

	for _, patient := range patients {
		message := strings.ReplaceAll(template.Message, "[PatientName]", patient.Name)
		message = strings.ReplaceAll(message, "[ClinicName]", clinic.Name)

		s.deliver(clinic, patient, template, "birthday", message)
	}
}

// resolveChannel picks the outgoing channel for a patient. WhatsApp needs an
// E.164 phone and the clinic switch; SMS needs its own switch. ok is false
// when neither channel is available.
func resolveChannel(clinic models.Clinic, phone string) (channel string, ok bool) {
	if clinic.WhatsAppNotifications && strings.HasPrefix(phone, "+") {
		return "whatsapp", true
	}
	if clinic.SMSNotifications {
		return "sms", true
	}
	return "", false
}

func (s *ReminderService) deliver(clinic models.Clinic, patient models.Patient, template models.ReminderTemplate, eventType, message string) {
	channel, ok := resolveChannel(clinic, patient.Phone)
	if !ok {
		log.Printf("Clinic %s: no enabled channel for patient %s, skipping reminder", clinic.ID, patient.ID)
		return
	}

	to := patient.Phone
	if channel == "whatsapp" {
		to = "whatsapp:" + patient.Phone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send message to %s: %v", patient.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", patient.Phone, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", patient.Phone)
	}

	reminderLog := models.ReminderLog{
		ClinicID:     clinic.ID,
		PatientID:    patient.ID,
		TemplateID:   template.ID,
		Type:         eventType,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for patient %s: %v", patient.ID, err)
	}
}
