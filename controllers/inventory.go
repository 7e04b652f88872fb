// controllers/inventory.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"clinicpro-backend/config"
	"clinicpro-backend/models"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateMedicineInput defines the expected JSON structure for creating a medicine
type CreateMedicineInput struct {
	Name         string     `json:"name" binding:"required,min=2"`
	GenericName  string     `json:"genericName"`
	BatchNumber  string     `json:"batchNumber"`
	ExpiryDate   *time.Time `json:"expiryDate"`
	Unit         string     `json:"unit" binding:"omitempty,oneof=tablet capsule bottle vial tube sachet"`
	Stock        int        `json:"stock" binding:"min=0"`
	ReorderLevel int        `json:"reorderLevel" binding:"min=0"`
	UnitPrice    float64    `json:"unitPrice" binding:"min=0"`
}

// UpdateMedicineInput defines the expected JSON structure for updating a medicine
type UpdateMedicineInput struct {
	Name         *string    `json:"name" binding:"omitempty,min=2"`
	GenericName  *string    `json:"genericName"`
	BatchNumber  *string    `json:"batchNumber"`
	ExpiryDate   *time.Time `json:"expiryDate"`
	Unit         *string    `json:"unit" binding:"omitempty,oneof=tablet capsule bottle vial tube sachet"`
	ReorderLevel *int       `json:"reorderLevel" binding:"omitempty,min=0"`
	UnitPrice    *float64   `json:"unitPrice" binding:"omitempty,min=0"`
	IsActive     *bool      `json:"isActive"`
}

// CreateImplantMaterialInput defines the expected JSON structure for creating an implant material
type CreateImplantMaterialInput struct {
	Name         string  `json:"name" binding:"required,min=2"`
	Manufacturer string  `json:"manufacturer"`
	Size         string  `json:"size"`
	Material     string  `json:"material"`
	Stock        int     `json:"stock" binding:"min=0"`
	ReorderLevel int     `json:"reorderLevel" binding:"min=0"`
	UnitCost     float64 `json:"unitCost" binding:"min=0"`
}

// UpdateImplantMaterialInput defines the expected JSON structure for updating an implant material
type UpdateImplantMaterialInput struct {
	Name         *string  `json:"name" binding:"omitempty,min=2"`
	Manufacturer *string  `json:"manufacturer"`
	Size         *string  `json:"size"`
	Material     *string  `json:"material"`
	ReorderLevel *int     `json:"reorderLevel" binding:"omitempty,min=0"`
	UnitCost     *float64 `json:"unitCost" binding:"omitempty,min=0"`
	IsActive     *bool    `json:"isActive"`
}

type AdjustStockInput struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// CreateMedicine adds a medicine to the clinic's inventory
func CreateMedicine(c *gin.Context) {
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

	var input CreateMedicineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	medicine := models.Medicine{
		ID:           uuid.New(),
		ClinicID:     clinicUUID,
		Name:         input.Name,
		GenericName:  input.GenericName,
		BatchNumber:  input.BatchNumber,
		ExpiryDate:   input.ExpiryDate,
		Stock:        input.Stock,
		ReorderLevel: input.ReorderLevel,
		UnitPrice:    input.UnitPrice,
		IsActive:     true,
	}
	if input.Unit != "" {
		medicine.Unit = input.Unit
	}

	if err := config.DB.Create(&medicine).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create medicine")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, "Medicine created", medicine)
}

// GetMedicines lists medicines, optionally filtered by ?q=, paginated
func GetMedicines(c *gin.Context) {
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

	query := config.DB.Model(&models.Medicine{}).Where("clinic_id = ?", clinicUUID)
	if q := c.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name ILIKE ? OR generic_name ILIKE ? OR batch_number ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count medicines")
		return
	}

	var medicines []models.Medicine
	if err := query.Order("name").Limit(limit).Offset(offset).Find(&medicines).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve medicines")
		return
	}

	utils.RespondWithPagination(c, "OK", medicines, utils.NewPagination(page, limit, total))
}

// GetMedicine retrieves a specific medicine by ID
func GetMedicine(c *gin.Context) {
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

	medicineUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid medicine ID format")
		return
	}

	var medicine models.Medicine
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, medicineUUID).
		First(&medicine).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Medicine not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, "OK", medicine)
}

// UpdateMedicine updates medicine details (stock changes go through AdjustMedicineStock)
func UpdateMedicine(c *gin.Context) {
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

	medicineUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid medicine ID format")
		return
	}

	var input UpdateMedicineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	var medicine models.Medicine
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, medicineUUID).
		First(&medicine).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Medicine not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		medicine.Name = *input.Name
	}
	if input.GenericName != nil {
		medicine.GenericName = *input.GenericName
	}
	if input.BatchNumber != nil {
		medicine.BatchNumber = *input.BatchNumber
	}
	if input.ExpiryDate != nil {
		medicine.ExpiryDate = input.ExpiryDate
	}
	if input.Unit != nil {
		medicine.Unit = *input.Unit
	}
	if input.ReorderLevel != nil {
		medicine.ReorderLevel = *input.ReorderLevel
	}
	if input.UnitPrice != nil {
		medicine.UnitPrice = *input.UnitPrice
	}
	if input.IsActive != nil {
		medicine.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&medicine).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update medicine")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Medicine updated", medicine)
}

// DeleteMedicine soft deletes a medicine
func DeleteMedicine(c *gin.Context) {
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

	medicineUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid medicine ID format")
		return
	}

	result := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, medicineUUID).
		Delete(&models.Medicine{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete medicine")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Medicine not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Medicine deleted successfully", nil)
}

// AdjustMedicineStock applies a stock delta; resulting stock must stay >= 0
func AdjustMedicineStock(c *gin.Context) {
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

	medicineUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid medicine ID format")
		return
	}

	var input AdjustStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	var medicine models.Medicine
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, medicineUUID).
		First(&medicine).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Medicine not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	newStock := medicine.Stock + input.Delta
	if newStock < 0 {
		utils.RespondWithFieldErrors(c, []utils.FieldError{{Field: "delta", Message: "resulting stock cannot be negative"}})
		return
	}

	adjustment := models.StockAdjustment{
		ClinicID:         clinicUUID,
		ItemType:         "medicine",
		ItemID:           medicine.ID,
		Delta:            input.Delta,
		ResultingStock:   newStock,
		Reason:           input.Reason,
		AdjustedByUserID: uuid.Must(uuid.Parse(userID.(string))),
	}

	tx := config.DB.Begin()
	if err := tx.Model(&medicine).Update("stock", newStock).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to adjust stock")
		return
	}
	if err := tx.Create(&adjustment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record stock adjustment")
		return
	}
	tx.Commit()

	utils.RespondWithData(c, http.StatusOK, "Stock adjusted", gin.H{"stock": newStock})
}

// GetLowStockMedicines lists medicines at or below their reorder level
func GetLowStockMedicines(c *gin.Context) {
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

	var medicines []models.Medicine
	if err := config.DB.Where("clinic_id = ? AND is_active = ? AND stock <= reorder_level", clinicUUID, true).
		Order("stock").Find(&medicines).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve medicines")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "OK", medicines)
}

// GetExpiringMedicines lists medicines expiring within ?days= (default 30)
func GetExpiringMedicines(c *gin.Context) {
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

	days := 30
	if v := c.Query("days"); v != "" {
		if d, err := strconv.Atoi(v); err == nil && d > 0 {
			days = d
		}
	}

	cutoff := time.Now().AddDate(0, 0, days)

	var medicines []models.Medicine
	if err := config.DB.Where("clinic_id = ? AND is_active = ? AND expiry_date IS NOT NULL AND expiry_date <= ?", clinicUUID, true, cutoff).
		Order("expiry_date").Find(&medicines).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve medicines")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "OK", medicines)
}

// CreateImplantMaterial adds an implant material to the inventory
func CreateImplantMaterial(c *gin.Context) {
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

	var input CreateImplantMaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	material := models.ImplantMaterial{
		ID:           uuid.New(),
		ClinicID:     clinicUUID,
		Name:         input.Name,
		Manufacturer: input.Manufacturer,
		Size:         input.Size,
		Material:     input.Material,
		Stock:        input.Stock,
		ReorderLevel: input.ReorderLevel,
		UnitCost:     input.UnitCost,
		IsActive:     true,
	}

	if err := config.DB.Create(&material).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create implant material")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, "Implant material created", material)
}

// GetImplantMaterials lists implant materials, optionally filtered by ?q=, paginated
func GetImplantMaterials(c *gin.Context) {
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

	query := config.DB.Model(&models.ImplantMaterial{}).Where("clinic_id = ?", clinicUUID)
	if q := c.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name ILIKE ? OR manufacturer ILIKE ? OR material ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count implant materials")
		return
	}

	var materials []models.ImplantMaterial
	if err := query.Order("name").Limit(limit).Offset(offset).Find(&materials).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve implant materials")
		return
	}

	utils.RespondWithPagination(c, "OK", materials, utils.NewPagination(page, limit, total))
}

// GetImplantMaterial retrieves a specific implant material by ID
func GetImplantMaterial(c *gin.Context) {
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

	materialUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid implant material ID format")
		return
	}

	var material models.ImplantMaterial
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, materialUUID).
		First(&material).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Implant material not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, "OK", material)
}

// UpdateImplantMaterial updates implant material details
func UpdateImplantMaterial(c *gin.Context) {
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

	materialUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid implant material ID format")
		return
	}

	var input UpdateImplantMaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	var material models.ImplantMaterial
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, materialUUID).
		First(&material).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Implant material not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		material.Name = *input.Name
	}
	if input.Manufacturer != nil {
		material.Manufacturer = *input.Manufacturer
	}
	if input.Size != nil {
		material.Size = *input.Size
	}
	if input.Material != nil {
		material.Material = *input.Material
	}
	if input.ReorderLevel != nil {
		material.ReorderLevel = *input.ReorderLevel
	}
	if input.UnitCost != nil {
		material.UnitCost = *input.UnitCost
	}
	if input.IsActive != nil {
		material.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&material).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update implant material")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Implant material updated", material)
}

// DeleteImplantMaterial soft deletes an implant material
func DeleteImplantMaterial(c *gin.Context) {
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

	materialUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid implant material ID format")
		return
	}

	result := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, materialUUID).
		Delete(&models.ImplantMaterial{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete implant material")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Implant material not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Implant material deleted successfully", nil)
}

// AdjustImplantStock applies a stock delta to an implant material
func AdjustImplantStock(c *gin.Context) {
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

	materialUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid implant material ID format")
		return
	}

	var input AdjustStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	var material models.ImplantMaterial
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, materialUUID).
		First(&material).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Implant material not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	newStock := material.Stock + input.Delta
	if newStock < 0 {
		utils.RespondWithFieldErrors(c, []utils.FieldError{{Field: "delta", Message: "resulting stock cannot be negative"}})
		return
	}

	adjustment := models.StockAdjustment{
		ClinicID:         clinicUUID,
		ItemType:         "implant_material",
		ItemID:           material.ID,
		Delta:            input.Delta,
		ResultingStock:   newStock,
		Reason:           input.Reason,
		AdjustedByUserID: uuid.Must(uuid.Parse(userID.(string))),
	}

	tx := config.DB.Begin()
	if err := tx.Model(&material).Update("stock", newStock).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to adjust stock")
		return
	}
	if err := tx.Create(&adjustment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record stock adjustment")
		return
	}
	tx.Commit()

	utils.RespondWithData(c, http.StatusOK, "Stock adjusted", gin.H{"stock": newStock})
}
