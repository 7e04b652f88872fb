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

// CreateCategoryInput defines the expected JSON structure for creating a service category
type CreateCategoryInput struct {
	Name         string `json:"name" binding:"required,min=2,max=60"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	DisplayOrder int    `json:"displayOrder" binding:"min=0"`
}

// UpdateCategoryInput defines the expected JSON structure for updating a service category
type UpdateCategoryInput struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=60"`
	Description  *string `json:"description"`
	Color        *string `json:"color"`
	DisplayOrder *int    `json:"displayOrder" binding:"omitempty,min=0"`
	IsActive     *bool   `json:"isActive"`
}

type ReorderInput struct {
	Items []ReorderItem `json:"items" binding:"required,min=1,dive"`
}

type ReorderItem struct {
	ID           uuid.UUID `json:"id" binding:"required"`
	DisplayOrder int       `json:"displayOrder" binding:"min=0"`
}

type BulkStatusInput struct {
	IDs      []uuid.UUID `json:"ids" binding:"required,min=1"`
	IsActive *bool       `json:"isActive" binding:"required"`
}

// CreateCategory creates a new service category for the clinic
func CreateCategory(c *gin.Context) {
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

	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	if input.Color != "" && !utils.ValidateHexColor(input.Color) {
		utils.RespondWithFieldErrors(c, []utils.FieldError{{Field: "color", Message: "must be a #RRGGBB hex color"}})
		return
	}

	// Category names are unique within a clinic
	var existing models.ServiceCategory
	if err := config.DB.Where("clinic_id = ? AND name = ?", clinicUUID, input.Name).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Category with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	category := models.ServiceCategory{
		ID:           uuid.New(),
		ClinicID:     clinicUUID,
		Name:         input.Name,
		Description:  input.Description,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
	}
	if input.Color != "" {
		category.Color = input.Color
	}

	if err := config.DB.Create(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, "Category created", category)
}

// GetCategories retrieves all service categories for the clinic, paginated
func GetCategories(c *gin.Context) {
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

	query := config.DB.Model(&models.ServiceCategory{}).Where("clinic_id = ?", clinicUUID)
	if active := c.Query("isActive"); active == "true" {
		query = query.Where("is_active = ?", true)
	} else if active == "false" {
		query = query.Where("is_active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count categories")
		return
	}

	var categories []models.ServiceCategory
	if err := query.Order("display_order, name").Limit(limit).Offset(offset).Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	utils.RespondWithPagination(c, "OK", categories, utils.NewPagination(page, limit, total))
}

// GetCategory retrieves a specific category by ID
func GetCategory(c *gin.Context) {
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

	categoryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var category models.ServiceCategory
	if err := config.DB.Preload("Services").
		Where("clinic_id = ? AND id = ?", clinicUUID, categoryUUID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, "OK", category)
}

// UpdateCategory updates an existing category
func UpdateCategory(c *gin.Context) {
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

	categoryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var input UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	var category models.ServiceCategory
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, categoryUUID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil && *input.Name != category.Name {
		var existing models.ServiceCategory
		if err := config.DB.Where("clinic_id = ? AND name = ?", clinicUUID, *input.Name).
			First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Another category with this name already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Color != nil {
		if !utils.ValidateHexColor(*input.Color) {
			utils.RespondWithFieldErrors(c, []utils.FieldError{{Field: "color", Message: "must be a #RRGGBB hex color"}})
			return
		}
		category.Color = *input.Color
	}
	if input.DisplayOrder != nil {
		category.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory deletes a category; blocked while services still reference it
func DeleteCategory(c *gin.Context) {
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

	categoryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var serviceCount int64
	if err := config.DB.Model(&models.Service{}).
		Where("clinic_id = ? AND category_id = ?", clinicUUID, categoryUUID).
		Count(&serviceCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if serviceCount > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Cannot delete a category that still has services")
		return
	}

	result := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, categoryUUID).
		Delete(&models.ServiceCategory{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Category deleted successfully", nil)
}

// ReorderCategories applies new display orders. Updates are issued per item
// with no batch transaction; modifiedCount reports what actually changed.
func ReorderCategories(c *gin.Context) {
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

	var input ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	modified := 0
	for _, item := range input.Items {
		result := config.DB.Model(&models.ServiceCategory{}).
			Where("clinic_id = ? AND id = ?", clinicUUID, item.ID).
			Update("display_order", item.DisplayOrder)
		if result.Error != nil {
			continue
		}
		modified += int(result.RowsAffected)
	}

	utils.RespondWithData(c, http.StatusOK, "Categories reordered", gin.H{"modifiedCount": modified})
}

// BulkUpdateCategoryStatus flips is_active on a list of categories
func BulkUpdateCategoryStatus(c *gin.Context) {
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

	var input BulkStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, utils.BindingErrors(err))
		return
	}

	modified := 0
	for _, id := range input.IDs {
		result := config.DB.Model(&models.ServiceCategory{}).
			Where("clinic_id = ? AND id = ?", clinicUUID, id).
			Update("is_active", *input.IsActive)
		if result.Error != nil {
			continue
		}
		modified += int(result.RowsAffected)
	}

	utils.RespondWithData(c, http.StatusOK, "Categories updated", gin.H{"modifiedCount": modified})
}

// SearchCategories searches categories by name or description
func SearchCategories(c *gin.Context) {
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

	query := config.DB.Model(&models.ServiceCategory{}).
		Where("clinic_id = ?", clinicUUID).
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count categories")
		return
	}

	var categories []models.ServiceCategory
	if err := query.Order("display_order, name").Limit(limit).Offset(offset).Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to search categories")
		return
	}

	utils.RespondWithPagination(c, "OK", categories, utils.NewPagination(page, limit, total))
}
