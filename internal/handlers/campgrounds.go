package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trailhead-dev/trailhead/db"
	"github.com/trailhead-dev/trailhead/internal/httperr"
	"github.com/trailhead-dev/trailhead/internal/imagestore"
	"github.com/trailhead-dev/trailhead/internal/models"
	"github.com/trailhead-dev/trailhead/internal/session"
	"github.com/trailhead-dev/trailhead/internal/store"
	"github.com/trailhead-dev/trailhead/internal/utils"
	"gorm.io/gorm"
)

type CampgroundSummary struct {
	ID       uint            `json:"id"`
	Title    string          `json:"title"`
	Price    float64         `json:"price"`
	Location string          `json:"location"`
	AuthorID uint            `json:"author_id"`
	Images   []ImageResponse `json:"images"`
}

type CampgroundDetail struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Price       float64          `json:"price"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	Author      AuthorResponse   `json:"author"`
	Images      []ImageResponse  `json:"images"`
	Reviews     []ReviewResponse `json:"reviews"`
}

type AuthorResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type ImageResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func ListCampgrounds(ctx *gin.Context) {
	var campgrounds []models.Campground

	if err := db.DB.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Find(&campgrounds).Error; err != nil {
		httperr.Abort(ctx, httperr.Store("Failed to retrieve campgrounds", err))
		return
	}

	summaries := make([]CampgroundSummary, 0, len(campgrounds))

	for _, campground := range campgrounds {
		summaries = append(summaries, CampgroundSummary{
			ID:       campground.ID,
			Title:    campground.Title,
			Price:    campground.Price,
			Location: campground.Location,
			AuthorID: campground.AuthorID,
			Images:   imageResponses(campground.Images),
		})
	}

	renderView(ctx, gin.H{"campgrounds": summaries})
}

func NewCampgroundForm(ctx *gin.Context) {
	renderView(ctx, gin.H{"view": "campgrounds/new"})
}

func CreateCampground(ctx *gin.Context) {
	input, err := utils.GetCampgroundInput(ctx)

	if err != nil {
		httperr.Abort(ctx, httperr.Store("Missing validated input", err))
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	campground := models.Campground{
		Title:       input.Title,
		Price:       *input.Price,
		Description: input.Description,
		Location:    input.Location,
		AuthorID:    userID,
	}

	if err := db.DB.Create(&campground).Error; err != nil {
		httperr.Abort(ctx, httperr.Store("Failed to create campground", err))
		return
	}

	if err := attachUploadedImages(ctx, &campground); err != nil {
		log.Printf("Failed to store campground images: %v", err)
	}

	session.SetFlash(ctx, "success", "Successfully made a new campground!")
	ctx.Redirect(http.StatusFound, fmt.Sprintf("/campgrounds/%d", campground.ID))
}

func ShowCampground(ctx *gin.Context) {
	campgroundID, err := utils.GetCampgroundID(ctx)

	if err != nil {
		httperr.Abort(ctx, httperr.Validation("Invalid campground ID"))
		return
	}

	var campground models.Campground

	if err := db.DB.
		Preload("Author").
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Preload("Reviews.Author").
		First(&campground, "id = ?", campgroundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Abort(ctx, httperr.NotFound("Cannot find that campground"))
		} else {
			httperr.Abort(ctx, httperr.Store("Failed to retrieve campground", err))
		}
		return
	}

	reviews := make([]ReviewResponse, 0, len(campground.Reviews))
	for _, review := range campground.Reviews {
		reviews = append(reviews, reviewResponse(review))
	}

	renderView(ctx, gin.H{"campground": CampgroundDetail{
		ID:          campground.ID,
		Title:       campground.Title,
		Price:       campground.Price,
		Description: campground.Description,
		Location:    campground.Location,
		Author: AuthorResponse{
			ID:       campground.Author.ID,
			Username: campground.Author.Username,
		},
		Images:  imageResponses(campground.Images),
		Reviews: reviews,
	}})
}

func EditCampgroundForm(ctx *gin.Context) {
	campgroundID, err := utils.GetCampgroundID(ctx)

	if err != nil {
		httperr.Abort(ctx, httperr.Validation("Invalid campground ID"))
		return
	}

	var campground models.Campground

	if err := db.DB.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).First(&campground, "id = ?", campgroundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Abort(ctx, httperr.NotFound("Cannot find that campground"))
		} else {
			httperr.Abort(ctx, httperr.Store("Failed to retrieve campground", err))
		}
		return
	}

	renderView(ctx, gin.H{
		"view": "campgrounds/edit",
		"campground": CampgroundSummary{
			ID:       campground.ID,
			Title:    campground.Title,
			Price:    campground.Price,
			Location: campground.Location,
			AuthorID: campground.AuthorID,
			Images:   imageResponses(campground.Images),
		},
	})
}

func UpdateCampground(ctx *gin.Context) {
	input, err := utils.GetCampgroundInput(ctx)

	if err != nil {
		httperr.Abort(ctx, httperr.Store("Missing validated input", err))
		return
	}

	campgroundID, err := utils.GetCampgroundID(ctx)

	if err != nil {
		httperr.Abort(ctx, httperr.Validation("Invalid campground ID"))
		return
	}

	var campground models.Campground

	if err := db.DB.First(&campground, "id = ?", campgroundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Abort(ctx, httperr.NotFound("Cannot find that campground"))
		} else {
			httperr.Abort(ctx, httperr.Store("Failed to retrieve campground", err))
		}
		return
	}

	// AuthorID is never part of an update
	campground.Title = input.Title
	campground.Price = *input.Price
	campground.Description = input.Description
	campground.Location = input.Location

	if err := db.DB.Save(&campground).Error; err != nil {
		httperr.Abort(ctx, httperr.Store("Failed to update campground", err))
		return
	}

	if len(input.DeleteImages) > 0 {
		removeImages(ctx, campground.ID, input.DeleteImages)
	}

	if err := attachUploadedImages(ctx, &campground); err != nil {
		log.Printf("Failed to store campground images: %v", err)
	}

	session.SetFlash(ctx, "success", "Successfully updated campground!")
	ctx.Redirect(http.StatusFound, fmt.Sprintf("/campgrounds/%d", campground.ID))
}

func DeleteCampground(ctx *gin.Context) {
	campgroundID, err := utils.GetCampgroundID(ctx)

	if err != nil {
		httperr.Abort(ctx, httperr.Validation("Invalid campground ID"))
		return
	}

	var images []models.CampgroundImage
	if err := db.DB.Where("campground_id = ?", campgroundID).Find(&images).Error; err != nil {
		log.Printf("Failed to list images of campground %d: %v", campgroundID, err)
	}

	if err := store.DeleteCampgroundCascade(db.DB, campgroundID); err != nil {
		if errors.Is(err, store.ErrCampgroundNotFound) {
			httperr.Abort(ctx, httperr.NotFound("Cannot find that campground"))
		} else {
			httperr.Abort(ctx, httperr.Store("Failed to delete campground", err))
		}
		return
	}

	// Object storage cleanup is best effort; the records are already gone.
	if imagestore.Default != nil {
		for _, image := range images {
			if err := imagestore.Default.Delete(ctx.Request.Context(), image.Filename); err != nil {
				log.Printf("Failed to delete image object %q: %v", image.Filename, err)
			}
		}
	}

	session.SetFlash(ctx, "success", "Successfully deleted campground!")
	ctx.Redirect(http.StatusFound, "/campgrounds")
}

// attachUploadedImages stores any multipart files sent under the "images"
// field and records them on the campground, preserving upload order.
func attachUploadedImages(ctx *gin.Context, campground *models.Campground) error {
	if ctx.ContentType() != "multipart/form-data" {
		return nil
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return nil
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil
	}

	if imagestore.Default == nil {
		return fmt.Errorf("image store is not configured")
	}

	var lastPosition int
	row := db.DB.Model(&models.CampgroundImage{}).
		Where("campground_id = ?", campground.ID).
		Select("COALESCE(MAX(position), -1)").
		Row()
	if err := row.Scan(&lastPosition); err != nil {
		lastPosition = -1
	}

	for i, fileHeader := range files {
		image, err := uploadOne(ctx, fileHeader)
		if err != nil {
			return err
		}

		record := models.CampgroundImage{
			CampgroundID: campground.ID,
			URL:          image.URL,
			Filename:     image.Filename,
			Position:     lastPosition + 1 + i,
		}

		if err := db.DB.Create(&record).Error; err != nil {
			return fmt.Errorf("record image %q: %w", image.Filename, err)
		}
	}

	return nil
}

func uploadOne(ctx *gin.Context, fileHeader *multipart.FileHeader) (imagestore.Image, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return imagestore.Image{}, fmt.Errorf("open upload %q: %w", fileHeader.Filename, err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return imagestore.Default.Upload(ctx.Request.Context(), fileHeader.Filename, file, contentType)
}

func removeImages(ctx *gin.Context, campgroundID uint, filenames []string) {
	if err := db.DB.Where("campground_id = ? AND filename IN ?", campgroundID, filenames).
		Delete(&models.CampgroundImage{}).Error; err != nil {
		log.Printf("Failed to delete image records for campground %d: %v", campgroundID, err)
		return
	}

	if imagestore.Default == nil {
		return
	}

	for _, filename := range filenames {
		if err := imagestore.Default.Delete(ctx.Request.Context(), filename); err != nil {
			log.Printf("Failed to delete image object %q: %v", filename, err)
		}
	}
}

func imageResponses(images []models.CampgroundImage) []ImageResponse {
	responses := make([]ImageResponse, 0, len(images))
	for _, image := range images {
		responses = append(responses, ImageResponse{URL: image.URL, Filename: image.Filename})
	}
	return responses
}
