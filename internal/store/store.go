// Package store holds the only sanctioned deletion paths for campgrounds and
// reviews. Route handlers and any other call site must go through these
// functions so the relationship between a campground and its reviews stays
// consistent regardless of where a deletion originates.
package store

import (
	"errors"
	"fmt"

	"github.com/trailhead-dev/trailhead/internal/models"
	"gorm.io/gorm"
)

var ErrCampgroundNotFound = errors.New("campground not found")
var ErrReviewNotFound = errors.New("review not found")

// DeleteCampgroundCascade removes a campground together with every review and
// image row that references it, as one transaction. Deleting a campground
// with N reviews removes exactly N+1 entity records.
func DeleteCampgroundCascade(db *gorm.DB, campgroundID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var campground models.Campground

		if err := tx.First(&campground, "id = ?", campgroundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCampgroundNotFound
			}
			return fmt.Errorf("lookup campground %d: %w", campgroundID, err)
		}

		if err := tx.Where("campground_id = ?", campgroundID).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews of campground %d: %w", campgroundID, err)
		}

		if err := tx.Where("campground_id = ?", campgroundID).Delete(&models.CampgroundImage{}).Error; err != nil {
			return fmt.Errorf("delete images of campground %d: %w", campgroundID, err)
		}

		if err := tx.Delete(&campground).Error; err != nil {
			return fmt.Errorf("delete campground %d: %w", campgroundID, err)
		}

		return nil
	})
}

// DeleteReview removes one review from its parent campground. The parent is
// verified first: if the campground cannot be loaded the review is left
// untouched. The delete itself is a single statement scoped to both ids, so
// concurrent deletions of sibling reviews cannot resurrect each other's
// reference.
func DeleteReview(db *gorm.DB, campgroundID, reviewID uint) error {
	var campground models.Campground

	if err := db.First(&campground, "id = ?", campgroundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampgroundNotFound
		}
		return fmt.Errorf("lookup campground %d: %w", campgroundID, err)
	}

	result := db.Where("id = ? AND campground_id = ?", reviewID, campgroundID).Delete(&models.Review{})

	if result.Error != nil {
		return fmt.Errorf("delete review %d: %w", reviewID, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}
