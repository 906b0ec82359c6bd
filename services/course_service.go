package services

import (
	"errors"
	"fmt"
	"log"

	"golf-tournament-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type CourseService struct {
	DB *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{DB: db}
}

type holeReq struct {
	Number      int  `json:"number"`
	Par         int  `json:"par"`
	StrokeIndex int  `json:"stroke_index"`
	Yardage     *int `json:"yardage"`
}

type teeboxReq struct {
	Name         string    `json:"name"`
	Gender       string    `json:"gender"`
	CourseRating float64   `json:"course_rating"`
	SlopeRating  int       `json:"slope_rating"`
	Par          int       `json:"par"`
	Holes        []holeReq `json:"holes"`
}

// validateTeeboxHoles checks a full hole layout: ordinals and stroke indexes
// must each cover 1..n exactly once.
func validateTeeboxHoles(holes []holeReq, holeCount int) error {
	if len(holes) != holeCount {
		return fmt.Errorf("expected %d holes, got %d", holeCount, len(holes))
	}
	numbers := make(map[int]bool, len(holes))
	indexes := make(map[int]bool, len(holes))
	for _, h := range holes {
		if h.Number < 1 || h.Number > holeCount {
			return fmt.Errorf("hole number %d out of range", h.Number)
		}
		if h.StrokeIndex < 1 || h.StrokeIndex > holeCount {
			return fmt.Errorf("stroke index %d out of range on hole %d", h.StrokeIndex, h.Number)
		}
		if h.Par < 3 || h.Par > 6 {
			return fmt.Errorf("par %d out of range on hole %d", h.Par, h.Number)
		}
		if numbers[h.Number] {
			return fmt.Errorf("duplicate hole number %d", h.Number)
		}
		if indexes[h.StrokeIndex] {
			return fmt.Errorf("duplicate stroke index %d", h.StrokeIndex)
		}
		numbers[h.Number] = true
		indexes[h.StrokeIndex] = true
	}
	return nil
}

func (s *CourseService) CreateCourse(c *fiber.Ctx) error {
	type Req struct {
		Name      string      `json:"name"`
		City      string      `json:"city"`
		Country   string      `json:"country"`
		HoleCount int         `json:"hole_count"`
		Teeboxes  []teeboxReq `json:"teeboxes"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}
	if req.HoleCount == 0 {
		req.HoleCount = 18
	}

	course := &models.Course{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Slug:      slug.Make(req.Name),
		City:      req.City,
		Country:   req.Country,
		HoleCount: req.HoleCount,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Teeboxes").Create(course).Error; err != nil {
			return err
		}
		for _, tb := range req.Teeboxes {
			if err := validateTeeboxHoles(tb.Holes, req.HoleCount); err != nil {
				return fiber.NewError(400, fmt.Sprintf("teebox %q: %v", tb.Name, err))
			}
			teebox := models.Teebox{
				ID:           uuid.NewString(),
				CourseID:     course.ID,
				Name:         tb.Name,
				Gender:       models.TeeGender(tb.Gender),
				CourseRating: tb.CourseRating,
				SlopeRating:  tb.SlopeRating,
				Par:          tb.Par,
			}
			if teebox.Gender == "" {
				teebox.Gender = models.TeeGenderUnisex
			}
			if teebox.SlopeRating == 0 {
				teebox.SlopeRating = 113
			}
			if err := tx.Omit("Holes").Create(&teebox).Error; err != nil {
				return err
			}
			for _, h := range tb.Holes {
				hole := models.Hole{
					ID:          uuid.NewString(),
					TeeboxID:    teebox.ID,
					Number:      h.Number,
					Par:         h.Par,
					StrokeIndex: h.StrokeIndex,
					Yardage:     h.Yardage,
				}
				if err := tx.Create(&hole).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}
		log.Printf("ERROR creating course: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}

	s.DB.Preload("Teeboxes").Preload("Teeboxes.Holes", func(db *gorm.DB) *gorm.DB {
		return db.Order("number ASC")
	}).First(course, "id = ?", course.ID)
	return c.Status(201).JSON(course)
}

func (s *CourseService) GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := s.DB.Preload("Teeboxes").Order("name ASC").Find(&courses).Error; err != nil {
		log.Printf("ERROR fetching courses: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch courses"})
	}
	return c.JSON(courses)
}

func (s *CourseService) GetCourseByID(c *fiber.Ctx) error {
	id := c.Params("id")
	var course models.Course
	err := s.DB.
		Preload("Teeboxes").
		Preload("Teeboxes.Holes", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "course not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(course)
}

func (s *CourseService) UpdateCourse(c *fiber.Ctx) error {
	id := c.Params("id")
	type Req struct {
		Name    string `json:"name"`
		City    string `json:"city"`
		Country string `json:"country"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var course models.Course
	if err := s.DB.First(&course, "id = ?", id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "course not found"})
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
		updates["slug"] = slug.Make(req.Name)
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.Country != "" {
		updates["country"] = req.Country
	}
	if err := s.DB.Model(&course).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "update failed"})
	}
	return c.JSON(course)
}

// DeleteCourse removes a course and its layout. Refused while any event still
// references the course.
func (s *CourseService) DeleteCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var inUse int64
	s.DB.Model(&models.Event{}).Where("course_id = ?", id).Count(&inUse)
	if inUse > 0 {
		return c.Status(409).JSON(fiber.Map{"error": "course is referenced by events"})
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var teeboxes []models.Teebox
		if err := tx.Where("course_id = ?", id).Find(&teeboxes).Error; err != nil {
			return err
		}
		for _, tb := range teeboxes {
			if err := tx.Where("teebox_id = ?", tb.ID).Delete(&models.Hole{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.Teebox{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Course{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(404, "course not found")
		}
		return nil
	})
}
