package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golf-tournament-system/models"
	"golf-tournament-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/unidecode"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ExportService struct {
	DB          *gorm.DB
	Leaderboard *LeaderboardService
}

func NewExportService(db *gorm.DB, leaderboard *LeaderboardService) *ExportService {
	return &ExportService{DB: db, Leaderboard: leaderboard}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportEvent builds an Excel workbook with the leaderboard and the persisted
// winner results. With storage configured it uploads the file and returns the
// CDN URL; otherwise the workbook is streamed as an attachment.
func (s *ExportService) ExportEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var event models.Event
	if err := s.DB.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "event not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	entries, err := s.Leaderboard.Rebuild(eventID)
	if err != nil {
		log.Printf("ERROR building leaderboard for export of event %s: %v", eventID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to assemble leaderboard"})
	}

	var winners []models.WinnerResult
	if err := s.DB.Where("event_id = ?", eventID).
		Order("category ASC, rank ASC").
		Find(&winners).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch winners"})
	}

	f := excelize.NewFile()
	defer f.Close()

	const boardSheet = "Leaderboard"
	f.SetSheetName("Sheet1", boardSheet)
	boardHeader := []interface{}{"Rank", "Player", "Division", "Gross", "Net", "Points", "Holes", "Computed HC", "Tied"}
	f.SetSheetRow(boardSheet, "A1", &boardHeader)
	for i, e := range entries {
		rank := interface{}(e.Rank)
		if e.Rank == 0 {
			rank = "-"
		}
		computedHC := interface{}("")
		if e.ComputedHandicap != nil {
			computedHC = *e.ComputedHandicap
		}
		row := []interface{}{rank, e.PlayerName, e.DivisionName, e.GrossScore, e.NetScore, e.TotalPoints, e.HolesCompleted, computedHC, e.Tied}
		f.SetSheetRow(boardSheet, fmt.Sprintf("A%d", i+2), &row)
	}

	const winnersSheet = "Winners"
	f.NewSheet(winnersSheet)
	winnersHeader := []interface{}{"Category", "Rank", "Player", "Division", "Gross", "Net", "Points", "Tied With", "Reason"}
	f.SetSheetRow(winnersSheet, "A1", &winnersHeader)
	for i, w := range winners {
		row := []interface{}{string(w.Category), w.Rank, w.PlayerName, w.DivisionName, w.GrossScore, w.NetScore, w.TotalPoints, w.TiedWith, w.Reason}
		f.SetSheetRow(winnersSheet, fmt.Sprintf("A%d", i+2), &row)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("ERROR writing workbook for event %s: %v", eventID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to build workbook"})
	}

	// ASCII-fold the event name so the object key survives any storage or
	// browser encoding.
	safeName := strings.ReplaceAll(strings.ToLower(unidecode.Unidecode(event.Name)), " ", "-")
	filename := fmt.Sprintf("%s-%s.xlsx", safeName, time.Now().Format("20060102-150405"))

	// Without storage credentials the export degrades to a direct download.
	if !utils.StorageConfigured() {
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		return c.Send(buf.Bytes())
	}

	url, err := utils.UploadBytesToR2(buf.Bytes(), "exports/"+filename, xlsxContentType)
	if err != nil {
		log.Printf("ERROR uploading export for event %s: %v", eventID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to upload export"})
	}

	return c.JSON(fiber.Map{
		"event_id": eventID,
		"url":      url,
		"rows":     len(entries),
	})
}
