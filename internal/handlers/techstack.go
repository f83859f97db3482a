package handlers

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/gitprofile/insight/internal/services"
	"github.com/gitprofile/insight/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type TechStackHandler struct {
	techStackService *services.TechStackService
}

func NewTechStackHandler(techStackService *services.TechStackService) *TechStackHandler {
	return &TechStackHandler{
		techStackService: techStackService,
	}
}

type techStackRequest struct {
	Username string `json:"username"`
	Format   string `json:"format"`
}

// Aggregate handles POST /api/tech-stack. It returns the language
// percentage distribution as JSON, or as an XLSX attachment when
// format=xlsx is requested.
func (h *TechStackHandler) Aggregate(c *gin.Context) {
	var req techStackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	techStack, err := h.techStackService.Aggregate(c.Request.Context(), req.Username)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	if req.Format == "xlsx" {
		h.writeWorkbook(c, req.Username, techStack)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"techStack": techStack,
	})
}

// writeWorkbook streams the distribution as a spreadsheet, ordered by
// percentage descending.
func (h *TechStackHandler) writeWorkbook(c *gin.Context, username string, techStack map[string]int) {
	languages := make([]string, 0, len(techStack))
	for language := range techStack {
		languages = append(languages, language)
	}
	sort.Slice(languages, func(i, j int) bool {
		if techStack[languages[i]] != techStack[languages[j]] {
			return techStack[languages[i]] > techStack[languages[j]]
		}
		return languages[i] < languages[j]
	})

	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	file.SetCellValue(sheet, "A1", "Language")
	file.SetCellValue(sheet, "B1", "Percentage")
	for i, language := range languages {
		row := i + 2
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), language)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), techStack[language])
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-tech-stack.xlsx", username))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		logger.WithError(err).Error("failed to write tech stack workbook")
	}
}
