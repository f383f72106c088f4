package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/mail"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/spreadsheet"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ImportResponse struct {
	Data struct {
		Imported int `json:"imported" example:"12"`
		Skipped  int `json:"skipped" example:"1"`
	} `json:"data"`
}

// @Summary		Export expenses
// @Description	Downloads all expenses of the authenticated user as a CSV or Excel file. With email=true the file is mailed to the user's address instead.
// @Tags			Import & Export
// @Produce		json
// @Success		200
// @Failure		400		{object}	httputil.HTTPError
// @Failure		503		{object}	httputil.HTTPError	"Mail delivery requested but not configured"
// @Param			format	query		string	false	"File format, defaults to csv"	Enums(csv, xlsx)
// @Param			email	query		bool	false	"Mail the file instead of downloading it"
// @Router			/v1/export [get]
func (co Controller) Export(c *gin.Context) {
	user := currentUser(c)

	var expenses []models.Expense
	err := models.DB.
		Where(&models.Expense{UserID: user.ID}).
		Order("date ASC, created_at ASC").
		Find(&expenses).Error
	if err != nil {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	format := c.DefaultQuery("format", "csv")

	var content []byte
	var contentType string

	switch format {
	case "csv":
		var buf bytes.Buffer
		if err := spreadsheet.WriteCSV(&buf, expenses); err != nil {
			httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
			return
		}
		content = buf.Bytes()
		contentType = "text/csv"

	case "xlsx":
		content, err = spreadsheet.WriteXLSX(expenses)
		if err != nil {
			httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
			return
		}
		contentType = xlsxContentType

	default:
		httputil.NewError(c, http.StatusBadRequest, errUnknownFormat)
		return
	}

	filename := fmt.Sprintf("expenses-%s.%s", time.Now().In(time.UTC).Format("2006-01-02"), format)

	if c.Query("email") == "true" {
		if !co.Mail.Enabled() {
			httputil.NewError(c, status(mail.ErrNotConfigured), mail.ErrNotConfigured)
			return
		}

		if err := co.Mail.SendExport(user.Email, user.Username, filename, content); err != nil {
			httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("%s has been sent to %s", filename, user.Email)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, content)
}

// @Summary		Import expenses
// @Description	Imports expenses from an uploaded CSV or Excel file. Rows without a valid date or a positive amount are skipped and counted.
// @Tags			Import & Export
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	ImportResponse
// @Failure		400		{object}	httputil.HTTPError
// @Param			file	formData	file	true	"The file to import"
// @Router			/v1/import [post]
func (co Controller) Import(c *gin.Context) {
	formFile, err := c.FormFile("file")
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, errNoFilePost)
		return
	}

	file, err := formFile.Open()
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, errNoFilePost)
		return
	}
	defer file.Close()

	var rows []spreadsheet.Row
	var skipped int

	switch {
	case strings.HasSuffix(formFile.Filename, ".csv"):
		rows, skipped, err = spreadsheet.ReadCSV(file)
	case strings.HasSuffix(formFile.Filename, ".xlsx"):
		rows, skipped, err = spreadsheet.ReadXLSX(file)
	default:
		httputil.NewError(c, http.StatusBadRequest, errWrongFileSuffix)
		return
	}

	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	user := currentUser(c)

	var imported int
	for _, row := range rows {
		expense := row.Expense(user)
		if err := models.DB.Create(&expense).Error; err != nil {
			skipped++
			continue
		}
		imported++
	}

	var response ImportResponse
	response.Data.Imported = imported
	response.Data.Skipped = skipped

	c.JSON(http.StatusCreated, response)
}
