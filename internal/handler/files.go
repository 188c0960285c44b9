// This file defines the static landing page and the order workbook
// download.  The workbook is served verbatim, so the office can open the
// live order book in a spreadsheet.
package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/morozlab/holiday-visit-booking/internal/repository"
)

// FilesHandler serves the landing page and the order workbook.
type FilesHandler struct {
	Orders *repository.OrderRepo
	WebDir string
}

// Index serves the booking landing page.
func (h *FilesHandler) Index(c echo.Context) error {
	return c.File(filepath.Join(h.WebDir, "index.html"))
}

// DownloadOrders streams the order workbook to an authenticated operator.
// The file is sent as an attachment with a stable name so repeated
// downloads overwrite cleanly on the operator's machine.
func (h *FilesHandler) DownloadOrders(c echo.Context) error {
	path := h.Orders.FilePath()
	if _, err := os.Stat(path); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no orders yet"})
	}
	return c.Attachment(path, "orders.xlsx")
}
