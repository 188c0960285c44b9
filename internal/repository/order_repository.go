package repository

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/morozlab/holiday-visit-booking/internal/model"
)

// orderSheet is the worksheet holding confirmed orders.
const orderSheet = "Sheet1"

// orderHeader is the fixed column schema of the order workbook.  The
// column order is part of the store's contract: /download serves the file
// verbatim and external spreadsheets rely on it.
var orderHeader = []interface{}{
	"Order ID", "Ordered At", "Invitee", "City", "Visit Date", "Visit Time",
	"Program", "Duration (min)", "Price", "Address", "Children", "Child Name",
	"Phone", "Comments",
}

// OrderRepo is the durable store of confirmed orders, backed by a single
// .xlsx workbook.  The store is append-only with full-table reads: every
// mutation re-reads the workbook, appends one row and writes the whole
// file back.  A mutex serialises each read-modify-write cycle so
// concurrent writers cannot lose updates.
type OrderRepo struct {
	mu   sync.Mutex
	path string
}

// NewOrderRepo opens the order store at path, creating an empty workbook
// with the header row when the file does not exist yet.
func NewOrderRepo(path string) (*OrderRepo, error) {
	r := &OrderRepo{path: path}
	if _, err := excelize.OpenFile(path); err == nil {
		return r, nil
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetRow(orderSheet, "A1", &orderHeader); err != nil {
		return nil, fmt.Errorf("write order header: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("create order store: %w", err)
	}
	return r, nil
}

// FilePath returns the location of the workbook, used by the download
// endpoint to serve the store verbatim.
func (r *OrderRepo) FilePath() string { return r.path }

// Append adds one confirmed order as a new row at the bottom of the
// workbook.  Orders are never mutated or deleted afterwards.
func (r *OrderRepo) Append(o model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return fmt.Errorf("open order store: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(orderSheet)
	if err != nil {
		return fmt.Errorf("read order store: %w", err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	row := []interface{}{
		o.OrderID, o.OrderedAt, o.Invitee, o.City, o.VisitDate, o.VisitTime,
		string(o.Tier), o.DurationMin, o.Price, o.Address, o.ChildCount,
		o.ChildName, o.Phone, o.Comments,
	}
	if err := f.SetSheetRow(orderSheet, cell, &row); err != nil {
		return fmt.Errorf("append order row: %w", err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("save order store: %w", err)
	}
	return nil
}

// LoadAll reads every confirmed order from the workbook.  Malformed
// numeric cells degrade to zero rather than failing the whole read; the
// availability engine only needs the city/date/time columns to be intact.
func (r *OrderRepo) LoadAll() ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("open order store: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(orderSheet)
	if err != nil {
		return nil, fmt.Errorf("read order store: %w", err)
	}
	orders := make([]model.Order, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) == 0 || cell(row, 0) == "" {
			continue
		}
		orders = append(orders, model.Order{
			OrderID:     cell(row, 0),
			OrderedAt:   cell(row, 1),
			Invitee:     cell(row, 2),
			City:        cell(row, 3),
			VisitDate:   cell(row, 4),
			VisitTime:   cell(row, 5),
			Tier:        model.Tier(cell(row, 6)),
			DurationMin: cellInt(row, 7),
			Price:       cellInt(row, 8),
			Address:     cell(row, 9),
			ChildCount:  cellInt(row, 10),
			ChildName:   cell(row, 11),
			Phone:       cell(row, 12),
			Comments:    cell(row, 13),
		})
	}
	return orders, nil
}

// cell returns the i-th cell of a row, tolerating rows that excelize has
// trimmed of trailing empty cells.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func cellInt(row []string, i int) int {
	n, _ := strconv.Atoi(cell(row, i))
	return n
}
