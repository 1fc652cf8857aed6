package ui

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"salesnorm/adapters/excel"
	"salesnorm/adapters/export"
	"salesnorm/domain/table"
	"salesnorm/internal/errors"
	"salesnorm/internal/profiling"
)

// previewLimit bounds how many rows the normalize response carries back to
// the page.
const previewLimit = 200

type uploadResponse struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Sheets   []string `json:"sheets"`
}

type normalizeResponse struct {
	ID       string                    `json:"id"`
	Sheet    string                    `json:"sheet"`
	RowCount int                       `json:"row_count"`
	Columns  []string                  `json:"columns"`
	Preview  [][]string                `json:"preview"`
	Profile  []profiling.ColumnProfile `json:"profile"`
}

// handleIndex renders the upload page
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "index.html", nil)
}

// handleUpload accepts a multipart workbook upload, stores it under a fresh
// token, and answers with the token and the workbook's sheet names.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.Upload.MaxBytes)
	if err := r.ParseMultipartForm(a.config.Upload.MaxBytes); err != nil {
		a.writeError(w, errors.InvalidInput("upload too large or malformed"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeError(w, errors.InvalidInput("missing file field"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xlsm" {
		a.writeError(w, errors.InvalidInput("unsupported workbook format, expected .xlsx or .xlsm"))
		return
	}

	id := uuid.NewString()
	path := filepath.Join(a.config.Upload.Dir, "salesnorm-"+id+ext)
	dst, err := os.Create(path)
	if err != nil {
		a.writeError(w, errors.Wrap(err, "failed to store upload"))
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		a.writeError(w, errors.Wrap(err, "failed to store upload"))
		return
	}
	dst.Close()

	reader := excel.NewWorkbookReader(path)
	sheets, err := reader.SheetNames()
	if err != nil {
		os.Remove(path)
		a.writeError(w, err)
		return
	}

	a.store.Put(&Upload{
		ID:           id,
		Path:         path,
		OriginalName: header.Filename,
		Sheets:       sheets,
		CreatedAt:    time.Now(),
	})
	log.Printf("[Upload] Stored workbook %s as %s (%d sheets)", header.Filename, id, len(sheets))

	a.writeJSON(w, http.StatusOK, uploadResponse{ID: id, Filename: header.Filename, Sheets: sheets})
}

// handleSheets returns the sheet list for an uploaded workbook.
func (a *App) handleSheets(w http.ResponseWriter, r *http.Request) {
	upload, err := a.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"id": upload.ID, "sheets": upload.Sheets})
}

// handleNormalize runs the pipeline over the chosen sheet and answers with
// a bounded preview plus the numeric column profile. The canonical table is
// cached on the upload for the export endpoints.
func (a *App) handleNormalize(w http.ResponseWriter, r *http.Request) {
	upload, err := a.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	sheet := r.FormValue("sheet")
	if sheet == "" {
		a.writeError(w, errors.InvalidInput("missing sheet parameter"))
		return
	}
	if !containsSheet(upload.Sheets, sheet) {
		a.writeError(w, errors.NotFound("sheet"))
		return
	}

	raw, err := excel.NewWorkbookReader(upload.Path).ReadRaw(sheet)
	if err != nil {
		a.writeError(w, err)
		return
	}

	normalized, err := a.normalizer.Normalize(raw)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if err := a.store.SetResult(upload.ID, sheet, normalized); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, normalizeResponse{
		ID:       upload.ID,
		Sheet:    sheet,
		RowCount: len(normalized.Rows),
		Columns:  normalized.Columns,
		Preview:  renderPreview(normalized.Head(previewLimit)),
		Profile:  a.profiler.Profile(normalized),
	})
}

// handleExport streams the cached canonical table as CSV or xlsx.
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	upload, err := a.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	if upload.Result == nil {
		a.writeError(w, errors.InvalidInput("no normalized table yet, call normalize first"))
		return
	}

	format := chi.URLParam(r, "format")
	filename, err := export.FileName(format)
	if err != nil {
		a.writeError(w, err)
		return
	}

	var payload []byte
	var contentType string
	switch format {
	case "csv":
		payload, err = a.exporter.CSV(upload.Result)
		contentType = "text/csv; charset=utf-8"
	case "xlsx":
		payload, err = a.exporter.Workbook(upload.Result)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func (a *App) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

// writeError maps AppError codes onto HTTP statuses. Structural and read
// failures are the caller's data being wrong, not ours, hence 422.
func (a *App) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeWorkbookOpenFailed, errors.CodeSheetReadFailed, errors.CodeStructureInvalid:
		status = http.StatusUnprocessableEntity
	}

	log.Printf("[API] %s: %v", code, err)
	a.writeJSON(w, status, map[string]string{"error": err.Error(), "code": code})
}

func renderPreview(rows []table.Row) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.String()
		}
		out[i] = cells
	}
	return out
}

func containsSheet(sheets []string, name string) bool {
	for _, s := range sheets {
		if s == name {
			return true
		}
	}
	return false
}
