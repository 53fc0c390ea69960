/*
handlers.go - HTTP API handlers for the labor-law calculators

PURPOSE:
  Exposes the calendar, payroll, end-of-service and work-hours calculators
  via REST, plus the company holiday and weekend settings that feed the
  working-day figures.

ENDPOINTS:
  Calendar:
    POST   /api/calendar/diff              Date difference with breakdown
    POST   /api/calendar/working-days      Working/weekend days in a range
    POST   /api/calendar/add-working-days  Move a date by N working days
    GET    /api/calendar/month             Day-by-day month view
    GET    /api/calendar/weekend           Company weekend scheme
    PUT    /api/calendar/weekend           Save company weekend scheme
    GET    /api/calendar/workbook          Yearly working-days workbook (xlsx)

  Payroll:
    GET    /api/payroll/profiles           GOSI rate profiles
    POST   /api/payroll                    Gross->net or net->gross
    POST   /api/payroll/payslip            Payslip (pdf)

  End of service:
    POST   /api/eos                        Article 84/85 award
    POST   /api/eos/statement              Settlement statement (pdf)

  Work hours:
    POST   /api/workhours/end-time         Shift end time
    GET    /api/workhours/now              Current local HH:mm

  Holidays:
    GET    /api/holidays                   Company + global holidays
    POST   /api/holidays                   Create or update a holiday
    POST   /api/holidays/defaults          Add Saudi national days
    DELETE /api/holidays/{id}              Delete a holiday

REQUEST FLOW:
  1. Read body
  2. factory.Parse* (validation)
  3. Resolve company weekend/holidays from the store when needed
  4. Call the calculator
  5. Serialize response (money rounded in dto.go)

ERROR HANDLING:
  - 400: factory.ErrInvalidInput (details list the failing fields)
  - 404: store.ErrHolidayNotFound
  - 500: anything else, logged with the request context

SEE ALSO:
  - dto.go: Response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/warp/labor-engine/calendar"
	"github.com/warp/labor-engine/eos"
	"github.com/warp/labor-engine/factory"
	"github.com/warp/labor-engine/payroll"
	"github.com/warp/labor-engine/report"
	"github.com/warp/labor-engine/store"
	"github.com/warp/labor-engine/workhours"
)

const maxBodyBytes = 1 << 20

// maxWindowDoublings bounds how often AddWorkingDays grows its holiday
// window (256 times the initial span).
const maxWindowDoublings = 8

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   store.Store
	Factory *factory.Factory

	now func() time.Time
}

// NewHandler creates a new handler with the given store and factory.
func NewHandler(st store.Store, f *factory.Factory) *Handler {
	return &Handler{
		Store:   st,
		Factory: f,
		now:     time.Now,
	}
}

// weekendFor returns the explicit weekend if given, else the company's
// saved scheme, else the configured default.
func (h *Handler) weekendFor(ctx context.Context, explicit *calendar.WeekendConfig, companyID string) (calendar.WeekendConfig, error) {
	if explicit != nil {
		return *explicit, nil
	}
	return store.WeekendFor(ctx, h.Store, companyID, h.Factory.Settings().Weekend)
}

// holidaysIn merges request holidays with the stored ones inside p.
func (h *Handler) holidaysIn(ctx context.Context, companyID string, p calendar.Period, extra []time.Time) ([]time.Time, error) {
	stored, err := store.HolidaysIn(ctx, h.Store, companyID, p)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(stored)+len(extra))
	out = append(out, stored...)
	for _, d := range extra {
		if p.Contains(d) {
			out = append(out, calendar.DateOf(d))
		}
	}
	return out, nil
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// DateDiff computes the difference between two dates or instants.
// POST /api/calendar/diff
func (h *Handler) DateDiff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	rng, err := h.Factory.ParseRange(body)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	cfg, err := h.weekendFor(ctx, rng.Weekend, rng.CompanyID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	d := calendar.DiffBetween(rng.Start, rng.End, calendar.WithWeekend(cfg))
	writeJSON(w, http.StatusOK, toDiffResponse(rng, cfg, d))
}

// WorkingDays counts working and weekend days in an inclusive range.
// POST /api/calendar/working-days
func (h *Handler) WorkingDays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	rng, err := h.Factory.ParseRange(body)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	cfg, err := h.weekendFor(ctx, rng.Weekend, rng.CompanyID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	p := rng.Period()
	holidays, err := h.holidaysIn(ctx, rng.CompanyID, p, rng.Holidays)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	res := calendar.CalculateWorkingDays(p.Start, p.End, cfg, holidays...)
	dates := make([]string, 0, len(holidays))
	seen := make(map[string]bool, len(holidays))
	for _, d := range holidays {
		s := d.Format(dateLayout)
		if !seen[s] {
			seen[s] = true
			dates = append(dates, s)
		}
	}

	writeJSON(w, http.StatusOK, WorkingDaysResponse{
		Start:       p.Start.Format(dateLayout),
		End:         p.End.Format(dateLayout),
		Days:        p.Len(),
		WorkingDays: res.WorkingDays,
		WeekendDays: res.WeekendDays,
		Holidays:    dates,
		Weekend:     toWeekendDTO(rng.CompanyID, cfg),
	})
}

// AddWorkingDays moves a date forward or backward by N working days.
// POST /api/calendar/add-working-days
func (h *Handler) AddWorkingDays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	req, err := h.Factory.ParseAddWorkingDays(body)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	cfg, err := h.weekendFor(ctx, req.Weekend, req.CompanyID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	// Holidays are loaded for a window around the start. The walk only visits
	// days between the start and the result, so a result inside the window
	// saw every holiday it needed; otherwise the window doubles and the walk
	// is repeated.
	n := req.Days
	if n < 0 {
		n = -n
	}
	span := (n+1)*7 + 31
	var result time.Time
	for attempt := 0; ; attempt++ {
		window := calendar.NewPeriod(req.Start.AddDate(0, 0, -span), req.Start.AddDate(0, 0, span))
		holidays, err := h.holidaysIn(ctx, req.CompanyID, window, req.Holidays)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		result = calendar.AddWorkingDays(req.Start, req.Days, cfg, holidays...)
		if window.Contains(result) {
			break
		}
		if attempt == maxWindowDoublings {
			writeError(w, http.StatusUnprocessableEntity, "No working day found within range", nil)
			return
		}
		span *= 2
	}
	writeJSON(w, http.StatusOK, AddWorkingDaysResponse{
		Start:   req.Start.Format(dateLayout),
		Days:    req.Days,
		Result:  result.Format(dateLayout),
		Weekday: result.Weekday().String(),
		Weekend: toWeekendDTO(req.CompanyID, cfg),
	})
}

// Month returns a day-by-day view of one month.
// GET /api/calendar/month?year=2025&month=6&company_id=acme
func (h *Handler) Month(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	companyID := q.Get("company_id")

	now := h.now()
	year, err := intParam(q.Get("year"), now.Year(), 1, 9999)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	month, err := intParam(q.Get("month"), int(now.Month()), 1, 12)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	cfg, err := h.weekendFor(ctx, nil, companyID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	p := calendar.MonthPeriod(year, time.Month(month))
	stored, err := h.Store.ListHolidays(ctx, companyID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	names := make(map[string]string)
	for _, hol := range stored {
		if d, ok := hol.OccursIn(year); ok && p.Contains(d) {
			names[d.Format(dateLayout)] = hol.Name
		}
	}

	resp := MonthResponse{
		Year:        year,
		Month:       month,
		DaysInMonth: p.Len(),
		Days:        make([]DayDTO, 0, p.Len()),
		Weekend:     toWeekendDTO(companyID, cfg),
	}
	for _, d := range p.Days() {
		key := d.Format(dateLayout)
		day := DayDTO{
			Date:    key,
			Weekday: d.Weekday().String(),
			Weekend: calendar.IsWeekend(d, cfg),
			Holiday: names[key],
		}
		day.Working = !day.Weekend && day.Holiday == ""
		if day.Working {
			resp.WorkingDays++
		}
		if day.Weekend {
			resp.WeekendDays++
		}
		resp.Days = append(resp.Days, day)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetWeekend returns a company's weekend scheme (or the default).
// GET /api/calendar/weekend?company_id=acme
func (h *Handler) GetWeekend(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	cfg, err := h.weekendFor(r.Context(), nil, companyID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWeekendDTO(companyID, cfg))
}

// PutWeekend saves a company's weekend scheme.
// PUT /api/calendar/weekend
func (h *Handler) PutWeekend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	companyID, cfg, err := h.Factory.ParseCalendar(body)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := h.Store.SaveCalendar(ctx, companyID, cfg); err != nil {
		h.handleError(w, r, err)
		return
	}

	log.WithContext(ctx).WithFields(log.Fields{
		"company_id": companyID,
		"scheme":     cfg.Scheme,
	}).Info("weekend scheme saved")
	writeJSON(w, http.StatusOK, toWeekendDTO(companyID, cfg))
}

// Workbook downloads the yearly working-days workbook.
// GET /api/calendar/workbook?year=2025&company_id=acme
func (h *Handler) Workbook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	companyID := q.Get("company_id")

	year, err := intParam(q.Get("year"), h.now().Year(), 1, 9999)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	cfg, err := h.weekendFor(ctx, nil, companyID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	holidays, err := h.Store.ListHolidays(ctx, companyID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteWorkingDaysWorkbook(&buf, year, cfg, holidays); err != nil {
		h.handleError(w, r, fmt.Errorf("build workbook: %w", err))
		return
	}
	writeFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		fmt.Sprintf("working-days-%d.xlsx", year), buf.Bytes())
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// ListProfiles returns the known GOSI rate profiles.
// GET /api/payroll/profiles
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles := payroll.Profiles()
	dtos := make([]ProfileDTO, 0, len(profiles))
	for _, key := range profiles {
		rates := payroll.GetGosiRates(key, nil, nil)
		dtos = append(dtos, ProfileDTO{Key: string(key), EmployeePct: rates.EmployeePct, EmployerPct: rates.EmployerPct})
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": dtos, "cap": payroll.GosiCap})
}

// Payroll runs the payroll calculator.
// POST /api/payroll
func (h *Handler) Payroll(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := h.Factory.ParsePayroll(body)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPayrollResponse(payroll.CalcPayroll(in)))
}

// Payslip renders the payroll result as a PDF.
// POST /api/payroll/payslip?company=Acme&employee=Sara
func (h *Handler) Payslip(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := h.Factory.ParsePayroll(body)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WritePayslip(&buf, h.documentHeader(r), payroll.CalcPayroll(in)); err != nil {
		h.handleError(w, r, fmt.Errorf("render payslip: %w", err))
		return
	}
	writeFile(w, "application/pdf", "payslip.pdf", buf.Bytes())
}

// =============================================================================
// END OF SERVICE HANDLERS
// =============================================================================

// EOS runs the end-of-service calculator.
// POST /api/eos
func (h *Handler) EOS(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := h.Factory.ParseEOS(body)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEOSResponse(in, eos.Calculate(in)))
}

// EOSStatement renders the settlement as a PDF.
// POST /api/eos/statement?company=Acme&employee=Sara
func (h *Handler) EOSStatement(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := h.Factory.ParseEOS(body)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteEOSStatement(&buf, h.documentHeader(r), in, eos.Calculate(in)); err != nil {
		h.handleError(w, r, fmt.Errorf("render eos statement: %w", err))
		return
	}
	writeFile(w, "application/pdf", "eos-statement.pdf", buf.Bytes())
}

// =============================================================================
// WORK HOURS HANDLERS
// =============================================================================

// ShiftEndTime computes when a shift ends.
// POST /api/workhours/end-time
func (h *Handler) ShiftEndTime(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := h.Factory.ParseShift(body)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftResponse(in, workhours.Calculate(in)))
}

// Now returns the server's local time as HH:mm, the default shift start.
// GET /api/workhours/now
func (h *Handler) Now(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"time": workhours.NowHHmm()})
}

// =============================================================================
// HOLIDAY ENDPOINTS
// =============================================================================

// ListHolidays returns company and global holidays.
// GET /api/holidays?company_id=acme
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context(), r.URL.Query().Get("company_id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, toHolidayDTO(hol))
	}
	writeJSON(w, http.StatusOK, map[string]any{"holidays": dtos})
}

// CreateHoliday creates or updates a holiday.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	holiday, err := h.Factory.ParseHoliday(body)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := h.Store.SaveHoliday(ctx, holiday); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHolidayDTO(holiday))
}

// DeleteHoliday deletes a holiday.
// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// AddDefaultHolidays adds the fixed-date Saudi national holidays. Holidays
// already present (same name and month/day) are skipped.
// POST /api/holidays/defaults
func (h *Handler) AddDefaultHolidays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var req struct {
		CompanyID string `json:"company_id"`
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	existing, err := h.Store.ListHolidays(ctx, req.CompanyID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	have := make(map[string]bool, len(existing))
	for _, e := range existing {
		have[e.Name+e.Date.Format("01-02")] = true
	}

	created := make([]HolidayDTO, 0, 2)
	for _, hol := range store.SaudiNationalHolidays(req.CompanyID) {
		if have[hol.Name+hol.Date.Format("01-02")] {
			continue
		}
		hol.ID = defaultHolidayID(req.CompanyID, hol.Name)
		if err := h.Store.SaveHoliday(ctx, hol); err != nil {
			h.handleError(w, r, err)
			return
		}
		created = append(created, toHolidayDTO(hol))
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":   "created",
		"count":    len(created),
		"holidays": created,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

// defaultHolidayID is stable so re-seeding a company updates in place.
func defaultHolidayID(companyID, name string) string {
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	if companyID == "" {
		return "holiday-" + slug
	}
	return "holiday-" + companyID + "-" + slug
}

func (h *Handler) documentHeader(r *http.Request) report.Header {
	q := r.URL.Query()
	return report.Header{
		Company:  q.Get("company"),
		Employee: q.Get("employee"),
		Issued:   h.now(),
	}
}

// handleError maps domain errors to HTTP statuses.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *factory.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid input",
			Code:    "invalid_input",
			Details: verr.Issues,
		})
	case errors.Is(err, factory.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
	case errors.Is(err, store.ErrHolidayNotFound):
		writeError(w, http.StatusNotFound, "Holiday not found", nil)
	default:
		log.WithContext(r.Context()).WithError(err).WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		writeError(w, http.StatusInternalServerError, "Internal error", nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return nil, false
	}
	return body, true
}

func intParam(s string, def, min, max int) (int, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%d out of range [%d, %d]", v, min, max)
	}
	return v, nil
}

func writeFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
