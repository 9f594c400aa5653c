package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/tax"
)

// ReferenceHandler serves static reference data and the pure calculators.
type ReferenceHandler struct {
	service ReferenceServiceInterface
}

func NewReferenceHandler(service ReferenceServiceInterface) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

// Reference godoc
// @Summary Get reference data
// @Description Banks, default categories and payment methods, financial terms and festivals, tax regimes and risk profiles
// @Tags reference
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Reference
// @Failure 401 {object} ErrorResponse
// @Router /reference [get]
func (h *ReferenceHandler) Reference(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Reference())
}

// FinancialYear godoc
// @Summary Resolve a financial year
// @Description Resolve a date, or today, to its April-March financial year
// @Tags reference
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date (YYYY-MM-DD); defaults to today"
// @Success 200 {object} service.FinancialYearInfo
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /financial-year [get]
func (h *ReferenceHandler) FinancialYear(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.service.FinancialYear(date))
}

type taxRequest struct {
	AnnualIncome *decimal.Decimal `json:"annualIncome"`
	Regime       string           `json:"regime"`
}

// CalculateTax godoc
// @Summary Calculate income tax
// @Description Compute income tax for an annual income under the new or old regime
// @Tags tax
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body taxRequest true "Annual income and regime"
// @Success 200 {object} tax.Result
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /tax/calculate [post]
func (h *ReferenceHandler) CalculateTax(w http.ResponseWriter, r *http.Request) {
	var req taxRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	if req.AnnualIncome == nil {
		respondErr(w, r, apperror.ValidationError("annualIncome", "Annual income is required"))
		return
	}

	result, err := tax.Calculate(*req.AnnualIncome, tax.ParseRegime(req.Regime))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type taxSlabsResponse struct {
	Regime tax.Regime `json:"regime"`
	Slabs  []tax.Slab `json:"slabs"`
}

// TaxSlabs godoc
// @Summary List tax slabs
// @Description List the slab table of a regime
// @Tags tax
// @Produce json
// @Security BearerAuth
// @Param regime query string false "Tax regime (new or old)"
// @Success 200 {object} taxSlabsResponse
// @Failure 401 {object} ErrorResponse
// @Router /tax/slabs [get]
func (h *ReferenceHandler) TaxSlabs(w http.ResponseWriter, r *http.Request) {
	regime := tax.ParseRegime(r.URL.Query().Get("regime"))
	respondJSON(w, http.StatusOK, taxSlabsResponse{Regime: regime, Slabs: tax.Slabs(regime)})
}
