// Package chi is the HTTP transport: a go-chi router whose handlers
// decode JSON, dispatch messages on the bus and map domain errors to
// status codes.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/opencatalogue/catalogd/internal/bus"
	"github.com/opencatalogue/catalogd/internal/cache"
	"github.com/opencatalogue/catalogd/internal/domain"
	domacct "github.com/opencatalogue/catalogd/internal/domain/account"
	domcat "github.com/opencatalogue/catalogd/internal/domain/catalog"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	domfmt "github.com/opencatalogue/catalogd/internal/domain/dataformat"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
	"github.com/opencatalogue/catalogd/internal/domain/dataset/spec"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
	"github.com/opencatalogue/catalogd/internal/domain/page"
	domtag "github.com/opencatalogue/catalogd/internal/domain/tag"
	"github.com/opencatalogue/catalogd/internal/export"
	"github.com/opencatalogue/catalogd/internal/metrics"
	authuc "github.com/opencatalogue/catalogd/internal/usecase/auth"
	cataloguc "github.com/opencatalogue/catalogd/internal/usecase/catalog"
	dataformatuc "github.com/opencatalogue/catalogd/internal/usecase/dataformat"
	datasetuc "github.com/opencatalogue/catalogd/internal/usecase/dataset"
	extrafielduc "github.com/opencatalogue/catalogd/internal/usecase/extrafield"
	organizationuc "github.com/opencatalogue/catalogd/internal/usecase/organization"
	taguc "github.com/opencatalogue/catalogd/internal/usecase/tag"
)

// Error response codes.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeAlreadyExists    = "already_exists"
	codePermissionDenied = "permission_denied"
	codeLoginFailed      = "login_failed"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Pagination bounds page-size handling for listing endpoints.
type Pagination struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Server is the HTTP API server.
type Server struct {
	bus           *bus.Bus
	exportCache   *cache.Export
	pagination    Pagination
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server dispatching through the bus.
func NewServer(b *bus.Bus, exportCache *cache.Export, pagination Pagination, logger *zap.Logger) *Server {
	s := &Server{
		bus:         b,
		exportCache: exportCache,
		pagination:  pagination,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrPermissionDenied, http.StatusForbidden, codePermissionDenied),
		sentinelHandler(domain.ErrLoginFailed, http.StatusUnauthorized, codeLoginFailed),
	}
	return s
}

// RegisterRoutes mounts every endpoint on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.login)
		r.Get("/check", s.checkAccount)
		r.Post("/users", s.createPasswordUser)
		r.Post("/datapass-users", s.createDataPassUser)
		r.Put("/users/password", s.changePassword)
		r.Delete("/users/{id}", s.deletePasswordUser)
	})

	r.Route("/organizations", func(r chi.Router) {
		r.Post("/", s.createOrganization)
		r.Get("/", s.listOrganizations)
		r.Get("/{siret}", s.getOrganization)
	})

	r.Route("/catalogs", func(r chi.Router) {
		r.Post("/", s.createCatalog)
		r.Get("/", s.listCatalogs)
		r.Get("/{siret}", s.getCatalog)
		r.Get("/{siret}/extra-fields", s.listExtraFields)
		r.Get("/{siret}/export.csv", s.exportCatalog)
	})

	r.Route("/tags", func(r chi.Router) {
		r.Post("/", s.createTag)
		r.Get("/", s.listTags)
	})

	r.Route("/dataformats", func(r chi.Router) {
		r.Post("/", s.createDataFormat)
		r.Get("/", s.listDataFormats)
	})

	r.Route("/datasets", func(r chi.Router) {
		r.Post("/", s.createDataset)
		r.Get("/", s.listDatasets)
		r.Get("/filters", s.getDatasetFilters)
		r.Get("/{id}", s.getDataset)
		r.Put("/{id}", s.updateDataset)
		r.Delete("/{id}", s.deleteDataset)
	})
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Auth ---

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	acct, err := bus.Execute[domacct.Account](r.Context(), s.bus, authuc.LoginPasswordUser{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authenticatedAccountToResponse(acct))
}

func (s *Server) checkAccount(w http.ResponseWriter, r *http.Request) {
	acct := AccountFromContext(r.Context())
	if acct == nil {
		writeError(w, http.StatusUnauthorized, codeLoginFailed, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, accountToResponse(*acct))
}

func (s *Server) createPasswordUser(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	var req struct {
		OrganizationSiret string `json:"organization_siret"`
		Email             string `json:"email"`
		Password          string `json:"password"`
		Role              string `json:"role"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	acct, err := bus.Execute[domacct.Account](r.Context(), s.bus, authuc.CreatePasswordUser{
		OrganizationSiret: req.OrganizationSiret,
		Email:             req.Email,
		Password:          req.Password,
		Role:              domacct.Role(req.Role),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authenticatedAccountToResponse(acct))
}

func (s *Server) createDataPassUser(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	var req struct {
		OrganizationSiret string `json:"organization_siret"`
		Email             string `json:"email"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	acct, err := bus.Execute[domacct.Account](r.Context(), s.bus, authuc.CreateDataPassUser{
		OrganizationSiret: req.OrganizationSiret,
		Email:             req.Email,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authenticatedAccountToResponse(acct))
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"new_password"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	_, err := s.bus.Execute(r.Context(), authuc.ChangePassword{
		Email:       req.Email,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deletePasswordUser(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if _, err := s.bus.Execute(r.Context(), authuc.DeletePasswordUser{AccountID: id}); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Organizations ---

func (s *Server) createOrganization(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	var req struct {
		Siret   string `json:"siret"`
		Name    string `json:"name"`
		LogoURL string `json:"logo_url"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	org, err := bus.Execute[domorg.Organization](r.Context(), s.bus, organizationuc.CreateOrganization{
		Siret:   req.Siret,
		Name:    req.Name,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, organizationToResponse(org))
}

func (s *Server) listOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := bus.Execute[[]domorg.Organization](r.Context(), s.bus, organizationuc.GetAllOrganizations{})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]organizationResponse, len(orgs))
	for i, o := range orgs {
		items[i] = organizationToResponse(o)
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := bus.Execute[domorg.Organization](r.Context(), s.bus, organizationuc.GetOrganizationBySiret{
		Siret: chi.URLParam(r, "siret"),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, organizationToResponse(org))
}

// --- Catalogs ---

func (s *Server) createCatalog(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	var req struct {
		OrganizationSiret string                        `json:"organization_siret"`
		ExtraFields       []extraFieldDefinitionRequest `json:"extra_fields"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	c, err := bus.Execute[domcat.Catalog](r.Context(), s.bus, cataloguc.CreateCatalog{
		Siret:       req.OrganizationSiret,
		ExtraFields: definitionsFromRequest(req.ExtraFields),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, catalogToResponse(c))
}

func (s *Server) listCatalogs(w http.ResponseWriter, r *http.Request) {
	catalogs, err := bus.Execute[[]domcat.Catalog](r.Context(), s.bus, cataloguc.GetAllCatalogs{})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]catalogResponse, len(catalogs))
	for i, c := range catalogs {
		items[i] = catalogToResponse(c)
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := bus.Execute[domcat.Catalog](r.Context(), s.bus, cataloguc.GetCatalogBySiret{
		Siret: chi.URLParam(r, "siret"),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogToResponse(c))
}

func (s *Server) listExtraFields(w http.ResponseWriter, r *http.Request) {
	fields, err := bus.Execute[[]extrafield.Field](r.Context(), s.bus, extrafielduc.GetAllExtraFields{
		Siret: chi.URLParam(r, "siret"),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, extraFieldsToResponse(fields))
}

// exportCatalog serves the CSV export: cached content when fresh,
// otherwise rendered, stored and served.
func (s *Server) exportCatalog(w http.ResponseWriter, r *http.Request) {
	rawSiret := chi.URLParam(r, "siret")
	siret, err := domorg.ParseSiret(rawSiret)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	key := siret.Normalized()

	if content, ok := s.exportCache.Get(key); ok {
		metrics.RecordExportCache("hit")
		s.writeCSV(w, key, content, s.exportCache.HitHeaders())
		return
	}

	payload, err := bus.Execute[cataloguc.Export](r.Context(), s.bus, cataloguc.GetCatalogExport{
		Siret: rawSiret,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	content, err := export.ToCSV(payload.Catalog, payload.Datasets)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	s.exportCache.Set(key, content)
	metrics.RecordExportCache("miss")
	s.writeCSV(w, key, content, s.exportCache.MissHeaders())
}

func (s *Server) writeCSV(w http.ResponseWriter, siret, content string, headers map[string]string) {
	for k, v := range headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename(siret)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}

// --- Tags ---

func (s *Server) createTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	t, err := bus.Execute[domtag.Tag](r.Context(), s.bus, taguc.CreateTag{Name: req.Name})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tagToResponse(t))
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := bus.Execute[[]domtag.Tag](r.Context(), s.bus, taguc.GetAllTags{})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]tagResponse, len(tags))
	for i, t := range tags {
		items[i] = tagToResponse(t)
	}
	writeJSON(w, http.StatusOK, items)
}

// --- Data formats ---

func (s *Server) createDataFormat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	f, err := bus.Execute[domfmt.DataFormat](r.Context(), s.bus, dataformatuc.CreateDataFormat{Name: req.Name})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dataFormatToResponse(f))
}

func (s *Server) listDataFormats(w http.ResponseWriter, r *http.Request) {
	formats, err := bus.Execute[[]domfmt.DataFormat](r.Context(), s.bus, dataformatuc.GetAllDataFormats{})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]dataFormatResponse, len(formats))
	for i, f := range formats {
		items[i] = dataFormatToResponse(f)
	}
	writeJSON(w, http.StatusOK, items)
}

// --- Datasets ---

func (s *Server) createDataset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrganizationSiret string     `json:"organization_siret"`
		ID                *uuid.UUID `json:"id"`
		datasetPayloadRequest
	}
	if !s.decode(w, r, &req) {
		return
	}

	d, err := bus.Execute[domds.Dataset](r.Context(), s.bus, datasetuc.CreateDataset{
		OrganizationSiret: req.OrganizationSiret,
		Account:           AccountFromContext(r.Context()),
		ID:                req.ID,
		Payload:           payloadFromRequest(req.datasetPayloadRequest),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, datasetToResponse(d))
}

func (s *Server) updateDataset(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req datasetPayloadRequest
	if !s.decode(w, r, &req) {
		return
	}

	d, err := bus.Execute[domds.Dataset](r.Context(), s.bus, datasetuc.UpdateDataset{
		ID:      id,
		Account: AccountFromContext(r.Context()),
		Payload: payloadFromRequest(req),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, datasetToResponse(d))
}

func (s *Server) deleteDataset(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if _, err := s.bus.Execute(r.Context(), datasetuc.DeleteDataset{ID: id}); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getDataset(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	d, err := bus.Execute[domds.Dataset](r.Context(), s.bus, datasetuc.GetDatasetByID{
		ID:      id,
		Account: AccountFromContext(r.Context()),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, datasetToResponse(d))
}

func (s *Server) listDatasets(w http.ResponseWriter, r *http.Request) {
	q, err := s.listQueryFromParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	q.Account = AccountFromContext(r.Context())

	paginated, err := bus.Execute[page.Paginated[datasetuc.Hit]](r.Context(), s.bus, q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]datasetHitResponse, len(paginated.Items))
	for i, h := range paginated.Items {
		items[i] = hitToResponse(h)
	}
	writeJSON(w, http.StatusOK, paginatedResponse[datasetHitResponse]{
		Items:      items,
		TotalItems: paginated.TotalItems,
		TotalPages: paginated.TotalPages,
	})
}

func (s *Server) getDatasetFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := bus.Execute[datasetuc.Filters](r.Context(), s.bus, datasetuc.GetDatasetFilters{})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, filtersToResponse(filters))
}

// listQueryFromParams translates the listing query string into a bus
// query. Unknown values surface as validation errors, never silently
// match everything.
func (s *Server) listQueryFromParams(r *http.Request) (datasetuc.GetAllDatasets, error) {
	params := r.URL.Query()

	number := 1
	if raw := params.Get("page_number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return datasetuc.GetAllDatasets{}, domain.Invalid("page_number", "must be an integer")
		}
		number = n
	}
	size := s.pagination.DefaultPageSize
	if raw := params.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return datasetuc.GetAllDatasets{}, domain.Invalid("page_size", "must be an integer")
		}
		size = n
	}
	if size > s.pagination.MaxPageSize {
		size = s.pagination.MaxPageSize
	}
	p, err := page.New(number, size)
	if err != nil {
		return datasetuc.GetAllDatasets{}, err
	}

	sp := spec.New()
	if q := params.Get("q"); q != "" {
		sp = sp.WithSearchTerm(q)
	}
	if raw := params.Get("organization_siret"); raw != "" {
		siret, err := domorg.ParseSiret(raw)
		if err != nil {
			return datasetuc.GetAllDatasets{}, err
		}
		sp = sp.WithOrganization(siret)
	}
	if values := params["geographical_coverage"]; len(values) > 0 {
		sp = sp.WithGeographicalCoverages(values)
	}
	if values := params["service"]; len(values) > 0 {
		sp = sp.WithServices(values)
	}
	if values := params["technical_source"]; len(values) > 0 {
		sp = sp.WithTechnicalSources(values)
	}
	if values := params["format_id"]; len(values) > 0 {
		ids := make([]int64, len(values))
		for i, v := range values {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return datasetuc.GetAllDatasets{}, domain.Invalid("format_id", "must be an integer")
			}
			ids[i] = id
		}
		sp = sp.WithFormatIDs(ids)
	}
	if values := params["tag_id"]; len(values) > 0 {
		ids := make([]uuid.UUID, len(values))
		for i, v := range values {
			id, err := uuid.Parse(v)
			if err != nil {
				return datasetuc.GetAllDatasets{}, domain.Invalid("tag_id", "must be a uuid")
			}
			ids[i] = id
		}
		sp = sp.WithTagIDs(ids)
	}
	if license := params.Get("license"); license != "" {
		sp = sp.WithLicense(license)
	}
	if raw := params.Get("extra_field_id"); raw != "" {
		fieldID, err := uuid.Parse(raw)
		if err != nil {
			return datasetuc.GetAllDatasets{}, domain.Invalid("extra_field_id", "must be a uuid")
		}
		sp = sp.WithExtraFieldValue(extrafield.Value{
			ExtraFieldID: fieldID,
			Value:        params.Get("extra_field_value"),
		})
	}

	return datasetuc.GetAllDatasets{Page: p, Spec: sp}, nil
}

// --- Helpers ---

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, name+" must be a uuid")
		return uuid.UUID{}, false
	}
	return id, true
}

// requireAdmin rejects non-admin callers. A nil account is a trusted
// in-process caller and passes.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	acct := AccountFromContext(r.Context())
	if acct != nil && acct.Role != domacct.RoleAdmin {
		writeError(w, http.StatusForbidden, codePermissionDenied, "admin role required")
		return false
	}
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn("domain error", zap.String("path", r.URL.Path), zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// sentinelHandler returns an errorHandler matching a single sentinel.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// validationHandler handles ValidationError with its field paths.
func validationHandler(w http.ResponseWriter, err error) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		if !errors.Is(err, domain.ErrValidation) {
			return false
		}
		writeError(w, http.StatusBadRequest, codeValidationFailed, "validation failed")
		return true
	}

	fields := make([]fieldError, len(verr.Fields))
	for i, f := range verr.Fields {
		fields[i] = fieldError{Path: f.Path, Message: f.Message}
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    codeValidationFailed,
		Message: "validation failed",
		Fields:  fields,
	})
	return true
}
