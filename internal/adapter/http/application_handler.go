package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	ucApplication "smartbikepass-backend/internal/usecase/application"
)

type ApplicationHandler struct {
	uc  *ucApplication.Usecase
	log *zap.Logger
}

func NewApplicationHandler(uc *ucApplication.Usecase, log *zap.Logger) *ApplicationHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ApplicationHandler{uc: uc, log: log}
}

// blank fields are reported by the usecase; only shape is checked here
type applyReq struct {
	FullName    string `form:"full_name"    validate:"max=128"`
	RollNo      string `form:"roll_no"      validate:"max=64"`
	Email       string `form:"email"        validate:"omitempty,email,max=128"`
	Phone       string `form:"phone"        validate:"max=32"`
	Department  string `form:"department"   validate:"max=128"`
	Year        string `form:"year"         validate:"max=16"`
	VehicleNo   string `form:"vehicle_no"   validate:"max=32"`
	VehicleType string `form:"vehicle_type" validate:"max=32"`
}

func (r *applyReq) trim() {
	for _, f := range []*string{&r.FullName, &r.RollNo, &r.Email, &r.Phone, &r.Department, &r.Year, &r.VehicleNo, &r.VehicleType} {
		*f = strings.TrimSpace(*f)
	}
}

type applyResp struct {
	PassID  string `json:"pass_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Apply accepts the multipart application form with rc_book, license and insurance files.
func (h *ApplicationHandler) Apply(c echo.Context) error {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expected multipart/form-data"})
	}
	var req applyReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	req.trim()
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	in := ucApplication.SubmitInput{
		FullName:    req.FullName,
		RollNo:      req.RollNo,
		Email:       req.Email,
		Phone:       req.Phone,
		Department:  req.Department,
		Year:        req.Year,
		VehicleNo:   req.VehicleNo,
		VehicleType: req.VehicleType,
	}
	var err error
	if in.RCBook, err = formUpload(c, "rc_book"); err != nil {
		return invalidBody(c)
	}
	if in.License, err = formUpload(c, "license"); err != nil {
		return invalidBody(c)
	}
	if in.Insurance, err = formUpload(c, "insurance"); err != nil {
		return invalidBody(c)
	}

	res, err := h.uc.Submit(c.Request().Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, applyResp{
		PassID:  res.PassID,
		Status:  res.Status,
		Message: "Application submitted. Keep your pass id to track its status.",
	})
}

// Status is the public lookup; it never exposes document references.
func (h *ApplicationHandler) Status(c echo.Context) error {
	v, err := h.uc.StatusView(c.Request().Context(), c.Param("pass_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ApplicationHandler) Approved(c echo.Context) error {
	p, err := h.uc.ApprovedView(c.Request().Context(), c.Param("pass_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Detail returns the full record, document references included, to reviewers.
func (h *ApplicationHandler) Detail(c echo.Context) error {
	a, err := h.uc.Lookup(c.Request().Context(), c.Param("pass_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *ApplicationHandler) Document(c echo.Context) error {
	rc, contentType, err := h.uc.OpenDocument(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	defer rc.Close()
	return c.Stream(http.StatusOK, contentType, rc)
}
