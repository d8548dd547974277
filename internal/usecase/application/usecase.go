package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "smartbikepass-backend/internal/domain/application"
	"smartbikepass-backend/internal/domain/audit"
	"smartbikepass-backend/internal/domain/document"
	"smartbikepass-backend/internal/domain/uow"
	"smartbikepass-backend/pkg/id"
)

const (
	DefaultAuditLimit = 100
	MaxAuditLimit     = 1000

	maxPassIDAttempts = 5
)

type Usecase struct {
	apps   domain.Repository
	audits audit.Repository
	uow    uow.UnitOfWork
	docs   document.Store
	log    *zap.Logger

	now       func() time.Time
	newPassID func() string
}

func NewUsecase(apps domain.Repository, audits audit.Repository, tx uow.UnitOfWork, docs document.Store, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{
		apps:      apps,
		audits:    audits,
		uow:       tx,
		docs:      docs,
		log:       log,
		now:       time.Now,
		newPassID: id.NewPassID,
	}
}

type field struct {
	name  string
	value *string
}

type attachment struct {
	name     string
	category document.Category
	upload   *document.Upload
	ref      *string
}

// Submit validates the form, stores the three documents and records a pending application
// together with its first audit entry.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	fields := []field{
		{"full_name", &in.FullName},
		{"roll_no", &in.RollNo},
		{"email", &in.Email},
		{"phone", &in.Phone},
		{"department", &in.Department},
		{"year", &in.Year},
		{"vehicle_no", &in.VehicleNo},
		{"vehicle_type", &in.VehicleType},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return nil, domain.NewValidationError("%s is required", f.name)
		}
	}
	in.VehicleNo = strings.ToUpper(in.VehicleNo)

	a := domain.Application{
		FullName:    in.FullName,
		RollNo:      in.RollNo,
		Email:       in.Email,
		Phone:       in.Phone,
		Department:  in.Department,
		Year:        in.Year,
		VehicleNo:   in.VehicleNo,
		VehicleType: in.VehicleType,
		Status:      domain.StatusPending,
	}

	attachments := []attachment{
		{"rc_book", document.CategoryRCBook, in.RCBook, &a.RCBook},
		{"license", document.CategoryLicense, in.License, &a.License},
		{"insurance", document.CategoryInsurance, in.Insurance, &a.Insurance},
	}
	for _, at := range attachments {
		if at.upload == nil || at.upload.Filename == "" || len(at.upload.Content) == 0 {
			return nil, domain.NewValidationError("%s document is required", at.name)
		}
	}

	var stored []string
	for _, at := range attachments {
		ref, err := u.docs.Store(ctx, at.category, *at.upload)
		if err != nil {
			u.discard(ctx, stored)
			if errors.Is(err, document.ErrRejectedFormat) {
				return nil, domain.NewValidationError("%s must be a PDF, JPG or PNG file", at.name)
			}
			u.log.Error("store document failed", zap.String("document", at.name), zap.Error(err))
			return nil, &domain.StorageError{Op: "store " + at.name, Err: err}
		}
		*at.ref = ref
		stored = append(stored, ref)
	}

	var err error
	for attempt := 0; attempt < maxPassIDAttempts; attempt++ {
		rec := a
		rec.PassID = u.newPassID()
		rec.SubmittedAt = u.now().UTC()

		err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
			if err := r.Applications.Create(ctx, &rec); err != nil {
				return err
			}
			return r.Audits.Append(ctx, &audit.Entry{
				PassID:    rec.PassID,
				Action:    audit.ActionSubmitted,
				DoneBy:    rec.FullName,
				CreatedAt: rec.SubmittedAt,
			})
		})
		if errors.Is(err, domain.ErrDuplicatePassID) {
			u.log.Warn("pass id collision, retrying", zap.String("pass_id", rec.PassID))
			continue
		}
		if err != nil {
			break
		}

		u.log.Info("application submitted",
			zap.String("pass_id", rec.PassID),
			zap.String("roll_no", rec.RollNo),
		)
		return &SubmitResult{PassID: rec.PassID, Status: rec.Status.String()}, nil
	}

	u.discard(ctx, stored)
	u.log.Error("submit failed", zap.Error(err))
	return nil, &domain.StorageError{Op: "submit", Err: err}
}

func (u *Usecase) discard(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := u.docs.Delete(ctx, ref); err != nil {
			u.log.Warn("discard document failed", zap.String("ref", ref), zap.Error(err))
		}
	}
}

// Lookup returns the full record.
func (u *Usecase) Lookup(ctx context.Context, passID string) (*domain.Application, error) {
	passID = normalizePassID(passID)
	if !id.IsPassID(passID) {
		return nil, domain.ErrNotFound
	}
	a, err := u.apps.GetByPassID(ctx, passID)
	if err != nil {
		return nil, storageErr("lookup", err)
	}
	return a, nil
}

func (u *Usecase) StatusView(ctx context.Context, passID string) (*domain.StatusView, error) {
	a, err := u.Lookup(ctx, passID)
	if err != nil {
		return nil, err
	}
	v := a.StatusView()
	return &v, nil
}

// ApprovedView reports a pass only once it is approved; anything else is not found.
func (u *Usecase) ApprovedView(ctx context.Context, passID string) (*ApprovedPass, error) {
	a, err := u.Lookup(ctx, passID)
	if err != nil {
		return nil, err
	}
	if a.Status != domain.StatusApproved {
		return nil, domain.ErrNotFound
	}
	return &ApprovedPass{
		PassID:      a.PassID,
		FullName:    a.FullName,
		RollNo:      a.RollNo,
		Department:  a.Department,
		Year:        a.Year,
		VehicleNo:   a.VehicleNo,
		VehicleType: a.VehicleType,
		ApprovedAt:  a.PrincipalReviewedAt,
	}, nil
}

func (u *Usecase) ListByStatus(ctx context.Context, statuses []domain.Status) ([]domain.Application, error) {
	for _, s := range statuses {
		if !s.IsValid() {
			return nil, domain.NewValidationError("unknown status %q", s)
		}
	}
	list, err := u.apps.ListByStatus(ctx, statuses)
	if err != nil {
		return nil, storageErr("list", err)
	}
	return list, nil
}

// Queue lists what a reviewer stage still has to act on.
func (u *Usecase) Queue(ctx context.Context, stage domain.Stage) ([]domain.Application, error) {
	if !stage.IsValid() {
		return nil, domain.NewValidationError("unknown stage %q", stage)
	}
	return u.ListByStatus(ctx, stage.Queue())
}

func (u *Usecase) ListAll(ctx context.Context) ([]domain.Application, error) {
	return u.ListByStatus(ctx, domain.AllStatuses)
}

func (u *Usecase) Stats(ctx context.Context) (*StatsDTO, error) {
	s, err := u.apps.CountByStatus(ctx)
	if err != nil {
		return nil, storageErr("stats", err)
	}
	out := &StatsDTO{ByStatus: make(map[string]int64, len(domain.AllStatuses)), Total: s.Total}
	for _, st := range domain.AllStatuses {
		out.ByStatus[st.String()] = s.ByStatus[st]
	}
	return out, nil
}

// AuditTrail returns the newest entries across all applications. Non-positive limits fall back
// to DefaultAuditLimit.
func (u *Usecase) AuditTrail(ctx context.Context, limit int) ([]audit.Entry, error) {
	switch {
	case limit <= 0:
		limit = DefaultAuditLimit
	case limit > MaxAuditLimit:
		limit = MaxAuditLimit
	}
	entries, err := u.audits.ListRecent(ctx, limit)
	if err != nil {
		return nil, storageErr("audit trail", err)
	}
	return entries, nil
}

// AuditTrailFor returns one application's history, oldest first.
func (u *Usecase) AuditTrailFor(ctx context.Context, passID string) ([]audit.Entry, error) {
	a, err := u.Lookup(ctx, passID)
	if err != nil {
		return nil, err
	}
	entries, err := u.audits.ListByPassID(ctx, a.PassID)
	if err != nil {
		return nil, storageErr("audit trail", err)
	}
	return entries, nil
}

// OpenDocument streams a stored document by reference.
func (u *Usecase) OpenDocument(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	rc, ctype, err := u.docs.Open(ctx, ref)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", storageErr("open document", err)
	}
	return rc, ctype, nil
}

func normalizePassID(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

func storageErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return &domain.StorageError{Op: op, Err: err}
}
