package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
	"github.com/sammyTGR/tgr-sub005/pkg/fastbound"
)

var (
	ErrFastBoundUnavailable = errors.New("FastBound is not configured")
	ErrAcquisitionRejected  = errors.New("FastBound rejected the acquisition")
)

// AcquisitionGateway FastBound operations, satisfied by *fastbound.Client
type AcquisitionGateway interface {
	FindContactByFFL(ctx context.Context, fflNumber string) (*fastbound.Contact, error)
	CreateContact(ctx context.Context, req fastbound.ContactRequest) (*fastbound.Contact, error)
	CreateAndCommitAcquisition(ctx context.Context, req fastbound.AcquisitionRequest) (*fastbound.AcquisitionResult, error)
}

// AcquisitionService records firearms received from other licensees
type AcquisitionService interface {
	// Acquire finds or creates the contact, then creates and commits the
	// acquisition. A local record is written whether or not FastBound accepts it.
	Acquire(ctx context.Context, req *dto.CreateAcquisitionRequest, callerID int) (*dto.AcquisitionResponse, error)
	List(ctx context.Context, req *dto.AcquisitionListRequest) ([]dto.AcquisitionResponse, int64, error)
}

type acquisitionService struct {
	repo    *repository.Repository
	gateway AcquisitionGateway
	logger  *zap.Logger
}

// NewAcquisitionService creates an AcquisitionService.
func NewAcquisitionService(repo *repository.Repository, gateway AcquisitionGateway, logger *zap.Logger) AcquisitionService {
	return &acquisitionService{repo: repo, gateway: gateway, logger: logger}
}

func (s *acquisitionService) Acquire(ctx context.Context, req *dto.CreateAcquisitionRequest, callerID int) (*dto.AcquisitionResponse, error) {
	ffl := strings.ToUpper(strings.TrimSpace(req.FFLNumber))

	contact, err := s.gateway.FindContactByFFL(ctx, ffl)
	if errors.Is(err, fastbound.ErrContactNotFound) {
		contact, err = s.gateway.CreateContact(ctx, fastbound.ContactRequest{
			FFLNumber:       ffl,
			FFLExpires:      req.FFLExpires,
			LicenseName:     strings.TrimSpace(req.LicenseName),
			TradeName:       req.TradeName,
			PremiseAddress1: req.PremiseAddress,
			PremiseCity:     req.PremiseCity,
			PremiseState:    strings.ToUpper(req.PremiseState),
			PremiseZipCode:  req.PremiseZipCode,
			PhoneNumber:     req.Phone,
			EmailAddress:    req.Email,
		})
	}
	if err != nil {
		if errors.Is(err, fastbound.ErrNotConfigured) {
			return nil, ErrFastBoundUnavailable
		}
		s.logger.Error("resolve FastBound contact failed", zap.String("ffl_number", ffl), zap.Error(err))
		return nil, s.record(ctx, req, ffl, "", callerID, nil, nil, err)
	}

	acq := fastbound.AcquisitionRequest{
		ContactID:           contact.ID,
		PurchaseOrderNumber: req.PurchaseOrderNumber,
		InvoiceNumber:       req.InvoiceNumber,
		Note:                req.Note,
		Items:               make([]fastbound.AcquisitionItem, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		cond := it.Condition
		if cond == "" {
			cond = "New"
		}
		acq.Items = append(acq.Items, fastbound.AcquisitionItem{
			Manufacturer: it.Manufacturer,
			Importer:     it.Importer,
			Model:        it.Model,
			Caliber:      it.Caliber,
			Type:         it.Type,
			Serial:       strings.TrimSpace(it.Serial),
			Condition:    cond,
			Cost:         it.Cost,
			Price:        it.Price,
		})
	}

	result, err := s.gateway.CreateAndCommitAcquisition(ctx, acq)
	if err != nil {
		s.logger.Error("FastBound acquisition failed", zap.String("ffl_number", ffl), zap.Error(err))
		return nil, s.record(ctx, req, ffl, contact.ID, callerID, &acq, nil, err)
	}

	rec := s.newRecord(req, ffl, contact.ID, callerID, &acq)
	rec.ExternalAcquisitionID = result.ID
	rec.ResponsePayload = datatypes.JSON(result.Raw)
	rec.Status = model.AcquisitionCommitted
	if err := s.repo.Acquisition.Create(ctx, rec); err != nil {
		// already committed upstream, so report success anyway
		s.logger.Error("persist acquisition failed",
			zap.String("external_acquisition_id", result.ID), zap.Error(err))
	}

	s.logger.Info("acquisition committed",
		zap.String("ffl_number", ffl),
		zap.String("external_acquisition_id", result.ID),
		zap.Int("items", len(acq.Items)))
	resp := toAcquisitionResponse(rec)
	return &resp, nil
}

// record persists a failed attempt and returns the error for the caller.
func (s *acquisitionService) record(ctx context.Context, req *dto.CreateAcquisitionRequest, ffl, contactID string, callerID int, acq *fastbound.AcquisitionRequest, response []byte, cause error) error {
	rec := s.newRecord(req, ffl, contactID, callerID, acq)
	rec.Status = model.AcquisitionFailed
	rec.ErrorMessage = truncate(cause.Error(), 500)

	var apiErr *fastbound.APIError
	if errors.As(cause, &apiErr) && json.Valid(apiErr.Body) {
		response = apiErr.Body
	}
	if response != nil {
		rec.ResponsePayload = datatypes.JSON(response)
	}
	if err := s.repo.Acquisition.Create(ctx, rec); err != nil {
		s.logger.Error("persist failed acquisition failed", zap.Error(err))
	}
	if apiErr != nil {
		return ErrAcquisitionRejected
	}
	return cause
}

func (s *acquisitionService) newRecord(req *dto.CreateAcquisitionRequest, ffl, contactID string, callerID int, acq *fastbound.AcquisitionRequest) *model.Acquisition {
	rec := &model.Acquisition{
		ExternalContactID: contactID,
		FFLNumber:         ffl,
		LicenseName:       strings.TrimSpace(req.LicenseName),
		ItemCount:         len(req.Items),
		RequestedBy:       callerID,
	}
	var payload interface{} = req
	if acq != nil {
		payload = acq
	}
	if raw, err := json.Marshal(payload); err == nil {
		rec.RequestPayload = datatypes.JSON(raw)
	}
	return rec
}

func (s *acquisitionService) List(ctx context.Context, req *dto.AcquisitionListRequest) ([]dto.AcquisitionResponse, int64, error) {
	recs, total, err := s.repo.Acquisition.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list acquisitions failed", zap.Error(err))
		return nil, 0, err
	}
	list := make([]dto.AcquisitionResponse, 0, len(recs))
	for i := range recs {
		list = append(list, toAcquisitionResponse(&recs[i]))
	}
	return list, total, nil
}

func toAcquisitionResponse(a *model.Acquisition) dto.AcquisitionResponse {
	return dto.AcquisitionResponse{
		AcquisitionID:         a.AcquisitionID,
		ExternalContactID:     a.ExternalContactID,
		ExternalAcquisitionID: a.ExternalAcquisitionID,
		FFLNumber:             a.FFLNumber,
		LicenseName:           a.LicenseName,
		ItemCount:             a.ItemCount,
		Status:                a.Status,
		ErrorMessage:          a.ErrorMessage,
		RequestedBy:           a.RequestedBy,
		CreatedAt:             formatTimestamp(a.CreatedAt),
	}
}
