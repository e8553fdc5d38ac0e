// internal/services/purchase_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vendordesk/backend/internal/apperrors"
	"github.com/vendordesk/backend/internal/models"
	"github.com/vendordesk/backend/internal/utils"
)

type PurchaseService struct {
	db        *gorm.DB
	sequences *SequenceService
}

func NewPurchaseService(db *gorm.DB, sequences *SequenceService) *PurchaseService {
	return &PurchaseService{
		db:        db,
		sequences: sequences,
	}
}

type CreatePurchaseRequest struct {
	Industries   string              `json:"industries"`
	Type         string              `json:"type"`
	Product      string              `json:"product" validate:"required"`
	VendorName   string              `json:"vendorName" validate:"required"`
	BusinessType models.BusinessType `json:"businessType" validate:"required"`
	SourceType   string              `json:"sourceType"`
	Country      string              `json:"country"`
	Make         string              `json:"make"`
	Address      string              `json:"address"`
	Contacts     []models.Contact    `json:"contacts" validate:"min=1"`
	Date         *time.Time          `json:"date,omitempty"`
	Remarks      string              `json:"remarks"`

	TECH           decimal.Decimal `json:"TECH"`
	LR             decimal.Decimal `json:"LR"`
	AR             decimal.Decimal `json:"AR"`
	ACS            decimal.Decimal `json:"ACS"`
	FOOD           decimal.Decimal `json:"FOOD"`
	COSMETIC       decimal.Decimal `json:"COSMETIC"`
	IH             decimal.Decimal `json:"IH"`
	IP             decimal.Decimal `json:"IP"`
	BP             decimal.Decimal `json:"BP"`
	USP            decimal.Decimal `json:"USP"`
	PHARMA         decimal.Decimal `json:"PHARMA"`
	ELECTROPLATING decimal.Decimal `json:"ELECTROPLATING"`
	FEED           decimal.Decimal `json:"FEED"`
	AGRI           decimal.Decimal `json:"AGRI"`
	IMPORTED       decimal.Decimal `json:"IMPORTED"`
}

// UpdatePurchaseRequest applies a partial merge: only fields present in the
// body overwrite the stored record, and id is never client-settable. The two
// edit-form variants in the admin UI disagreed about sending id; merging and
// ignoring id makes both safe.
type UpdatePurchaseRequest struct {
	Industries   *string              `json:"industries,omitempty"`
	Type         *string              `json:"type,omitempty"`
	Product      *string              `json:"product,omitempty"`
	VendorName   *string              `json:"vendorName,omitempty"`
	BusinessType *models.BusinessType `json:"businessType,omitempty"`
	SourceType   *string              `json:"sourceType,omitempty"`
	Country      *string              `json:"country,omitempty"`
	Make         *string              `json:"make,omitempty"`
	Address      *string              `json:"address,omitempty"`
	Contacts     []models.Contact     `json:"contacts,omitempty"`
	Date         *time.Time           `json:"date,omitempty"`
	Remarks      *string              `json:"remarks,omitempty"`

	TECH           *decimal.Decimal `json:"TECH,omitempty"`
	LR             *decimal.Decimal `json:"LR,omitempty"`
	AR             *decimal.Decimal `json:"AR,omitempty"`
	ACS            *decimal.Decimal `json:"ACS,omitempty"`
	FOOD           *decimal.Decimal `json:"FOOD,omitempty"`
	COSMETIC       *decimal.Decimal `json:"COSMETIC,omitempty"`
	IH             *decimal.Decimal `json:"IH,omitempty"`
	IP             *decimal.Decimal `json:"IP,omitempty"`
	BP             *decimal.Decimal `json:"BP,omitempty"`
	USP            *decimal.Decimal `json:"USP,omitempty"`
	PHARMA         *decimal.Decimal `json:"PHARMA,omitempty"`
	ELECTROPLATING *decimal.Decimal `json:"ELECTROPLATING,omitempty"`
	FEED           *decimal.Decimal `json:"FEED,omitempty"`
	AGRI           *decimal.Decimal `json:"AGRI,omitempty"`
	IMPORTED       *decimal.Decimal `json:"IMPORTED,omitempty"`
}

// PurchaseResponse is the transport shape: grade decimals become plain JSON
// numbers, so a stored "12.50" serializes as 12.5.
type PurchaseResponse struct {
	ID           int64               `json:"id"`
	Industries   string              `json:"industries"`
	Type         string              `json:"type"`
	Product      string              `json:"product"`
	VendorName   string              `json:"vendorName"`
	BusinessType models.BusinessType `json:"businessType"`
	SourceType   string              `json:"sourceType"`
	Country      string              `json:"country"`
	Make         string              `json:"make"`
	Address      string              `json:"address"`
	Contacts     []models.Contact    `json:"contacts"`
	Date         time.Time           `json:"date"`
	Remarks      string              `json:"remarks"`

	TECH           float64 `json:"TECH"`
	LR             float64 `json:"LR"`
	AR             float64 `json:"AR"`
	ACS            float64 `json:"ACS"`
	FOOD           float64 `json:"FOOD"`
	COSMETIC       float64 `json:"COSMETIC"`
	IH             float64 `json:"IH"`
	IP             float64 `json:"IP"`
	BP             float64 `json:"BP"`
	USP            float64 `json:"USP"`
	PHARMA         float64 `json:"PHARMA"`
	ELECTROPLATING float64 `json:"ELECTROPLATING"`
	FEED           float64 `json:"FEED"`
	AGRI           float64 `json:"AGRI"`
	IMPORTED       float64 `json:"IMPORTED"`
}

func toResponse(p *models.Purchase) *PurchaseResponse {
	return &PurchaseResponse{
		ID:           p.ID,
		Industries:   p.Industries,
		Type:         p.Type,
		Product:      p.Product,
		VendorName:   p.VendorName,
		BusinessType: p.BusinessType,
		SourceType:   p.SourceType,
		Country:      p.Country,
		Make:         p.Make,
		Address:      p.Address,
		Contacts:     p.Contacts,
		Date:         p.Date,
		Remarks:      p.Remarks,

		TECH:           p.TECH.InexactFloat64(),
		LR:             p.LR.InexactFloat64(),
		AR:             p.AR.InexactFloat64(),
		ACS:            p.ACS.InexactFloat64(),
		FOOD:           p.FOOD.InexactFloat64(),
		COSMETIC:       p.COSMETIC.InexactFloat64(),
		IH:             p.IH.InexactFloat64(),
		IP:             p.IP.InexactFloat64(),
		BP:             p.BP.InexactFloat64(),
		USP:            p.USP.InexactFloat64(),
		PHARMA:         p.PHARMA.InexactFloat64(),
		ELECTROPLATING: p.ELECTROPLATING.InexactFloat64(),
		FEED:           p.FEED.InexactFloat64(),
		AGRI:           p.AGRI.InexactFloat64(),
		IMPORTED:       p.IMPORTED.InexactFloat64(),
	}
}

func (req *CreatePurchaseRequest) toModel() *models.Purchase {
	p := &models.Purchase{
		Industries:   req.Industries,
		Type:         req.Type,
		Product:      req.Product,
		VendorName:   req.VendorName,
		BusinessType: req.BusinessType,
		SourceType:   req.SourceType,
		Country:      req.Country,
		Make:         req.Make,
		Address:      req.Address,
		Contacts:     req.Contacts,
		Remarks:      req.Remarks,

		TECH:           req.TECH,
		LR:             req.LR,
		AR:             req.AR,
		ACS:            req.ACS,
		FOOD:           req.FOOD,
		COSMETIC:       req.COSMETIC,
		IH:             req.IH,
		IP:             req.IP,
		BP:             req.BP,
		USP:            req.USP,
		PHARMA:         req.PHARMA,
		ELECTROPLATING: req.ELECTROPLATING,
		FEED:           req.FEED,
		AGRI:           req.AGRI,
		IMPORTED:       req.IMPORTED,
	}
	if req.Date != nil {
		p.Date = *req.Date
	}
	return p
}

func (req *UpdatePurchaseRequest) applyTo(p *models.Purchase) {
	if req.Industries != nil {
		p.Industries = *req.Industries
	}
	if req.Type != nil {
		p.Type = *req.Type
	}
	if req.Product != nil {
		p.Product = *req.Product
	}
	if req.VendorName != nil {
		p.VendorName = *req.VendorName
	}
	if req.BusinessType != nil {
		p.BusinessType = *req.BusinessType
	}
	if req.SourceType != nil {
		p.SourceType = *req.SourceType
	}
	if req.Country != nil {
		p.Country = *req.Country
	}
	if req.Make != nil {
		p.Make = *req.Make
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Contacts != nil {
		p.Contacts = req.Contacts
	}
	if req.Date != nil {
		p.Date = *req.Date
	}
	if req.Remarks != nil {
		p.Remarks = *req.Remarks
	}

	for _, grade := range []struct {
		src *decimal.Decimal
		dst *decimal.Decimal
	}{
		{req.TECH, &p.TECH},
		{req.LR, &p.LR},
		{req.AR, &p.AR},
		{req.ACS, &p.ACS},
		{req.FOOD, &p.FOOD},
		{req.COSMETIC, &p.COSMETIC},
		{req.IH, &p.IH},
		{req.IP, &p.IP},
		{req.BP, &p.BP},
		{req.USP, &p.USP},
		{req.PHARMA, &p.PHARMA},
		{req.ELECTROPLATING, &p.ELECTROPLATING},
		{req.FEED, &p.FEED},
		{req.AGRI, &p.AGRI},
		{req.IMPORTED, &p.IMPORTED},
	} {
		if grade.src != nil {
			*grade.dst = *grade.src
		}
	}
}

// validateRecord holds every write-time constraint in one place, so the rules
// stay visible and independently testable instead of hiding in schema tags.
// It runs against the full document on create and against the merged document
// on update.
func validateRecord(p *models.Purchase) error {
	verr := &apperrors.ValidationError{}

	if p.Product == "" {
		verr.Fields = append(verr.Fields, apperrors.FieldError{Field: "product", Message: "product is required"})
	}
	if p.VendorName == "" {
		verr.Fields = append(verr.Fields, apperrors.FieldError{Field: "vendorName", Message: "vendorName is required"})
	}
	if !p.BusinessType.Valid() {
		verr.Fields = append(verr.Fields, apperrors.FieldError{
			Field:   "businessType",
			Message: "businessType must be one of Manufacturer, Importer, Distributor, Trader",
		})
	}

	if p.BusinessType == models.BusinessTypeManufacturer {
		if p.SourceType != "" {
			verr.Fields = append(verr.Fields, apperrors.FieldError{
				Field:   "sourceType",
				Message: "sourceType must be empty if businessType is Manufacturer",
			})
		}
		if p.Country != "" {
			verr.Fields = append(verr.Fields, apperrors.FieldError{
				Field:   "country",
				Message: "country must be empty if businessType is Manufacturer",
			})
		}
	}

	if len(p.Contacts) < 1 {
		verr.Fields = append(verr.Fields, apperrors.FieldError{Field: "contacts", Message: "at least one contact is required"})
	}
	for i, contact := range p.Contacts {
		if contact.ContactPerson == "" || contact.ContactPhone == "" || contact.ContactEmail == "" {
			verr.Fields = append(verr.Fields, apperrors.FieldError{
				Field:   fmt.Sprintf("contacts[%d]", i),
				Message: "contactPerson, contactPhone and contactEmail are all required",
			})
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// Create validates the record, allocates a display id and persists the row.
// Storage is touched exactly once; a failed validation never burns an id.
func (s *PurchaseService) Create(req *CreatePurchaseRequest) (*PurchaseResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &apperrors.ValidationError{Fields: utils.GetValidationErrors(err)}
	}

	purchase := req.toModel()
	if purchase.Date.IsZero() {
		purchase.Date = time.Now()
	}

	if err := validateRecord(purchase); err != nil {
		return nil, err
	}

	id, err := s.sequences.Next(PurchaseSequenceName)
	if err != nil {
		return nil, err
	}
	purchase.ID = id

	if err := s.db.Create(purchase).Error; err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	return toResponse(purchase), nil
}

// List returns every record ordered by display id. Filtering, sorting and
// pagination happen in the admin UI after this single full fetch.
func (s *PurchaseService) List() ([]*PurchaseResponse, error) {
	var purchases []models.Purchase
	if err := s.db.Order("id").Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch purchases: %w", err)
	}

	responses := make([]*PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		responses = append(responses, toResponse(&purchases[i]))
	}
	return responses, nil
}

func (s *PurchaseService) GetByID(id int64) (*PurchaseResponse, error) {
	var purchase models.Purchase
	err := s.db.Where("id = ?", id).First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch purchase %d: %w", id, err)
	}

	return toResponse(&purchase), nil
}

// Update merges the request onto the stored record and persists the result in
// a single write. The sequence allocator is never consulted here.
func (s *PurchaseService) Update(id int64, req *UpdatePurchaseRequest) (*PurchaseResponse, error) {
	var purchase models.Purchase
	err := s.db.Where("id = ?", id).First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch purchase %d: %w", id, err)
	}

	req.applyTo(&purchase)
	purchase.ID = id

	if err := validateRecord(&purchase); err != nil {
		return nil, err
	}

	if err := s.db.Save(&purchase).Error; err != nil {
		return nil, fmt.Errorf("failed to update purchase %d: %w", id, err)
	}

	return toResponse(&purchase), nil
}

func (s *PurchaseService) Delete(id int64) error {
	result := s.db.Where("id = ?", id).Delete(&models.Purchase{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete purchase %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// FindByVendorName is a listing query: vendor names are not unique, so every
// exact match comes back. Zero matches is NotFound, mirroring the original
// endpoint contract.
func (s *PurchaseService) FindByVendorName(name string) ([]*PurchaseResponse, error) {
	var purchases []models.Purchase
	if err := s.db.Where("vendor_name = ?", name).Order("id").Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch vendor %q: %w", name, err)
	}

	if len(purchases) == 0 {
		return nil, apperrors.ErrNotFound
	}

	responses := make([]*PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		responses = append(responses, toResponse(&purchases[i]))
	}
	return responses, nil
}

// NextID exposes the allocator's peek for the add-form id preview. The result
// is a hint, not a reservation.
func (s *PurchaseService) NextID() (int64, error) {
	return s.sequences.Peek(PurchaseSequenceName)
}
