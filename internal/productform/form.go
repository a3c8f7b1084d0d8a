package productform

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/utils"
)

// ErrFormClosed is returned when an operation needs the dialog open.
var ErrFormClosed = errors.New("product form is not open")

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Writer persists the product built by a submit.
type Writer interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
}

// State is a snapshot of the form for rendering.
type State struct {
	Open       bool       `json:"open"`
	Mode       Mode       `json:"mode"`
	EditTarget *uuid.UUID `json:"edit_target,omitempty"`
	Data       FormData   `json:"data"`
}

// Form is the product dialog. Methods are safe for concurrent use.
type Form struct {
	mu     sync.Mutex
	open   bool
	mode   Mode
	target *models.Product
	data   FormData
	now    func() time.Time
}

func New() *Form {
	return &Form{mode: ModeCreate, data: emptyData(), now: time.Now}
}

func emptyData() FormData {
	return FormData{Sizes: []string{}, Colors: []models.Color{}}
}

// OpenCreate opens the dialog with empty data.
func (f *Form) OpenCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.open = true
	f.mode = ModeCreate
	f.target = nil
	f.data = emptyData()
}

// OpenEdit opens the dialog hydrated from p.
func (f *Form) OpenEdit(p *models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := *p
	f.open = true
	f.mode = ModeEdit
	f.target = &stored
	f.data = FromProduct(p)
}

// Close discards the dialog without writing.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *Form) reset() {
	f.open = false
	f.mode = ModeCreate
	f.target = nil
	f.data = emptyData()
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := State{Open: f.open, Mode: f.mode, Data: f.data}
	s.Data.Sizes = append([]string{}, f.data.Sizes...)
	s.Data.Colors = append([]models.Color{}, f.data.Colors...)
	if f.target != nil {
		id := f.target.ID
		s.EditTarget = &id
	}
	return s
}

// SetName updates the name. In create mode the slug follows it.
func (f *Form) SetName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setName(name)
}

func (f *Form) setName(name string) {
	f.data.Name = name
	if f.mode == ModeCreate {
		f.data.Slug = Slugify(name)
	}
}

// Apply replaces the form data with next, routing a changed name through
// SetName so the slug rule holds.
func (f *Form) Apply(next FormData) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open {
		return ErrFormClosed
	}

	prevName := f.data.Name
	if next.Sizes == nil {
		next.Sizes = []string{}
	}
	if next.Colors == nil {
		next.Colors = []models.Color{}
	}
	f.data = next
	if next.Name != prevName {
		f.setName(next.Name)
	}
	return nil
}

// AssignImageURL writes url into the first empty image slot and returns the
// slot number. It returns false when all slots are taken or the dialog is
// closed.
func (f *Form) AssignImageURL(url string) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open {
		return 0, false
	}
	for slot := 1; slot <= models.MaxProductImages; slot++ {
		field := f.data.imageURL(slot)
		if *field == "" {
			*field = url
			return slot, true
		}
	}
	return 0, false
}

// Submit validates the form and writes the product through w. Validation
// failures leave the dialog open and are returned as field errors. Once the
// write is attempted the dialog closes whatever its outcome.
func (f *Form) Submit(ctx context.Context, w Writer) (*models.Product, []utils.ValidationError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open {
		return nil, nil, ErrFormClosed
	}

	data := f.data.normalized()
	if fieldErrs := utils.GetValidationErrors(utils.ValidateStruct(&data)); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	product := &models.Product{}
	if f.mode == ModeEdit && f.target != nil {
		stored := *f.target
		product = &stored
	}
	data.applyTo(product)

	now := f.now()
	var err error
	if f.mode == ModeEdit && f.target != nil {
		product.UpdatedAt = now
		err = w.UpdateProduct(ctx, product)
	} else {
		product.CreatedAt = now
		product.UpdatedAt = now
		err = w.CreateProduct(ctx, product)
	}

	f.reset()
	return product, nil, err
}
