package invoice

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/invoice-manager/backend/internal/application/adapter"
	"github.com/invoice-manager/backend/internal/domain/entity"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
)

type fakeInvoiceRepository struct {
	mu         sync.Mutex
	invoices   map[uuid.UUID]*entity.Invoice
	clients    map[uuid.UUID]string
	createErr  error
	updateErr  error
	lastFilter adapter.InvoiceFilter
	lastPage   adapter.InvoicePagination
}

func newFakeInvoiceRepository() *fakeInvoiceRepository {
	return &fakeInvoiceRepository{
		invoices: make(map[uuid.UUID]*entity.Invoice),
		clients:  make(map[uuid.UUID]string),
	}
}

func (r *fakeInvoiceRepository) numberTaken(inv *entity.Invoice) bool {
	if inv.Number == nil {
		return false
	}
	for id, other := range r.invoices {
		if id != inv.ID && other.Number != nil && *other.Number == *inv.Number {
			return true
		}
	}
	return false
}

func (r *fakeInvoiceRepository) Create(_ context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if r.numberTaken(inv) {
		return domainerror.ErrDuplicateInvoiceNumber
	}
	stored := *inv
	r.invoices[inv.ID] = &stored
	return nil
}

func (r *fakeInvoiceRepository) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*entity.InvoiceWithClient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, domainerror.ErrInvoiceNotFound
	}
	return r.withClient(inv), nil
}

func (r *fakeInvoiceRepository) withClient(inv *entity.Invoice) *entity.InvoiceWithClient {
	cp := *inv
	row := &entity.InvoiceWithClient{Invoice: &cp}
	if inv.ClientID != nil {
		if name, ok := r.clients[*inv.ClientID]; ok {
			row.ClientName = &name
		}
	}
	return row
}

func (r *fakeInvoiceRepository) Update(_ context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	existing, ok := r.invoices[inv.ID]
	if !ok || existing.UserID != inv.UserID {
		return domainerror.ErrInvoiceNotFound
	}
	if r.numberTaken(inv) {
		return domainerror.ErrDuplicateInvoiceNumber
	}
	stored := *inv
	r.invoices[inv.ID] = &stored
	return nil
}

func (r *fakeInvoiceRepository) UpdateAttachment(_ context.Context, id, userID uuid.UUID, attachment *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return domainerror.ErrInvoiceNotFound
	}
	inv.Attachment = attachment
	return nil
}

func (r *fakeInvoiceRepository) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return domainerror.ErrInvoiceNotFound
	}
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepository) FindByFilter(
	_ context.Context,
	filter adapter.InvoiceFilter,
	pagination adapter.InvoicePagination,
) (*adapter.InvoiceListResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	r.lastPage = pagination

	var rows []*entity.InvoiceWithClient
	for _, inv := range r.invoices {
		if inv.UserID == filter.UserID {
			rows = append(rows, r.withClient(inv))
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Invoice.IssueDate.After(rows[j].Invoice.IssueDate)
	})
	total := int64(len(rows))

	start := (pagination.Page - 1) * pagination.Limit
	if start > len(rows) {
		start = len(rows)
	}
	end := start + pagination.Limit
	if end > len(rows) {
		end = len(rows)
	}

	return &adapter.InvoiceListResult{
		Invoices: rows[start:end],
		Total:    total,
		Page:     pagination.Page,
		Limit:    pagination.Limit,
	}, nil
}

func (r *fakeInvoiceRepository) FindForYear(_ context.Context, userID uuid.UUID, year int) ([]entity.InvoiceFigure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var figures []entity.InvoiceFigure
	for _, inv := range r.invoices {
		if inv.UserID == userID && inv.IssueDate.Year() == year {
			figures = append(figures, entity.InvoiceFigure{IssueDate: inv.IssueDate, Amount: inv.Amount, Paid: inv.Paid})
		}
	}
	return figures, nil
}

func (r *fakeInvoiceRepository) get(id uuid.UUID) *entity.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invoices[id]
}

type fakeStorage struct {
	mu        sync.Mutex
	files     map[string][]byte
	storeErr  error
	deleteErr error
	seq       int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) key(userID uuid.UUID, filename string) string {
	return userID.String() + "/" + filename
}

func (s *fakeStorage) Store(_ context.Context, userID uuid.UUID, upload adapter.AttachmentUpload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storeErr != nil {
		return "", s.storeErr
	}
	content, err := io.ReadAll(upload.Content)
	if err != nil {
		return "", err
	}
	s.seq++
	filename := fmt.Sprintf("file-%d.pdf", s.seq)
	s.files[s.key(userID, filename)] = content
	return filename, nil
}

func (s *fakeStorage) Replace(
	ctx context.Context,
	userID uuid.UUID,
	oldFilename string,
	upload adapter.AttachmentUpload,
	commit adapter.CommitFunc,
) (string, error) {
	filename, err := s.Store(ctx, userID, upload)
	if err != nil {
		return "", err
	}
	if commit != nil {
		if err := commit(filename); err != nil {
			s.mu.Lock()
			delete(s.files, s.key(userID, filename))
			s.mu.Unlock()
			return "", err
		}
	}
	if oldFilename != "" {
		s.mu.Lock()
		delete(s.files, s.key(userID, oldFilename))
		s.mu.Unlock()
	}
	return filename, nil
}

func (s *fakeStorage) Delete(_ context.Context, userID uuid.UUID, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	k := s.key(userID, filename)
	if _, ok := s.files[k]; !ok {
		return domainerror.ErrAttachmentNotFound
	}
	delete(s.files, k)
	return nil
}

func (s *fakeStorage) URL(userID uuid.UUID, filename string) string {
	return "http://files.test/" + s.key(userID, filename)
}

func (s *fakeStorage) has(userID uuid.UUID, filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[s.key(userID, filename)]
	return ok
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
