package invoice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-manager/backend/internal/application/adapter"
	"github.com/invoice-manager/backend/internal/domain/entity"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
)

func ptr[T any](v T) *T { return &v }

func upload(content string) *adapter.AttachmentUpload {
	return &adapter.AttachmentUpload{Filename: "scan.PDF", Content: strings.NewReader(content)}
}

func requireInvoiceCode(t *testing.T, err error, code domainerror.InvoiceErrorCode) {
	t.Helper()
	var invErr *domainerror.InvoiceError
	require.True(t, errors.As(err, &invErr), "expected InvoiceError, got %v", err)
	assert.Equal(t, code, invErr.Code)
}

func validCreateInput(userID uuid.UUID) CreateInvoiceInput {
	return CreateInvoiceInput{
		UserID:    userID,
		ClientID:  ptr(uuid.New()),
		IssueDate: ptr(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
		Amount:    ptr(decimal.RequireFromString("120.50")),
		Paid:      ptr(false),
	}
}

func TestCreateInvoice(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("persists invoice with attachment", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		uc := NewCreateInvoiceUseCase(repo, storage)

		input := validCreateInput(userID)
		input.Number = ptr("F-001")
		input.Attachment = upload("pdf")
		repo.clients[*input.ClientID] = "Acme"

		out, err := uc.Execute(ctx, input)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, out.Invoice.ID)
		assert.Equal(t, "F-001", *out.Invoice.Number)
		assert.Equal(t, "Acme", *out.Invoice.ClientName)
		require.NotNil(t, out.Invoice.Attachment)
		assert.True(t, storage.has(userID, *out.Invoice.Attachment))
		assert.Equal(t, "http://files.test/"+userID.String()+"/"+*out.Invoice.Attachment, *out.Invoice.AttachmentURL)
	})

	t.Run("empty number is stored as absent", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		uc := NewCreateInvoiceUseCase(repo, storage)

		input := validCreateInput(userID)
		input.Number = ptr("")

		out, err := uc.Execute(ctx, input)
		require.NoError(t, err)
		assert.Nil(t, out.Invoice.Number)
		assert.Nil(t, out.Invoice.AttachmentURL)
	})

	t.Run("missing required fields", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*CreateInvoiceInput)
		}{
			{"client", func(in *CreateInvoiceInput) { in.ClientID = nil }},
			{"issue date", func(in *CreateInvoiceInput) { in.IssueDate = nil }},
			{"amount", func(in *CreateInvoiceInput) { in.Amount = nil }},
			{"status", func(in *CreateInvoiceInput) { in.Paid = nil }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo, storage := newFakeInvoiceRepository(), newFakeStorage()
				uc := NewCreateInvoiceUseCase(repo, storage)

				input := validCreateInput(userID)
				input.Attachment = upload("pdf")
				tt.mutate(&input)

				_, err := uc.Execute(ctx, input)
				requireInvoiceCode(t, err, domainerror.ErrCodeMissingInvoiceFields)
				assert.Zero(t, storage.count())
				assert.Empty(t, repo.invoices)
			})
		}
	})

	t.Run("duplicate number removes the new file", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		uc := NewCreateInvoiceUseCase(repo, storage)

		first := validCreateInput(userID)
		first.Number = ptr("F-001")
		_, err := uc.Execute(ctx, first)
		require.NoError(t, err)

		second := validCreateInput(uuid.New())
		second.Number = ptr("F-001")
		second.Attachment = upload("pdf")
		_, err = uc.Execute(ctx, second)

		requireInvoiceCode(t, err, domainerror.ErrCodeDuplicateInvoiceNumber)
		assert.ErrorIs(t, err, domainerror.ErrDuplicateInvoiceNumber)
		assert.Zero(t, storage.count())
		assert.Len(t, repo.invoices, 1)
	})

	t.Run("storage failure aborts creation", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		storage.storeErr = errors.New("disk full")
		uc := NewCreateInvoiceUseCase(repo, storage)

		input := validCreateInput(userID)
		input.Attachment = upload("pdf")

		_, err := uc.Execute(ctx, input)
		requireInvoiceCode(t, err, domainerror.ErrCodeAttachmentIO)
		assert.Empty(t, repo.invoices)
	})
}

func seedInvoice(t *testing.T, repo *fakeInvoiceRepository, storage *fakeStorage, userID uuid.UUID, withFile bool) *entity.Invoice {
	t.Helper()
	inv := entity.NewInvoice(
		userID,
		uuid.New(),
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(100),
		false,
		ptr("N-"+uuid.NewString()[:8]),
		ptr("original"),
	)
	if withFile {
		name, err := storage.Store(context.Background(), userID, *upload("old"))
		require.NoError(t, err)
		inv.Attachment = &name
	}
	require.NoError(t, repo.Create(context.Background(), inv))
	return inv
}

func TestGetInvoice_OwnerScoped(t *testing.T) {
	repo, storage := newFakeInvoiceRepository(), newFakeStorage()
	owner := uuid.New()
	inv := seedInvoice(t, repo, storage, owner, false)
	uc := NewGetInvoiceUseCase(repo, storage)

	out, err := uc.Execute(context.Background(), GetInvoiceInput{InvoiceID: inv.ID, UserID: owner})
	require.NoError(t, err)
	assert.Equal(t, inv.ID, out.ID)

	_, err = uc.Execute(context.Background(), GetInvoiceInput{InvoiceID: inv.ID, UserID: uuid.New()})
	requireInvoiceCode(t, err, domainerror.ErrCodeInvoiceNotFound)
	assert.ErrorIs(t, err, domainerror.ErrInvoiceNotFound)
}

func TestUpdateInvoice_FieldPolicies(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("zero amount does not overwrite", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, false)
		uc := NewUpdateInvoiceUseCase(repo, storage)

		_, err := uc.Execute(ctx, UpdateInvoiceInput{
			InvoiceID: inv.ID,
			UserID:    owner,
			Amount:    ptr(decimal.Zero),
		})
		require.NoError(t, err)
		assert.True(t, repo.get(inv.ID).Amount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("false status overwrites", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, false)
		repo.get(inv.ID).Paid = true
		uc := NewUpdateInvoiceUseCase(repo, storage)

		out, err := uc.Execute(ctx, UpdateInvoiceInput{InvoiceID: inv.ID, UserID: owner, Paid: ptr(false)})
		require.NoError(t, err)
		assert.False(t, out.Invoice.Paid)
	})

	t.Run("number and description can be cleared", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, false)
		uc := NewUpdateInvoiceUseCase(repo, storage)

		out, err := uc.Execute(ctx, UpdateInvoiceInput{
			InvoiceID:        inv.ID,
			UserID:           owner,
			ClearNumber:      true,
			ClearDescription: true,
		})
		require.NoError(t, err)
		assert.Nil(t, out.Invoice.Number)
		assert.Nil(t, out.Invoice.Description)
	})

	t.Run("empty description is kept as empty", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, false)
		uc := NewUpdateInvoiceUseCase(repo, storage)

		out, err := uc.Execute(ctx, UpdateInvoiceInput{InvoiceID: inv.ID, UserID: owner, Description: ptr("")})
		require.NoError(t, err)
		require.NotNil(t, out.Invoice.Description)
		assert.Equal(t, "", *out.Invoice.Description)
	})

	t.Run("truthy values overwrite", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, false)
		uc := NewUpdateInvoiceUseCase(repo, storage)

		clientID := uuid.New()
		date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		out, err := uc.Execute(ctx, UpdateInvoiceInput{
			InvoiceID: inv.ID,
			UserID:    owner,
			ClientID:  &clientID,
			IssueDate: &date,
			Amount:    ptr(decimal.RequireFromString("250.75")),
		})
		require.NoError(t, err)
		assert.Equal(t, clientID, *out.Invoice.ClientID)
		assert.True(t, date.Equal(out.Invoice.IssueDate))
		assert.Equal(t, "250.75", out.Invoice.Amount.StringFixed(2))
	})

	t.Run("new file replaces the old one", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, true)
		oldName := *inv.Attachment
		uc := NewUpdateInvoiceUseCase(repo, storage)

		out, err := uc.Execute(ctx, UpdateInvoiceInput{InvoiceID: inv.ID, UserID: owner, Attachment: upload("new")})
		require.NoError(t, err)
		assert.NotEqual(t, oldName, *out.Invoice.Attachment)
		assert.False(t, storage.has(owner, oldName))
		assert.True(t, storage.has(owner, *out.Invoice.Attachment))
	})

	t.Run("taken number conflicts", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		first := seedInvoice(t, repo, storage, owner, false)
		second := seedInvoice(t, repo, storage, owner, false)
		uc := NewUpdateInvoiceUseCase(repo, storage)

		_, err := uc.Execute(ctx, UpdateInvoiceInput{InvoiceID: second.ID, UserID: owner, Number: first.Number})
		requireInvoiceCode(t, err, domainerror.ErrCodeDuplicateInvoiceNumber)
	})

	t.Run("rejected update keeps the previous file", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		withFile := seedInvoice(t, repo, storage, owner, true)
		oldName := *withFile.Attachment
		other := seedInvoice(t, repo, storage, owner, false)
		uc := NewUpdateInvoiceUseCase(repo, storage)

		_, err := uc.Execute(ctx, UpdateInvoiceInput{
			InvoiceID:  withFile.ID,
			UserID:     owner,
			Number:     other.Number,
			Attachment: upload("new"),
		})
		requireInvoiceCode(t, err, domainerror.ErrCodeDuplicateInvoiceNumber)

		stored := repo.get(withFile.ID)
		require.NotNil(t, stored.Attachment)
		assert.Equal(t, oldName, *stored.Attachment)
		assert.True(t, storage.has(owner, oldName))
		assert.Equal(t, 1, storage.count())
	})

	t.Run("storage failure leaves the invoice untouched", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, true)
		oldName := *inv.Attachment
		storage.storeErr = errors.New("disk full")
		uc := NewUpdateInvoiceUseCase(repo, storage)

		_, err := uc.Execute(ctx, UpdateInvoiceInput{InvoiceID: inv.ID, UserID: owner, Paid: ptr(true), Attachment: upload("new")})
		requireInvoiceCode(t, err, domainerror.ErrCodeAttachmentIO)
		assert.False(t, repo.get(inv.ID).Paid)
		assert.Equal(t, oldName, *repo.get(inv.ID).Attachment)
		assert.True(t, storage.has(owner, oldName))
	})

	t.Run("foreign invoice is not found", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, false)
		uc := NewUpdateInvoiceUseCase(repo, storage)

		_, err := uc.Execute(ctx, UpdateInvoiceInput{InvoiceID: inv.ID, UserID: uuid.New(), Paid: ptr(true)})
		requireInvoiceCode(t, err, domainerror.ErrCodeInvoiceNotFound)
		assert.False(t, repo.get(inv.ID).Paid)
	})
}

func TestDeleteInvoice(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("removes record and file", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, true)
		uc := NewDeleteInvoiceUseCase(repo, storage)

		require.NoError(t, uc.Execute(ctx, DeleteInvoiceInput{InvoiceID: inv.ID, UserID: owner}))
		assert.Nil(t, repo.get(inv.ID))
		assert.Zero(t, storage.count())
	})

	t.Run("file failure does not block deletion", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, true)
		storage.deleteErr = errors.New("permission denied")
		uc := NewDeleteInvoiceUseCase(repo, storage)

		require.NoError(t, uc.Execute(ctx, DeleteInvoiceInput{InvoiceID: inv.ID, UserID: owner}))
		assert.Nil(t, repo.get(inv.ID))
	})

	t.Run("foreign invoice is not found", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, true)
		uc := NewDeleteInvoiceUseCase(repo, storage)

		err := uc.Execute(ctx, DeleteInvoiceInput{InvoiceID: inv.ID, UserID: uuid.New()})
		requireInvoiceCode(t, err, domainerror.ErrCodeInvoiceNotFound)
		assert.NotNil(t, repo.get(inv.ID))
		assert.Equal(t, 1, storage.count())
	})
}

func TestClearAttachment(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("deletes file and clears reference", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, true)
		uc := NewClearAttachmentUseCase(repo, storage)

		out, err := uc.Execute(ctx, ClearAttachmentInput{InvoiceID: inv.ID, UserID: owner})
		require.NoError(t, err)
		assert.Nil(t, out.Attachment)
		assert.Nil(t, out.AttachmentURL)
		assert.Nil(t, repo.get(inv.ID).Attachment)
		assert.Zero(t, storage.count())
	})

	t.Run("no attachment is a validation error", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, false)
		uc := NewClearAttachmentUseCase(repo, storage)

		_, err := uc.Execute(ctx, ClearAttachmentInput{InvoiceID: inv.ID, UserID: owner})
		requireInvoiceCode(t, err, domainerror.ErrCodeNoAttachment)
	})

	t.Run("io failure aborts and keeps reference", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, true)
		storage.deleteErr = errors.New("permission denied")
		uc := NewClearAttachmentUseCase(repo, storage)

		_, err := uc.Execute(ctx, ClearAttachmentInput{InvoiceID: inv.ID, UserID: owner})
		requireInvoiceCode(t, err, domainerror.ErrCodeAttachmentIO)
		assert.NotNil(t, repo.get(inv.ID).Attachment)
	})

	t.Run("missing file still clears reference", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		inv := seedInvoice(t, repo, storage, owner, true)
		require.NoError(t, storage.Delete(ctx, owner, *inv.Attachment))
		uc := NewClearAttachmentUseCase(repo, storage)

		_, err := uc.Execute(ctx, ClearAttachmentInput{InvoiceID: inv.ID, UserID: owner})
		require.NoError(t, err)
		assert.Nil(t, repo.get(inv.ID).Attachment)
	})
}

func TestListInvoices(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("applies defaults", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		for i := 0; i < 7; i++ {
			seedInvoice(t, repo, storage, owner, false)
		}
		seedInvoice(t, repo, storage, uuid.New(), false)
		uc := NewListInvoicesUseCase(repo, storage)

		out, err := uc.Execute(ctx, ListInvoicesInput{UserID: owner, Page: 0, Limit: -3})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Page)
		assert.Equal(t, DefaultPageLimit, out.Limit)
		assert.Len(t, out.Invoices, DefaultPageLimit)
		assert.EqualValues(t, 7, out.Total)
		assert.Equal(t, adapter.InvoiceSortByIssueDate, repo.lastFilter.SortField)
		assert.False(t, repo.lastFilter.SortAscending)
	})

	t.Run("passes normalized filter", func(t *testing.T) {
		repo, storage := newFakeInvoiceRepository(), newFakeStorage()
		uc := NewListInvoicesUseCase(repo, storage)

		_, err := uc.Execute(ctx, ListInvoicesInput{
			UserID:    owner,
			Page:      2,
			Limit:     3,
			SortField: "importe",
			SortOrder: "ASC",
			Search:    "  F 00 1\t",
		})
		require.NoError(t, err)
		assert.Equal(t, "f001", repo.lastFilter.Search)
		assert.Equal(t, adapter.InvoiceSortByAmount, repo.lastFilter.SortField)
		assert.True(t, repo.lastFilter.SortAscending)
		assert.Equal(t, adapter.InvoicePagination{Page: 2, Limit: 3}, repo.lastPage)
	})
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		key      string
		expected adapter.InvoiceSortField
	}{
		{"fechaEmision", adapter.InvoiceSortByIssueDate},
		{"importe", adapter.InvoiceSortByAmount},
		{"estado", adapter.InvoiceSortByStatus},
		{"numero", adapter.InvoiceSortByNumber},
		{"descripcion", adapter.InvoiceSortByDescription},
		{"cliente", adapter.InvoiceSortByClient},
		{"createdAt", adapter.InvoiceSortByCreatedAt},
		{"", adapter.InvoiceSortByIssueDate},
		{"amount; DROP TABLE invoices", adapter.InvoiceSortByIssueDate},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSortField(tt.key))
		})
	}
}
