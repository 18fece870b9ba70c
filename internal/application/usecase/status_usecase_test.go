package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

func TestStatus_AltaYOrden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.janeDoe(t)
	activo, err := f.catalogs.CreateClientStatus(ctx, dto.ClientStatusRequest{Name: "Activo"})
	require.NoError(t, err)
	baja, err := f.catalogs.CreateClientStatus(ctx, dto.ClientStatusRequest{Name: "Baja"})
	require.NoError(t, err)

	first, err := f.statuses.Append(ctx, jane.ID, "user-1", dto.CustomerStatusRequest{StatusID: activo.ID, Reason: " Inscripción "})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "Inscripción", first.Reason)
	require.NotNil(t, first.ChangedBy)
	assert.Equal(t, "user-1", *first.ChangedBy)
	assert.False(t, first.DateChanged.IsZero(), "la fecha la fija el almacenamiento")

	second, err := f.statuses.Append(ctx, jane.ID, "", dto.CustomerStatusRequest{StatusID: baja.ID, Reason: "Mudanza"})
	require.NoError(t, err)
	assert.Nil(t, second.ChangedBy)

	history, err := f.statuses.List(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID)
	assert.Equal(t, "Baja", history[1].StatusName)

	detail, err := f.customers.GetByID(ctx, jane.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.CurrentStatus)
	assert.Equal(t, second.ID, detail.CurrentStatus.ID, "el estado actual es la última entrada")
}

func TestStatus_AltaValidaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.janeDoe(t)
	activo, err := f.catalogs.CreateClientStatus(ctx, dto.ClientStatusRequest{Name: "Activo"})
	require.NoError(t, err)

	_, err = f.statuses.Append(ctx, jane.ID, "", dto.CustomerStatusRequest{StatusID: activo.ID, Reason: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.statuses.Append(ctx, jane.ID, "", dto.CustomerStatusRequest{StatusID: "no-existe", Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.statuses.Append(ctx, "no-existe", "", dto.CustomerStatusRequest{StatusID: activo.ID, Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatus_EntradaPersistidaEsInmutable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.janeDoe(t)
	activo, err := f.catalogs.CreateClientStatus(ctx, dto.ClientStatusRequest{Name: "Activo"})
	require.NoError(t, err)
	entry, err := f.statuses.Append(ctx, jane.ID, "", dto.CustomerStatusRequest{StatusID: activo.ID, Reason: "Alta"})
	require.NoError(t, err)

	err = f.statuses.Save(ctx, &entity.CustomerStatus{ID: entry.ID, CustomerID: jane.ID, StatusID: activo.ID, Reason: "otra"})
	assert.ErrorIs(t, err, domain.ErrStatusImmutable)
	assert.EqualError(t, err, "Cannot modify an existing status. You can only add new statuses.")

	err = f.statuses.Modify(ctx, jane.ID, entry.ID, dto.CustomerStatusRequest{StatusID: activo.ID, Reason: "otra"})
	requireCode(t, err, domain.CodeStatusImmutable)

	err = f.statuses.Modify(ctx, jane.ID, "no-existe", dto.CustomerStatusRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	history, err := f.statuses.List(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Alta", history[0].Reason)
}

func TestStatus_RegistroGlobal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.janeDoe(t)
	john, err := f.customers.Create(ctx, f.customerRequest(t, "C002", "John Doe", "WXYZ010101HDFRRN09"))
	require.NoError(t, err)
	activo, err := f.catalogs.CreateClientStatus(ctx, dto.ClientStatusRequest{Name: "Activo"})
	require.NoError(t, err)
	baja, err := f.catalogs.CreateClientStatus(ctx, dto.ClientStatusRequest{Name: "Baja"})
	require.NoError(t, err)

	_, err = f.statuses.Append(ctx, jane.ID, "", dto.CustomerStatusRequest{StatusID: activo.ID, Reason: "Inscripción"})
	require.NoError(t, err)
	_, err = f.statuses.Append(ctx, john.ID, "", dto.CustomerStatusRequest{StatusID: activo.ID, Reason: "Inscripción"})
	require.NoError(t, err)
	last, err := f.statuses.Append(ctx, jane.ID, "", dto.CustomerStatusRequest{StatusID: baja.ID, Reason: "Mudanza"})
	require.NoError(t, err)

	all, err := f.statuses.Search(ctx, dto.StatusChangeListRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, 3, all.Page.Total)
	assert.Equal(t, 20, all.Page.Limit)
	assert.Equal(t, last.ID, all.Items[0].ID)
	assert.Equal(t, "C001", all.Items[0].ClientCode)
	assert.Equal(t, "Jane Doe", all.Items[0].CustomerName)
	assert.Equal(t, "Baja", all.Items[0].StatusName)

	activos, err := f.statuses.Search(ctx, dto.StatusChangeListRequest{StatusID: activo.ID})
	require.NoError(t, err)
	assert.Len(t, activos.Items, 2)
	for _, it := range activos.Items {
		assert.Equal(t, activo.ID, it.StatusID)
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(dto.DateLayout)
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(dto.DateLayout)
	window, err := f.statuses.Search(ctx, dto.StatusChangeListRequest{From: yesterday, To: tomorrow})
	require.NoError(t, err)
	assert.Len(t, window.Items, 3)
	old, err := f.statuses.Search(ctx, dto.StatusChangeListRequest{To: yesterday})
	require.NoError(t, err)
	assert.Empty(t, old.Items)

	page, err := f.statuses.Search(ctx, dto.StatusChangeListRequest{PageRequest: dto.PageRequest{Limit: 1, Offset: 2}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Page.Total)
}

func TestStatus_RegistroGlobalValidaFiltros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.statuses.Search(ctx, dto.StatusChangeListRequest{From: "15/01/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.statuses.Search(ctx, dto.StatusChangeListRequest{From: "2024-02-01", To: "2024-01-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.statuses.Search(ctx, dto.StatusChangeListRequest{StatusID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sameDay, err := f.statuses.Search(ctx, dto.StatusChangeListRequest{From: "2024-01-01", To: "2024-01-01"})
	require.NoError(t, err, "un mismo día es un rango válido")
	assert.Empty(t, sameDay.Items)
}
