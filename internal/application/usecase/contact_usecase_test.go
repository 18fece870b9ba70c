package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
)

func contact(name string, primary, emergency bool) dto.ContactRequest {
	return dto.ContactRequest{Name: name, PhoneNumber: "5550000000", Relation: "Familiar", IsPrimary: primary, IsEmergency: emergency}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, code, verr.Code)
}

func TestContact_PrimerContactoDebeLlevarAmbasMarcas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.janeDoe(t)

	_, err := f.contacts.Add(ctx, jane.ID, contact("John Doe", false, false))
	requireCode(t, err, domain.CodeContactPrimaryRequired)

	_, err = f.contacts.Add(ctx, jane.ID, contact("John Doe", true, false))
	requireCode(t, err, domain.CodeContactEmergencyRequired)

	out, err := f.contacts.Add(ctx, jane.ID, contact("John Doe", true, true))
	require.NoError(t, err)
	assert.True(t, out.IsPrimary)
	assert.True(t, out.IsEmergency)
	assert.Equal(t, jane.ID, out.CustomerID)
}

func TestContact_SegundaMarcaRechazada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.janeDoe(t)
	_, err := f.contacts.Add(ctx, jane.ID, contact("John Doe", true, true))
	require.NoError(t, err)

	_, err = f.contacts.Add(ctx, jane.ID, contact("Mary Doe", true, false))
	requireCode(t, err, domain.CodeContactPrimaryTaken)

	_, err = f.contacts.Add(ctx, jane.ID, contact("Mary Doe", false, true))
	requireCode(t, err, domain.CodeContactEmergencyTaken)

	_, err = f.contacts.Add(ctx, jane.ID, contact("Mary Doe", false, false))
	require.NoError(t, err)

	list, err := f.contacts.List(ctx, jane.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestContact_ActualizarExcluyeAlPropio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.janeDoe(t)
	john, err := f.contacts.Add(ctx, jane.ID, contact("John Doe", true, true))
	require.NoError(t, err)

	in := contact("John A. Doe", true, true)
	in.PhoneNumber = "5559999999"
	out, err := f.contacts.Update(ctx, jane.ID, john.ID, in)
	require.NoError(t, err, "el contacto actualizado no compite consigo mismo")
	assert.Equal(t, "John A. Doe", out.Name)
	assert.Equal(t, "5559999999", out.PhoneNumber)

	_, err = f.contacts.Update(ctx, jane.ID, john.ID, contact("John Doe", false, true))
	requireCode(t, err, domain.CodeContactPrimaryRequired)

	_, err = f.contacts.Update(ctx, jane.ID, "no-existe", contact("X", false, false))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContact_Borrar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.janeDoe(t)
	john, err := f.contacts.Add(ctx, jane.ID, contact("John Doe", true, true))
	require.NoError(t, err)
	mary, err := f.contacts.Add(ctx, jane.ID, contact("Mary Doe", false, false))
	require.NoError(t, err)

	err = f.contacts.Delete(ctx, jane.ID, john.ID)
	requireCode(t, err, domain.CodeContactPrimaryRequired)

	require.NoError(t, f.contacts.Delete(ctx, jane.ID, mary.ID))
	require.NoError(t, f.contacts.Delete(ctx, jane.ID, john.ID), "el último contacto puede borrarse")

	list, err := f.contacts.List(ctx, jane.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, f.contacts.Delete(ctx, jane.ID, john.ID), domain.ErrNotFound)
}

func TestContact_DesignarTrasladaAmbasMarcas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.janeDoe(t)
	john, err := f.contacts.Add(ctx, jane.ID, contact("John Doe", true, true))
	require.NoError(t, err)
	mary, err := f.contacts.Add(ctx, jane.ID, contact("Mary Doe", false, false))
	require.NoError(t, err)

	list, err := f.contacts.Designate(ctx, jane.ID, mary.ID, dto.DesignateContactRequest{Primary: true, Emergency: true})
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, c := range list {
		switch c.ID {
		case john.ID:
			assert.False(t, c.IsPrimary)
			assert.False(t, c.IsEmergency)
		case mary.ID:
			assert.True(t, c.IsPrimary)
			assert.True(t, c.IsEmergency)
		}
	}

	_, err = f.contacts.Designate(ctx, jane.ID, mary.ID, dto.DesignateContactRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.contacts.Designate(ctx, jane.ID, "no-existe", dto.DesignateContactRequest{Primary: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContact_ClienteInexistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.contacts.List(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.contacts.Add(ctx, "no-existe", contact("John Doe", true, true))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContact_ContactoDeOtroClienteNoSeToca(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.janeDoe(t)
	other, err := f.customers.Create(ctx, f.customerRequest(t, "C002", "Otro", "WXYZ010101HDFRRN09"))
	require.NoError(t, err)
	john, err := f.contacts.Add(ctx, jane.ID, contact("John Doe", true, true))
	require.NoError(t, err)

	assert.ErrorIs(t, f.contacts.Delete(ctx, other.ID, john.ID), domain.ErrNotFound)
	_, err = f.contacts.Update(ctx, other.ID, john.ID, contact("X", true, true))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContact_AltasConcurrentesSeSerializan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.janeDoe(t)

	const n = 8
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.contacts.Add(ctx, jane.ID, contact(fmt.Sprintf("Contacto %d", i), true, true))
		}(i)
	}
	close(start)
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		var verr *domain.ValidationError
		if assert.ErrorAs(t, err, &verr) {
			assert.Equal(t, domain.CodeContactPrimaryTaken, verr.Code)
		}
	}
	assert.Equal(t, 1, ok, "solo una alta obtiene la marca principal")

	list, err := f.contacts.List(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsPrimary)
	assert.True(t, list[0].IsEmergency)
}
