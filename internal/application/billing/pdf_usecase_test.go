package billing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/pkg/logger"
)

type fakeRenderer struct {
	calls int
	err   error
	last  *billing.InvoiceDocument
}

func (r *fakeRenderer) RenderInvoice(_ context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	r.calls++
	r.last = doc
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.3 " + doc.Invoice.InvoiceNumber), nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.data[key] = data
	return nil
}

type fakeMetrics struct{ outcomes []string }

func (m *fakeMetrics) ObserveRender(outcome string, _ time.Duration) { m.outcomes = append(m.outcomes, outcome) }

func newPDF(f *fixture, r billing.InvoiceRenderer, c billing.DocumentCache, m billing.RenderMetrics) *billing.PDFUseCase {
	return billing.NewPDFUseCase(
		f.store.Invoices(), f.store.Clients(), f.store.Items(), f.store.Business(),
		r, c, m, billing.PDFOptions{MaxConcurrent: 2, CacheTTL: time.Minute}, logger.Nop(),
	)
}

func TestDownloadPDF_SinPerfilDeEmpresa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv, err := f.invoices.Submit(ctx, f.request())
	require.NoError(t, err)

	r := &fakeRenderer{}
	_, _, err = newPDF(f, r, nil, nil).DownloadInvoicePDF(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, r.calls)
}

func TestDownloadPDF_CacheYNombre(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := billing.NewBusinessUseCase(f.store.Business()).Upsert(ctx, profileRequest("Rao Industries"))
	require.NoError(t, err)
	inv, err := f.invoices.Submit(ctx, f.request())
	require.NoError(t, err)

	r := &fakeRenderer{}
	m := &fakeMetrics{}
	uc := newPDF(f, r, &fakeCache{data: map[string][]byte{}}, m)

	data, name, err := uc.DownloadInvoicePDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice-INV24060001.pdf", name)
	assert.Equal(t, "%PDF-1.3 INV24060001", string(data))
	require.NotNil(t, r.last)
	assert.Equal(t, f.client.ID, r.last.Client.ID)
	require.Len(t, r.last.Lines, 1)
	assert.Equal(t, f.item.Name, r.last.Lines[0].Item.Name)

	_, _, err = uc.DownloadInvoicePDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, r.calls, "segunda descarga sale de caché")
	assert.Equal(t, []string{billing.RenderOutcomeOK, billing.RenderOutcomeCacheHit}, m.outcomes)
}

func TestDownloadPDF_CacheCaidaNoFalla(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := billing.NewBusinessUseCase(f.store.Business()).Upsert(ctx, profileRequest("Rao Industries"))
	require.NoError(t, err)
	inv, err := f.invoices.Submit(ctx, f.request())
	require.NoError(t, err)

	r := &fakeRenderer{}
	_, _, err = newPDF(f, r, &fakeCache{err: errors.New("redis caído")}, nil).DownloadInvoicePDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, r.calls)
}

func TestDownloadPDF_ErrorDeRender(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := billing.NewBusinessUseCase(f.store.Business()).Upsert(ctx, profileRequest("Rao Industries"))
	require.NoError(t, err)
	inv, err := f.invoices.Submit(ctx, f.request())
	require.NoError(t, err)

	r := &fakeRenderer{err: errors.New("fuente no disponible")}
	data, _, err := newPDF(f, r, nil, nil).DownloadInvoicePDF(ctx, inv.ID)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, domain.ErrRender)
	var rErr *domain.RenderError
	require.ErrorAs(t, err, &rErr)
	assert.Equal(t, "invoice", rErr.Op)
}

func TestDownloadPDF_ArticuloEliminado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := billing.NewBusinessUseCase(f.store.Business()).Upsert(ctx, profileRequest("Rao Industries"))
	require.NoError(t, err)
	inv, err := f.invoices.Submit(ctx, f.request())
	require.NoError(t, err)
	require.NoError(t, f.store.Items().Delete(ctx, f.item.ID))

	_, _, err = newPDF(f, &fakeRenderer{}, nil, nil).DownloadInvoicePDF(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadPDF_FacturaInexistente(t *testing.T) {
	f := newFixture(t)
	_, _, err := newPDF(f, &fakeRenderer{}, nil, nil).DownloadInvoicePDF(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadPDF_CacheSeInvalidaAlCambiarEntradas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clock := f.now
	business := billing.NewBusinessUseCase(f.store.Business()).
		WithClock(func() time.Time { return clock })
	_, err := business.Upsert(ctx, profileRequest("Rao Industries"))
	require.NoError(t, err)
	inv, err := f.invoices.Submit(ctx, f.request())
	require.NoError(t, err)

	r := &fakeRenderer{}
	uc := newPDF(f, r, &fakeCache{data: map[string][]byte{}}, nil)

	_, _, err = uc.DownloadInvoicePDF(ctx, inv.ID)
	require.NoError(t, err)

	clock = clock.Add(time.Minute)
	_, err = business.Upsert(ctx, profileRequest("Renamed Pvt Ltd"))
	require.NoError(t, err)

	_, _, err = uc.DownloadInvoicePDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, r.calls, "perfil modificado vuelve a renderizar")
	assert.Equal(t, "Renamed Pvt Ltd", r.last.Business.Name)

	require.NoError(t, f.store.Clients().Delete(ctx, f.client.ID))
	_, _, err = uc.DownloadInvoicePDF(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, r.calls)
}
