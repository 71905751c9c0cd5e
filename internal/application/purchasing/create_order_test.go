package purchasing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

const (
	companyID  = "co-1"
	otraCo     = "co-2"
	userID     = "user-1"
	vendorID   = "vendor-1"
	productoID = "prod-1"
	proyectoID = "proj-1"
	bodegaID   = "wh-1"
)

// seedStore crea una tienda con proveedor, producto y bodega de la empresa de prueba.
func seedStore() *memStore {
	s := newMemStore()
	s.vendors[vendorID] = &entity.Vendor{ID: vendorID, CompanyID: companyID, Name: "Ferretería El Tornillo"}
	s.products[productoID] = &entity.Product{ID: productoID, CompanyID: companyID, SKU: "CEM-50", Name: "Cemento gris 50kg"}
	s.warehouses[bodegaID] = &entity.Warehouse{ID: bodegaID, CompanyID: companyID, Name: "Bodega principal"}
	return s
}

func buildCreateUC(s *memStore) *purchasing.CreateOrderUseCase {
	return purchasing.NewCreateOrderUseCase(
		&memTxRunner{s: s},
		&memOrderRepo{s: s},
		&memVendorRepo{s: s},
		&memProductRepo{s: s},
		&memAuditRepo{s: s},
	)
}

func buildStatusUC(s *memStore) *purchasing.OrderStatusUseCase {
	return purchasing.NewOrderStatusUseCase(&memOrderRepo{s: s}, &memAuditRepo{s: s})
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ordenBasica() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		VendorID: vendorID,
		Items: []dto.CreateOrderItemRequest{
			{
				ProductID:   productoID,
				ProjectID:   proyectoID,
				Description: "Cemento gris 50kg",
				Quantity:    d("10"),
				UnitPrice:   d("100"),
				TaxRate:     d("0.19"),
			},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación: totales, consecutivo y estado inicial
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_TotalesYEstadoInicial(t *testing.T) {
	s := seedStore()
	uc := buildCreateUC(s)

	in := ordenBasica()
	in.Items = append(in.Items, dto.CreateOrderItemRequest{
		Description: "Flete a obra", // línea sin producto ni proyecto
		Quantity:    d("1"),
		UnitPrice:   d("250"),
		TaxRate:     d("0"),
	})

	order, err := uc.CreateOrder(context.Background(), companyID, userID, in)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusDraft, order.Status)
	assert.Equal(t, int64(1), order.Number)
	assert.True(t, order.NetTotal.Equal(d("1250")), "neto: 10×100 + 1×250")
	assert.True(t, order.TaxTotal.Equal(d("190")), "IVA solo de la línea gravada")
	assert.True(t, order.GrandTotal.Equal(d("1440")))
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].ReceivedQuantity.IsZero())
}

func TestCreateOrder_ConsecutivoPorEmpresa(t *testing.T) {
	s := seedStore()
	s.vendors["vendor-2"] = &entity.Vendor{ID: "vendor-2", CompanyID: otraCo, Name: "Otro proveedor"}
	uc := buildCreateUC(s)
	ctx := context.Background()

	o1, err := uc.CreateOrder(ctx, companyID, userID, ordenBasica())
	require.NoError(t, err)
	o2, err := uc.CreateOrder(ctx, companyID, userID, ordenBasica())
	require.NoError(t, err)

	otra := ordenBasica()
	otra.VendorID = "vendor-2"
	otra.Items[0].ProductID = "" // producto de co-1, no sirve para co-2
	o3, err := uc.CreateOrder(ctx, otraCo, userID, otra)
	require.NoError(t, err)

	assert.Equal(t, int64(1), o1.Number)
	assert.Equal(t, int64(2), o2.Number, "el consecutivo avanza de a uno por empresa")
	assert.Equal(t, int64(1), o3.Number, "cada empresa arranca su propia serie")
}

func TestCreateOrder_Validaciones(t *testing.T) {
	s := seedStore()
	uc := buildCreateUC(s)
	ctx := context.Background()

	sinLineas := ordenBasica()
	sinLineas.Items = nil
	_, err := uc.CreateOrder(ctx, companyID, userID, sinLineas)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	cantidadCero := ordenBasica()
	cantidadCero.Items[0].Quantity = d("0")
	_, err = uc.CreateOrder(ctx, companyID, userID, cantidadCero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	precioNegativo := ordenBasica()
	precioNegativo.Items[0].UnitPrice = d("-5")
	_, err = uc.CreateOrder(ctx, companyID, userID, precioNegativo)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")

	proveedorFantasma := ordenBasica()
	proveedorFantasma.VendorID = "vendor-nope"
	_, err = uc.CreateOrder(ctx, companyID, userID, proveedorFantasma)
	assert.ErrorIs(t, err, domain.ErrNotFound, "proveedor inexistente")

	productoFantasma := ordenBasica()
	productoFantasma.Items[0].ProductID = "prod-nope"
	_, err = uc.CreateOrder(ctx, companyID, userID, productoFantasma)
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}

func TestCreateOrder_ProveedorDeOtraEmpresa_Prohibido(t *testing.T) {
	s := seedStore()
	uc := buildCreateUC(s)

	_, err := uc.CreateOrder(context.Background(), otraCo, userID, ordenBasica())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones manuales
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_CicloNormal(t *testing.T) {
	s := seedStore()
	createUC := buildCreateUC(s)
	statusUC := buildStatusUC(s)
	ctx := context.Background()

	order, err := createUC.CreateOrder(ctx, companyID, userID, ordenBasica())
	require.NoError(t, err)

	sent, err := statusUC.UpdateStatus(ctx, companyID, userID, order.ID, entity.OrderStatusSent)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusSent, sent.Status)

	approved, err := statusUC.UpdateStatus(ctx, companyID, userID, order.ID, entity.OrderStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusApproved, approved.Status)
}

func TestUpdateStatus_SaltoDeEstado_Rechazado(t *testing.T) {
	s := seedStore()
	createUC := buildCreateUC(s)
	statusUC := buildStatusUC(s)
	ctx := context.Background()

	order, err := createUC.CreateOrder(ctx, companyID, userID, ordenBasica())
	require.NoError(t, err)

	// DRAFT no puede saltar directo a APPROVED
	_, err = statusUC.UpdateStatus(ctx, companyID, userID, order.ID, entity.OrderStatusApproved)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Los estados de recepción no se escriben a mano
	_, err = statusUC.UpdateStatus(ctx, companyID, userID, order.ID, entity.OrderStatusReceived)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Estado fuera del enum
	_, err = statusUC.UpdateStatus(ctx, companyID, userID, order.ID, "OPEN")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La anulación tiene guarda propia: UpdateStatus la rechaza aunque la tabla la permita.
func TestUpdateStatus_CancelacionVaPorCancelOrder(t *testing.T) {
	s := seedStore()
	createUC := buildCreateUC(s)
	statusUC := buildStatusUC(s)
	ctx := context.Background()

	order, err := createUC.CreateOrder(ctx, companyID, userID, ordenBasica())
	require.NoError(t, err)

	_, err = statusUC.UpdateStatus(ctx, companyID, userID, order.ID, entity.OrderStatusCanceled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancelOrder_SinRecepciones(t *testing.T) {
	s := seedStore()
	createUC := buildCreateUC(s)
	statusUC := buildStatusUC(s)
	ctx := context.Background()

	order, err := createUC.CreateOrder(ctx, companyID, userID, ordenBasica())
	require.NoError(t, err)

	canceled, err := statusUC.CancelOrder(ctx, companyID, userID, order.ID, "proveedor sin inventario")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCanceled, canceled.Status)
	assert.Contains(t, canceled.Notes, "Anulada: proveedor sin inventario")

	// Terminal: no hay vuelta atrás
	_, err = statusUC.UpdateStatus(ctx, companyID, userID, order.ID, entity.OrderStatusSent)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestGetOrder_DeOtraEmpresa_Prohibido(t *testing.T) {
	s := seedStore()
	createUC := buildCreateUC(s)
	ctx := context.Background()

	order, err := createUC.CreateOrder(ctx, companyID, userID, ordenBasica())
	require.NoError(t, err)

	_, err = createUC.GetOrder(ctx, otraCo, order.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallas de infraestructura: el error del repositorio viaja intacto
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_FallaDeRepositorioNoEs404(t *testing.T) {
	s := seedStore()
	dbErr := errors.New("conexión perdida")
	ctx := context.Background()

	// Falla buscando el proveedor
	uc := purchasing.NewCreateOrderUseCase(
		&memTxRunner{s: s},
		&memOrderRepo{s: s},
		&memVendorRepo{s: s, err: dbErr},
		&memProductRepo{s: s},
		&memAuditRepo{s: s},
	)
	_, err := uc.CreateOrder(ctx, companyID, userID, ordenBasica())
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	// Falla buscando un producto referenciado
	uc = purchasing.NewCreateOrderUseCase(
		&memTxRunner{s: s},
		&memOrderRepo{s: s},
		&memVendorRepo{s: s},
		&memProductRepo{s: s, err: dbErr},
		&memAuditRepo{s: s},
	)
	_, err = uc.CreateOrder(ctx, companyID, userID, ordenBasica())
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
