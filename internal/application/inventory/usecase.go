package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrocampo/agrocampo-api/internal/application/dto"
	"github.com/agrocampo/agrocampo-api/internal/domain"
	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
	"github.com/agrocampo/agrocampo-api/internal/domain/ledger"
	"github.com/agrocampo/agrocampo-api/internal/domain/repository"
	"github.com/agrocampo/agrocampo-api/internal/domain/unit"
	"github.com/agrocampo/agrocampo-api/pkg/logger"
)

// LedgerUseCase es la superficie pública del libro de inventario: creación de
// insumos, registro de movimientos, conciliación de conteos, borrado en
// cascada, histórico y verificación por replay.
//
// Toda mutación pasa por el motor de dominio (ledger.Apply) dentro de una
// transacción con bloqueo de fila (SELECT FOR UPDATE): dos movimientos
// concurrentes sobre el mismo insumo no pueden leer el mismo promedio viejo.
type LedgerUseCase struct {
	txRunner      TxRunner
	itemRepo      repository.ItemRepository
	movRepo       repository.MovementRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:      txRunner,
		itemRepo:      itemRepo,
		movRepo:       movRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// CreateItem registra un insumo nuevo. La unidad base se deriva de la
// dimensión física de la unidad de compra y queda fija. Si OpeningQuantity > 0
// se aplica el primer movimiento IN (saldo inicial) en la misma transacción.
func (uc *LedgerUseCase) CreateItem(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ApplyMovementResponse, error) {
	if in.Name == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	baseKind, err := unit.BaseKindOf(in.PurchaseUnit)
	if err != nil {
		return nil, err
	}
	if in.MinStock.LessThan(decimal.Zero) || in.OpeningQuantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	item := entity.InventoryItem{
		ID:               uuid.New().String(),
		WarehouseID:      in.WarehouseID,
		Name:             in.Name,
		Category:         in.Category,
		BaseUnit:         baseKind,
		CurrentQuantity:  decimal.Zero,
		AverageCost:      decimal.Zero,
		LastPurchaseUnit: in.PurchaseUnit,
		MinStock:         in.MinStock,
		ExpirationDate:   in.ExpirationDate,
		Description:      in.Description,
		ImageRef:         in.ImageRef,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if in.UnitPrice != nil {
		item.LastPurchasePrice = *in.UnitPrice
	}

	var movResp *dto.MovementResponse
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		if in.OpeningQuantity.GreaterThan(decimal.Zero) {
			// Saldo inicial como primer movimiento: el estado del insumo queda
			// siempre reproducible desde su histórico.
			res, err := ledger.Apply(item, ledger.MovementRequest{
				Type:           entity.MovementTypeIN,
				Quantity:       in.OpeningQuantity,
				Unit:           in.PurchaseUnit,
				UnitPrice:      in.UnitPrice,
				ExpirationDate: in.ExpirationDate,
				Notes:          "saldo inicial",
			}, now)
			if err != nil {
				return err
			}
			item = res.Item
			mov := res.Movement
			mov.ID = uuid.New().String()
			mov.CreatedBy = userID
			if err := itemRepo.Create(&item); err != nil {
				return err
			}
			if err := movRepo.Create(&mov); err != nil {
				return err
			}
			movResp = ToMovementResponse(&mov)
			return nil
		}
		return itemRepo.Create(&item)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ApplyMovementResponse{Item: *ToItemResponse(&item, time.Now()), Movement: movResp}, nil
}

// RegisterMovement aplica un movimiento IN/OUT sobre un insumo. Transacción
// completa: lee el estado con bloqueo de fila, aplica el motor y persiste
// insumo + movimiento juntos.
func (uc *LedgerUseCase) RegisterMovement(ctx context.Context, userID, itemID string, in dto.RegisterMovementRequest) (*dto.ApplyMovementResponse, error) {
	var out *dto.ApplyMovementResponse
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		res, err := ledger.Apply(*item, ledger.MovementRequest{
			Type:           in.Type,
			Quantity:       in.Quantity,
			Unit:           in.Unit,
			UnitPrice:      in.UnitPrice,
			ExpirationDate: in.ExpirationDate,
			Date:           in.Date,
			Supplier:       in.Supplier,
			CostCenter:     in.CostCenter,
			Personnel:      in.Personnel,
			InvoiceRef:     in.InvoiceRef,
			Notes:          in.Notes,
		}, time.Now())
		if err != nil {
			return err
		}
		if res.Shortfall.GreaterThan(decimal.Zero) {
			// Anomalía de negocio, no error: queda en el movimiento y en el log.
			uc.log.Warn().
				Str("item_id", itemID).
				Str("shortfall", res.Shortfall.String()).
				Msg("salida mayor al stock disponible: cantidad recortada a cero")
		}
		mov := res.Movement
		mov.ID = uuid.New().String()
		mov.CreatedBy = userID
		if err := itemRepo.Update(&res.Item); err != nil {
			return err
		}
		if err := movRepo.Create(&mov); err != nil {
			return err
		}
		out = &dto.ApplyMovementResponse{
			Item:     *ToItemResponse(&res.Item, time.Now()),
			Movement: ToMovementResponse(&mov),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReconcileCount concilia un conteo físico contra el stock registrado. Si hay
// diferencia genera el movimiento sintético (valorado al promedio vigente:
// neutro en costo) y lo aplica en la misma transacción. Sin diferencia no se
// crea movimiento.
func (uc *LedgerUseCase) ReconcileCount(ctx context.Context, userID, itemID string, in dto.ReconcileRequest) (*dto.ApplyMovementResponse, error) {
	if in.PhysicalQuantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.ApplyMovementResponse
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		req, err := ledger.Reconcile(*item, in.PhysicalQuantity, in.Justification)
		if err != nil {
			return err
		}
		if req == nil {
			// Conteo exacto: no-op.
			out = &dto.ApplyMovementResponse{Item: *ToItemResponse(item, time.Now())}
			return nil
		}
		res, err := ledger.Apply(*item, *req, time.Now())
		if err != nil {
			return err
		}
		mov := res.Movement
		mov.ID = uuid.New().String()
		mov.CreatedBy = userID
		if err := itemRepo.Update(&res.Item); err != nil {
			return err
		}
		if err := movRepo.Create(&mov); err != nil {
			return err
		}
		out = &dto.ApplyMovementResponse{
			Item:     *ToItemResponse(&res.Item, time.Now()),
			Movement: ToMovementResponse(&mov),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteItem borra un insumo y todo su histórico de movimientos en una sola
// transacción (borrado multi-registro atómico). En este diseño el histórico no
// tiene sentido sin el insumo que describe.
func (uc *LedgerUseCase) DeleteItem(ctx context.Context, itemID string) error {
	return uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		if err := movRepo.DeleteByItem(itemID); err != nil {
			return err
		}
		return itemRepo.Delete(itemID)
	})
}

// GetItem devuelve un insumo por ID.
func (uc *LedgerUseCase) GetItem(ctx context.Context, itemID string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return ToItemResponse(item, time.Now()), nil
}

// ListItems lista los insumos de una bodega con paginación.
func (uc *LedgerUseCase) ListItems(ctx context.Context, warehouseID string, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.itemRepo.ListByWarehouse(warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *ToItemResponse(it, now))
	}
	return &dto.ItemListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// GetHistory devuelve el histórico de un insumo, del más reciente al más
// antiguo, con filtros de fecha opcionales.
func (uc *LedgerUseCase) GetHistory(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	list, err := uc.movRepo.ListByItem(itemID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	movs := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		movs = append(movs, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{Movements: movs, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// VerifyReplay reproduce el histórico completo del insumo desde cero y lo
// compara contra el estado vivo: la garantía de auditabilidad del libro como
// endpoint de verificación.
func (uc *LedgerUseCase) VerifyReplay(ctx context.Context, itemID string) (*dto.ReplayResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	history, err := uc.movRepo.ListByItemAsc(itemID)
	if err != nil {
		return nil, err
	}
	state, err := ledger.Replay(*item, history)
	if err != nil {
		return nil, err
	}
	consistent := state.Matches(*item)
	if !consistent {
		uc.log.Warn().
			Str("item_id", itemID).
			Str("live_qty", item.CurrentQuantity.String()).
			Str("replay_qty", state.Quantity.String()).
			Msg("replay inconsistente con el estado vivo")
	}
	return &dto.ReplayResponse{
		ItemID:            itemID,
		Consistent:        consistent,
		LiveQuantity:      item.CurrentQuantity,
		LiveAverageCost:   item.AverageCost,
		ReplayQuantity:    state.Quantity,
		ReplayAverageCost: state.AverageCost,
		MovementsReplayed: len(history),
	}, nil
}

// CompareSuppliers ranking informativo de proveedores para un insumo.
func (uc *LedgerUseCase) CompareSuppliers(ctx context.Context, itemID string) ([]dto.SupplierPriceDTO, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	history, err := uc.movRepo.ListByItemAsc(itemID)
	if err != nil {
		return nil, err
	}
	ranking, err := ledger.CompareSuppliers(*item, history)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierPriceDTO, 0, len(ranking))
	for _, r := range ranking {
		out = append(out, dto.SupplierPriceDTO{
			Supplier:      r.Supplier,
			CostPerUnit:   r.CostPerUnit,
			CompareUnit:   r.CompareUnit,
			PurchaseCount: r.PurchaseCount,
			TotalQuantity: r.TotalQuantity,
		})
	}
	return out, nil
}

func validCategory(c string) bool {
	for _, v := range entity.Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ToItemResponse mapea la entidad al DTO, incluyendo los derivados (valor de
// stock, bajo stock, estado de vencimiento contra now).
func ToItemResponse(item *entity.InventoryItem, now time.Time) *dto.ItemResponse {
	if item == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:                item.ID,
		WarehouseID:       item.WarehouseID,
		Name:              item.Name,
		Category:          item.Category,
		BaseUnit:          item.BaseUnit,
		CurrentQuantity:   item.CurrentQuantity,
		AverageCost:       item.AverageCost,
		StockValue:        item.StockValue(),
		LastPurchasePrice: item.LastPurchasePrice,
		LastPurchaseUnit:  item.LastPurchaseUnit,
		MinStock:          item.MinStock,
		LowStock:          item.IsLowStock(),
		ExpirationDate:    item.ExpirationDate,
		ExpirationStatus:  ledger.ExpirationStatus(item.ExpirationDate, now),
		Description:       item.Description,
		ImageRef:          item.ImageRef,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:             m.ID,
		WarehouseID:    m.WarehouseID,
		ItemID:         m.ItemID,
		ItemName:       m.ItemName,
		Type:           m.Type,
		Quantity:       m.Quantity,
		Unit:           m.Unit,
		CalculatedCost: m.CalculatedCost,
		Discrepancy:    m.Discrepancy,
		Date:           m.Date,
		Supplier:       m.Supplier,
		CostCenter:     m.CostCenter,
		Personnel:      m.Personnel,
		InvoiceRef:     m.InvoiceRef,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}
