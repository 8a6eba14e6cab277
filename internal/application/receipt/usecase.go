// Package receipt genera el comprobante de entrega de un artículo emitido.
package receipt

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

// ItemReader lectura de artículos con las reglas de visibilidad del flujo.
type ItemReader interface {
	GetIssuedItem(ctx context.Context, actor entity.Actor, id string) (*entity.IssuedItem, error)
}

// SlipGenerator genera el PDF del comprobante.
type SlipGenerator interface {
	GenerateIssuanceSlip(ctx context.Context, item *entity.IssuedItem) ([]byte, error)
}

// UseCase comprobante de entrega.
type UseCase struct {
	items     ItemReader
	generator SlipGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(items ItemReader, generator SlipGenerator) *UseCase {
	return &UseCase{items: items, generator: generator}
}

// Download devuelve el PDF y el nombre de archivo.
// Un artículo que el actor no puede ver responde domain.ErrNotFound.
func (uc *UseCase) Download(ctx context.Context, actor entity.Actor, issuedItemID string) (pdfBytes []byte, filename string, err error) {
	item, err := uc.items.GetIssuedItem(ctx, actor, issuedItemID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateIssuanceSlip(ctx, item)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: %w", err)
	}
	return pdfBytes, fmt.Sprintf("entrega-%s.pdf", item.LedgerNumber), nil
}
