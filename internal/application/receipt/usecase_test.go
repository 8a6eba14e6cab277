package receipt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-mmg/internal/domain"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

type stubItems map[string]*entity.IssuedItem

func (s stubItems) GetIssuedItem(_ context.Context, actor entity.Actor, id string) (*entity.IssuedItem, error) {
	it, ok := s[id]
	if !ok || it.IssuedTo != actor.ID {
		return nil, domain.ErrNotFound
	}
	return it, nil
}

type stubGenerator struct{ err error }

func (g stubGenerator) GenerateIssuanceSlip(_ context.Context, it *entity.IssuedItem) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF " + it.LedgerNumber), nil
}

func TestDownload(t *testing.T) {
	items := stubItems{"it-1": {ID: "it-1", LedgerNumber: "900", IssuedTo: "u1"}}
	owner := entity.Actor{ID: "u1", Role: entity.RoleUser}

	uc := NewUseCase(items, stubGenerator{})
	out, name, err := uc.Download(context.Background(), owner, "it-1")
	require.NoError(t, err)
	assert.Equal(t, "entrega-900.pdf", name)
	assert.Equal(t, "%PDF 900", string(out))

	_, _, err = uc.Download(context.Background(), entity.Actor{ID: "u2"}, "it-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	uc = NewUseCase(items, stubGenerator{err: errors.New("fuente faltante")})
	_, _, err = uc.Download(context.Background(), owner, "it-1")
	assert.ErrorContains(t, err, "fuente faltante")
}
