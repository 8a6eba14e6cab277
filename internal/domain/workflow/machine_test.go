package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-mmg/internal/domain"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

var allStatuses = []entity.RequestStatus{
	entity.StatusPending,
	entity.StatusDepartmentApproved,
	entity.StatusMMGApproved,
	entity.StatusRejected,
	entity.StatusReturnPending,
	entity.StatusReturnApproved,
}

func TestTransition_Check(t *testing.T) {
	cases := []struct {
		tr      Transition
		allowed []entity.RequestStatus
	}{
		{DepartmentApprove, []entity.RequestStatus{entity.StatusPending}},
		{MMGApprove, []entity.RequestStatus{entity.StatusDepartmentApproved}},
		{Reject, []entity.RequestStatus{entity.StatusPending, entity.StatusDepartmentApproved}},
		{ReturnApprove, []entity.RequestStatus{entity.StatusReturnPending}},
	}
	for _, tc := range cases {
		for _, s := range allStatuses {
			err := tc.tr.Check(s)
			want := false
			for _, a := range tc.allowed {
				if a == s {
					want = true
				}
			}
			if want {
				assert.NoError(t, err, "%s desde %s", tc.tr.Name, s)
			} else {
				assert.True(t, errors.Is(err, domain.ErrInvalidStatusTransition), "%s desde %s", tc.tr.Name, s)
			}
		}
	}
}

func TestTerminalStatesRejectEveryTransition(t *testing.T) {
	for _, s := range allStatuses {
		if !IsTerminal(s) {
			continue
		}
		for _, tr := range Transitions() {
			assert.Error(t, tr.Check(s), "%s desde terminal %s", tr.Name, s)
		}
	}
	assert.True(t, IsTerminal(entity.StatusRejected))
	assert.False(t, IsTerminal(entity.StatusReturnPending))
}

func TestCanCancel(t *testing.T) {
	for _, s := range allStatuses {
		assert.Equal(t, s == entity.StatusPending, CanCancel(s), string(s))
	}
}
