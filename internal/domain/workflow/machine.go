// Package workflow define la máquina de estados de las solicitudes.
//
// Cada Transition acepta únicamente sus estados de origen; cualquier otro estado
// (incluidos los terminales) produce domain.ErrInvalidStatusTransition.
package workflow

import (
	"fmt"

	"github.com/jhoicas/inventario-mmg/internal/domain"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

// Transition paso del flujo con sus estados de origen y su destino.
type Transition struct {
	Name string
	From []entity.RequestStatus
	To   entity.RequestStatus
}

var (
	DepartmentApprove = Transition{
		Name: "department-approve",
		From: []entity.RequestStatus{entity.StatusPending},
		To:   entity.StatusDepartmentApproved,
	}
	MMGApprove = Transition{
		Name: "mmg-approve",
		From: []entity.RequestStatus{entity.StatusDepartmentApproved},
		To:   entity.StatusMMGApproved,
	}
	Reject = Transition{
		Name: "reject",
		From: []entity.RequestStatus{entity.StatusPending, entity.StatusDepartmentApproved},
		To:   entity.StatusRejected,
	}
	ReturnApprove = Transition{
		Name: "return-approve",
		From: []entity.RequestStatus{entity.StatusReturnPending},
		To:   entity.StatusReturnApproved,
	}
)

// Allows indica si la transición puede aplicarse desde current.
func (t Transition) Allows(current entity.RequestStatus) bool {
	for _, s := range t.From {
		if s == current {
			return true
		}
	}
	return false
}

// Check devuelve ErrInvalidStatusTransition si current no es un origen válido.
func (t Transition) Check(current entity.RequestStatus) error {
	if t.Allows(current) {
		return nil
	}
	return fmt.Errorf("%w: %s no admite %q (requiere %v)", domain.ErrInvalidStatusTransition, t.Name, current, t.From)
}

// IsTerminal estados de los que no sale ninguna transición.
func IsTerminal(s entity.RequestStatus) bool {
	switch s {
	case entity.StatusMMGApproved, entity.StatusRejected, entity.StatusReturnApproved:
		return true
	}
	return false
}

// CanCancel solo una solicitud Pending puede eliminarse.
func CanCancel(s entity.RequestStatus) bool {
	return s == entity.StatusPending
}

// Transitions todas las transiciones, en el orden del flujo.
func Transitions() []Transition {
	return []Transition{DepartmentApprove, MMGApprove, Reject, ReturnApprove}
}
