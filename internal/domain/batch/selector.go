// Package batch implementa la selección de lote/serial a consumir en una
// salida de stock (servicio de dominio, sin acceso a datos).
package batch

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Policy política de consumo de lotes.
type Policy string

const (
	// PolicyFEFO first-expired-first-out: vence primero, sale primero.
	PolicyFEFO Policy = "FEFO"
	// PolicyFIFO first-in-first-out: entró primero, sale primero.
	PolicyFIFO Policy = "FIFO"
)

// ParsePolicy normaliza un string a política; cualquier valor distinto de
// FEFO cae a FIFO (mismo defecto que el resto del sistema).
func ParsePolicy(s string) Policy {
	if Policy(s) == PolicyFEFO {
		return PolicyFEFO
	}
	return PolicyFIFO
}

// Candidate grupo (lote, serial, vencimiento) con cantidad remanente y
// timestamp del primer movimiento del grupo.
type Candidate struct {
	LotID         *string
	SerialID      *string
	Expiry        *time.Time
	Quantity      decimal.Decimal
	FirstMovement time.Time
}

// Pick devuelve el mejor candidato con cantidad remanente positiva según la
// política, o nil si ningún grupo tiene remanente ("sin candidato" no es un
// error).
//
//   - FEFO: vencimiento ascendente, sin vencimiento al final; empate por
//     primer movimiento más antiguo.
//   - FIFO: solo primer movimiento más antiguo, ignorando vencimiento.
func Pick(candidates []Candidate, policy Policy) *Candidate {
	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Quantity.IsPositive() {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if policy == PolicyFEFO {
			switch {
			case a.Expiry == nil && b.Expiry == nil:
				// ambos sin vencimiento: decide el primer movimiento
			case a.Expiry == nil:
				return false // nulls last
			case b.Expiry == nil:
				return true
			case !a.Expiry.Equal(*b.Expiry):
				return a.Expiry.Before(*b.Expiry)
			}
		}
		return a.FirstMovement.Before(b.FirstMovement)
	})

	best := eligible[0]
	return &best
}
