// Package idgen genera los folios del kardex.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/bwmarrin/snowflake"
)

// Snowflake folios ordenados por tiempo y únicos por nodo (LEDGER_NODE).
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake crea el generador para el nodo dado (0..1023).
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("idgen: nodo %d: %w", nodeID, err)
	}
	return &Snowflake{node: node}, nil
}

// Next devuelve el siguiente folio.
func (s *Snowflake) Next() int64 {
	return s.node.Generate().Int64()
}

// Secuencia folios 1, 2, 3... para pruebas y el almacén en memoria.
type Secuencia struct {
	n atomic.Int64
}

func (s *Secuencia) Next() int64 {
	return s.n.Add(1)
}
