// Package parserpool provides a pool of gnparser instances for concurrent
// parsing of scientific names. Marine species follow the zoological code.
package parserpool

import (
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides gnparser instances for concurrent parsing.
type Pool interface {
	// Parse parses a scientific name string. It is safe for concurrent use
	// and blocks while all parsers are busy.
	Parse(nameString string) parsed.Parsed

	// Canonical returns the simple canonical form of a name. The second
	// value is false if the name could not be parsed.
	Canonical(nameString string) (string, bool)

	// Close shuts down the parser pool. After calling Close, the pool
	// should not be used.
	Close()
}

type pool struct {
	ch chan gnparser.GNparser
}

// NewPool creates a parser pool with jobsNum parsers. If jobsNum is 0,
// it defaults to runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Zoological),
		gnparser.OptWithDetails(true),
	)
	return &pool{ch: gnparser.NewPool(cfg, poolSize)}
}

func (p *pool) Parse(nameString string) parsed.Parsed {
	parser := <-p.ch
	res := parser.ParseName(nameString)
	p.ch <- parser
	return res
}

func (p *pool) Canonical(nameString string) (string, bool) {
	res := p.Parse(nameString)
	if !res.Parsed || res.Canonical == nil {
		return "", false
	}
	return res.Canonical.Simple, true
}

func (p *pool) Close() {
	if p.ch != nil {
		close(p.ch)
		for range p.ch {
		}
	}
}
