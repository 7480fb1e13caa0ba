package parser

import "github.com/csv-insight/backend/internal/models"

// maxTextPoolSize bounds the pool; past it, cells are stored unshared.
const maxTextPoolSize = 100000

// textPool shares one string per distinct text cell within a single parse.
// Categorical columns repeat a handful of values across many rows, so the
// dataset keeps one copy of each. A pool is not safe for concurrent use.
type textPool struct {
	pool map[string]string
}

func newTextPool() *textPool {
	return &textPool{pool: make(map[string]string, 256)}
}

// intern returns the pooled copy of s.
func (p *textPool) intern(s string) string {
	if pooled, ok := p.pool[s]; ok {
		return pooled
	}
	if len(p.pool) >= maxTextPoolSize {
		return s
	}
	p.pool[s] = s
	return s
}

// text wraps the pooled copy of s as a text value.
func (p *textPool) text(s string) models.Value {
	return models.Text(p.intern(s))
}
