package polykit

import "fmt"

// VariablePool hands out fresh, globally-unique variable names: the RAN
// engine's auxiliary main-variable renaming and the fresh substitution
// variable evaluation introduces both draw from one.
type VariablePool struct {
	counter int
}

// NewVariablePool constructs an empty pool.
func NewVariablePool() *VariablePool {
	return &VariablePool{}
}

// Fresh returns a variable name of the form "__<prefix><n>" that has not
// been handed out by this pool before.
func (p *VariablePool) Fresh(prefix string) string {
	p.counter++
	return fmt.Sprintf("__%s%d", prefix, p.counter)
}

// globalPool backs the package-level Fresh helper used by code that does
// not thread a *VariablePool through (mirrors carl's global fresh-variable
// counter used for e.g. fresh_real_variable("__r")).
var globalPool = NewVariablePool()

// FreshVariable returns a process-wide unique variable name with the given
// prefix.
func FreshVariable(prefix string) string {
	return globalPool.Fresh(prefix)
}
