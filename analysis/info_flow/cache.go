package info_flow

// RegisterCache holds one "possibly tainted" flag per register. A false flag
// means the register is provably clean and the store can be skipped.
type RegisterCache struct {
	flags    [NumRegisters]bool
	disabled bool
}

func NewRegisterCache(enabled bool) *RegisterCache {
	return &RegisterCache{disabled: !enabled}
}

func (c *RegisterCache) MarkPossiblyTainted(reg Register) {
	c.flags[reg] = true
}

func (c *RegisterCache) MarkNotPossiblyTainted(reg Register) {
	c.flags[reg] = false
}

// IsPossiblyTainted always answers true when the cache is disabled, which
// makes every primitive go to the store.
func (c *RegisterCache) IsPossiblyTainted(reg Register) bool {
	if c.disabled {
		return true
	}
	return c.flags[reg]
}

func (c *RegisterCache) Enabled() bool {
	return !c.disabled
}

func (c *RegisterCache) Reset() {
	c.flags = [NumRegisters]bool{}
}

func (c *RegisterCache) Snapshot() [NumRegisters]bool {
	return c.flags
}
