package memory

// guard toma el lock del almacén salvo que el repositorio viva dentro de una ingesta,
// donde el TxRunner ya tiene el lock exclusivo.
type guard struct {
	store  *Store
	locked bool
}

func (g guard) read() func() {
	if g.locked {
		return func() {}
	}
	g.store.mu.RLock()
	return g.store.mu.RUnlock
}

func (g guard) write() func() {
	if g.locked {
		return func() {}
	}
	g.store.mu.Lock()
	return g.store.mu.Unlock
}
