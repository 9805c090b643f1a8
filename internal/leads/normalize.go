package leads

// Normalizer re-derives the fields the client must not decide alone.
type Normalizer struct {
	catalog *Catalog
}

// NewNormalizer uses catalog for the frameless lock default.
func NewNormalizer(catalog *Catalog) *Normalizer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Normalizer{catalog: catalog}
}

// Normalize forces the frameless lock and clears frame measurements when no
// frame is ordered. It is total and idempotent; nothing else is touched.
func (n *Normalizer) Normalize(s LeadSubmission) LeadSubmission {
	if s.WithFrame != WithFrameNo {
		return s
	}
	s.LockType = n.catalog.FramelessLock()
	s.FrameSize = nil
	s.FrameThickness = nil
	return s
}
