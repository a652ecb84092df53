package health

// BusyReporter reports whether a long-running task is in flight.
type BusyReporter interface {
	Busy() bool
}

// Service encapsulates health-related checks.
type Service struct {
	Backend string
	Export  BusyReporter
}

// NewService constructs a new health service.
func NewService(backend string, export BusyReporter) *Service {
	return &Service{Backend: backend, Export: export}
}

// Status is the health payload.
type Status struct {
	OK        bool   `json:"ok"`
	Storage   string `json:"storage"`
	Exporting bool   `json:"exporting"`
}

// Status returns the current health payload.
func (s *Service) Status() Status {
	st := Status{OK: true, Storage: s.Backend}
	if s.Export != nil {
		st.Exporting = s.Export.Busy()
	}
	return st
}
