package fingerprint

import "github.com/grovetools/stamp/config"

// ApplyConfig folds stamp.yml defaults into the monitor. Explicitly set
// fields win: configured exclusions are appended, and the value-only mode
// can be enabled but not disabled by configuration.
func (m *Monitor[K, V]) ApplyConfig(cfg *config.Config) {
	m.Exclude = append(m.Exclude, cfg.Monitor.Exclude...)
	if cfg.Monitor.CheckValueChanged {
		m.CheckIfOnlyValueChanged = true
	}
}
