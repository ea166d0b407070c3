package store

import "vidgrab/internal/models"

// LoadSettings returns the stored settings over the defaults.
//
// Keys missing from the file keep their default values.
func (s *Store) LoadSettings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSettings()
}

func (s *Store) loadSettings() models.Settings {
	settings := models.DefaultSettings()
	if !loadDoc(s.settingsPath, &settings) {
		return models.DefaultSettings()
	}
	return settings
}

// SaveSettings writes the whole settings document.
func (s *Store) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveDoc(s.settingsPath, settings)
}

// UpdateSettings applies fn to the stored settings and saves the result.
func (s *Store) UpdateSettings(fn func(*models.Settings) error) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.loadSettings()
	if err := fn(&settings); err != nil {
		return settings, err
	}
	return settings, saveDoc(s.settingsPath, settings)
}

// ResetSettings overwrites the settings document with the defaults.
func (s *Store) ResetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	def := models.DefaultSettings()
	return def, saveDoc(s.settingsPath, def)
}
