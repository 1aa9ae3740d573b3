package models

import (
	"fmt"

	"opinfo/pkg/platform/sentinel"
)

// Validate checks every MNO and international MVNO of the set.
func (s RecordSet) Validate() error {
	for i, mno := range s.MNOs {
		if err := mno.Data.Validate(); err != nil {
			return fmt.Errorf("mno %d: %w", i, err)
		}
		for j, mvno := range mno.MVNOs {
			if err := mvno.Validate(); err != nil {
				return fmt.Errorf("mno %d: mvno %d: %w", i, j, err)
			}
		}
	}
	for i, mvno := range s.IMVNOs {
		if err := mvno.Validate(); err != nil {
			return fmt.Errorf("imvno %d: %w", i, err)
		}
	}
	return nil
}

// Validate rejects unknown filter types and invalid data.
func (m MVNO) Validate() error {
	for i, f := range m.Filters {
		if !f.Type.IsValid() {
			return fmt.Errorf("filter %d: unknown filter type %q: %w", i, f.Type, sentinel.ErrInvalidRecord)
		}
	}
	return m.Data.Validate()
}

// Validate rejects unknown portal methods and localized names without a
// name, which would otherwise be indexed under the empty key.
func (d Data) Validate() error {
	for i, olp := range d.OnlinePortals {
		if !olp.Method.IsValid() {
			return fmt.Errorf("olp %d: unknown method %q: %w", i, olp.Method, sentinel.ErrInvalidRecord)
		}
	}
	for i, name := range d.LocalizedNames {
		if name.Name == "" {
			return fmt.Errorf("localized_name %d: name is required: %w", i, sentinel.ErrInvalidRecord)
		}
	}
	return nil
}
