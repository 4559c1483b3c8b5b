// Package fixture loads the read-only test data shared by all scenarios.
package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"shopcheck/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidFixture = errors.New("invalid fixture")

// Load reads and validates the fixture document at path.
func Load(path string) (entity.Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return entity.Fixture{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a fixture document. Unknown fields are rejected so that a
// misspelled key does not silently become an empty credential.
func Parse(data []byte) (entity.Fixture, error) {
	var f entity.Fixture

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return entity.Fixture{}, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	if err := validator.New().Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return entity.Fixture{}, fmt.Errorf("%w: %s is %s", ErrInvalidFixture, verrs[0].Namespace(), verrs[0].Tag())
		}
		return entity.Fixture{}, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	return f, nil
}
