package piece

import (
	"errors"
	"fmt"
)

// Catalog error codes.
const (
	CodeBadCellCount = "BAD_CELL_COUNT"
	CodeBadBounds    = "BAD_BOUNDS"
)

// CatalogError reports a definition whose mask disagrees with its metadata.
type CatalogError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("piece %s: [%s] %s", e.Kind, e.Code, e.Message)
}

// ValidateDefinition checks that a definition holds exactly four cells and
// that its declared width/height match the occupied bounding box, which must
// start at the mask origin.
func ValidateDefinition(def Definition) error {
	if n := def.Mask.Count(); n != 4 {
		return &CatalogError{
			Kind:    def.Kind,
			Code:    CodeBadCellCount,
			Message: fmt.Sprintf("mask has %d cells, want 4", n),
		}
	}

	minP, maxP, _ := def.Mask.Bounds()
	if minP != (Point{}) {
		return &CatalogError{
			Kind:    def.Kind,
			Code:    CodeBadBounds,
			Message: fmt.Sprintf("occupied cells start at %d,%d, want 0,0", minP.X, minP.Y),
		}
	}
	if maxP.X != def.Width || maxP.Y != def.Height {
		return &CatalogError{
			Kind: def.Kind,
			Code: CodeBadBounds,
			Message: fmt.Sprintf("declared %dx%d, occupied box is %dx%d",
				def.Width, def.Height, maxP.X, maxP.Y),
		}
	}

	return nil
}

// Validate checks every catalog entry and returns all failures joined.
func Validate() error {
	var errs []error
	for _, def := range catalog {
		if err := ValidateDefinition(def); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
