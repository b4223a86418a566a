package pricing

import (
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
)

// UsageModel is the tagged union of metered usage sub-models.
type UsageModel struct {
	Type types.UsageModelType `json:"type"`

	PerUnit *decimal.Decimal `json:"per_unit,omitempty"`
	Tiered  TierTable        `json:"tiered,omitempty"`
	Volume  TierTable        `json:"volume,omitempty"`
	Package *PackageConfig   `json:"package,omitempty"`
	Matrix  *MatrixConfig    `json:"matrix,omitempty"`
}

// PackageConfig prices usage in fixed-size blocks.
type PackageConfig struct {
	BlockSize   int64           `json:"block_size"`
	BlockAmount decimal.Decimal `json:"block_amount"`
}

// MatrixConfig prices usage by one or two event dimensions.
type MatrixConfig struct {
	Rows []MatrixRow `json:"rows"`
}

// MatrixRow maps a dimension combination to a per-unit amount.
type MatrixRow struct {
	Dimension          DimensionValue  `json:"dimension"`
	SecondaryDimension *DimensionValue `json:"secondary_dimension,omitempty"`
	UnitAmount         decimal.Decimal `json:"unit_amount"`
}

// DimensionValue is a single event dimension key-value pair.
type DimensionValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Validate checks the structural invariants of the usage model.
func (m *UsageModel) Validate() error {
	if err := m.Type.Validate(); err != nil {
		return err
	}

	switch m.Type {
	case types.USAGE_MODEL_PER_UNIT:
		if m.PerUnit == nil {
			return usageConfigError("per_unit", "Per-unit pricing requires a unit amount")
		}
		if m.PerUnit.LessThan(decimal.Zero) {
			return ierr.NewError("per unit amount cannot be negative").
				WithHint("Per-unit amount cannot be negative").
				WithReportableDetails(map[string]interface{}{
					"field":    "per_unit",
					"per_unit": m.PerUnit.String(),
				}).
				Mark(ierr.ErrValidation)
		}
	case types.USAGE_MODEL_TIERED:
		if len(m.Tiered) == 0 {
			return usageConfigError("tiered", "Tiered pricing requires at least one tier")
		}
		return m.Tiered.Validate()
	case types.USAGE_MODEL_VOLUME:
		if len(m.Volume) == 0 {
			return usageConfigError("volume", "Volume pricing requires at least one tier")
		}
		return m.Volume.Validate()
	case types.USAGE_MODEL_PACKAGE:
		if m.Package == nil {
			return usageConfigError("package", "Package pricing requires a block configuration")
		}
		return m.Package.Validate()
	case types.USAGE_MODEL_MATRIX:
		if m.Matrix == nil || len(m.Matrix.Rows) == 0 {
			return usageConfigError("matrix", "Matrix pricing requires at least one row")
		}
		return m.Matrix.Validate()
	}
	return nil
}

func usageConfigError(field, hint string) error {
	return ierr.NewErrorf("%s config is required", field).
		WithHint(hint).
		WithReportableDetails(map[string]interface{}{
			"field": field,
		}).
		Mark(ierr.ErrValidation)
}

func (c *PackageConfig) Validate() error {
	if c.BlockSize < 1 {
		return ierr.NewError("block size must be at least 1").
			WithHint("Package block size must be at least 1").
			WithReportableDetails(map[string]interface{}{
				"field":      "block_size",
				"block_size": c.BlockSize,
			}).
			Mark(ierr.ErrValidation)
	}
	if c.BlockAmount.LessThan(decimal.Zero) {
		return ierr.NewError("block amount cannot be negative").
			WithHint("Package block amount cannot be negative").
			WithReportableDetails(map[string]interface{}{
				"field":        "block_amount",
				"block_amount": c.BlockAmount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (c *MatrixConfig) Validate() error {
	for i, row := range c.Rows {
		if row.Dimension.Key == "" {
			return ierr.NewError("matrix row dimension key is required").
				WithHint("Each matrix row needs a primary dimension key").
				WithReportableDetails(map[string]interface{}{
					"field":     "dimension.key",
					"row_index": i,
				}).
				Mark(ierr.ErrValidation)
		}
		if row.UnitAmount.LessThan(decimal.Zero) {
			return ierr.NewError("matrix row unit amount cannot be negative").
				WithHint("Matrix row unit amount cannot be negative").
				WithReportableDetails(map[string]interface{}{
					"field":     "unit_amount",
					"row_index": i,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}
