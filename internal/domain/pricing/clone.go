package pricing

import "github.com/samber/lo"

// Clone returns a deep copy of the pricing model. Fee snapshots hold
// their own copy so later catalog edits cannot leak into them.
func (m PricingModel) Clone() PricingModel {
	out := PricingModel{Type: m.Type}

	if m.Rate != nil {
		out.Rate = lo.ToPtr(*m.Rate)
	}
	if m.Slot != nil {
		slot := *m.Slot
		if m.Slot.MinSlots != nil {
			slot.MinSlots = lo.ToPtr(*m.Slot.MinSlots)
		}
		if m.Slot.MaxSlots != nil {
			slot.MaxSlots = lo.ToPtr(*m.Slot.MaxSlots)
		}
		out.Slot = &slot
	}
	if m.Capacity != nil {
		thresholds := make(ThresholdList, len(m.Capacity.Thresholds))
		copy(thresholds, m.Capacity.Thresholds)
		out.Capacity = &CapacityConfig{Thresholds: thresholds}
	}
	if m.Usage != nil {
		out.Usage = &UsageConfig{
			MetricID: m.Usage.MetricID,
			Model:    m.Usage.Model.Clone(),
		}
	}
	if m.OneTime != nil {
		out.OneTime = lo.ToPtr(*m.OneTime)
	}
	if m.ExtraRecurring != nil {
		out.ExtraRecurring = lo.ToPtr(*m.ExtraRecurring)
	}

	return out
}

// Clone returns a deep copy of the usage model.
func (m UsageModel) Clone() UsageModel {
	out := UsageModel{Type: m.Type}

	if m.PerUnit != nil {
		out.PerUnit = lo.ToPtr(*m.PerUnit)
	}
	if len(m.Tiered) > 0 {
		out.Tiered = m.Tiered.clone()
	}
	if len(m.Volume) > 0 {
		out.Volume = m.Volume.clone()
	}
	if m.Package != nil {
		out.Package = lo.ToPtr(*m.Package)
	}
	if m.Matrix != nil {
		rows := make([]MatrixRow, len(m.Matrix.Rows))
		for i, row := range m.Matrix.Rows {
			rows[i] = row
			if row.SecondaryDimension != nil {
				rows[i].SecondaryDimension = lo.ToPtr(*row.SecondaryDimension)
			}
		}
		out.Matrix = &MatrixConfig{Rows: rows}
	}

	return out
}
